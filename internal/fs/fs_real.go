package fs

import (
	"os"
	"path/filepath"
	"strings"
)

type realFS struct{}

// RealFS returns an FS backed by the host operating system.
func RealFS() FS {
	return realFS{}
}

func (realFS) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return resolved, nil
}

func (realFS) ReadFile(path string) (string, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(contents), nil
}

func (realFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (realFS) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (realFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (realFS) Clean(path string) string {
	return filepath.Clean(path)
}

func (realFS) Join(parts ...string) string {
	return filepath.Clean(filepath.Join(parts...))
}

func (realFS) Dir(path string) string {
	return filepath.Dir(path)
}

func (realFS) WithBase(path string, base string) string {
	return filepath.Join(filepath.Dir(path), base)
}

func (realFS) Ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}
