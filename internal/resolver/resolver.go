// Package resolver implements the module resolution algorithm: given a
// specifier, the file it was written in, and a target environment, it
// returns an absolute path, a "node:"-prefixed core module name, or a typed
// *Error. See the package-level DESIGN.md at the repository root for the
// grounding of each component.
package resolver

import (
	"strings"

	"github.com/hanayashiki/es-resolve/internal/fs"
	"github.com/hanayashiki/es-resolve/internal/logger"
)

// Resolver holds everything one Resolve call needs: the filesystem oracle,
// a diagnostics sink, and the resolution options. A Resolver has no mutable
// state and is cheap to construct — build one per call, or one per
// goroutine for concurrent batch resolution (see batch.go).
type Resolver struct {
	fs      fs.FS
	log     logger.Log
	options Options

	// skipTSConfigPass disables the TSConfig-paths pass of Resolve. It is
	// set only on the sub-resolver used to chase "extends" (spec §4.1,
	// §4.7, §9), to avoid mutual recursion between the TSConfig loader and
	// the orchestrator beyond one extra call layer.
	skipTSConfigPass bool
}

// New builds a Resolver for env, using environment-default Options and log
// for diagnostics. Pass logger.Discard if diagnostics aren't wanted.
func New(fsys fs.FS, log logger.Log, env TargetEnv) *Resolver {
	return &Resolver{fs: fsys, log: log, options: DefaultOptions(env)}
}

// NewWithOptions builds a Resolver with explicit Options overriding the
// environment defaults.
func NewWithOptions(fsys fs.FS, log logger.Log, options Options) *Resolver {
	return &Resolver{fs: fsys, log: log, options: options}
}

// rewrittenExtensions expresses the TypeScript rewrite rule from spec §4.2:
// when a source-level extension has no file on disk, try the corresponding
// TypeScript source extensions instead.
var rewrittenExtensions = []struct {
	suffix       string
	replacements []string
}{
	{".js", []string{"ts", "tsx"}},
	{".jsx", []string{"tsx"}},
	{".mjs", []string{"mts"}},
	{".cjs", []string{"cts"}},
}

// Resolve is the orchestrator (spec §4.1): classify target, canonicalize
// from, and dispatch to the relative/absolute loader or the bare-specifier
// path (TSConfig paths, then node_modules).
func (r *Resolver) Resolve(target string, from string, env TargetEnv) (string, error) {
	if env == Node {
		if resolved, ok := classifyCoreModule(target); ok {
			return resolved, nil
		}
	}

	absFrom, err := r.fs.Canonicalize(from)
	if err != nil {
		return "", ioErrorf(err, "cannot resolve from file %s; does it exist?", from)
	}

	if strings.HasPrefix(target, ".") || strings.HasPrefix(target, "/") {
		absTo := r.fs.WithBase(absFrom, target)
		if strings.HasPrefix(target, "/") {
			absTo = r.fs.Clean(target)
		}

		if file, ok := r.loadAsFile(absTo); ok {
			return r.fs.Clean(file), nil
		}
		if dir, ok := r.loadAsDirectory(absTo); ok {
			return r.fs.Clean(dir), nil
		}
	} else {
		fromDir := r.fs.Dir(absFrom)

		if !r.skipTSConfigPass {
			tsconfig, tsErr := r.resolveTSConfig(fromDir)
			if tsErr != nil {
				return "", tsErr
			}
			if tsconfig != nil && tsconfig.Paths != nil {
				for _, candidate := range matchTSConfigPaths(r.fs, tsconfig.BaseURL, tsconfig.Paths, target) {
					if file, ok := r.loadAsFile(candidate); ok {
						return r.fs.Clean(file), nil
					}
					if dir, ok := r.loadAsDirectory(candidate); ok {
						return r.fs.Clean(dir), nil
					}
				}
			}
		}

		result, err := r.loadNodeModules(fromDir, target)
		if err != nil {
			return "", err
		}
		if result != "" {
			return r.fs.Clean(result), nil
		}
	}

	return "", moduleNotFoundf("cannot resolve %q from %s", target, from)
}

// loadAsFile implements spec §4.2's LOAD_AS_FILE.
func (r *Resolver) loadAsFile(abs string) (string, bool) {
	if r.fs.IsFile(abs) {
		return abs, true
	}

	for _, ext := range r.options.Extensions {
		candidate := abs + "." + ext
		if r.fs.IsFile(candidate) {
			return candidate, true
		}
	}

	for _, rewrite := range rewrittenExtensions {
		if !strings.HasSuffix(abs, rewrite.suffix) {
			continue
		}
		base := abs[:len(abs)-len(rewrite.suffix)]
		for _, ext := range rewrite.replacements {
			candidate := base + "." + ext
			if r.fs.IsFile(candidate) {
				return candidate, true
			}
		}
	}

	return "", false
}

// loadIndex implements spec §4.2's LOAD_INDEX: try abs/index with the same
// extension probing as LOAD_AS_FILE.
func (r *Resolver) loadIndex(abs string) (string, bool) {
	return r.loadAsFile(r.fs.Join(abs, "index"))
}

// loadAsDirectory implements spec §4.3's LOAD_AS_DIRECTORY.
func (r *Resolver) loadAsDirectory(dir string) (string, bool) {
	packageJSONPath := r.fs.Join(dir, "package.json")

	if r.fs.IsFile(packageJSONPath) {
		if text, err := r.fs.ReadFile(packageJSONPath); err == nil {
			if pkg, err := parsePackageJSON(text); err == nil {
				for _, field := range r.options.MainFields {
					value := pkg.mainField(field)
					if value == "" {
						continue
					}
					if file, ok := r.loadAsFile(r.fs.Join(dir, value)); ok {
						return file, true
					}
				}
			} else if !isInsideNodeModules(dir) {
				// Node silently ignores an unreadable/unparseable
				// package.json during directory loading (spec §4.3 step
				// 1); still worth a debug breadcrumb outside node_modules,
				// where it usually indicates a real project mistake.
				r.log.Add(logger.Debug, "ignoring malformed package.json at "+packageJSONPath+": "+err.Error())
			}
		}
	}

	return r.loadIndex(dir)
}

// loadNodeModules implements spec §4.4's LOAD_NODE_MODULES: walk upward
// through ancestor node_modules directories.
func (r *Resolver) loadNodeModules(fromDir string, target string) (string, error) {
	dir := fromDir
	for {
		nodeModulesDir := r.fs.Join(dir, "node_modules")

		path, matched, err := r.loadPackageExports(nodeModulesDir, target)
		if err != nil {
			var resolverErr *Error
			if asError(err, &resolverErr) && (resolverErr.Kind == InvalidModuleSpecifier || resolverErr.Kind == IOError) {
				r.log.Add(logger.Debug, "load_package_exports: "+err.Error())
			} else {
				return "", err
			}
		} else if matched {
			return path, nil
		}

		moduleBase := r.fs.Join(nodeModulesDir, target)
		if file, ok := r.loadAsFile(moduleBase); ok {
			return file, nil
		}
		if dir2, ok := r.loadAsDirectory(moduleBase); ok {
			return dir2, nil
		}

		parent := r.fs.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// asError is a small errors.As wrapper kept local so callers above don't
// need to import "errors" just for this one check.
func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// isInsideNodeModules reports whether path has a "node_modules" path
// segment, used to avoid warning about third-party packages' own manifest
// quirks.
func isInsideNodeModules(path string) bool {
	for {
		slash := strings.LastIndexAny(path, "/\\")
		if slash == -1 {
			return false
		}
		dir, base := path[:slash], path[slash+1:]
		if base == "node_modules" {
			return true
		}
		path = dir
	}
}
