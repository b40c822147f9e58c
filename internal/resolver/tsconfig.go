package resolver

import (
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"

	"github.com/hanayashiki/es-resolve/internal/fs"
)

// tsconfigNames are tried in this order in each ancestor directory, per
// spec §4.7.
var tsconfigNames = []string{"tsconfig.json", "jsconfig.json"}

// TSConfigPaths is compilerOptions.paths: an insertion-ordered mapping from
// pattern key to an ordered list of template targets (spec §3).
type TSConfigPaths struct {
	Keys []string
	Map  map[string][]string
}

// TSConfigJSON is the subset of tsconfig.json/jsconfig.json this resolver
// understands (spec §3): an absolute baseUrl and the paths mapping.
type TSConfigJSON struct {
	AbsPath string
	BaseURL string // absolute; "" if compilerOptions.baseUrl was not set
	Paths   *TSConfigPaths
}

// DescribeTSConfig resolves the tsconfig.json/jsconfig.json governing the
// file at from, for tooling that wants to inspect it directly (the CLI's
// "tsconfig" subcommand) rather than drive a full Resolve call.
func (r *Resolver) DescribeTSConfig(from string) (*TSConfigJSON, error) {
	absFrom, err := r.fs.Canonicalize(from)
	if err != nil {
		return nil, ioErrorf(err, "cannot resolve from file %s; does it exist?", from)
	}
	return r.resolveTSConfig(r.fs.Dir(absFrom))
}

// resolveTSConfig implements spec §4.7's resolve_tsconfig: walk upward from
// parent(from), returning the first tsconfig.json/jsconfig.json (tried in
// that order per directory) that parses successfully. A directory with
// neither file, or with a file that can't be read, is skipped silently; a
// file that exists but fails to parse is a propagated InvalidTSConfig.
func (r *Resolver) resolveTSConfig(fromDir string) (*TSConfigJSON, error) {
	dir := fromDir
	for {
		for _, name := range tsconfigNames {
			candidate := r.fs.Join(dir, name)
			if !r.fs.IsFile(candidate) {
				continue
			}
			if _, readErr := r.fs.ReadFile(candidate); readErr != nil {
				continue
			}
			return r.parseTSConfig(candidate, make(map[string]bool))
		}

		parent := r.fs.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// parseTSConfig reads and parses one tsconfig file, chasing "extends"
// transitively. visited tracks canonical paths seen earlier in the current
// extends chain, detecting cycles (spec §9's open question, resolved here
// by failing with InvalidTSConfigExtend on a revisit — the original source
// left this unguarded with a "what if tsconfig has a ring?" TODO).
func (r *Resolver) parseTSConfig(path string, visited map[string]bool) (*TSConfigJSON, error) {
	if visited[path] {
		return nil, newError(InvalidTSConfigExtend, "circular \"extends\" chain revisits "+path, nil)
	}
	visited[path] = true

	text, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, ioErrorf(err, "can't read %s", path)
	}

	// tsconfig.json permits "//" and "/* */" comments but not trailing
	// commas (spec §6) — jsonc strips comments only, so the trailing-comma
	// limitation is preserved rather than invented away.
	stripped := jsonc.ToJSON([]byte(text))
	if !gjson.ValidBytes(stripped) {
		return nil, newError(InvalidTSConfig, "invalid JSON in "+path, nil)
	}
	root := gjson.ParseBytes(stripped)

	config := &TSConfigJSON{AbsPath: path}

	compilerOptions := root.Get("compilerOptions")

	if baseURL := compilerOptions.Get("baseUrl"); baseURL.Exists() {
		// baseUrl is rewritten to be relative to the filesystem (sibling of
		// the tsconfig file), not left relative to the tsconfig file itself
		// (spec §3 invariant).
		config.BaseURL = r.fs.WithBase(path, baseURL.String())
	}

	if pathsNode := compilerOptions.Get("paths"); pathsNode.IsObject() {
		config.Paths = parseTSConfigPaths(pathsNode)
	}

	extends := root.Get("extends")
	if !extends.Exists() || extends.String() == "" {
		return config, nil
	}

	parentPath, err := r.resolveExtendsTarget(extends.String(), path)
	if err != nil {
		return nil, newError(InvalidTSConfigExtend, "\"extends\" of "+path+" does not resolve to a valid JSON module", err)
	}

	parentConfig, err := r.parseTSConfig(parentPath, visited)
	if err != nil {
		return nil, err
	}

	// extends precedence (spec §8, §9): the child's baseUrl/paths each win
	// field-wise over the parent's; missing fields inherit.
	if config.BaseURL == "" {
		config.BaseURL = parentConfig.BaseURL
	}
	if config.Paths == nil {
		config.Paths = parentConfig.Paths
	}

	return config, nil
}

// resolveExtendsTarget resolves an "extends" specifier using this same
// resolver, restricted to looking up JSON modules, with TSConfig-paths
// resolution disabled to prevent re-entry while chasing extends (spec §4.7,
// §9 "resolver re-entry during extends").
func (r *Resolver) resolveExtendsTarget(specifier string, fromTSConfigPath string) (string, error) {
	extendsOptions := r.options
	extendsOptions.Extensions = []string{"json"}

	sub := &Resolver{
		fs:               r.fs,
		log:              r.log,
		options:          extendsOptions,
		skipTSConfigPass: true,
	}
	return sub.Resolve(specifier, fromTSConfigPath, Node)
}

// parseTSConfigPaths parses compilerOptions.paths, preserving key order via
// gjson.Result.ForEach (spec §3's non-negotiable insertion-order invariant).
func parseTSConfigPaths(node gjson.Result) *TSConfigPaths {
	paths := &TSConfigPaths{Map: make(map[string][]string)}
	node.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		if !isValidTSConfigPathPattern(k) {
			return true
		}
		var templates []string
		if value.IsArray() {
			value.ForEach(func(_, item gjson.Result) bool {
				t := item.String()
				if isValidTSConfigPathPattern(t) {
					templates = append(templates, t)
				}
				return true
			})
		}
		if len(templates) == 0 {
			return true
		}
		paths.Keys = append(paths.Keys, k)
		paths.Map[k] = templates
		return true
	})
	if len(paths.Keys) == 0 {
		return nil
	}
	return paths
}

// isValidTSConfigPathPattern rejects patterns with more than one "*".
func isValidTSConfigPathPattern(text string) bool {
	return strings.Count(text, "*") <= 1
}

// matchTSConfigPaths implements spec §4.8: produce, in order, the candidate
// absolute paths compilerOptions.paths suggests for target.
func matchTSConfigPaths(fsys fs.FS, baseURL string, paths *TSConfigPaths, target string) []string {
	if paths == nil {
		return nil
	}

	if templates, ok := paths.Map[target]; ok {
		candidates := make([]string, 0, len(templates))
		for _, t := range templates {
			candidates = append(candidates, fsys.Join(baseURL, t))
		}
		return candidates
	}

	best := ""
	for _, key := range paths.Keys {
		if matchExportsPattern(key, target) && patternKeyCompare(best, key) == 1 {
			best = key
		}
	}

	if best == "" {
		// TypeScript's implicit "*": ["*"] fallback (spec §4.8 step 3).
		return []string{fsys.Join(baseURL, target)}
	}

	captured := extractExportsPattern(best, target)
	templates := paths.Map[best]
	candidates := make([]string, 0, len(templates))
	for _, t := range templates {
		candidates = append(candidates, fsys.Join(baseURL, strings.Replace(t, "*", captured, 1)))
	}
	return candidates
}
