package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hanayashiki/es-resolve/internal/fs"
	"github.com/hanayashiki/es-resolve/internal/logger"
)

// These fixtures use a relative/, directory/, node_modules_/, and tspaths/
// layout, built in-memory with fs.MockFS instead of real files on disk.

func TestResolveRelative(t *testing.T) {
	files := map[string]string{
		"/proj/relative/index.js":          "",
		"/proj/relative/js.js":             "",
		"/proj/relative/ts.ts":             "",
		"/proj/relative/tsx.tsx":           "",
		"/proj/relative/jsx.jsx":           "",
		"/proj/relative/css.css":           "",
		"/proj/relative/priority/target.tsx": "",
		"/proj/relative/parent/index.js":   "",
	}
	r := New(fs.MockFS(files), logger.Discard, Browser)

	cases := []struct{ target, from, want string }{
		{"./js.js", "/proj/relative/index.js", "/proj/relative/js.js"},
		{"./js", "/proj/relative/index.js", "/proj/relative/js.js"},
		{"./ts", "/proj/relative/index.js", "/proj/relative/ts.ts"},
		{"./tsx", "/proj/relative/index.js", "/proj/relative/tsx.tsx"},
		{"./jsx", "/proj/relative/index.js", "/proj/relative/jsx.jsx"},
		{"./css", "/proj/relative/index.js", "/proj/relative/css.css"},
		{"./ts.js", "/proj/relative/index.js", "/proj/relative/ts.ts"},
		{"./tsx.js", "/proj/relative/index.js", "/proj/relative/tsx.tsx"},
		{"./priority/target", "/proj/relative/index.js", "/proj/relative/priority/target.tsx"},
		{"../ts", "/proj/relative/parent/index.js", "/proj/relative/ts.ts"},
	}

	for _, c := range cases {
		got, err := r.Resolve(c.target, c.from, Browser)
		require.NoError(t, err, "resolving %q from %q", c.target, c.from)
		require.Equal(t, c.want, got)
	}
}

func TestResolveDirectory(t *testing.T) {
	files := map[string]string{
		"/proj/directory/index.js":                                "",
		"/proj/directory/pkg/index.js":                             "",
		"/proj/directory/package_json_main/package.json":           `{"main": "./main.js"}`,
		"/proj/directory/package_json_main/main.js":                "",
		"/proj/directory/package_json_browser/package.json":        `{"browser": "./browser.js"}`,
		"/proj/directory/package_json_browser/browser.js":          "",
		"/proj/directory/package_json_missing_main/package.json":   `{}`,
		"/proj/directory/package_json_missing_main/index.js":       "",
	}
	from := "/proj/directory/index.js"

	browser := New(fs.MockFS(files), logger.Discard, Browser)
	node := New(fs.MockFS(files), logger.Discard, Node)

	got, err := browser.Resolve("./pkg", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/directory/pkg/index.js", got)

	got, err = node.Resolve("./package_json_main", from, Node)
	require.NoError(t, err)
	require.Equal(t, "/proj/directory/package_json_main/main.js", got)

	got, err = browser.Resolve("./package_json_browser", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/directory/package_json_browser/browser.js", got)

	got, err = browser.Resolve("./package_json_missing_main", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/directory/package_json_missing_main/index.js", got)
}

func TestResolveNodeModules(t *testing.T) {
	files := map[string]string{
		"/proj/node_modules_/index.js":                                           "",
		"/proj/node_modules_/node_modules/no_package_json/index.js":              "",
		"/proj/node_modules_/node_modules/no_package_json/jsx-runtime.js":        "",
		"/proj/node_modules_/deep/dir1/dir2/dir3/index.js":                       "",
	}
	r := New(fs.MockFS(files), logger.Discard, Browser)

	got, err := r.Resolve("no_package_json", "/proj/node_modules_/index.js", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/no_package_json/index.js", got)

	got, err = r.Resolve("no_package_json/jsx-runtime", "/proj/node_modules_/index.js", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/no_package_json/jsx-runtime.js", got)

	got, err = r.Resolve("no_package_json", "/proj/node_modules_/deep/dir1/dir2/dir3/index.js", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/no_package_json/index.js", got)
}

func TestResolveExports(t *testing.T) {
	files := map[string]string{
		"/proj/node_modules_/import_exports.mjs": "",

		"/proj/node_modules_/node_modules/exports/package.json": `{
			"exports": {
				".": "./index.mjs",
				"./nest1/nest2": "./nest1/nest2/index.mjs",
				"./nest2": "./nest1/nest2/index.mjs"
			}
		}`,
		"/proj/node_modules_/node_modules/exports/index.mjs":             "",
		"/proj/node_modules_/node_modules/exports/nest1/nest2/index.mjs": "",

		"/proj/node_modules_/node_modules/exports_array/package.json": `{
			"exports": ["./index.mjs", "./other.mjs"]
		}`,
		"/proj/node_modules_/node_modules/exports_array/index.mjs": "",

		"/proj/node_modules_/node_modules/@scoped/exports/package.json": `{
			"exports": { "./nested": "./index.mjs" }
		}`,
		"/proj/node_modules_/node_modules/@scoped/exports/index.mjs": "",
	}
	r := New(fs.MockFS(files), logger.Discard, Browser)
	from := "/proj/node_modules_/import_exports.mjs"

	got, err := r.Resolve("exports", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports/index.mjs", got)

	got, err = r.Resolve("exports/nest1/nest2", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports/nest1/nest2/index.mjs", got)

	got, err = r.Resolve("exports/nest2", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports/nest1/nest2/index.mjs", got)

	got, err = r.Resolve("exports_array", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports_array/index.mjs", got)

	got, err = r.Resolve("@scoped/exports/nested", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/@scoped/exports/index.mjs", got)
}

func TestResolveExportsSugar(t *testing.T) {
	files := map[string]string{
		"/proj/node_modules_/import_exports.mjs": "",

		"/proj/node_modules_/node_modules/exports_sugar_string/package.json": `{
			"exports": "./index.mjs"
		}`,
		"/proj/node_modules_/node_modules/exports_sugar_string/index.mjs": "",

		"/proj/node_modules_/node_modules/exports_sugar_object/package.json": `{
			"exports": { "node": "./index.mjs", "default": "./index.mjs" }
		}`,
		"/proj/node_modules_/node_modules/exports_sugar_object/index.mjs": "",

		"/proj/node_modules_/node_modules/exports_sugar_array/package.json": `{
			"exports": [ { "node": "./a.js" }, { "default": "./c.mjs" } ]
		}`,
		"/proj/node_modules_/node_modules/exports_sugar_array/a.js":  "",
		"/proj/node_modules_/node_modules/exports_sugar_array/c.mjs": "",
	}
	from := "/proj/node_modules_/import_exports.mjs"

	browser := New(fs.MockFS(files), logger.Discard, Browser)
	node := New(fs.MockFS(files), logger.Discard, Node)

	got, err := browser.Resolve("exports_sugar_string", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports_sugar_string/index.mjs", got)

	got, err = browser.Resolve("exports_sugar_object", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports_sugar_object/index.mjs", got)

	got, err = browser.Resolve("exports_sugar_array", from, Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports_sugar_array/c.mjs", got)

	got, err = node.Resolve("exports_sugar_array", from, Node)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports_sugar_array/a.js", got)
}

func TestResolveExportsPattern(t *testing.T) {
	files := map[string]string{
		"/proj/node_modules_/import_exports.mjs": "",

		"/proj/node_modules_/node_modules/exports_star/package.json": `{
			"exports": { "./star/*": "./lib/*.mjs" }
		}`,
		"/proj/node_modules_/node_modules/exports_star/lib/index.mjs": "",
	}
	r := New(fs.MockFS(files), logger.Discard, Browser)

	got, err := r.Resolve("exports_star/star/index", "/proj/node_modules_/import_exports.mjs", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/node_modules_/node_modules/exports_star/lib/index.mjs", got)
}

func TestResolveTSConfigPaths(t *testing.T) {
	files := map[string]string{
		"/proj/tspaths/constant/tsconfig.json": `{
			"compilerOptions": { "baseUrl": ".", "paths": { "constant": ["./constant.ts"] } }
		}`,
		"/proj/tspaths/constant/index.ts":    "",
		"/proj/tspaths/constant/constant.ts": "",

		"/proj/tspaths/star/tsconfig.json": `{
			"compilerOptions": {
				"baseUrl": ".",
				"paths": {
					"@components/*": ["components/*"],
					"@anything/*": ["pages/Login.tsx"]
				}
			}
		}`,
		"/proj/tspaths/star/pages/Login.tsx":    "",
		"/proj/tspaths/star/components/Text.tsx": "",

		"/proj/tspaths/match-priority/tsconfig.json": `{
			"compilerOptions": {
				"baseUrl": ".",
				"paths": {
					"@utils/*": ["./@utils/*"],
					"@utils/high-priority/*": ["./@high-priority/*"]
				}
			}
		}`,
		"/proj/tspaths/match-priority/index.ts":              "",
		"/proj/tspaths/match-priority/@high-priority/type.ts": "",

		"/proj/tspaths/tsconfig-syntax/tsconfig.json": "{\n" +
			"  // a leading comment\n" +
			"  \"compilerOptions\": {\n" +
			"    \"baseUrl\": \".\",\n" +
			"    \"paths\": { \"constant\": [\"./constant.ts\"] }\n" +
			"  }\n" +
			"}\n",
		"/proj/tspaths/tsconfig-syntax/index.ts":    "",
		"/proj/tspaths/tsconfig-syntax/constant.ts": "",
	}
	r := New(fs.MockFS(files), logger.Discard, Browser)

	got, err := r.Resolve("constant", "/proj/tspaths/constant/index.ts", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/constant/constant.ts", got)

	got, err = r.Resolve("@components/Text", "/proj/tspaths/star/pages/Login.tsx", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/star/components/Text.tsx", got)

	// No bare "*" entry in paths: a target with no matching pattern still
	// falls back to baseUrl-relative resolution.
	got, err = r.Resolve("components/Text", "/proj/tspaths/star/pages/Login.tsx", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/star/components/Text.tsx", got)

	// Matches "@anything/*" whose template has no "*" of its own: the
	// capture is discarded and every matching target lands on the same file.
	got, err = r.Resolve("@anything/xxx", "/proj/tspaths/star/pages/Login.tsx", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/star/pages/Login.tsx", got)

	got, err = r.Resolve("@anything/yyy", "/proj/tspaths/star/pages/Login.tsx", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/star/pages/Login.tsx", got)

	// The longer-prefix key wins over the shorter one.
	got, err = r.Resolve("@utils/high-priority/type", "/proj/tspaths/match-priority/index.ts", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/match-priority/@high-priority/type.ts", got)

	// tsconfig.json with "//" comments still parses.
	got, err = r.Resolve("constant", "/proj/tspaths/tsconfig-syntax/index.ts", Browser)
	require.NoError(t, err)
	require.Equal(t, "/proj/tspaths/tsconfig-syntax/constant.ts", got)
}

func TestResolveCoreModule(t *testing.T) {
	r := New(fs.MockFS(map[string]string{"/proj/index.js": ""}), logger.Discard, Node)

	got, err := r.Resolve("fs", "/proj/index.js", Node)
	require.NoError(t, err)
	require.Equal(t, "node:fs", got)

	got, err = r.Resolve("node:path", "/proj/index.js", Node)
	require.NoError(t, err)
	require.Equal(t, "node:path", got)
}

func TestResolveNotFound(t *testing.T) {
	r := New(fs.MockFS(map[string]string{"/proj/index.js": ""}), logger.Discard, Browser)

	_, err := r.Resolve("does-not-exist", "/proj/index.js", Browser)
	require.Error(t, err)

	var resolverErr *Error
	require.ErrorAs(t, err, &resolverErr)
	require.Equal(t, ModuleNotFound, resolverErr.Kind)
}

func TestResolveInvalidModuleSpecifier(t *testing.T) {
	// A malformed package name inside loadNodeModules is swallowed (spec
	// §7's swallow/propagate policy) and the walk continues, so a bad
	// specifier ultimately surfaces as ModuleNotFound from Resolve, not as
	// the InvalidModuleSpecifier that caused it. parsePackageName itself is
	// exercised directly here.
	r := New(fs.MockFS(map[string]string{"/proj/index.js": ""}), logger.Discard, Browser)

	_, err := r.Resolve("@scoped-without-slash", "/proj/index.js", Browser)
	require.Error(t, err)

	var resolverErr *Error
	require.ErrorAs(t, err, &resolverErr)
	require.Equal(t, ModuleNotFound, resolverErr.Kind)

	_, _, specErr := parsePackageName("@scoped-without-slash")
	require.Error(t, specErr)
	var specResolverErr *Error
	require.ErrorAs(t, specErr, &specResolverErr)
	require.Equal(t, InvalidModuleSpecifier, specResolverErr.Kind)
}
