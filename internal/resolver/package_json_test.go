package resolver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePackageJSONMainFields(t *testing.T) {
	pkg, err := parsePackageJSON(`{
		"main": "./main.js",
		"module": "./module.js",
		"browser": "./browser.js",
		"react-native": "./native.js"
	}`)
	require.NoError(t, err)
	require.Equal(t, "./main.js", pkg.mainField(MainFieldMain))
	require.Equal(t, "./module.js", pkg.mainField(MainFieldModule))
	require.Equal(t, "./browser.js", pkg.mainField(MainFieldBrowser))
	require.Equal(t, "./native.js", pkg.mainField(MainFieldReactNative))
	require.Nil(t, pkg.Exports)
}

func TestParsePackageJSONInvalidJSON(t *testing.T) {
	_, err := parsePackageJSON("{not json")
	require.Error(t, err)

	var resolverErr *Error
	require.ErrorAs(t, err, &resolverErr)
	require.Equal(t, InvalidPackageJSON, resolverErr.Kind)
}

func TestParsePackageJSONExportsOrderPreserved(t *testing.T) {
	pkg, err := parsePackageJSON(`{
		"exports": { "./b": "./b.js", "./a": "./a.js", "./c": "./c.js" }
	}`)
	require.NoError(t, err)
	require.NotNil(t, pkg.Exports)
	require.Equal(t, exportsObject, pkg.Exports.Kind)

	var keys []string
	for _, entry := range pkg.Exports.Object {
		keys = append(keys, entry.Key)
	}
	require.Equal(t, []string{"./b", "./a", "./c"}, keys)
}

func TestParsePackageJSONExportsExplicitNull(t *testing.T) {
	pkg, err := parsePackageJSON(`{"exports": {"./internal": null, "./public": "./public.js"}}`)
	require.NoError(t, err)

	value, ok := pkg.Exports.get("./internal")
	require.True(t, ok)
	require.Nil(t, value)

	value, ok = pkg.Exports.get("./public")
	require.True(t, ok)
	require.NotNil(t, value)
	require.Equal(t, "./public.js", value.Str)
}

func TestIsConditionalExportsMainSugar(t *testing.T) {
	stringSugar := &exportsValue{Kind: exportsString, Str: "./index.js"}
	isSugar, err := isConditionalExportsMainSugar(stringSugar, "package.json")
	require.NoError(t, err)
	require.True(t, isSugar)

	conditionObject := &exportsValue{Kind: exportsObject, Object: []exportsEntry{
		{Key: "node", Value: &exportsValue{Kind: exportsString, Str: "./node.js"}},
		{Key: "default", Value: &exportsValue{Kind: exportsString, Str: "./index.js"}},
	}}
	isSugar, err = isConditionalExportsMainSugar(conditionObject, "package.json")
	require.NoError(t, err)
	require.True(t, isSugar)

	subpathObject := &exportsValue{Kind: exportsObject, Object: []exportsEntry{
		{Key: "./a", Value: &exportsValue{Kind: exportsString, Str: "./a.js"}},
	}}
	isSugar, err = isConditionalExportsMainSugar(subpathObject, "package.json")
	require.NoError(t, err)
	require.False(t, isSugar)

	mixedObject := &exportsValue{Kind: exportsObject, Object: []exportsEntry{
		{Key: "./a", Value: &exportsValue{Kind: exportsString, Str: "./a.js"}},
		{Key: "node", Value: &exportsValue{Kind: exportsString, Str: "./node.js"}},
	}}
	_, err = isConditionalExportsMainSugar(mixedObject, "package.json")
	require.Error(t, err)
	var resolverErr *Error
	require.ErrorAs(t, err, &resolverErr)
	require.Equal(t, InvalidExports, resolverErr.Kind)
}

func TestParsePackageName(t *testing.T) {
	cases := []struct {
		name, wantPackage, wantSubpath string
	}{
		{"lodash", "lodash", ""},
		{"lodash/map", "lodash", "/map"},
		{"@babel/core", "@babel/core", ""},
		{"@babel/core/lib/index", "@babel/core", "/lib/index"},
	}
	for _, c := range cases {
		packageName, subpath, err := parsePackageName(c.name)
		require.NoError(t, err, c.name)
		require.Equal(t, c.wantPackage, packageName, c.name)
		require.Equal(t, c.wantSubpath, subpath, c.name)
	}
}

func TestParsePackageNameRejectsInvalid(t *testing.T) {
	cases := []string{"", "@scoped-without-slash", ".hidden", "has%percent", `has\backslash`}
	for _, name := range cases {
		_, _, err := parsePackageName(name)
		require.Error(t, err, name)

		var resolverErr *Error
		require.ErrorAs(t, err, &resolverErr)
		require.Equal(t, InvalidModuleSpecifier, resolverErr.Kind)
	}
}
