package resolver

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// exportsKind tags which variant of the exports sum type (spec §3) a value
// holds.
type exportsKind uint8

const (
	exportsString exportsKind = iota
	exportsArray
	exportsObject
)

// exportsEntry is one key/value pair of an Object-variant exports value, in
// source order. A nil Value represents an explicit JSON null — a deliberate
// block of that subpath or condition.
type exportsEntry struct {
	Key   string
	Value *exportsValue
}

// exportsValue is the exports sum type from spec §3: String | Array | Object
// (insertion-ordered, values nullable). Preserving the object's key order is
// non-negotiable — condition priority depends on it (spec §3, §8).
type exportsValue struct {
	Kind    exportsKind
	Str     string
	Array   []*exportsValue
	Object  []exportsEntry
}

// get looks up a key in an Object-variant exports value. ok is false if the
// key is absent; if ok is true and value is nil, the key was explicitly
// mapped to null.
func (e *exportsValue) get(key string) (value *exportsValue, ok bool) {
	if e == nil || e.Kind != exportsObject {
		return nil, false
	}
	for _, entry := range e.Object {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return nil, false
}

// objectKeyPredicate reports whether pred holds for every key (all) and for
// at least one key (any) of an Object-variant value. Used by
// isConditionalExportsMainSugar; all is true vacuously for an empty object,
// matching Rust's Iterator::all.
func (e *exportsValue) objectKeyPredicate(pred func(string) bool) (all bool, any bool) {
	all = true
	for _, entry := range e.Object {
		if pred(entry.Key) {
			any = true
		} else {
			all = false
		}
	}
	return
}

// isConditionalExportsMainSugar implements spec §3's "conditional-exports
// main sugar" detection, ported from original_source's
// is_conditional_exports_main_sugar: a String or Array is always sugar; an
// Object is sugar exactly when every key is a condition key (none start with
// "."), and it is an error for some keys to start with "." and others not.
func isConditionalExportsMainSugar(e *exportsValue, packageJSONPath string) (bool, error) {
	switch e.Kind {
	case exportsString, exportsArray:
		return true, nil
	default:
		isSugar, anyCondition := e.objectKeyPredicate(func(k string) bool { return !strings.HasPrefix(k, ".") })
		if isSugar != anyCondition && len(e.Object) > 0 {
			return false, invalidExportsf(
				"the \"exports\" field at %s is invalid: some keys start with \".\" but some do not", packageJSONPath)
		}
		return isSugar, nil
	}
}

// packageJSON is the subset of package.json this resolver reads (spec §3):
// the four main-field strings and the optional exports field.
type packageJSON struct {
	Main        string
	Module      string
	Browser     string
	ReactNative string

	Exports *exportsValue // nil if the field is absent
}

// mainField returns the package.json value of field, or "" if unset.
func (p *packageJSON) mainField(field MainField) string {
	switch field {
	case MainFieldMain:
		return p.Main
	case MainFieldModule:
		return p.Module
	case MainFieldBrowser:
		return p.Browser
	case MainFieldReactNative:
		return p.ReactNative
	default:
		return ""
	}
}

// parsePackageJSON parses package.json text. package.json is standard JSON
// (no comment support, unlike tsconfig.json), so it is parsed directly with
// gjson rather than going through the jsonc comment-stripping pass.
func parsePackageJSON(text string) (*packageJSON, error) {
	if !gjson.Valid(text) {
		return nil, newError(InvalidPackageJSON, "not valid JSON", nil)
	}
	root := gjson.Parse(text)

	pkg := &packageJSON{
		Main:        root.Get("main").String(),
		Module:      root.Get("module").String(),
		Browser:     root.Get("browser").String(),
		ReactNative: root.Get("react-native").String(),
	}

	if exports := root.Get("exports"); exports.Exists() {
		value, err := parseExportsValue(exports)
		if err != nil {
			return nil, newError(InvalidPackageJSON, "invalid \"exports\" field", err)
		}
		pkg.Exports = value
	}

	return pkg, nil
}

// parseExportsValue recursively parses a gjson node into the exports sum
// type, preserving object key order via gjson.Result.ForEach.
func parseExportsValue(node gjson.Result) (*exportsValue, error) {
	switch {
	case node.IsArray():
		var items []*exportsValue
		var parseErr error
		node.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.Null {
				items = append(items, nil)
				return true
			}
			parsed, err := parseExportsValue(item)
			if err != nil {
				parseErr = err
				return false
			}
			items = append(items, parsed)
			return true
		})
		if parseErr != nil {
			return nil, parseErr
		}
		return &exportsValue{Kind: exportsArray, Array: items}, nil

	case node.IsObject():
		var entries []exportsEntry
		var parseErr error
		node.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if value.Type == gjson.Null {
				entries = append(entries, exportsEntry{Key: k, Value: nil})
				return true
			}
			parsed, err := parseExportsValue(value)
			if err != nil {
				parseErr = fmt.Errorf("key %q: %w", k, err)
				return false
			}
			entries = append(entries, exportsEntry{Key: k, Value: parsed})
			return true
		})
		if parseErr != nil {
			return nil, parseErr
		}
		return &exportsValue{Kind: exportsObject, Object: entries}, nil

	default:
		return &exportsValue{Kind: exportsString, Str: node.String()}, nil
	}
}

// parsePackageName implements spec §4.5 step 1: split a bare specifier into
// a package name and subpath tail, rejecting invalid names.
func parsePackageName(name string) (packageName string, subpathTail string, err error) {
	if name == "" {
		return "", "", invalidModuleSpecifierf("empty module specifier")
	}

	sepIndex := strings.IndexByte(name, '/')

	if name[0] == '@' {
		if sepIndex == -1 {
			return "", "", invalidModuleSpecifierf(
				"%q is not a valid package name, because it is scoped without a slash; valid scoped names are like \"@babel/core\"", name)
		}
		if next := strings.IndexByte(name[sepIndex+1:], '/'); next != -1 {
			sepIndex = sepIndex + 1 + next
		} else {
			sepIndex = -1
		}
	}

	if sepIndex == -1 {
		packageName = name
	} else {
		packageName = name[:sepIndex]
	}

	if strings.HasPrefix(packageName, ".") {
		return "", "", invalidModuleSpecifierf("%q is not a valid package name, because it starts with \".\"", name)
	}
	if strings.ContainsAny(packageName, "%\\") {
		return "", "", invalidModuleSpecifierf("%q is not a valid package name, because it contains \"%%\" or \"\\\\\"", name)
	}

	return packageName, name[len(packageName):], nil
}
