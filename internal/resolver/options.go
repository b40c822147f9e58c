package resolver

// TargetEnv selects which default main-field priority and condition list the
// resolver uses, per spec §3.
type TargetEnv uint8

const (
	Node TargetEnv = iota
	Browser
)

// MainField is one of the four package.json entry-point fields this
// resolver understands. The "browser" field is always treated as a plain
// string main field — object-form browser remapping is an explicit
// Non-goal.
type MainField string

const (
	MainFieldMain        MainField = "main"
	MainFieldModule      MainField = "module"
	MainFieldBrowser     MainField = "browser"
	MainFieldReactNative MainField = "react-native"
)

// Options are the immutable settings for a single Resolve call: main-field
// priority, recognized conditions, and extension probe order.
type Options struct {
	MainFields  []MainField
	Conditions  []string
	Extensions  []string
}

// DefaultOptions returns the environment defaults from spec §3:
// Node:    main_fields = [main, module],           conditions = [node, require, default]
// Browser: main_fields = [browser, module, main],  conditions = [browser, module, import, default]
func DefaultOptions(env TargetEnv) Options {
	switch env {
	case Browser:
		return Options{
			MainFields: []MainField{MainFieldBrowser, MainFieldModule, MainFieldMain},
			Conditions: []string{"browser", "module", "import", "default"},
			Extensions: defaultExtensions,
		}
	default:
		return Options{
			MainFields: []MainField{MainFieldMain, MainFieldModule},
			Conditions: []string{"node", "require", "default"},
			Extensions: defaultExtensions,
		}
	}
}

// defaultExtensions is the extension probe order from spec §3/§4.2: tsx/ts
// before js/jsx so bare-name imports in a TypeScript project prefer the
// TypeScript source over a stale compiled sibling.
var defaultExtensions = []string{"tsx", "ts", "jsx", "js", "mjs", "mts", "cjs", "cts", "css", "json", "node"}

// hasCondition reports whether name is in the condition list, or is the
// always-matched "default" condition.
func (o Options) hasCondition(name string) bool {
	if name == "default" {
		return true
	}
	for _, c := range o.Conditions {
		if c == name {
			return true
		}
	}
	return false
}
