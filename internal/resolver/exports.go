package resolver

import "strings"

// matchExportsPattern implements spec §4.9: equality when pattern has no
// "*", otherwise a prefix/suffix match around the single "*".
func matchExportsPattern(pattern string, target string) bool {
	star := strings.IndexByte(pattern, '*')
	if star == -1 {
		return pattern == target
	}
	prefix, suffix := pattern[:star], pattern[star+1:]
	return strings.HasPrefix(target, prefix) && strings.HasSuffix(target, suffix)
}

// extractExportsPattern returns the substring of target captured by "*" in
// pattern (spec §4.9); the empty string when pattern has no "*", in which
// case the caller never uses the result.
func extractExportsPattern(pattern string, target string) string {
	star := strings.IndexByte(pattern, '*')
	if star == -1 {
		return ""
	}
	return target[star : len(target)-(len(pattern)-star)+1]
}

// patternKeyCompare orders two exports/paths keys by specificity (spec
// §4.9): longer literal prefix wins; ties broken by non-pattern beating
// pattern, then by longer total length; otherwise a tie. Returns -1 if a
// beats b, +1 if b beats a, 0 on a tie — callers replace "best" when this
// returns +1 for (best, candidate).
func patternKeyCompare(a string, b string) int {
	aStar := strings.IndexByte(a, '*')
	bStar := strings.IndexByte(b, '*')

	baseLen := func(s string, star int) int {
		if star == -1 {
			return len(s)
		}
		return star + 1
	}

	aBase, bBase := baseLen(a, aStar), baseLen(b, bStar)

	switch {
	case aBase > bBase:
		return -1
	case bBase > aBase:
		return 1
	case aStar == -1 && bStar != -1:
		return -1
	case bStar == -1 && aStar != -1:
		return 1
	case len(a) > len(b):
		return -1
	case len(b) > len(a):
		return 1
	default:
		return 0
	}
}

// resolvePackageTarget recursively walks the exports sum type (spec §4.6).
// packageJSONPath is the manifest the target is relative to; subpath is the
// substring captured by "*" when pattern is true.
func (r *Resolver) resolvePackageTarget(
	packageJSONPath string,
	target *exportsValue,
	subpath string,
	pattern bool,
) (string, error) {
	if target == nil {
		return "", invalidExportsf("")
	}

	switch target.Kind {
	case exportsString:
		resolved := target.Str
		if pattern {
			resolved = strings.Replace(resolved, "*", subpath, 1)
		}
		return r.fs.WithBase(packageJSONPath, resolved), nil

	case exportsObject:
		for _, entry := range target.Object {
			if entry.Key == "default" || r.options.hasCondition(entry.Key) {
				if entry.Value == nil {
					continue
				}
				result, err := r.resolvePackageTarget(packageJSONPath, entry.Value, subpath, pattern)
				if err == nil {
					return result, nil
				}
				// InvalidExports (no condition matched further down, or an
				// explicit block) falls through to the next condition key;
				// any other error does too, per §4.6 — conditions are a
				// fallback list, not fatal individually.
			}
		}
		return "", invalidExportsf("")

	case exportsArray:
		for _, item := range target.Array {
			if item == nil {
				continue
			}
			result, err := r.resolvePackageTarget(packageJSONPath, item, subpath, pattern)
			if err == nil {
				return result, nil
			}
		}
		return "", invalidExportsf("")

	default:
		return "", invalidExportsf("")
	}
}

// loadPackageExports implements spec §4.5: given a node_modules directory
// and a bare specifier, locate the package's manifest and match its
// "exports" field. The bool return is false when the package has no
// "exports" field at all (the caller falls back to plain file/directory
// loading); errors are returned per the propagation policy in §7.
func (r *Resolver) loadPackageExports(nodeModulesDir string, specifier string) (path string, matched bool, err error) {
	packageName, subpathTail, err := parsePackageName(specifier)
	if err != nil {
		return "", false, err
	}
	packageSubpath := "." + subpathTail

	packageJSONPath := r.fs.Join(nodeModulesDir, packageName, "package.json")

	text, readErr := r.fs.ReadFile(packageJSONPath)
	if readErr != nil {
		return "", false, ioErrorf(readErr, "can't read %s", packageJSONPath)
	}

	pkg, parseErr := parsePackageJSON(text)
	if parseErr != nil {
		return "", false, parseErr
	}

	if pkg.Exports == nil {
		return "", false, nil
	}
	exports := pkg.Exports

	if !strings.Contains(packageSubpath, "*") && !strings.HasSuffix(packageSubpath, "/") {
		candidate, hasCandidate := selectDirectExportsCandidate(exports, packageSubpath)

		isSugar, sugarErr := isConditionalExportsMainSugar(exports, packageJSONPath)
		if sugarErr != nil {
			return "", false, sugarErr
		}
		if isSugar && packageSubpath == "." {
			candidate, hasCandidate = exports, true
		}

		if hasCandidate {
			resolved, targetErr := r.resolvePackageTarget(packageJSONPath, candidate, "", false)
			if targetErr != nil {
				return "", false, targetErr
			}
			return resolved, true, nil
		}
	}

	if exports.Kind == exportsObject {
		best := ""
		for _, entry := range exports.Object {
			if entry.Value == nil {
				continue
			}
			if matchExportsPattern(entry.Key, packageSubpath) && patternKeyCompare(best, entry.Key) == 1 {
				best = entry.Key
			}
		}
		if best != "" {
			captured := extractExportsPattern(best, packageSubpath)
			bestValue, _ := exports.get(best)
			resolved, targetErr := r.resolvePackageTarget(packageJSONPath, bestValue, captured, true)
			if targetErr != nil {
				return "", false, targetErr
			}
			return resolved, true, nil
		}
	}

	return "", false, moduleNotFoundf("no \"exports\" entry matches subpath %q in %s", packageSubpath, packageJSONPath)
}

// selectDirectExportsCandidate implements the non-pattern branch of spec
// §4.5 step 5: for String/Array exports the whole value is the candidate;
// for Object exports, the value keyed by packageSubpath (which may be an
// explicit null, i.e. a deliberate block — reported as "no candidate").
func selectDirectExportsCandidate(exports *exportsValue, packageSubpath string) (*exportsValue, bool) {
	switch exports.Kind {
	case exportsObject:
		value, ok := exports.get(packageSubpath)
		if !ok || value == nil {
			return nil, false
		}
		return value, true
	default:
		return exports, true
	}
}
