package resolver

import "fmt"

// Kind tags the reason a resolution failed. It lets callers branch on the
// category of failure (errors.As a *Error, then switch on Kind) instead of
// matching on message text.
type Kind uint8

const (
	// IOError means a filesystem primitive failed on a file the algorithm
	// expected to read — the "from" file itself, or a package.json it
	// expected to exist.
	IOError Kind = iota

	// InvalidPackageJSON means a package.json was present but did not parse.
	InvalidPackageJSON

	// InvalidTSConfig means a tsconfig.json/jsconfig.json was present but
	// did not parse.
	InvalidTSConfig

	// InvalidTSConfigExtend means an "extends" target did not resolve to a
	// loadable JSON module, or formed a cycle.
	InvalidTSConfigExtend

	// InvalidExports means an exports field mixed subpath and condition
	// keys, or no condition matched during RESOLVE_PACKAGE_TARGET.
	InvalidExports

	// InvalidModuleSpecifier means a package name was syntactically
	// rejected: a leading ".", a "%" or "\" character, or a scope without a
	// following slash.
	InvalidModuleSpecifier

	// ModuleNotFound means every strategy was exhausted without a hit. This
	// is always the terminal error out of Resolve.
	ModuleNotFound
)

func (k Kind) String() string {
	switch k {
	case IOError:
		return "IOError"
	case InvalidPackageJSON:
		return "InvalidPackageJSON"
	case InvalidTSConfig:
		return "InvalidTSConfig"
	case InvalidTSConfigExtend:
		return "InvalidTSConfigExtend"
	case InvalidExports:
		return "InvalidExports"
	case InvalidModuleSpecifier:
		return "InvalidModuleSpecifier"
	case ModuleNotFound:
		return "ModuleNotFound"
	default:
		return "UnknownError"
	}
}

// Error is the single error type this package returns. It carries a Kind so
// callers can branch on the failure category, and optionally wraps an inner
// cause (a parse error, an *os.PathError, ...).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		if e.Message == "" {
			return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
		}
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, &Error{Kind: ModuleNotFound}) works without requiring the
// message or cause to match.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func ioErrorf(cause error, format string, args ...any) *Error {
	return newError(IOError, fmt.Sprintf(format, args...), cause)
}

func invalidModuleSpecifierf(format string, args ...any) *Error {
	return newError(InvalidModuleSpecifier, fmt.Sprintf(format, args...), nil)
}

func invalidExportsf(format string, args ...any) *Error {
	return newError(InvalidExports, fmt.Sprintf(format, args...), nil)
}

func moduleNotFoundf(format string, args ...any) *Error {
	return newError(ModuleNotFound, fmt.Sprintf(format, args...), nil)
}
