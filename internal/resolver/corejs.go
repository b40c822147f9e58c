package resolver

import (
	"sort"
	"strings"
)

// coreModules is the fixed, sorted set of Node built-in module names, kept
// sorted so it can be binary-searched.
var coreModules = []string{
	"_http_agent",
	"_http_client",
	"_http_common",
	"_http_incoming",
	"_http_outgoing",
	"_http_server",
	"_stream_duplex",
	"_stream_passthrough",
	"_stream_readable",
	"_stream_transform",
	"_stream_wrap",
	"_stream_writable",
	"_tls_common",
	"_tls_wrap",
	"assert",
	"assert/strict",
	"async_hooks",
	"buffer",
	"child_process",
	"cluster",
	"console",
	"constants",
	"crypto",
	"dgram",
	"diagnostics_channel",
	"dns",
	"dns/promises",
	"domain",
	"events",
	"fs",
	"fs/promises",
	"http",
	"http2",
	"https",
	"inspector",
	"module",
	"net",
	"os",
	"path",
	"path/posix",
	"path/win32",
	"perf_hooks",
	"process",
	"punycode",
	"querystring",
	"readline",
	"repl",
	"stream",
	"stream/consumers",
	"stream/promises",
	"stream/web",
	"string_decoder",
	"sys",
	"timers",
	"timers/promises",
	"tls",
	"trace_events",
	"tty",
	"url",
	"util",
	"util/types",
	"v8",
	"vm",
	"wasi",
	"worker_threads",
	"zlib",
}

func init() {
	if !sort.StringsAreSorted(coreModules) {
		panic("resolver: coreModules must be kept sorted for binary search")
	}
}

// isCoreModule reports whether name is a known Node built-in, via binary
// search over the sorted coreModules table.
func isCoreModule(name string) bool {
	i := sort.SearchStrings(coreModules, name)
	return i < len(coreModules) && coreModules[i] == name
}

const nodePrefix = "node:"

// classifyCoreModule implements step 1 of the orchestrator (§4.1): under
// Node, a literal "node:" prefix passes through unchanged, and a bare core
// module name is rewritten to its canonical "node:" form.
func classifyCoreModule(target string) (resolved string, ok bool) {
	if strings.HasPrefix(target, nodePrefix) {
		return target, true
	}
	if isCoreModule(target) {
		return nodePrefix + target, true
	}
	return "", false
}
