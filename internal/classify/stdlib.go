package classify

// StdlibPolicy decides whether an identifier names a standard-library
// module. The language the identifier came from is not available to it.
type StdlibPolicy func(name string) bool

var (
	pythonStdlib = []string{
		"os", "sys", "json", "time", "datetime", "pathlib", "re", "collections",
		"itertools", "functools", "typing", "asyncio", "subprocess", "logging",
	}
	rustStdlib = []string{"std", "alloc", "core"}
	goStdlib   = []string{"fmt", "os", "io", "time", "strings", "errors", "context", "sync"}
	jsBuiltins = []string{"fs", "path", "util", "os", "crypto", "http", "https", "stream"}
)

// stdlib is the union of every language's allow-list.
var stdlib = func() map[string]bool {
	set := make(map[string]bool)
	for _, list := range [][]string{pythonStdlib, rustStdlib, goStdlib, jsBuiltins} {
		for _, name := range list {
			set[name] = true
		}
	}
	return set
}()

// IsStandardLibrary reports whether name is on any supported language's
// standard-library allow-list. A name such as "time" is treated as
// standard library no matter which language surfaced it.
func IsStandardLibrary(name string) bool {
	return stdlib[name]
}
