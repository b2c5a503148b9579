//go:build darwin || linux

package native

import "github.com/ebitengine/purego"

// openLibrary loads a shared library into the process. A bare name (no path
// separator) is resolved through the system loader's standard search path.
// Once loaded, a library stays loaded for the lifetime of the process.
func openLibrary(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}
