package native

import "runtime"

// Candidates is the static per-platform search table: conventional library
// filenames (most specific first) crossed with conventional directories in
// priority order. Built once, never mutated.
type Candidates struct {
	Filenames []string
	Dirs      []string
}

// Versioned names come first: the unversioned symlink may belong to a dev
// package pointing at an incompatible major version.
var (
	linuxCandidates = Candidates{
		Filenames: []string{"libfluidsynth.so.3", "libfluidsynth.so"},
		Dirs: []string{
			"/usr/lib/x86_64-linux-gnu",
			"/usr/lib",
			"/usr/lib64",
			"/usr/local/lib",
			"/lib",
		},
	}

	// Shared lib dirs of the three macOS package managers: homebrew
	// (Intel /usr/local/lib, ARM /opt/homebrew/lib), fink (/opt/sw/lib)
	// and MacPorts (/opt/local/lib).
	darwinCandidates = Candidates{
		Filenames: []string{"libfluidsynth.3.dylib", "libfluidsynth.dylib"},
		Dirs: []string{
			"/usr/local/lib",
			"/opt/homebrew/lib",
			"/opt/sw/lib",
			"/opt/local/lib",
		},
	}
)

// windowsBundleLibs lists the DLLs shipped with the application for the
// windows/amd64 family, in strict reverse dependency order: every leaf
// dependency loads before anything that needs it, the engine itself last.
var windowsBundleLibs = []string{
	"libintl-8.dll",
	"libglib-2.0-0.dll",
	"libgthread-2.0-0.dll",
	"libgobject-2.0-0.dll",
	"libsndfile-1.dll",
	"libgcc_s_sjlj-1.dll",
	"libwinpthread-1.dll",
	"libgomp-1.dll",
	"libstdc++-6.dll",
	"libinstpatch-2.dll",
	"libfluidsynth-3.dll",
}

// candidatesFor returns the search table for a platform family, or false for
// families that use the bundled strategy or are unsupported.
func candidatesFor(goos string) (Candidates, bool) {
	switch goos {
	case "linux":
		return linuxCandidates, true
	case "darwin":
		return darwinCandidates, true
	default:
		return Candidates{}, false
	}
}

// libraryFilename maps a bare library name to the platform's shared library
// filename, e.g. "fluidsynth" to "libfluidsynth.so".
func libraryFilename(goos, name string) string {
	switch goos {
	case "darwin":
		return "lib" + name + ".dylib"
	case "windows":
		return name + ".dll"
	default:
		return "lib" + name + ".so"
	}
}

func hostGOOS() string {
	return runtime.GOOS
}
