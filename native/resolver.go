package native

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// EnvLibrary names the environment variable overriding the library search
// with an explicit path or bare library name.
const EnvLibrary = "FLUIDGO_LIBRARY"

// ErrNoCandidate is returned when every candidate library failed to load.
var ErrNoCandidate = errors.New("no loadable synthesis library found")

// Resolver locates and loads the native synthesis library. Search order:
// explicit override, persisted preference from an earlier run, then the
// platform's static (filename x directory) table. The first success wins and
// is persisted. On windows the library ships with the application instead;
// see resolveBundled.
//
// Loading is a one-shot, process-lifetime operation: the system loader has
// no unload, so a Resolver is only ever driven through the package-level
// Load barrier outside of tests.
type Resolver struct {
	// GOOS selects the platform family. Defaults to runtime.GOOS.
	GOOS string

	// Override is an explicit library path or bare name, tried first.
	Override string

	// Prefs persists the winning candidate between runs. Optional.
	Prefs *Preferences

	// Bundle holds the shipped DLLs for the bundled-library strategy.
	Bundle fs.FS

	// CacheDir is the extraction target for bundled libraries.
	CacheDir string

	// Table overrides the platform search table. Tests only.
	Table *Candidates

	// LoadFunc loads one library and returns its handle. Defaults to the
	// system loader; tests inject a fake.
	LoadFunc func(path string) (uintptr, error)

	Log *slog.Logger
}

func (r *Resolver) goos() string {
	if r.GOOS != "" {
		return r.GOOS
	}
	return hostGOOS()
}

func (r *Resolver) load(path string) (uintptr, error) {
	if r.LoadFunc != nil {
		return r.LoadFunc(path)
	}
	return openLibrary(path)
}

func (r *Resolver) log() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Resolve runs the search and returns the handle of the loaded engine
// library. Failure of an individual candidate is recoverable (the next one
// is tried); ErrNoCandidate is returned once the search is exhausted.
func (r *Resolver) Resolve() (uintptr, error) {
	goos := r.goos()

	if goos == "windows" {
		return r.resolveBundled()
	}

	// Explicit override: try it, log failure, keep searching.
	if r.Override != "" {
		if h, err := r.loadPathOrName(r.Override); err == nil {
			r.log().Info("engine library loaded from override", "lib", r.Override)
			return h, nil
		} else {
			r.log().Warn("override library failed to load", "lib", r.Override, "err", err)
		}
	}

	// Persisted preference from a prior successful resolution. It may
	// point at a library that was removed since, so a failure only
	// invalidates the preference.
	if r.Prefs != nil {
		if pref := r.Prefs.Library(); pref != "" {
			if h, err := r.loadPathOrName(pref); err == nil {
				r.log().Info("engine library loaded from preference", "lib", pref)
				return h, nil
			}
			r.log().Debug("stale library preference invalidated", "lib", pref)
			if err := r.Prefs.ClearLibrary(); err != nil {
				r.log().Warn("clearing library preference failed", "err", err)
			}
		}
	}

	cands, ok := candidatesFor(goos)
	if r.Table != nil {
		cands, ok = *r.Table, true
	}
	if !ok {
		return 0, fmt.Errorf("platform %s not supported", goos)
	}

	for _, filename := range cands.Filenames {
		for _, dir := range cands.Dirs {
			if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
				continue
			}
			path := filepath.Join(dir, filename)
			h, err := r.load(path)
			if err != nil {
				r.log().Debug("candidate failed", "lib", path, "err", err)
				continue
			}
			r.log().Info("engine library loaded", "lib", path)
			if r.Prefs != nil {
				if err := r.Prefs.SetLibrary(path); err != nil {
					r.log().Warn("persisting library preference failed", "err", err)
				}
			}
			return h, nil
		}
	}

	return 0, ErrNoCandidate
}

// loadPathOrName loads an absolute path directly; a bare name is mapped to
// the platform filename and resolved through the system loader's own search
// path.
func (r *Resolver) loadPathOrName(spec string) (uintptr, error) {
	if filepath.IsAbs(spec) {
		return r.load(spec)
	}
	return r.load(libraryFilename(r.goos(), spec))
}

// resolveBundled extracts the shipped DLLs into a stable per-user directory
// and loads them in reverse dependency order. Extraction is idempotent:
// already-extracted files are reused. The first failing load aborts the
// whole sequence; later libraries would fail anyway once a dependency is
// missing.
func (r *Resolver) resolveBundled() (uintptr, error) {
	if r.Bundle == nil {
		return 0, errors.New("no bundled libraries available")
	}
	if r.CacheDir == "" {
		return 0, errors.New("no extraction directory configured")
	}
	if err := os.MkdirAll(r.CacheDir, 0o755); err != nil {
		return 0, err
	}

	var handle uintptr
	for _, name := range windowsBundleLibs {
		target := filepath.Join(r.CacheDir, name)
		if _, err := os.Stat(target); err != nil {
			if err := extractFile(r.Bundle, name, target); err != nil {
				return 0, fmt.Errorf("extracting %s: %w", name, err)
			}
		}
		h, err := r.load(target)
		if err != nil {
			return 0, fmt.Errorf("loading %s: %w", target, err)
		}
		// The engine library is last in dependency order; its handle
		// is the one the call surface binds against.
		handle = h
	}
	r.log().Info("bundled engine libraries loaded", "dir", r.CacheDir)
	return handle, nil
}

func extractFile(bundle fs.FS, name, target string) error {
	src, err := bundle.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.CreateTemp(filepath.Dir(target), "."+name+".*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return err
	}
	// Rename so a concurrent start never observes a half-written DLL.
	return os.Rename(dst.Name(), target)
}

// The loaded library is process-wide, write-once state guarded by a
// one-time barrier: concurrent cold-start opens resolve exactly once.
var (
	loadOnce sync.Once
	loaded   Surface
	loadErr  error

	bundleMu sync.Mutex
	bundle   fs.FS
)

// SetBundle registers the shipped library bundle used on platforms with the
// bundled strategy. Must be called before the first Load.
func SetBundle(f fs.FS) {
	bundleMu.Lock()
	defer bundleMu.Unlock()
	bundle = f
}

// Load resolves and binds the native library, once per process. Subsequent
// calls return the first outcome. Returns true iff the engine call surface
// is usable; every native operation must be gated on it.
func Load() bool {
	loadOnce.Do(func() {
		r := &Resolver{Override: os.Getenv(EnvLibrary)}

		if prefs, err := DefaultPreferences(); err == nil {
			r.Prefs = prefs
		} else {
			slog.Warn("library preference store unavailable", "err", err)
		}
		if cache, err := os.UserCacheDir(); err == nil {
			r.CacheDir = filepath.Join(cache, "fluidgo", "libs")
		}
		bundleMu.Lock()
		r.Bundle = bundle
		bundleMu.Unlock()

		handle, err := r.Resolve()
		if err != nil {
			loadErr = err
			slog.Warn("native synthesis engine unavailable", "err", err)
			return
		}
		loaded, loadErr = bind(handle)
		if loadErr != nil {
			slog.Warn("native synthesis engine unusable", "err", loadErr)
		}
	})
	return loaded != nil
}

// Lib returns the bound call surface, or nil when Load failed.
func Lib() Surface {
	if !Load() {
		return nil
	}
	return loaded
}

// LoadErr reports why Load failed, or nil.
func LoadErr() error {
	Load()
	return loadErr
}
