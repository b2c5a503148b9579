// Package native resolves, loads and exposes the call surface of the
// synthesis engine's shared library.
//
// Resolution runs once per process (the system loader cannot unload), in
// this order: explicit override, persisted preference from a previous run,
// then the platform's conventional directories and filenames. On windows the
// engine ships with the application and is extracted and loaded in reverse
// dependency order instead.
//
// All marshaling of call arguments goes through scoped Arenas, so no
// foreign-visible allocation can leak on a failure path.
package native
