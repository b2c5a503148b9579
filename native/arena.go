package native

import (
	"runtime"
	"sync"
	"unsafe"
)

// Arena holds the transient foreign-visible buffers of a single native call:
// C string encodings, scalar out-parameters and binary payloads. Buffers are
// allocated on the Go heap and pinned so the engine may address them for the
// duration of the call; Release unpins everything at once.
type Arena struct {
	pinner runtime.Pinner
	live   [][]byte
}

// With runs fn with a fresh arena and releases it on every exit path,
// including an error return or a panic inside fn.
func With(fn func(*Arena) error) error {
	a := &Arena{}
	defer a.Release()
	return fn(a)
}

func (a *Arena) alloc(n int) []byte {
	if n < 1 {
		n = 1
	}
	buf := make([]byte, n)
	a.pinner.Pin(&buf[0])
	a.live = append(a.live, buf)
	return buf
}

// CString copies s into a pinned NUL-terminated buffer and returns its
// address.
func (a *Arena) CString(s string) uintptr {
	buf := a.alloc(len(s) + 1)
	copy(buf, s)
	return uintptr(unsafe.Pointer(&buf[0]))
}

// Bytes copies b into a pinned buffer and returns its address. The engine
// must not retain the pointer past the call.
func (a *Arena) Bytes(b []byte) uintptr {
	buf := a.alloc(len(b))
	copy(buf, b)
	return uintptr(unsafe.Pointer(&buf[0]))
}

// Buffer allocates a zeroed pinned buffer of the given size, typically used
// as a string out-parameter.
func (a *Arena) Buffer(size int) []byte {
	return a.alloc(size)
}

// OutInt32 allocates a zeroed int32 out-parameter. The engine leaves it
// untouched on failure, so the caller observes the zero default.
func (a *Arena) OutInt32() *int32 {
	buf := a.alloc(4)
	return (*int32)(unsafe.Pointer(&buf[0]))
}

// OutFloat64 allocates a zeroed float64 out-parameter.
func (a *Arena) OutFloat64() *float64 {
	buf := a.alloc(8)
	return (*float64)(unsafe.Pointer(&buf[0]))
}

// Release unpins all allocations. Safe to call more than once.
func (a *Arena) Release() {
	a.pinner.Unpin()
	a.live = nil
}

// Len reports the number of live allocations. Used by tests.
func (a *Arena) Len() int {
	return len(a.live)
}

// The engine retains the soundfont path pointer passed to SFLoad, so that
// one string cannot live in a per-call arena. pinForever gives it process
// lifetime instead.
var (
	foreverMu sync.Mutex
	forever   Arena
)

func pinForever(s string) uintptr {
	foreverMu.Lock()
	defer foreverMu.Unlock()
	return forever.CString(s)
}

func addr[T any](p *T) uintptr {
	return uintptr(unsafe.Pointer(p))
}
