// Package nmem provides native-style byte buffers addressed by raw pointer.
//
// A Buffer owns a fixed-size allocation and exposes its base address as a
// uintptr for interop-style access. Because the Go runtime may collect a
// buffer whose only reference has been lowered to a raw address, every raw
// read must be bracketed by the buffer's keep-alive token:
//
//	b := nmem.Allocate(64)
//	addr := b.Base()
//	... raw access through addr ...
//	b.KeepAlive()
//
// Buffers are fixed-size and never move after allocation.
package nmem

import (
	"runtime"
	"unsafe"
)

// Buffer is a native-style allocation with a stable base address.
type Buffer struct {
	data []byte
}

// Allocate returns a zeroed buffer of the given byte size.
func Allocate(size int) *Buffer {
	if size < 0 {
		panic("nmem: negative allocation size")
	}
	return &Buffer{data: make([]byte, size)}
}

// FromBytes wraps an existing byte slice without copying. The caller must
// not mutate b after handing it off.
func FromBytes(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Size returns the byte size of the buffer.
func (b *Buffer) Size() int { return len(b.data) }

// Bytes returns the buffer's backing bytes. The slice aliases the
// allocation; treat it as read-only once the buffer is shared.
func (b *Buffer) Bytes() []byte { return b.data }

// Base returns the buffer's base address. Any use of the address must be
// followed by KeepAlive on this buffer, or the allocation may be collected
// while the raw pointer is still live.
func (b *Buffer) Base() uintptr {
	if len(b.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&b.data[0]))
}

// KeepAlive marks the buffer reachable up to this program point. Call it
// after the last raw access through an address derived from Base.
func (b *Buffer) KeepAlive() {
	runtime.KeepAlive(b)
}
