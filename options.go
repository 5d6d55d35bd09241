// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsq

import "unsafe"

// Options configures deque creation.
type Options struct {
	// Reserved-slot capacity rule (one slot withheld)
	reserve bool

	// Capacity (rounds up to next power of 2)
	capacity int
}

// Builder creates deques with fluent configuration.
//
// Example:
//
//	// Generic deque with the default capacity rule
//	d := wsq.Build[Task](wsq.New(4096))
//
//	// Indirect deque with one slot reserved against mid-steal overwrite
//	d := wsq.New(8192).Reserve().BuildIndirect()
type Builder struct {
	opts Options
}

// New creates a deque builder with the given capacity.
//
// Capacity rounds up to the next power of 2.
// For example, capacity=4 results in actual capacity=4, capacity=1000 results
// in actual capacity=1024.
//
// Panics if capacity < 2.
//
// Example:
//
//	b := wsq.New(1024).Reserve()
//	d := wsq.Build[int](b)
//
//	// Or chain directly
//	d := wsq.Build[int](wsq.New(1024))
func New(capacity int) *Builder {
	if capacity < 2 {
		panic("wsq: capacity must be >= 2")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Reserve withholds one slot from the capacity bound: TryPush reports full
// at Cap()-1 resident elements instead of Cap().
//
// The reservation keeps the owner from overwriting the physical slot of a
// freshly stolen element while a thief may still be copying it. Word-sized
// deques (Indirect, Ptr) read slots in a single untearable load, so they
// only need Reserve when the caller reuses payload storage eagerly.
func (b *Builder) Reserve() *Builder {
	b.opts.reserve = true
	return b
}

// Build creates a generic Deque[T] from the builder configuration.
func Build[T any](b *Builder) *Deque[T] {
	return newDeque[T](b.opts.capacity, b.opts.reserve)
}

// BuildIndirect creates a DequeIndirect for uintptr values.
func (b *Builder) BuildIndirect() *DequeIndirect {
	return newDequeIndirect(b.opts.capacity, b.opts.reserve)
}

// BuildPtr creates a DequePtr for unsafe.Pointer values.
func (b *Builder) BuildPtr() *DequePtr {
	return newDequePtr(b.opts.capacity, b.opts.reserve)
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// ptrSize is the size of a pointer in bytes.
const ptrSize = int(unsafe.Sizeof(uintptr(0)))

// pad is cache line padding to prevent false sharing.
type pad [64]byte
