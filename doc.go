// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package wsq provides a bounded Chase–Lev work-stealing deque.
//
// A work-stealing deque is the per-worker task queue of fork/join runtimes
// and parallel schedulers. One designated owner goroutine pushes and pops
// at the bottom end; any number of thief goroutines concurrently steal from
// the top end. All operations are non-blocking: Pop and Steal are lock-free,
// TryPush is wait-free when the deque is not full.
//
// # Quick Start
//
// Direct constructors (recommended for most cases):
//
//	d := wsq.NewDeque[Task](4096)
//	d := wsq.NewDequePtr(1024)
//
// Builder API for configuration:
//
//	d := wsq.Build[Task](wsq.New(4096))              // default capacity rule
//	d := wsq.Build[Task](wsq.New(4096).Reserve())    // one slot withheld
//	d := wsq.New(1024).BuildIndirect()               // uintptr handles
//
// # Basic Usage
//
//	d := wsq.NewDeque[int](1024)
//
//	// Owner side (one goroutine only)
//	task := 42
//	if err := d.TryPush(&task); wsq.IsWouldBlock(err) {
//	    // Deque is full - handle backpressure
//	}
//	elem, err := d.Pop()
//	if wsq.IsWouldBlock(err) {
//	    // Deque is empty - look for work elsewhere
//	}
//
//	// Thief side (any goroutine)
//	elem, err := d.Steal()
//	if wsq.IsWouldBlock(err) {
//	    // Empty, or lost a race - the two are indistinguishable
//	}
//
// # Ordering
//
// The owner observes its own elements in LIFO order: Pop returns the most
// recent Push. Thieves observe FIFO order: successful Steals return elements
// in ascending push order, totally ordered by their CAS on the top counter.
// When exactly one element remains, the owner's Pop and a concurrent Steal
// race for it; exactly one side wins and the other reports emptiness.
//
// There is no ordering guarantee across the mixed owner/thief workload
// beyond the per-end guarantees above.
//
// # Common Patterns
//
// Fork/join worker (owner works LIFO, idle peers steal FIFO):
//
//	deques := make([]*wsq.Deque[Task], numWorkers)
//	for i := range deques {
//	    deques[i] = wsq.NewDeque[Task](4096)
//	}
//
//	// Worker i
//	go func(self int) {
//	    d := deques[self]
//	    backoff := iox.Backoff{}
//	    for {
//	        task, err := d.Pop()
//	        if err != nil {
//	            // Local deque empty: steal from a peer
//	            task, err = deques[victim(self)].Steal()
//	        }
//	        if err != nil {
//	            backoff.Wait()
//	            continue
//	        }
//	        backoff.Reset()
//	        for sub := range task.Run() {
//	            d.Push(&sub) // forked subtasks stay local
//	        }
//	    }
//	}(i)
//
// Arena of payloads (DequeIndirect):
//
//	// Payloads live in a stable arena; the deque carries indices.
//	arena := make([]Frame, 1024)
//	d := wsq.NewDequeIndirect(1024)
//
//	// Owner
//	arena[i] = frame
//	d.Push(uintptr(i))
//
//	// Thief
//	idx, err := d.Steal()
//	if err == nil {
//	    process(&arena[idx])
//	}
//
// # Deque Variants
//
// Three flavors share one protocol:
//
//	Deque[T]      - Generic type-safe deque for any type
//	DequeIndirect - Deque for uintptr values (arena indices, handles)
//	DequePtr      - Deque for unsafe.Pointer (zero-copy pointer passing)
//
// A thief reads a slot by copy before committing its CAS; a losing thief
// discards the copy. For Deque[T] with a multi-word T that speculative copy
// can observe a torn value, which is never published. When tearing of the
// discarded copy is unacceptable, or payloads are large, use DequeIndirect
// or DequePtr: their slots are single words and reads never tear.
//
// Deque[T] zeroes a slot when Pop consumes it. Steal does not clear its
// slot, since the owner may reuse it as soon as the CAS lands, so a stolen
// value stays referenced by the buffer until the ring wraps over it.
// DequeIndirect and DequePtr clear no slots.
//
// # Capacity
//
// Capacity is fixed at construction and rounds up to the next power of 2:
//
//	d := wsq.NewDeque[int](3)     // Actual capacity: 4
//	d := wsq.NewDeque[int](1000)  // Actual capacity: 1024
//
// Minimum capacity is 2. Panic if capacity < 2. There is no dynamic growth;
// TryPush on a full deque returns ErrWouldBlock and Push spins.
//
// With Reserve(), one slot is withheld (full at Cap()-1 elements) so the
// owner never overwrites the physical slot of a just-stolen element while
// a thief may still be copying it.
//
// Size and Empty are racy snapshots for diagnostics only; never use them
// to drive correctness decisions.
//
// # Error Handling
//
// Operations return [ErrWouldBlock] when they cannot proceed. This error
// is sourced from [code.hybscloud.com/iox] for ecosystem consistency.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := d.TryPush(&task)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !wsq.IsWouldBlock(err) {
//	        return err // Unexpected error
//	    }
//	    backoff.Wait()
//	}
//
// For semantic error classification (delegates to iox):
//
//	wsq.IsWouldBlock(err)  // true if deque full/empty
//	wsq.IsSemantic(err)    // true if control flow signal
//	wsq.IsNonFailure(err)  // true if nil or ErrWouldBlock
//
// # Thread Safety
//
// Exactly one goroutine may call TryPush, Push, and Pop for the lifetime of
// a deque; any number of goroutines may call Steal. Owner identity may only
// migrate under an external happens-before relation. Multiple concurrent
// owners cause undefined behavior including data corruption.
//
// # Race Detection
//
// Go's race detector is not designed for lock-free algorithm verification.
// It tracks explicit synchronization primitives (mutex, channels, WaitGroup)
// but cannot observe happens-before relationships established through atomic
// memory orderings (acquire-release semantics).
//
// Additionally, a thief's pre-CAS slot copy is a benign data race by
// construction: the copy races with owner writes into wrapped slots and is
// discarded whenever the CAS fails. The algorithm is correct, but the
// detector reports it.
//
// Tests incompatible with race detection are excluded via //go:build !race
// or skipped at runtime when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit
// memory ordering, and [code.hybscloud.com/spin] for CPU pause instructions.
package wsq
