// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// DequePtr is a work-stealing deque for unsafe.Pointer values.
// Useful for zero-copy task passing between the owner and thieves.
//
// Like DequeIndirect, slots are single words and pre-CAS reads never tear.
// Slots are not cleared on Pop or Steal; a resident pointer keeps its object
// reachable until the ring wraps over the slot.
type DequePtr struct {
	_         pad
	top       atomix.Int64
	_         pad
	bottom    atomix.Int64
	_         pad
	cachedTop int64
	_         pad
	buffer    []unsafe.Pointer
	mask      int64
	capacity  int64
	limit     int64
	_         pad
}

// NewDequePtr creates a new work-stealing deque for unsafe.Pointer values.
// Capacity rounds up to the next power of 2.
func NewDequePtr(capacity int) *DequePtr {
	return newDequePtr(capacity, false)
}

func newDequePtr(capacity int, reserve bool) *DequePtr {
	if capacity < 2 {
		panic("wsq: capacity must be >= 2")
	}

	n := int64(roundToPow2(capacity))
	d := &DequePtr{
		buffer:   make([]unsafe.Pointer, n),
		mask:     n - 1,
		capacity: n,
		limit:    n,
	}
	if reserve {
		d.limit = n - 1
	}
	return d
}

// TryPush appends an element at the bottom (owner only).
// Returns ErrWouldBlock if the deque is full.
func (d *DequePtr) TryPush(elem unsafe.Pointer) error {
	b := d.bottom.LoadRelaxed()
	if b-d.cachedTop >= d.limit {
		d.cachedTop = d.top.LoadAcquire()
		if b-d.cachedTop >= d.limit {
			return ErrWouldBlock
		}
	}

	// Pointer arithmetic avoids slice bounds checking in hot path.
	// Equivalent to d.buffer[b&d.mask] = elem
	*(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(d.buffer)), int(b&d.mask)*ptrSize)) = elem
	d.bottom.StoreRelease(b + 1)
	return nil
}

// Push appends an element at the bottom (owner only), spinning while full.
func (d *DequePtr) Push(elem unsafe.Pointer) {
	sw := spin.Wait{}
	for d.TryPush(elem) != nil {
		sw.Once()
	}
}

// Pop removes and returns the most recently pushed element (owner only).
// Returns (nil, ErrWouldBlock) if the deque is empty.
func (d *DequePtr) Pop() (unsafe.Pointer, error) {
	b := d.bottom.LoadRelaxed() - 1
	d.bottom.Store(b)
	t := d.top.Load()

	if b < t {
		d.bottom.StoreRelaxed(b + 1)
		return nil, ErrWouldBlock
	}

	if b == t {
		if !d.top.CompareAndSwap(t, t+1) {
			d.bottom.StoreRelaxed(b + 1)
			return nil, ErrWouldBlock
		}
		d.bottom.StoreRelaxed(b + 1)
	}

	// Equivalent to elem := d.buffer[b&d.mask]
	elem := *(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(d.buffer)), int(b&d.mask)*ptrSize))
	return elem, nil
}

// Steal removes and returns the oldest element (any goroutine).
// Returns (nil, ErrWouldBlock) if the deque is empty or the steal lost a race.
func (d *DequePtr) Steal() (unsafe.Pointer, error) {
	t := d.top.LoadAcquire()
	b := d.bottom.Load()

	if t >= b {
		return nil, ErrWouldBlock
	}

	elem := *(*unsafe.Pointer)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(d.buffer)), int(t&d.mask)*ptrSize))

	if !d.top.CompareAndSwap(t, t+1) {
		return nil, ErrWouldBlock
	}
	return elem, nil
}

// Size returns the approximate number of elements. Racy; diagnostics only.
func (d *DequePtr) Size() int {
	b := d.bottom.LoadAcquire()
	t := d.top.LoadAcquire()
	if b <= t {
		return 0
	}
	return int(b - t)
}

// Empty reports whether the deque appears empty. Racy; diagnostics only.
func (d *DequePtr) Empty() bool {
	return d.Size() == 0
}

// Cap returns the deque capacity.
func (d *DequePtr) Cap() int {
	return int(d.capacity)
}
