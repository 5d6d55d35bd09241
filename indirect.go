// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsq

import (
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// DequeIndirect is a work-stealing deque for uintptr values.
//
// Store arena indices or handles instead of payloads when the payload type
// must not be copied speculatively: a thief's pre-CAS read is then a read of
// a single word, which never tears, and the payload itself stays in place.
//
// Memory: n slots, one word per slot
type DequeIndirect struct {
	_         pad
	top       atomix.Int64
	_         pad
	bottom    atomix.Int64
	_         pad
	cachedTop int64
	_         pad
	buffer    []uintptr
	mask      int64
	capacity  int64
	limit     int64
	_         pad
}

// NewDequeIndirect creates a new work-stealing deque for uintptr values.
// Capacity rounds up to the next power of 2.
func NewDequeIndirect(capacity int) *DequeIndirect {
	return newDequeIndirect(capacity, false)
}

func newDequeIndirect(capacity int, reserve bool) *DequeIndirect {
	if capacity < 2 {
		panic("wsq: capacity must be >= 2")
	}

	n := int64(roundToPow2(capacity))
	d := &DequeIndirect{
		buffer:   make([]uintptr, n),
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
func (d *DequeIndirect) TryPush(elem uintptr) error {
	b := d.bottom.LoadRelaxed()
	if b-d.cachedTop >= d.limit {
		d.cachedTop = d.top.LoadAcquire()
		if b-d.cachedTop >= d.limit {
			return ErrWouldBlock
		}
	}

	// Bounds check eliminated: b&mask is always < len(buffer)
	// because mask = len(buffer)-1 and x&mask <= mask
	*(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(d.buffer)), int(b&d.mask)*ptrSize)) = elem
	d.bottom.StoreRelease(b + 1)
	return nil
}

// Push appends an element at the bottom (owner only), spinning while full.
func (d *DequeIndirect) Push(elem uintptr) {
	sw := spin.Wait{}
	for d.TryPush(elem) != nil {
		sw.Once()
	}
}

// Pop removes and returns the most recently pushed element (owner only).
// Returns (0, ErrWouldBlock) if the deque is empty.
func (d *DequeIndirect) Pop() (uintptr, error) {
	b := d.bottom.LoadRelaxed() - 1
	d.bottom.Store(b)
	t := d.top.Load()

	if b < t {
		d.bottom.StoreRelaxed(b + 1)
		return 0, ErrWouldBlock
	}

	if b == t {
		if !d.top.CompareAndSwap(t, t+1) {
			d.bottom.StoreRelaxed(b + 1)
			return 0, ErrWouldBlock
		}
		d.bottom.StoreRelaxed(b + 1)
	}

	elem := *(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(d.buffer)), int(b&d.mask)*ptrSize))
	return elem, nil
}

// Steal removes and returns the oldest element (any goroutine).
// Returns (0, ErrWouldBlock) if the deque is empty or the steal lost a race.
func (d *DequeIndirect) Steal() (uintptr, error) {
	t := d.top.LoadAcquire()
	b := d.bottom.Load()

	if t >= b {
		return 0, ErrWouldBlock
	}

	elem := *(*uintptr)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(d.buffer)), int(t&d.mask)*ptrSize))

	if !d.top.CompareAndSwap(t, t+1) {
		return 0, ErrWouldBlock
	}
	return elem, nil
}

// Size returns the approximate number of elements. Racy; diagnostics only.
func (d *DequeIndirect) Size() int {
	b := d.bottom.LoadAcquire()
	t := d.top.LoadAcquire()
	if b <= t {
		return 0
	}
	return int(b - t)
}

// Empty reports whether the deque appears empty. Racy; diagnostics only.
func (d *DequeIndirect) Empty() bool {
	return d.Size() == 0
}

// Cap returns the deque capacity.
func (d *DequeIndirect) Cap() int {
	return int(d.capacity)
}
