// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package wsq_test

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"code.hybscloud.com/wsq"
)

// =============================================================================
// Owner Baselines (uncontended push/pop)
// =============================================================================

func BenchmarkDeque_PushPop(b *testing.B) {
	d := wsq.NewDeque[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		d.TryPush(&v)
		d.Pop()
	}
}

func BenchmarkDequeIndirect_PushPop(b *testing.B) {
	d := wsq.NewDequeIndirect(1024)

	b.ResetTimer()
	for i := range b.N {
		d.TryPush(uintptr(i))
		d.Pop()
	}
}

func BenchmarkDequePtr_PushPop(b *testing.B) {
	d := wsq.NewDequePtr(1024)
	val := 42

	b.ResetTimer()
	for range b.N {
		d.TryPush(unsafe.Pointer(&val))
		d.Pop()
	}
}

// =============================================================================
// Solo Steal Path
// =============================================================================

func BenchmarkDeque_PushSteal(b *testing.B) {
	d := wsq.NewDeque[int](1024)

	b.ResetTimer()
	for i := range b.N {
		v := i
		d.TryPush(&v)
		d.Steal()
	}
}

// =============================================================================
// Contended Throughput
// =============================================================================

// BenchmarkDeque_OwnerVsThieves measures end-to-end throughput with the
// owner pushing and popping while thieves drain concurrently.
func BenchmarkDeque_OwnerVsThieves(b *testing.B) {
	for _, nthieves := range []int{1, 2, 4} {
		b.Run(fmt.Sprintf("thieves=%d", nthieves), func(b *testing.B) {
			d := wsq.NewDeque[int](1 << 12)
			var consumed atomix.Int64
			var wg sync.WaitGroup

			total := int64(b.N)
			b.ResetTimer()

			for range nthieves {
				wg.Add(1)
				go func() {
					defer wg.Done()
					sw := spin.Wait{}
					for consumed.Load() < total {
						if _, err := d.Steal(); err == nil {
							consumed.Add(1)
						} else {
							sw.Once()
						}
					}
				}()
			}

			next := 0
			for next < b.N {
				v := next
				if err := d.TryPush(&v); err == nil {
					next++
					continue
				}
				if _, err := d.Pop(); err == nil {
					consumed.Add(1)
				}
			}
			for consumed.Load() < total {
				if _, err := d.Pop(); err == nil {
					consumed.Add(1)
				}
			}
			wg.Wait()
		})
	}
}
