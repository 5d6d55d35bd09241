// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples with concurrent owner/thief goroutines.
// These trigger false positives with Go's race detector because the thief's
// pre-CAS slot copy and the atomic memory orderings carrying the algorithm's
// happens-before edges are invisible to the detector. The examples are
// correct; they're excluded from race testing.

package wsq_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/wsq"
)

// Example_workStealing demonstrates the canonical deployment: the owner
// works its deque LIFO while idle peers steal the oldest tasks.
func Example_workStealing() {
	const tasks = 100

	d := wsq.NewDeque[int](128)
	var sum atomix.Int64
	var consumed atomix.Int64
	var wg sync.WaitGroup

	// Three thieves drain from the top
	for range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			backoff := iox.Backoff{}
			for consumed.Load() < tasks {
				v, err := d.Steal()
				if err != nil {
					backoff.Wait()
					continue
				}
				backoff.Reset()
				sum.Add(int64(v))
				consumed.Add(1)
			}
		}()
	}

	// Owner pushes all tasks, then helps drain from the bottom
	for i := 1; i <= tasks; i++ {
		v := i
		d.Push(&v)
	}
	for consumed.Load() < tasks {
		v, err := d.Pop()
		if err != nil {
			continue
		}
		sum.Add(int64(v))
		consumed.Add(1)
	}
	wg.Wait()

	fmt.Println("sum:", sum.Load())

	// Output:
	// sum: 5050
}

// Example_finalElementRace shows the contract for the last element: when
// the owner's Pop and a thief's Steal contend for it, exactly one wins and
// the other observes emptiness.
func Example_finalElementRace() {
	d := wsq.NewDeque[int](8)
	v := 42
	d.Push(&v)

	var winners atomix.Int32
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if _, err := d.Pop(); err == nil {
			winners.Add(1)
		}
	}()
	go func() {
		defer wg.Done()
		if _, err := d.Steal(); err == nil {
			winners.Add(1)
		}
	}()
	wg.Wait()

	fmt.Println("winners:", winners.Load())

	// Output:
	// winners: 1
}
