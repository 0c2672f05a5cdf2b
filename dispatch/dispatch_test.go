// Copyright (c) 2024-2026 SmokeRand Authors
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package dispatch

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerpentineAssignBalancesLoad(t *testing.T) {
	assignment := SerpentineAssign(7, 3)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 0, 0}, assignment)
}

func TestSerpentineAssignSingleWorker(t *testing.T) {
	assignment := SerpentineAssign(5, 1)
	assert.Equal(t, []int{0, 0, 0, 0, 0}, assignment)
}

func TestSerpentineAssignZeroWorkersTreatedAsOne(t *testing.T) {
	assignment := SerpentineAssign(3, 0)
	assert.Equal(t, []int{0, 0, 0}, assignment)
}

func TestPoolRunDrainsAllJobs(t *testing.T) {
	p := NewPool(4)
	var count int64
	jobs := make([][]Job, 4)
	for w := 0; w < 4; w++ {
		for i := 0; i < 10; i++ {
			jobs[w] = append(jobs[w], func(workerOrd int) {
				atomic.AddInt64(&count, 1)
			})
		}
	}
	p.Run(jobs)
	assert.Equal(t, int64(40), count)
}

func TestNamedMutexIsIdempotentAndShared(t *testing.T) {
	p := NewPool(2)
	m1 := p.NamedMutex("seed")
	m2 := p.NamedMutex("seed")
	assert.Same(t, m1, m2)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m := p.NamedMutex("seed")
			m.Lock()
			counter++
			m.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}
