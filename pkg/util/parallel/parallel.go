// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package parallel

import (
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// pool is the process-wide worker pool backing every fork-join scope in this
// package.  It is sized to the available hardware parallelism once at startup
// and is read-only thereafter.
var pool *ants.Pool

func init() {
	var err error
	// Non-blocking submission is essential: a saturated pool must never stall
	// a task whose children are themselves waiting for workers.
	pool, err = ants.NewPool(runtime.GOMAXPROCS(0), ants.WithNonblocking(true))
	//
	if err != nil {
		panic(err)
	}
}

// Workers returns the number of workers available for parallel execution.
func Workers() int {
	return pool.Cap()
}

// spawn schedules f on the shared pool, falling back to running it inline on
// the calling goroutine when the pool is saturated.  The fallback keeps
// nested fan-outs deadlock free, since forward progress never depends on a
// worker becoming free.
func spawn(wg *sync.WaitGroup, f func()) {
	wg.Add(1)
	//
	task := func() {
		defer wg.Done()
		f()
	}
	//
	if err := pool.Submit(task); err != nil {
		task()
	}
}

// Parallelize partitions v into contiguous, disjoint chunks and invokes f on
// each chunk concurrently, passing the chunk's starting index within v so
// that offset-dependent computation remains correct.  It returns only once
// every invocation has completed; no partial results are observable before
// then.  f must not have cross-chunk side effects, and must not assume any
// ordering relative to other chunks.
func Parallelize[T any](v []T, f func(chunk []T, start int)) {
	n := len(v)
	if n == 0 {
		return
	}
	// Size chunks so their count tracks the worker count, degrading to
	// single-element chunks when the sequence is shorter than that.
	chunk := n / Workers()
	if chunk < Workers() {
		chunk = 1
	}
	//
	var wg sync.WaitGroup
	//
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		spawn(&wg, func() {
			f(v[start:end], start)
		})
	}
	//
	wg.Wait()
}

// ForEach invokes f(0) .. f(n-1) concurrently, returning once all n
// invocations have completed.  Invocations must be mutually independent.
func ForEach(n int, f func(i int)) {
	var wg sync.WaitGroup
	//
	for i := range n {
		spawn(&wg, func() {
			f(i)
		})
	}
	//
	wg.Wait()
}

// Join runs a and b, potentially concurrently, and returns once both have
// completed.  This is the explicit fork/join primitive used by recursive
// divide-and-conquer algorithms.
func Join(a, b func()) {
	var wg sync.WaitGroup
	//
	spawn(&wg, a)
	b()
	//
	wg.Wait()
}
