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

// Package fft implements an in-place radix-2 transform over any additive
// group acted on by a scalar field, so the same engine evaluates polynomials
// over the scalar field itself and converts curve-point commitment bases
// between monomial and Lagrange form.
package fft

import (
	"fmt"

	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/parallel"
)

// Group is the capability a transform element must provide: addition,
// subtraction and the action of the scalar field.  Both field elements and
// projective curve points satisfy it.
type Group[G any, S field.Element[S]] interface {
	// Add x + y
	Add(y G) G
	// Sub x - y
	Sub(y G) G
	// MulScalar s·x
	MulScalar(s S) G
}

// Scalar constrains field elements which are transformed directly, rather
// than acting on some other group.  Such an element is its own Group, with
// MulScalar coinciding with field multiplication.
type Scalar[S field.Element[S]] interface {
	field.PrimeElement[S]
	Group[S, S]
}

// BestFFT is the externally visible transform entry point; accelerator
// dispatch lives in pkg/accel, so this resolves to the CPU engine.
func BestFFT[S field.Element[S], G Group[G, S]](a []G, omega S, logN uint) {
	BestFFTCPU(a, omega, logN)
}

// BestFFTCPU performs a radix-2 Fast-Fourier Transform on a, in place, where
// a must have length exactly n = 2^logN and omega must be an element of
// multiplicative order n.  Interpreting a as the coefficients of a polynomial
// of degree n − 1, the result is the evaluation of that polynomial at each of
// the n powers of omega, in natural order.  The transform is inverted by
// supplying omega⁻¹ and scaling every output by n⁻¹; no scaling happens here.
//
// The length check happens before any mutation, so a panic leaves the buffer
// untouched.  Interior scratch state (the twiddle table) is allocated per
// call; nothing is shared across invocations.
func BestFFTCPU[S field.Element[S], G Group[G, S]](a []G, omega S, logN uint) {
	n := len(a)
	if n != 1<<logN {
		panic(fmt.Sprintf("fft length %d does not equal 2^%d", n, logN))
	}
	// Bit-reversal permutation, swapping each index with its reversal exactly
	// once.
	for k := range n {
		if rk := bitReverse(k, logN); k < rk {
			a[k], a[rk] = a[rk], a[k]
		}
	}
	// Precompute the n/2 twiddle factors as successive powers of omega.
	twiddles := make([]S, n/2)
	w := field.One[S]()
	//
	for i := range twiddles {
		twiddles[i] = w
		w = w.Mul(omega)
	}
	//
	if logN <= log2Floor(parallel.Workers()) {
		// Iterative Cooley-Tukey: each stage processes all chunks of the
		// current size independently, synchronising between stages.
		chunk := 2
		twiddleChunk := n / 2
		//
		for range logN {
			parallel.ForEach(n/chunk, func(i int) {
				butterfly(a[i*chunk:(i+1)*chunk], twiddles, twiddleChunk)
			})
			//
			chunk *= 2
			twiddleChunk /= 2
		}
	} else {
		recursiveButterfly(a, n, 1, twiddles)
	}
}

// butterfly applies the decimation-in-time combination pass to one chunk:
// the first pair takes the identity-twiddle fast path, inner pairs multiply
// by the matching precomputed power.
func butterfly[S field.Element[S], G Group[G, S]](coeffs []G, twiddles []S, twiddleChunk int) {
	half := len(coeffs) / 2
	// case when twiddle factor is one
	t := coeffs[half]
	coeffs[half] = coeffs[0].Sub(t)
	coeffs[0] = coeffs[0].Add(t)
	//
	for i := 1; i < half; i++ {
		t = coeffs[half+i].MulScalar(twiddles[i*twiddleChunk])
		coeffs[half+i] = coeffs[i].Sub(t)
		coeffs[i] = coeffs[i].Add(t)
	}
}

// recursiveButterfly transforms a by divide-and-conquer: both halves recurse
// concurrently, then a single combination pass merges them.  The combine
// waits on both halves, and the twiddle stride doubles at each level.
func recursiveButterfly[S field.Element[S], G Group[G, S]](a []G, n, twiddleChunk int, twiddles []S) {
	if n == 2 {
		t := a[1]
		a[1] = a[0].Sub(t)
		a[0] = a[0].Add(t)
		//
		return
	}
	//
	left, right := a[:n/2], a[n/2:]
	//
	parallel.Join(
		func() { recursiveButterfly(left, n/2, twiddleChunk*2, twiddles) },
		func() { recursiveButterfly(right, n/2, twiddleChunk*2, twiddles) },
	)
	//
	butterfly(a, twiddles, twiddleChunk)
}

// bitReverse reverses the low l bits of n.
func bitReverse(n int, l uint) int {
	r := 0
	//
	for range l {
		r = (r << 1) | (n & 1)
		n >>= 1
	}
	//
	return r
}

func log2Floor(num int) uint {
	if num <= 0 {
		panic("log2 of non-positive number")
	}
	//
	pow := uint(0)
	for (1 << (pow + 1)) <= num {
		pow++
	}
	//
	return pow
}
