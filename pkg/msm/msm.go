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

// Package msm implements multi-scalar multiplication Σ scalarᵢ·pointᵢ over an
// elliptic-curve group via the bucket (Pippenger) method, with serial and
// thread-parallel variants plus a double-and-add reference path.
package msm

import (
	"fmt"
	"math"

	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/group"
	"github.com/superscalar-io/zkarith/pkg/util/parallel"
)

// bucketState tags the contents of a bucket.
type bucketState uint8

const (
	bucketEmpty bucketState = iota
	bucketAffine
	bucketProjective
)

// bucket accumulates the points sharing one windowed digit value.  It defers
// the costly affine-to-projective promotion until a second point lands in the
// same bucket, so single-occupancy buckets never pay for it.  Buckets live for
// one segment of one MSM invocation and are owned exclusively by it.
type bucket[S field.PrimeElement[S], A group.Affine[A, P], P group.Projective[P, A, S]] struct {
	state  bucketState
	affine A
	sum    P
}

// add bins one more point into the bucket.
func (b *bucket[S, A, P]) add(p A) {
	switch b.state {
	case bucketEmpty:
		b.affine = p
		b.state = bucketAffine
	case bucketAffine:
		b.sum = b.affine.Projective().AddAffine(p)
		b.state = bucketProjective
	default:
		b.sum = b.sum.AddAffine(p)
	}
}

// fold adds the bucket's contents onto the running sum.
func (b *bucket[S, A, P]) fold(running P) P {
	switch b.state {
	case bucketEmpty:
		return running
	case bucketAffine:
		return running.AddAffine(b.affine)
	default:
		return running.Add(b.sum)
	}
}

// windowSize picks the bucket-index bit width for a given input size.
func windowSize(n int) int {
	switch {
	case n < 4:
		return 1
	case n < 32:
		return 3
	default:
		return int(math.Ceil(math.Log(float64(n))))
	}
}

// digit reads the c-bit segment starting at bit offset segment·c from a
// little-endian scalar representation.  Segments past the end of the
// representation read as zero.
func digit(repr []byte, segment, c int) int {
	var (
		skipBits  = segment * c
		skipBytes = skipBits / 8
	)
	//
	if skipBytes >= len(repr) {
		return 0
	}
	//
	var v uint64
	//
	for i, b := range repr[skipBytes:] {
		if i == 8 {
			break
		}
		//
		v |= uint64(b) << (8 * i)
	}
	//
	v >>= uint(skipBits - skipBytes*8)
	//
	return int(v & (1<<c - 1))
}

// MultiexpSerial computes Σ coeffs[i]·bases[i] on a single thread using the
// bucket method.  Scalars are processed from the most significant c-bit
// segment down: each segment doubles the accumulator c times, bins every
// point whose digit is non-zero into buckets[digit-1] (digit zero contributes
// nothing and is skipped), then folds the buckets from the highest index down
// by summation by parts, e.g.
//
//	3a + 2b + 1c = a +
//	              (a) + b +
//	              ((a) + b) + c
//
// which yields the exact weighted sum with no redundant doublings.
func MultiexpSerial[S field.PrimeElement[S], A group.Affine[A, P], P group.Projective[P, A, S]](
	cv group.Curve[A, P, S], coeffs []S, bases []A,
) P {
	acc := cv.Identity()
	if len(coeffs) == 0 {
		return acc
	}
	//
	reprs := make([][]byte, len(coeffs))
	for i := range coeffs {
		reprs[i] = coeffs[i].BytesLE()
	}
	//
	var (
		c = windowSize(len(bases))
		// Segment count follows the scalar width rather than assuming any
		// particular field size.
		segments = (8*len(reprs[0]))/c + 1
	)
	//
	for segment := segments - 1; segment >= 0; segment-- {
		// Shift all prior contributions up by one segment.
		for range c {
			acc = acc.Double()
		}
		//
		buckets := make([]bucket[S, A, P], 1<<c-1)
		//
		for i, repr := range reprs {
			if d := digit(repr, segment, c); d != 0 {
				buckets[d-1].add(bases[i])
			}
		}
		// Summation by parts, highest bucket first.
		running := cv.Identity()
		//
		for i := len(buckets) - 1; i >= 0; i-- {
			running = buckets[i].fold(running)
			acc = acc.Add(running)
		}
	}
	//
	return acc
}

// SmallMultiexp is a reference double-and-add multi-exponentiation, iterating
// every bit of the fixed-width scalar representation from the most
// significant down with doublings shared across points.  Asymptotically worse
// than the bucket method but free of bookkeeping, it suits tiny inputs and
// serves as a correctness oracle.
func SmallMultiexp[S field.PrimeElement[S], A group.Affine[A, P], P group.Projective[P, A, S]](
	cv group.Curve[A, P, S], coeffs []S, bases []A,
) P {
	acc := cv.Identity()
	if len(coeffs) == 0 {
		return acc
	}
	//
	reprs := make([][]byte, len(coeffs))
	for i := range coeffs {
		reprs[i] = coeffs[i].BytesLE()
	}
	//
	for byteIdx := len(reprs[0]) - 1; byteIdx >= 0; byteIdx-- {
		for bitIdx := 7; bitIdx >= 0; bitIdx-- {
			acc = acc.Double()
			//
			for i, repr := range reprs {
				if (repr[byteIdx]>>uint(bitIdx))&1 != 0 {
					acc = acc.AddAffine(bases[i])
				}
			}
		}
	}
	//
	return acc
}

// BestMultiexpCPU computes Σ coeffs[i]·bases[i], splitting the input into one
// near-equal contiguous chunk per worker when the point count exceeds the
// worker count.  Chunks run MultiexpSerial independently (the segment
// doubling is local to each chunk's private accumulator), and the per-chunk
// results are summed in chunk order after the barrier.  Panics if coeffs and
// bases differ in length.
func BestMultiexpCPU[S field.PrimeElement[S], A group.Affine[A, P], P group.Projective[P, A, S]](
	cv group.Curve[A, P, S], coeffs []S, bases []A,
) P {
	if len(coeffs) != len(bases) {
		panic(fmt.Sprintf("multiexp length mismatch: %d coefficients vs %d points", len(coeffs), len(bases)))
	}
	//
	workers := parallel.Workers()
	if len(coeffs) <= workers {
		return MultiexpSerial(cv, coeffs, bases)
	}
	//
	var (
		chunk     = len(coeffs) / workers
		numChunks = (len(coeffs) + chunk - 1) / chunk
		results   = make([]P, numChunks)
	)
	//
	parallel.ForEach(numChunks, func(i int) {
		start := i * chunk
		end := min(start+chunk, len(coeffs))
		results[i] = MultiexpSerial(cv, coeffs[start:end], bases[start:end])
	})
	// Merge per-chunk accumulators left to right.
	acc := cv.Identity()
	for _, result := range results {
		acc = acc.Add(result)
	}
	//
	return acc
}

// BestMultiexp is the externally visible multi-scalar-multiplication entry
// point; accelerator dispatch lives in pkg/accel, so this resolves to the CPU
// path.
func BestMultiexp[S field.PrimeElement[S], A group.Affine[A, P], P group.Projective[P, A, S]](
	cv group.Curve[A, P, S], coeffs []S, bases []A,
) P {
	return BestMultiexpCPU(cv, coeffs, bases)
}
