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

// Package poly provides utilities over dense polynomials, represented as
// coefficient slices in ascending degree order (index 0 holds the constant
// term).  Degree is length minus one; trailing zero coefficients are never
// trimmed implicitly.
package poly

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/parallel"
)

// Eval evaluates a polynomial at the given point using Horner's method.
// Large inputs are split into contiguous chunks evaluated concurrently; each
// chunk's partial sum is rescaled by point^start, since the chunk was
// evaluated as if it began at degree zero.  Partials are combined in chunk
// order, so results are bit-reproducible.
func Eval[F field.Element[F]](poly []F, point F) F {
	var (
		n       = len(poly)
		workers = parallel.Workers()
	)
	//
	if n*2 < workers {
		return horner(poly, point)
	}
	//
	var (
		chunkSize = (n + workers - 1) / workers
		numChunks = (n + chunkSize - 1) / chunkSize
		parts     = make([]F, numChunks)
	)
	//
	parallel.ForEach(numChunks, func(i int) {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		parts[i] = horner(poly[start:end], point).Mul(field.Pow(point, uint64(start)))
	})
	// Combine rescaled partials left to right.
	acc := field.Zero[F]()
	for _, part := range parts {
		acc = acc.Add(part)
	}
	//
	return acc
}

// horner folds the coefficients from the highest degree downwards.
func horner[F field.Element[F]](poly []F, point F) F {
	acc := field.Zero[F]()
	//
	for i := len(poly) - 1; i >= 0; i-- {
		acc = acc.Mul(point).Add(poly[i])
	}
	//
	return acc
}

// InnerProduct returns Σ a[i]·b[i].  Panics if the two vectors differ in
// length.  This is deliberately single threaded: the multiply-adds are too
// cheap to amortise the fan-out overhead.
func InnerProduct[F field.Element[F]](a, b []F) F {
	if len(a) != len(b) {
		panic(fmt.Sprintf("inner product length mismatch: %d vs %d", len(a), len(b)))
	}
	//
	acc := field.Zero[F]()
	for i := range a {
		acc = acc.Add(a[i].Mul(b[i]))
	}
	//
	return acc
}

// ErrNonZeroRemainder indicates a Kate division whose divisor point was not
// actually a root of the dividend.
var ErrNonZeroRemainder = errors.New("kate division: non-zero remainder")

// KateDivision divides a polynomial by the linear factor (X − b) using
// synthetic division, returning the quotient of length len(a) − 1.  The
// division must be exact, i.e. b must be a root of the polynomial; otherwise
// ErrNonZeroRemainder is returned.  Panics on an empty input.
func KateDivision[F field.Element[F]](a []F, b F) ([]F, error) {
	if len(a) == 0 {
		panic("kate division of empty polynomial")
	}
	//
	var (
		negB  = b.Neg()
		q     = make([]F, len(a)-1)
		carry = field.Zero[F]()
	)
	// Leading to trailing: each quotient coefficient feeds the next carry.
	for i := len(a) - 1; i >= 1; i-- {
		lead := a[i].Sub(carry)
		q[i-1] = lead
		carry = lead.Mul(negB)
	}
	// The untouched constant term holds the remainder, which equals a(b).
	if rem := a[0].Sub(carry); !rem.IsZero() {
		return nil, errors.Wrapf(ErrNonZeroRemainder, "remainder %s", rem.String())
	}
	//
	return q, nil
}

// EvaluateVanishing returns Π (z − root) over the given roots, i.e. the
// vanishing polynomial of the root set evaluated at z.  Parallelised by the
// same split/combine strategy as Eval, with product as the combine operator.
func EvaluateVanishing[F field.Element[F]](roots []F, z F) F {
	var (
		n       = len(roots)
		workers = parallel.Workers()
	)
	//
	if n*2 < workers {
		return vanishing(roots, z)
	}
	//
	var (
		chunkSize = (n + workers - 1) / workers
		numChunks = (n + chunkSize - 1) / chunkSize
		parts     = make([]F, numChunks)
	)
	//
	parallel.ForEach(numChunks, func(i int) {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		parts[i] = vanishing(roots[start:end], z)
	})
	//
	acc := field.One[F]()
	for _, part := range parts {
		acc = acc.Mul(part)
	}
	//
	return acc
}

func vanishing[F field.Element[F]](roots []F, z F) F {
	acc := field.One[F]()
	//
	for _, root := range roots {
		acc = z.Sub(root).Mul(acc)
	}
	//
	return acc
}

// Powers returns the unbounded lazy sequence 1, base, base², …
func Powers[F field.Element[F]](base F) iter.Seq[F] {
	return func(yield func(F) bool) {
		power := field.One[F]()
		//
		for yield(power) {
			power = power.Mul(base)
		}
	}
}

// LagrangeInterpolate returns the coefficients of the unique polynomial of
// degree len(points) − 1 which evaluates to evals[i] at points[i] for every
// i.  The points must be pairwise distinct; the pairwise-difference
// denominators are inverted in a single batched pass, since one field
// inversion costs far more than the O(n²) multiplications it replaces.
// Panics if the point and evaluation counts differ, or if no points are
// given.
func LagrangeInterpolate[F field.Element[F]](points, evals []F) []F {
	if len(points) != len(evals) {
		panic(fmt.Sprintf("interpolation length mismatch: %d points vs %d evaluations", len(points), len(evals)))
	} else if len(points) == 0 {
		panic("interpolation over empty point set")
	}
	// Constant polynomial
	if len(points) == 1 {
		return []F{evals[0]}
	}
	//
	n := len(points)
	// denoms holds x_j − x_k for every j and every k ≠ j, flattened in j-major
	// order, then inverted in one batch.
	denoms := make([]F, 0, n*(n-1))
	//
	for j, xj := range points {
		for k, xk := range points {
			if k != j {
				denoms = append(denoms, xj.Sub(xk))
			}
		}
	}
	//
	field.BatchInvert(denoms)
	//
	var (
		finalPoly = make([]F, n)
		di        = 0
	)
	//
	for j := range points {
		// Build Π_{k≠j} (X − x_k) / (x_j − x_k) one linear factor at a time.
		tmp := make([]F, 1, n)
		tmp[0] = field.One[F]()
		//
		for k, xk := range points {
			if k == j {
				continue
			}
			//
			var (
				d      = denoms[di]
				scaled = d.Mul(xk).Neg()
				next   = make([]F, len(tmp)+1)
			)
			//
			di++
			// next = tmp · (d·X − d·x_k)
			for i := range next {
				var coeff F
				//
				if i < len(tmp) {
					coeff = tmp[i].Mul(scaled)
				}
				//
				if i > 0 {
					coeff = coeff.Add(tmp[i-1].Mul(d))
				}
				//
				next[i] = coeff
			}
			//
			tmp = next
		}
		// Accumulate, weighted by the matching evaluation.
		for i, coeff := range tmp {
			finalPoly[i] = finalPoly[i].Add(coeff.Mul(evals[j]))
		}
	}
	//
	return finalPoly
}
