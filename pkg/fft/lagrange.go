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
package fft

import (
	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/group"
	"github.com/superscalar-io/zkarith/pkg/util/parallel"
)

// GToLagrange converts commitment bases indexed in monomial (coefficient)
// order into Lagrange-basis affine points.  It runs the inverse transform of
// the 2^k projective points in place, with omega⁻¹ derived by squaring the
// field's inverse root of unity down from its maximal two-adic order, scales
// every element by n⁻¹ and batch-normalises the result into affine form.
func GToLagrange[S field.PrimeElement[S], A any, P group.Projective[P, A, S]](
	cv group.Curve[A, P, S], gProjective []P, k uint,
) []A {
	var (
		s        S
		nInv     = field.Pow(s.TwoInv(), uint64(k))
		omegaInv = s.RootOfUnityInv()
	)
	// Square down from order 2^S to order 2^k.
	for i := k; i < s.TwoAdicity(); i++ {
		omegaInv = omegaInv.Mul(omegaInv)
	}
	//
	BestFFTCPU(gProjective, omegaInv, k)
	//
	parallel.Parallelize(gProjective, func(g []P, _ int) {
		for i := range g {
			g[i] = g[i].MulScalar(nInv)
		}
	})
	//
	gLagrange := make([]A, 1<<k)
	//
	parallel.Parallelize(gLagrange, func(chunk []A, start int) {
		cv.BatchNormalize(gProjective[start:start+len(chunk)], chunk)
	})
	//
	return gLagrange
}
