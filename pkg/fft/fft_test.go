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
	"math/rand"
	"slices"
	"testing"

	"github.com/superscalar-io/zkarith/pkg/util/assert"
	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/field/bls12_377"
)

type F = bls12_377.Element

func init() {
	// the scalar field must be usable directly as a transform element.
	_ = Scalar[F](F{})
}

// rootOfOrder returns a primitive 2^logN-th root of unity.
func rootOfOrder(logN uint) F {
	var e F
	//
	w := e.RootOfUnity()
	for i := logN; i < e.TwoAdicity(); i++ {
		w = w.Mul(w)
	}
	//
	return w
}

func randomScalars(n int, seed int64) []F {
	rng := rand.New(rand.NewSource(seed))
	out := make([]F, n)
	//
	for i := range out {
		out[i] = field.Uint64[F](rng.Uint64())
	}
	//
	return out
}

// The transform of the all-ones vector concentrates everything in the first
// output: p(x) = 1 + x + ... + x^(n-1) is n at 1 and zero at every other n-th
// root of unity.
func TestFFTAllOnes(t *testing.T) {
	const logN = 3
	//
	a := make([]F, 1<<logN)
	for i := range a {
		a[i] = field.One[F]()
	}
	//
	BestFFTCPU(a, rootOfOrder(logN), logN)
	//
	assert.Equal(t, field.Uint64[F](uint64(len(a))), a[0])
	//
	for i := 1; i < len(a); i++ {
		assert.True(t, a[i].IsZero(), "output %d", i)
	}
}

func TestFFTMatchesNaiveEvaluation(t *testing.T) {
	const logN = 4
	//
	var (
		a     = randomScalars(1<<logN, 4)
		coeff = slices.Clone(a)
		omega = rootOfOrder(logN)
	)
	//
	BestFFTCPU(a, omega, logN)
	//
	x := field.One[F]()
	for j := range a {
		// evaluate Σ coeff[i]·x^i directly
		acc := field.Zero[F]()
		for i := len(coeff) - 1; i >= 0; i-- {
			acc = acc.Mul(x).Add(coeff[i])
		}
		//
		assert.Equal(t, acc, a[j], "evaluation %d", j)
		x = x.Mul(omega)
	}
}

// Transforming with omega then omega⁻¹ and scaling by n⁻¹ must restore the
// input, across both the iterative and recursive regimes.
func TestFFTRoundTrip(t *testing.T) {
	var e F
	//
	for _, logN := range []uint{0, 1, 2, 5, 10} {
		var (
			a        = randomScalars(1<<logN, int64(logN))
			original = slices.Clone(a)
			omega    = rootOfOrder(logN)
			nInv     = field.Pow(e.TwoInv(), uint64(logN))
		)
		//
		BestFFTCPU(a, omega, logN)
		BestFFTCPU(a, omega.Inverse(), logN)
		//
		for i := range a {
			assert.Equal(t, original[i], a[i].Mul(nInv), "log n %d, index %d", logN, i)
		}
	}
}

func TestFFTLengthPanics(t *testing.T) {
	defer func() {
		assert.True(t, recover() != nil)
	}()
	//
	BestFFTCPU(make([]F, 3), rootOfOrder(2), 2)
}

func TestBestFFTDelegates(t *testing.T) {
	const logN = 3
	//
	var (
		a     = randomScalars(1<<logN, 5)
		b     = slices.Clone(a)
		omega = rootOfOrder(logN)
	)
	//
	BestFFT(a, omega, logN)
	BestFFTCPU(b, omega, logN)
	//
	assert.Equal(t, b, a)
}
