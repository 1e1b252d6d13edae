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
package bls12_377

import (
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/superscalar-io/zkarith/pkg/util/assert"
	"github.com/superscalar-io/zkarith/pkg/util/group"
)

func init() {
	// make sure the interfaces are adhered to.
	_ = group.Affine[G1Affine, G1Jac](G1Affine{})
	_ = group.Projective[G1Jac, G1Affine, Element](G1Jac{})
	_ = group.Curve[G1Affine, G1Jac, Element](G1{})
}

// generator returns the canonical G1 generator in both forms.
func generator() (G1Jac, G1Affine) {
	g1Jac, _, g1Aff, _ := bls12377.Generators()
	//
	return G1Jac{g1Jac}, G1Affine{g1Aff}
}

func TestIdentity(t *testing.T) {
	var (
		cv     G1
		id     = cv.Identity()
		gen, _ = generator()
	)
	//
	assert.True(t, id.Affine().IsIdentity())
	assert.True(t, gen.Add(id).Eq(gen))
	assert.True(t, id.Add(gen).Eq(gen))
	assert.True(t, id.Double().Eq(id))
}

func TestGroupLaws(t *testing.T) {
	gen, genAff := generator()
	//
	// 2g = g + g
	assert.True(t, gen.Double().Eq(gen.Add(gen)))
	// mixed addition agrees with projective addition
	assert.True(t, gen.AddAffine(genAff).Eq(gen.Add(gen)))
	// g + g - g = g
	assert.True(t, gen.Add(gen).Sub(gen).Eq(gen))
	// affine round trip
	assert.True(t, gen.Affine().Projective().Eq(gen))
}

func TestMulScalar(t *testing.T) {
	var (
		e      Element
		gen, _ = generator()
	)
	// 5g by repeated addition
	acc := gen.Add(gen).Add(gen).Add(gen).Add(gen)
	//
	assert.True(t, gen.MulScalar(e.SetUint64(5)).Eq(acc))
	assert.True(t, gen.MulScalar(e.SetUint64(1)).Eq(gen))
}

func TestBatchNormalize(t *testing.T) {
	var (
		cv     G1
		e      Element
		gen, _ = generator()
		n      = 16
		src    = make([]G1Jac, n)
		dst    = make([]G1Affine, n)
	)
	//
	for i := range src {
		src[i] = gen.MulScalar(e.SetUint64(uint64(i + 1)))
	}
	//
	cv.BatchNormalize(src, dst)
	//
	for i := range dst {
		assert.True(t, dst[i].Projective().Eq(src[i]), "point %d", i)
	}
}

func TestMarshalProjectiveRoundTrip(t *testing.T) {
	var (
		cv     G1
		e      Element
		gen, _ = generator()
	)
	//
	for i := range 8 {
		p := gen.MulScalar(e.SetUint64(uint64(i + 1)))
		buf := cv.MarshalProjective(p)
		//
		assert.Equal(t, ProjectiveBytes, len(buf))
		//
		q, err := cv.UnmarshalProjective(buf)
		assert.Nil(t, err)
		assert.True(t, p.Eq(q))
	}
}

func TestUnmarshalProjectiveBadLength(t *testing.T) {
	var cv G1
	//
	_, err := cv.UnmarshalProjective(make([]byte, ProjectiveBytes-1))
	assert.True(t, err != nil)
}

func TestMarshalAffineWidth(t *testing.T) {
	var (
		cv        G1
		_, genAff = generator()
	)
	//
	assert.Equal(t, AffineBytes, len(cv.MarshalAffine(genAff)))
}
