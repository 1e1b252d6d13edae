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
	"fmt"
	"math/big"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fp"
)

// CoordBytes is the width of one base-field coordinate in the canonical
// little-endian point encodings.
const CoordBytes = fp.Bytes

// ProjectiveBytes is the width of the canonical projective (Jacobian) point
// encoding: X || Y || Z.
const ProjectiveBytes = 3 * CoordBytes

// AffineBytes is the width of the canonical affine point encoding: X || Y.
const AffineBytes = 2 * CoordBytes

// G1Affine is a point on the bls12-377 G1 curve in affine coordinates, the
// compact form used for storage and serialisation.
type G1Affine struct {
	bls12377.G1Affine
}

// Projective lifts the point into Jacobian coordinates for accumulation.
func (p G1Affine) Projective() G1Jac {
	var jac bls12377.G1Jac
	//
	jac.FromAffine(&p.G1Affine)
	//
	return G1Jac{jac}
}

// IsIdentity reports whether p is the group identity.
func (p G1Affine) IsIdentity() bool {
	return p.G1Affine.IsInfinity()
}

// G1Jac is a point on the bls12-377 G1 curve in Jacobian coordinates, which
// accumulate without per-step field inversions.
type G1Jac struct {
	bls12377.G1Jac
}

// Double 2p
func (p G1Jac) Double() G1Jac {
	res := p.G1Jac
	//
	res.DoubleAssign()
	//
	return G1Jac{res}
}

// Add p + q
func (p G1Jac) Add(q G1Jac) G1Jac {
	res := p.G1Jac
	//
	res.AddAssign(&q.G1Jac)
	//
	return G1Jac{res}
}

// Sub p - q
func (p G1Jac) Sub(q G1Jac) G1Jac {
	res := p.G1Jac
	//
	res.SubAssign(&q.G1Jac)
	//
	return G1Jac{res}
}

// AddAffine p + q, with q in affine coordinates (mixed addition).
func (p G1Jac) AddAffine(q G1Affine) G1Jac {
	res := p.G1Jac
	//
	res.AddMixed(&q.G1Affine)
	//
	return G1Jac{res}
}

// MulScalar s·p
func (p G1Jac) MulScalar(s Element) G1Jac {
	var (
		res bls12377.G1Jac
		k   big.Int
	)
	//
	s.Element.BigInt(&k)
	res.ScalarMultiplication(&p.G1Jac, &k)
	//
	return G1Jac{res}
}

// Affine normalises the point back into affine coordinates.
func (p G1Jac) Affine() G1Affine {
	var aff bls12377.G1Affine
	//
	aff.FromJacobian(&p.G1Jac)
	//
	return G1Affine{aff}
}

// Eq reports whether p and q represent the same group element.
func (p G1Jac) Eq(q G1Jac) bool {
	return p.G1Jac.Equal(&q.G1Jac)
}

// G1 implements the group.Curve suite for bls12-377 G1.
type G1 struct{}

// Identity returns the group identity (the point at infinity, Z = 0).
func (G1) Identity() G1Jac {
	var p bls12377.G1Jac
	//
	p.X.SetOne()
	p.Y.SetOne()
	//
	return G1Jac{p}
}

// BatchNormalize converts src into affine form, writing results into dst.
// All Z inversions are shared across the batch.  Panics if the slice lengths
// differ.
func (G1) BatchNormalize(src []G1Jac, dst []G1Affine) {
	if len(src) != len(dst) {
		panic(fmt.Sprintf("batch normalise length mismatch: %d vs %d", len(src), len(dst)))
	}
	//
	jacs := make([]bls12377.G1Jac, len(src))
	for i := range src {
		jacs[i] = src[i].G1Jac
	}
	//
	affs := bls12377.BatchJacobianToAffineG1(jacs)
	for i := range affs {
		dst[i] = G1Affine{affs[i]}
	}
}

// MarshalAffine encodes p in the canonical affine layout.
func (G1) MarshalAffine(p G1Affine) []byte {
	buf := make([]byte, 0, AffineBytes)
	buf = appendCoord(buf, &p.X)
	buf = appendCoord(buf, &p.Y)
	//
	return buf
}

// MarshalProjective encodes p in the canonical projective layout.
func (G1) MarshalProjective(p G1Jac) []byte {
	buf := make([]byte, 0, ProjectiveBytes)
	buf = appendCoord(buf, &p.X)
	buf = appendCoord(buf, &p.Y)
	buf = appendCoord(buf, &p.Z)
	//
	return buf
}

// UnmarshalProjective decodes a point from the canonical projective layout.
func (G1) UnmarshalProjective(buf []byte) (G1Jac, error) {
	var p bls12377.G1Jac
	//
	if len(buf) != ProjectiveBytes {
		return G1Jac{}, fmt.Errorf("projective point requires %d bytes, got %d", ProjectiveBytes, len(buf))
	}
	//
	setCoord(&p.X, buf[:CoordBytes])
	setCoord(&p.Y, buf[CoordBytes:2*CoordBytes])
	setCoord(&p.Z, buf[2*CoordBytes:])
	//
	return G1Jac{p}, nil
}

// appendCoord appends the little-endian encoding of one base-field coordinate.
func appendCoord(buf []byte, v *fp.Element) []byte {
	bytes := v.Bytes()
	//
	for i := len(bytes) - 1; i >= 0; i-- {
		buf = append(buf, bytes[i])
	}
	//
	return buf
}

// setCoord reads one base-field coordinate from its little-endian encoding.
func setCoord(v *fp.Element, buf []byte) {
	var bytes [CoordBytes]byte
	//
	for i, b := range buf {
		bytes[CoordBytes-1-i] = b
	}
	//
	v.SetBytes(bytes[:])
}
