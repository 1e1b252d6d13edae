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
package group

import "github.com/superscalar-io/zkarith/pkg/util/field"

// Affine is a group element in the compact representation used for storage
// and serialisation.  A is the affine type itself and P its projective
// counterpart.
type Affine[A, P any] interface {
	// Projective lifts the point into the representation used for
	// accumulation.
	Projective() P
	// IsIdentity reports whether the point is the group identity.
	IsIdentity() bool
}

// Projective is a group element in a representation suited to repeated
// accumulation without per-step field inversions, e.g. Jacobian coordinates
// on a short Weierstrass curve.  S is the scalar field acting on the group.
type Projective[P, A any, S field.Element[S]] interface {
	// Double 2p
	Double() P
	// Add p + q
	Add(q P) P
	// Sub p - q
	Sub(q P) P
	// AddAffine p + q, with q in affine form (mixed addition).
	AddAffine(q A) P
	// MulScalar s·p
	MulScalar(s S) P
	// Affine normalises the point into affine form.
	Affine() A
	// Eq reports whether two points represent the same group element,
	// irrespective of representation.
	Eq(q P) bool
}

// Curve bundles the per-curve operations which cannot be expressed as
// methods on a single point, together with the canonical byte layouts a
// hardware accelerator marshals against.  Implementations are stateless.
type Curve[A any, P any, S field.Element[S]] interface {
	// Identity returns the group identity in projective form.
	Identity() P
	// BatchNormalize converts src into affine form, writing into dst and
	// sharing the coordinate inversions across the whole batch.
	BatchNormalize(src []P, dst []A)
	// MarshalAffine encodes a point in the canonical affine layout.
	MarshalAffine(p A) []byte
	// MarshalProjective encodes a point in the canonical projective layout.
	MarshalProjective(p P) []byte
	// UnmarshalProjective decodes a point from the canonical projective
	// layout, rejecting buffers of the wrong width.
	UnmarshalProjective(buf []byte) (P, error)
}
