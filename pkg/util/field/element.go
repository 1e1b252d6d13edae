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
package field

import (
	"fmt"
	"math/big"
)

// An Element of a prime-order field.  Implementations are immutable values:
// arithmetic returns fresh values and never aliases shared mutable state.
// The zero value of an implementation must represent 0.
type Element[Operand any] interface {
	fmt.Stringer
	// Add x+y
	Add(y Operand) Operand
	// Sub x-y
	Sub(y Operand) Operand
	// Mul x*y
	Mul(y Operand) Operand
	// Neg -x
	Neg() Operand
	// Inverse x⁻¹, or 0 if x = 0.
	Inverse() Operand
	// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
	Cmp(y Operand) int
	// Check whether this value is zero (or not).
	IsZero() bool
	// Check whether this value is one (or not).
	IsOne() bool
	// Return the modulus for the field in question.
	Modulus() *big.Int
	// SetUint64 constructs an element from a given uint64.
	SetUint64(val uint64) Operand
	// SetBytes constructs an element from bytes in big endian order.
	SetBytes(bytes []byte) Operand
	// Bytes returns the big-endian encoded value of x, possibly with leading zeros.
	Bytes() []byte
	// Text returns the numerical value of x in the given base.
	Text(base int) string
}

// PrimeElement extends Element with the associated constants required by the
// FFT and MSM engines: the generator of the maximal two-adic subgroup and a
// canonical fixed-width byte representation.
type PrimeElement[Operand any] interface {
	Element[Operand]
	// RootOfUnity returns a fixed primitive 2^S-th root of unity, where S is
	// the two-adicity of the field.
	RootOfUnity() Operand
	// RootOfUnityInv returns the inverse of RootOfUnity().
	RootOfUnityInv() Operand
	// TwoAdicity returns S, the largest k such that 2^k divides the order of
	// the multiplicative group.
	TwoAdicity() uint
	// TwoInv returns the fixed multiplicative inverse of two.
	TwoInv() Operand
	// BytesLE returns the canonical fixed-width little-endian encoding of x.
	// Every element of a given field encodes to the same width.
	BytesLE() []byte
	// SetBytesLE constructs an element from its canonical fixed-width
	// little-endian encoding.
	SetBytesLE(bytes []byte) Operand
}

// Zero constructs a field element representing 0
func Zero[F Element[F]]() F {
	var element F
	//
	return element
}

// One constructs a field element representing 1
func One[F Element[F]]() F {
	var element F
	//
	return element.SetUint64(1)
}

// Uint64 construct a field element from a given uint64
func Uint64[F Element[F]](val uint64) F {
	var element F
	//
	return element.SetUint64(val)
}
