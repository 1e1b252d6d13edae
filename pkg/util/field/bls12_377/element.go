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
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr/fft"
)

// TwoAdicity is the largest s such that 2^s divides the order of the
// multiplicative group of the bls12-377 scalar field.
const TwoAdicity = 47

// NumBytes is the width of the canonical byte representation of an Element.
const NumBytes = fr.Bytes

var (
	rootOfUnity    Element
	rootOfUnityInv Element
	twoInv         Element
)

func init() {
	root, err := fft.Generator(1 << TwoAdicity)
	if err != nil {
		panic(err)
	}
	//
	var rootInv, two fr.Element
	//
	rootInv.Inverse(&root)
	two.SetUint64(2)
	two.Inverse(&two)
	//
	rootOfUnity = Element{root}
	rootOfUnityInv = Element{rootInv}
	twoInv = Element{two}
}

// Element wraps fr.Element to conform to the field.PrimeElement interface.
type Element struct {
	fr.Element
}

// Add x + y
func (x Element) Add(y Element) Element {
	var res fr.Element
	//
	res.Add(&x.Element, &y.Element)
	//
	return Element{res}
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var res fr.Element
	//
	res.Sub(&x.Element, &y.Element)
	//
	return Element{res}
}

// Mul x * y
func (x Element) Mul(y Element) Element {
	var res fr.Element
	//
	res.Mul(&x.Element, &y.Element)
	//
	return Element{res}
}

// MulScalar x * s.  This is Mul under the name required of transform
// elements, allowing the scalar field to act on itself.
func (x Element) MulScalar(s Element) Element {
	return x.Mul(s)
}

// Neg -x
func (x Element) Neg() Element {
	var res fr.Element
	//
	res.Neg(&x.Element)
	//
	return Element{res}
}

// Inverse x⁻¹, or 0 if x = 0.
func (x Element) Inverse() Element {
	var res fr.Element
	//
	res.Inverse(&x.Element)
	//
	return Element{res}
}

// Cmp returns 1 if x > y, 0 if x = y, and -1 if x < y.
func (x Element) Cmp(y Element) int {
	return x.Element.Cmp(&y.Element)
}

// IsZero implementation for the Element interface
func (x Element) IsZero() bool {
	return x.Element.IsZero()
}

// IsOne implementation for the Element interface
func (x Element) IsOne() bool {
	return x.Element.IsOne()
}

// Modulus returns the order of the bls12-377 scalar field.
func (x Element) Modulus() *big.Int {
	return fr.Modulus()
}

// SetUint64 implementation for Element.
func (x Element) SetUint64(val uint64) Element {
	x.Element.SetUint64(val)
	//
	return x
}

// SetBytes implementation for Element.
func (x Element) SetBytes(bytes []byte) Element {
	x.Element.SetBytes(bytes)
	//
	return x
}

// Bytes returns the big-endian encoded value of the Element, possibly with leading zeros.
func (x Element) Bytes() []byte {
	return x.Marshal()
}

// RootOfUnity implementation for the PrimeElement interface.
func (x Element) RootOfUnity() Element {
	return rootOfUnity
}

// RootOfUnityInv implementation for the PrimeElement interface.
func (x Element) RootOfUnityInv() Element {
	return rootOfUnityInv
}

// TwoAdicity implementation for the PrimeElement interface.
func (x Element) TwoAdicity() uint {
	return TwoAdicity
}

// TwoInv implementation for the PrimeElement interface.
func (x Element) TwoInv() Element {
	return twoInv
}

// BytesLE returns the canonical NumBytes-wide little-endian encoding of x.
func (x Element) BytesLE() []byte {
	bytes := x.Element.Bytes()
	//
	for i, j := 0, len(bytes)-1; i < j; i, j = i+1, j-1 {
		bytes[i], bytes[j] = bytes[j], bytes[i]
	}
	//
	return bytes[:]
}

// SetBytesLE implementation for the PrimeElement interface.
func (x Element) SetBytesLE(bytes []byte) Element {
	var buf [NumBytes]byte
	//
	for i, b := range bytes {
		buf[NumBytes-1-i] = b
	}
	//
	x.Element.SetBytes(buf[:])
	//
	return x
}

func (x Element) String() string {
	return x.Element.String()
}

// Text implementation for the Element interface
func (x Element) Text(base int) string {
	return x.Element.Text(base)
}
