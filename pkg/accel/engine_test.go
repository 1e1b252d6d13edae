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
package accel

import (
	"math/rand"
	"slices"
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/pkg/errors"
	"github.com/superscalar-io/zkarith/pkg/fft"
	"github.com/superscalar-io/zkarith/pkg/msm"
	"github.com/superscalar-io/zkarith/pkg/util/assert"
	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/field/bls12_377"
)

type F = bls12_377.Element

var curve bls12_377.G1

// fakeDevice is a scripted Accelerator: it records what crosses the boundary
// and replays whatever responses the test primed it with.
type fakeDevice struct {
	available bool
	baseSets  map[string][][]byte
	omega     []byte
	// primed responses
	msmOut []byte
	msmErr error
	nttOut []byte
	nttErr error
	// observations
	lastScalars []byte
	lastNTTIn   []byte
	closeCount  int
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{available: true, baseSets: make(map[string][][]byte)}
}

func (d *fakeDevice) Available() bool { return d.available }

func (d *fakeDevice) InitMSM(session string, baseSets [][]byte) error {
	d.baseSets[session] = baseSets
	return nil
}

func (d *fakeDevice) MSM(session string, baseSet int, scalars []byte) ([]byte, error) {
	d.lastScalars = scalars
	return d.msmOut, d.msmErr
}

func (d *fakeDevice) InitNTT(omega []byte) error {
	d.omega = omega
	return nil
}

func (d *fakeDevice) NTT(buf []byte, logN uint) ([]byte, error) {
	d.lastNTTIn = buf
	return d.nttOut, d.nttErr
}

func (d *fakeDevice) Close() error {
	d.closeCount++
	return nil
}

func newEngine(dev Accelerator) *Engine[F, bls12_377.G1Affine, bls12_377.G1Jac] {
	return NewEngine[F, bls12_377.G1Affine, bls12_377.G1Jac](curve, dev)
}

// testInput builds n random full-width scalars alongside n distinct bases.
func testInput(n int, seed int64) ([]F, []bls12_377.G1Affine) {
	var (
		rng    = rand.New(rand.NewSource(seed))
		coeffs = make([]F, n)
		bases  = make([]bls12_377.G1Affine, n)
	)
	//
	gJac, _, _, _ := bls12377.Generators()
	gen := bls12_377.G1Jac{G1Jac: gJac}
	//
	for i := range coeffs {
		coeffs[i] = field.Uint64[F](rng.Uint64()).Inverse()
		bases[i] = gen.MulScalar(field.Uint64[F](uint64(i + 1))).Affine()
	}
	//
	return coeffs, bases
}

func TestEngineCPUOnly(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	//
	assert.False(t, e.Available())
	//
	coeffs, bases := testInput(32, 1)
	assert.Nil(t, e.InitMSM("srs", [][]bls12_377.G1Affine{bases}))
	//
	actual, err := e.MSM("srs", 0, coeffs)
	assert.Nil(t, err)
	//
	expected := msm.BestMultiexpCPU[F, bls12_377.G1Affine, bls12_377.G1Jac](curve, coeffs, bases)
	assert.True(t, actual.Eq(expected))
}

func TestEngineMSMAcceleratorPath(t *testing.T) {
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	defer e.Close()
	//
	coeffs, bases := testInput(16, 2)
	assert.Nil(t, e.InitMSM("srs", [][]bls12_377.G1Affine{bases}))
	// the upload must carry every base in the canonical affine layout
	assert.Equal(t, 1, len(dev.baseSets["srs"]))
	assert.Equal(t, len(bases)*bls12_377.AffineBytes, len(dev.baseSets["srs"][0]))
	// prime the device with the known answer
	expected := msm.BestMultiexpCPU[F, bls12_377.G1Affine, bls12_377.G1Jac](curve, coeffs, bases)
	dev.msmOut = curve.MarshalProjective(expected)
	//
	actual, err := e.MSM("srs", 0, coeffs)
	assert.Nil(t, err)
	assert.True(t, actual.Eq(expected))
	// the scalars must have crossed in the canonical layout
	assert.Equal(t, len(coeffs)*bls12_377.NumBytes, len(dev.lastScalars))
	assert.Equal(t, coeffs[0].BytesLE(), dev.lastScalars[:bls12_377.NumBytes])
}

func TestEngineMSMFallsBackOnDeviceError(t *testing.T) {
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	defer e.Close()
	//
	coeffs, bases := testInput(16, 3)
	assert.Nil(t, e.InitMSM("srs", [][]bls12_377.G1Affine{bases}))
	//
	dev.msmErr = errFake
	//
	actual, err := e.MSM("srs", 0, coeffs)
	assert.Nil(t, err)
	//
	expected := msm.BestMultiexpCPU[F, bls12_377.G1Affine, bls12_377.G1Jac](curve, coeffs, bases)
	assert.True(t, actual.Eq(expected))
}

func TestEngineMSMFallsBackOnGarbageOutput(t *testing.T) {
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	defer e.Close()
	//
	coeffs, bases := testInput(16, 4)
	assert.Nil(t, e.InitMSM("srs", [][]bls12_377.G1Affine{bases}))
	// a truncated point must not surface as a wrong answer
	dev.msmOut = make([]byte, 3)
	//
	actual, err := e.MSM("srs", 0, coeffs)
	assert.Nil(t, err)
	//
	expected := msm.BestMultiexpCPU[F, bls12_377.G1Affine, bls12_377.G1Jac](curve, coeffs, bases)
	assert.True(t, actual.Eq(expected))
}

func TestEngineMSMUnknownSession(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	//
	coeffs, _ := testInput(4, 5)
	//
	_, err := e.MSM("nope", 0, coeffs)
	assert.ErrorIs(t, err, ErrUnknownSession)
}

func TestEngineMSMBaseSetIndex(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	//
	coeffs, bases := testInput(4, 6)
	assert.Nil(t, e.InitMSM("srs", [][]bls12_377.G1Affine{bases}))
	//
	_, err := e.MSM("srs", 1, coeffs)
	assert.ErrorIs(t, err, ErrBaseSetIndex)
	//
	_, err = e.MSM("srs", -1, coeffs)
	assert.ErrorIs(t, err, ErrBaseSetIndex)
}

func TestEngineNTTRequiresInit(t *testing.T) {
	e := newEngine(nil)
	defer e.Close()
	//
	coeffs, _ := testInput(4, 7)
	assert.ErrorIs(t, e.NTT(coeffs, 2), ErrNTTNotInitialized)
}

func TestEngineNTTCPUOnly(t *testing.T) {
	const logN = 3
	//
	e := newEngine(nil)
	defer e.Close()
	//
	var (
		omega    = rootOfOrder(logN)
		buf, _   = testInput(1<<logN, 8)
		expected = slices.Clone(buf)
	)
	//
	assert.Nil(t, e.InitNTT(omega))
	assert.Nil(t, e.NTT(buf, logN))
	//
	fft.BestFFTCPU(expected, omega, logN)
	assert.Equal(t, expected, buf)
}

func TestEngineNTTAcceleratorPath(t *testing.T) {
	const logN = 3
	//
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	defer e.Close()
	//
	var (
		omega    = rootOfOrder(logN)
		buf, _   = testInput(1<<logN, 9)
		expected = slices.Clone(buf)
	)
	//
	fft.BestFFTCPU(expected, omega, logN)
	// prime the device with the encoded answer
	var out []byte
	for i := range expected {
		out = append(out, expected[i].BytesLE()...)
	}
	//
	dev.nttOut = out
	//
	assert.Nil(t, e.InitNTT(omega))
	assert.Equal(t, omega.BytesLE(), dev.omega)
	//
	assert.Nil(t, e.NTT(buf, logN))
	assert.Equal(t, expected, buf)
	assert.Equal(t, (1<<logN)*bls12_377.NumBytes, len(dev.lastNTTIn))
}

func TestEngineNTTFallsBackOnDeviceError(t *testing.T) {
	const logN = 4
	//
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	defer e.Close()
	//
	var (
		omega    = rootOfOrder(logN)
		buf, _   = testInput(1<<logN, 10)
		expected = slices.Clone(buf)
	)
	//
	dev.nttErr = errFake
	//
	assert.Nil(t, e.InitNTT(omega))
	assert.Nil(t, e.NTT(buf, logN))
	//
	fft.BestFFTCPU(expected, omega, logN)
	assert.Equal(t, expected, buf)
}

func TestEngineNTTFallsBackOnShortOutput(t *testing.T) {
	const logN = 2
	//
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	defer e.Close()
	//
	var (
		omega    = rootOfOrder(logN)
		buf, _   = testInput(1<<logN, 11)
		expected = slices.Clone(buf)
	)
	//
	dev.nttOut = make([]byte, 3)
	//
	assert.Nil(t, e.InitNTT(omega))
	assert.Nil(t, e.NTT(buf, logN))
	//
	fft.BestFFTCPU(expected, omega, logN)
	assert.Equal(t, expected, buf)
}

func TestEngineClose(t *testing.T) {
	var (
		dev = newFakeDevice()
		e   = newEngine(dev)
	)
	//
	coeffs, bases := testInput(4, 12)
	assert.Nil(t, e.InitMSM("srs", [][]bls12_377.G1Affine{bases}))
	//
	assert.Nil(t, e.Close())
	assert.Nil(t, e.Close())
	assert.Equal(t, 1, dev.closeCount)
	//
	assert.ErrorIs(t, e.InitMSM("other", nil), ErrClosed)
	assert.ErrorIs(t, e.InitNTT(rootOfOrder(2)), ErrClosed)
	assert.ErrorIs(t, e.NTT(coeffs, 2), ErrClosed)
	//
	_, err := e.MSM("srs", 0, coeffs)
	assert.ErrorIs(t, err, ErrClosed)
}

// errFake stands in for any device-side failure.
var errFake = errors.New("device fault")

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
