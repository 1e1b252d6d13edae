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

// Package accel dispatches MSM and NTT work between the CPU engines and an
// optional external accelerator.  The accelerator is an opaque collaborator
// reached exclusively through the Accelerator interface; the CPU path is
// always the fallback, and the two must be observably equivalent.
package accel

import "github.com/pkg/errors"

// Accelerator is implemented by an external compute device capable of
// executing MSM or NTT off the CPU.  All buffers cross this boundary in the
// canonical byte layout: fixed-width little-endian field elements, and
// fixed-width projective point encodings as documented by the curve suite.
// Device enumeration, capability negotiation and buffer placement are the
// implementation's concern.
type Accelerator interface {
	// Available reports whether the device can currently take work.  Absence
	// is never fatal to callers.
	Available() bool
	// InitMSM uploads the base-point sets for one parameter session,
	// identified by an opaque session key.  Multiple sessions may be live at
	// once; each upload is referenced by its key thereafter.
	InitMSM(session string, baseSets [][]byte) error
	// MSM computes the multi-scalar multiplication of the given scalars
	// against the indexed base set of a session, returning one projective
	// point in the canonical layout.
	MSM(session string, baseSet int, scalars []byte) ([]byte, error)
	// InitNTT uploads a root-of-unity context.
	InitNTT(omega []byte) error
	// NTT transforms a buffer of 2^logN equal-width elements, returning the
	// transformed buffer.
	NTT(buf []byte, logN uint) ([]byte, error)
	// Close releases all device resources held by this collaborator.
	Close() error
}

var (
	// ErrClosed is returned by every operation on an engine after Close.
	ErrClosed = errors.New("accel: engine closed")
	// ErrUnknownSession is returned when an MSM references a session id that
	// was never initialised.
	ErrUnknownSession = errors.New("accel: unknown MSM session")
	// ErrBaseSetIndex is returned when an MSM references a base set outside
	// the session's uploaded range.
	ErrBaseSetIndex = errors.New("accel: base set index out of range")
	// ErrNTTNotInitialized is returned when NTT runs before InitNTT.
	ErrNTTNotInitialized = errors.New("accel: ntt context not initialised")
)
