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
	"slices"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/superscalar-io/zkarith/pkg/fft"
	"github.com/superscalar-io/zkarith/pkg/msm"
	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/group"
)

// Engine is an explicitly owned dispatch handle tying an optional accelerator
// to the CPU engines.  Callers obtain one via NewEngine, pass it wherever
// accelerated arithmetic is wanted, and Close it when the parameter lifetime
// ends.  Host copies of every uploaded base set and root-of-unity context are
// retained, so any device failure falls back to the CPU path rather than ever
// surfacing a wrong answer.
type Engine[S fft.Scalar[S], A group.Affine[A, P], P group.Projective[P, A, S]] struct {
	curve group.Curve[A, P, S]
	// dev is the external collaborator; nil means CPU only.
	dev Accelerator
	// mu guards the session table and lifecycle flags.  The CPU compute paths
	// themselves are lock free.
	mu       sync.Mutex
	sessions map[string][][]A
	omega    S
	omegaSet bool
	closed   bool
}

// NewEngine constructs a dispatch handle over the given curve suite.  dev may
// be nil for a CPU-only engine.
func NewEngine[S fft.Scalar[S], A group.Affine[A, P], P group.Projective[P, A, S]](
	curve group.Curve[A, P, S], dev Accelerator,
) *Engine[S, A, P] {
	return &Engine[S, A, P]{
		curve:    curve,
		dev:      dev,
		sessions: make(map[string][][]A),
	}
}

// Available reports whether an accelerator is attached and ready for work.
func (e *Engine[S, A, P]) Available() bool {
	return e.dev != nil && e.dev.Available()
}

// InitMSM registers the base-point sets for one parameter session, uploading
// them to the accelerator when one is attached.  An upload failure is
// reported but not fatal: the session remains fully usable on the CPU path.
func (e *Engine[S, A, P]) InitMSM(session string, baseSets [][]A) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	if e.closed {
		return ErrClosed
	}
	// Retain host copies for CPU fallback.
	host := make([][]A, len(baseSets))
	for i, set := range baseSets {
		host[i] = slices.Clone(set)
	}
	//
	e.sessions[session] = host
	//
	if !e.Available() {
		return nil
	}
	//
	buffers := make([][]byte, len(baseSets))
	//
	for i, set := range baseSets {
		var buf []byte
		//
		for j := range set {
			buf = append(buf, e.curve.MarshalAffine(set[j])...)
		}
		//
		buffers[i] = buf
	}
	//
	if err := e.dev.InitMSM(session, buffers); err != nil {
		log.WithError(err).Warnf("accelerator MSM upload failed for session %q, pinned to CPU", session)
	}
	//
	return nil
}

// MSM computes Σ scalars[i]·bases[i] against the indexed base set of a
// previously initialised session.  The accelerator result is used when the
// device succeeds; any device or decode failure is logged and retried on the
// CPU with the retained host bases, so the two paths are observably
// equivalent.  Unknown sessions and out-of-range base sets yield
// distinguishable errors.
func (e *Engine[S, A, P]) MSM(session string, baseSet int, scalars []S) (P, error) {
	var empty P
	//
	e.mu.Lock()
	//
	if e.closed {
		e.mu.Unlock()
		return empty, ErrClosed
	}
	//
	sets, ok := e.sessions[session]
	e.mu.Unlock()
	//
	if !ok {
		return empty, errors.Wrapf(ErrUnknownSession, "session %q", session)
	} else if baseSet < 0 || baseSet >= len(sets) {
		return empty, errors.Wrapf(ErrBaseSetIndex, "set %d of %d", baseSet, len(sets))
	}
	//
	bases := sets[baseSet]
	//
	if e.Available() {
		buf := make([]byte, 0, len(scalars)*scalarWidth[S]())
		for i := range scalars {
			buf = append(buf, scalars[i].BytesLE()...)
		}
		//
		out, err := e.dev.MSM(session, baseSet, buf)
		if err == nil {
			var p P
			//
			if p, err = e.curve.UnmarshalProjective(out); err == nil {
				return p, nil
			}
		}
		//
		log.WithError(err).Warn("accelerator MSM failed, retrying on CPU")
	}
	//
	return msm.BestMultiexpCPU(e.curve, scalars, bases), nil
}

// InitNTT records the root-of-unity context used by subsequent NTT calls,
// uploading it to the accelerator when one is attached.
func (e *Engine[S, A, P]) InitNTT(omega S) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	if e.closed {
		return ErrClosed
	}
	//
	e.omega = omega
	e.omegaSet = true
	//
	if e.Available() {
		if err := e.dev.InitNTT(omega.BytesLE()); err != nil {
			log.WithError(err).Warn("accelerator NTT upload failed, pinned to CPU")
		}
	}
	//
	return nil
}

// NTT transforms buf in place against the initialised root-of-unity context.
// buf must hold exactly 2^logN scalars; violating that is a caller contract
// failure and panics before any mutation.  Device failures fall back to the
// CPU transform.
func (e *Engine[S, A, P]) NTT(buf []S, logN uint) error {
	e.mu.Lock()
	//
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	} else if !e.omegaSet {
		e.mu.Unlock()
		return ErrNTTNotInitialized
	}
	//
	omega := e.omega
	e.mu.Unlock()
	//
	if e.Available() && len(buf) == 1<<logN {
		var (
			width = scalarWidth[S]()
			raw   = make([]byte, 0, len(buf)*width)
		)
		//
		for i := range buf {
			raw = append(raw, buf[i].BytesLE()...)
		}
		//
		out, err := e.dev.NTT(raw, logN)
		//
		if err == nil && len(out) != len(raw) {
			err = errors.Errorf("accelerator returned %d bytes, expected %d", len(out), len(raw))
		}
		//
		if err == nil {
			for i := range buf {
				buf[i] = buf[i].SetBytesLE(out[i*width : (i+1)*width])
			}
			//
			return nil
		}
		//
		log.WithError(err).Warn("accelerator NTT failed, retrying on CPU")
	}
	//
	fft.BestFFTCPU(buf, omega, logN)
	//
	return nil
}

// Close releases the accelerator (when attached) and invalidates the engine.
// It is idempotent and safe on every exit path.
func (e *Engine[S, A, P]) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	//
	if e.closed {
		return nil
	}
	//
	e.closed = true
	e.sessions = nil
	//
	if e.dev != nil {
		return e.dev.Close()
	}
	//
	return nil
}

// scalarWidth returns the canonical encoding width of the scalar field.
func scalarWidth[S field.PrimeElement[S]]() int {
	var s S
	//
	return len(s.BytesLE())
}
