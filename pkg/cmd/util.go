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
package cmd

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"github.com/superscalar-io/zkarith/pkg/util/field"
	"github.com/superscalar-io/zkarith/pkg/util/field/bls12_377"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected uint, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// randomScalars generates n pseudo-random scalars spread across the full
// field width, deterministically from the given seed.
func randomScalars(n int, seed int64) []bls12_377.Element {
	var (
		rng = rand.New(rand.NewSource(seed))
		out = make([]bls12_377.Element, n)
		// multiplying successive draws keeps every limb populated without
		// per-scalar inversions
		acc = field.Uint64[bls12_377.Element](rng.Uint64()).Inverse()
	)
	//
	for i := range out {
		acc = acc.Mul(field.Uint64[bls12_377.Element](rng.Uint64() | 1))
		out[i] = acc
	}
	//
	return out
}
