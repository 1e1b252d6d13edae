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
	"time"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/superscalar-io/zkarith/pkg/msm"
	"github.com/superscalar-io/zkarith/pkg/util"
	"github.com/superscalar-io/zkarith/pkg/util/field/bls12_377"
)

// msmCmd represents the msm command
var msmCmd = &cobra.Command{
	Use:   "msm",
	Short: "Benchmark multi-scalar multiplication over bls12-377 G1.",
	Long: `Benchmark multi-scalar multiplication over bls12-377 G1,
	timing each power-of-two input size in the requested range
	on the parallel engine (and, optionally, the serial one).`,
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		var (
			minK   = getUint(cmd, "min-k")
			maxK   = getUint(cmd, "max-k")
			serial = getFlag(cmd, "serial")
		)
		//
		benchMultiexp(minK, maxK, serial)
	},
}

func benchMultiexp(minK, maxK uint, serial bool) {
	var cv bls12_377.G1
	//
	stats := util.NewPerfStats()
	bases := commitmentBases(1 << maxK)
	//
	stats.Log("generating bases")
	//
	for k := minK; k <= maxK; k++ {
		var (
			n      = 1 << k
			coeffs = randomScalars(n, int64(k))
			start  = time.Now()
			result = msm.BestMultiexpCPU[bls12_377.Element, bls12_377.G1Affine, bls12_377.G1Jac](
				cv, coeffs, bases[:n])
		)
		//
		fmt.Printf("msm 2^%-2d parallel %12v\n", k, time.Since(start))
		log.Debugf("msm 2^%d digest %x", k, cv.MarshalProjective(result)[:8])
		//
		if serial {
			start = time.Now()
			result = msm.MultiexpSerial[bls12_377.Element, bls12_377.G1Affine, bls12_377.G1Jac](
				cv, coeffs, bases[:n])
			//
			fmt.Printf("msm 2^%-2d serial   %12v\n", k, time.Since(start))
			log.Debugf("msm 2^%d digest %x", k, cv.MarshalProjective(result)[:8])
		}
	}
}

// commitmentBases returns the first n multiples of the G1 generator in affine
// form, normalised in one batch.
func commitmentBases(n int) []bls12_377.G1Affine {
	var (
		cv  bls12_377.G1
		src = make([]bls12_377.G1Jac, n)
		dst = make([]bls12_377.G1Affine, n)
	)
	//
	gJac, _, gAff, _ := bls12377.Generators()
	//
	var (
		acc = bls12_377.G1Jac{G1Jac: gJac}
		gen = bls12_377.G1Affine{G1Affine: gAff}
	)
	//
	for i := range src {
		src[i] = acc
		acc = acc.AddAffine(gen)
	}
	//
	cv.BatchNormalize(src, dst)
	//
	return dst
}

func init() {
	rootCmd.AddCommand(msmCmd)
	msmCmd.Flags().Uint("min-k", 8, "smallest log2 input size")
	msmCmd.Flags().Uint("max-k", 14, "largest log2 input size")
	msmCmd.Flags().Bool("serial", false, "also time the single-threaded engine")
}
