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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/superscalar-io/zkarith/pkg/fft"
	"github.com/superscalar-io/zkarith/pkg/util"
	"github.com/superscalar-io/zkarith/pkg/util/field/bls12_377"
)

// fftCmd represents the fft command
var fftCmd = &cobra.Command{
	Use:   "fft",
	Short: "Benchmark the number-theoretic transform over the bls12-377 scalar field.",
	Long: `Benchmark the number-theoretic transform over the bls12-377 scalar field,
	timing each power-of-two input size in the requested range.`,
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}
		//
		benchFFT(getUint(cmd, "min-k"), getUint(cmd, "max-k"))
	},
}

func benchFFT(minK, maxK uint) {
	var e bls12_377.Element
	//
	for k := minK; k <= maxK; k++ {
		buf := randomScalars(1<<k, int64(k))
		// derive a root of order 2^k
		omega := e.RootOfUnity()
		for i := k; i < e.TwoAdicity(); i++ {
			omega = omega.Mul(omega)
		}
		//
		stats := util.NewPerfStats()
		start := time.Now()
		//
		fft.BestFFTCPU(buf, omega, k)
		//
		fmt.Printf("fft 2^%-2d %12v\n", k, time.Since(start))
		stats.Log(fmt.Sprintf("fft 2^%d", k))
		log.Debugf("fft 2^%d digest %s", k, buf[0].String())
	}
}

func init() {
	rootCmd.AddCommand(fftCmd)
	fftCmd.Flags().Uint("min-k", 8, "smallest log2 input size")
	fftCmd.Flags().Uint("max-k", 20, "largest log2 input size")
}
