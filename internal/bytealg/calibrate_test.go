// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

//go:build amd64 || arm64 || ppc64le || ppc64 || s390x
// +build amd64 arm64 ppc64le ppc64 s390x

package bytealg

import (
	"flag"
	"fmt"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/sys/cpu"
)

var calibrate = flag.Bool("calibrate", false, "compute crossover for bytewise vs. word-at-a-time scans")

// cpuFeatures describes the features that affect the crossover since the
// result is only meaningful for the machine it was measured on.
func cpuFeatures() string {
	switch runtime.GOARCH {
	case "amd64":
		return fmt.Sprintf("amd64 bmi1=%t popcnt=%t avx2=%t",
			cpu.X86.HasBMI1, cpu.X86.HasPOPCNT, cpu.X86.HasAVX2)
	case "arm64":
		return fmt.Sprintf("arm64 asimd=%t", cpu.ARM64.HasASIMD)
	}
	return runtime.GOARCH
}

// TestCalibrate reports the input length at which the word-at-a-time kernel
// beats the byte loop. The result should be used to tune MinSWAR.
func TestCalibrate(t *testing.T) {
	if !*calibrate {
		return
	}

	wordwise := func(s string) int {
		i := 0
		for ; i+8 <= len(s); i += 8 {
			if load64(s, i)&msb != 0 {
				break
			}
		}
		if n := indexNonASCII(s[i:]); n != -1 {
			return i + n
		}
		return -1
	}

	n := 1
	for ; n <= 128; n++ {
		s := strings.Repeat("a", n)
		bytewise := testing.Benchmark(func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				indexNonASCII(s)
			}
		})
		swar := testing.Benchmark(func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				wordwise(s)
			}
		})
		if swar.NsPerOp() < bytewise.NsPerOp() {
			break
		}
	}
	fmt.Printf("calibration (%s): MinSWAR = %d (current: %d)\n",
		cpuFeatures(), n, MinSWAR)
}
