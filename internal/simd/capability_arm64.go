//go:build arm64

package simd

import "golang.org/x/sys/cpu"

func detect() Features {
	return Features{
		ASIMD: cpu.ARM64.HasASIMD,
		SVE2:  cpu.ARM64.HasSVE2,
	}
}
