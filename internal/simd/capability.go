package simd

import (
	"os"
	"runtime"
	"strings"
	"sync/atomic"
)

// ISA identifies the vector instruction set the batched kernels are tiled for.
// Only the register width matters to the kernels; the lane loops themselves
// are portable Go.
type ISA uint8

const (
	// Generic disables the batched backends.
	Generic ISA = iota
	// NEON is ARM64 Advanced SIMD (128-bit).
	NEON
	// SVE2 is ARM64 SVE2, tiled at its 128-bit minimum vector length.
	SVE2
	// AVX2 is x86-64 AVX2 with FMA (256-bit).
	AVX2
	// AVX512 is x86-64 AVX-512 F+BW (512-bit).
	AVX512
)

// EnvISA names the environment variable that selects the ISA at start-up.
// The value is only honored when the CPU supports it.
const EnvISA = "LAZYMAT_SIMD"

var isaNames = [...]string{
	Generic: "generic",
	NEON:    "neon",
	SVE2:    "sve2",
	AVX2:    "avx2",
	AVX512:  "avx512",
}

var registerBytes = [...]int{
	Generic: 16,
	NEON:    16,
	SVE2:    16,
	AVX2:    32,
	AVX512:  64,
}

func (i ISA) String() string {
	if int(i) < len(isaNames) {
		return isaNames[i]
	}
	return "unknown"
}

// ParseISA parses a case-insensitive ISA name.
func ParseISA(s string) (ISA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range isaNames {
		if name == s {
			return ISA(i), true
		}
	}
	return Generic, false
}

// RegisterBytes returns the width of one vector register.
func (i ISA) RegisterBytes() int {
	if int(i) < len(registerBytes) {
		return registerBytes[i]
	}
	return registerBytes[Generic]
}

// Features is the set of CPU extensions relevant to kernel tiling.
type Features struct {
	ASIMD  bool
	SVE2   bool
	AVX2   bool
	AVX512 bool
}

// Supports reports whether the features allow tiling for isa.
func (f Features) Supports(isa ISA) bool {
	switch isa {
	case Generic:
		return true
	case NEON:
		return f.ASIMD
	case SVE2:
		return f.SVE2
	case AVX2:
		return f.AVX2
	case AVX512:
		return f.AVX512
	default:
		return false
	}
}

// Best returns the widest supported ISA. SVE2 is skipped on darwin where
// NEON is the faster path.
func (f Features) Best(goos string) ISA {
	switch {
	case f.AVX512:
		return AVX512
	case f.AVX2:
		return AVX2
	case f.SVE2 && goos != "darwin":
		return SVE2
	case f.ASIMD:
		return NEON
	default:
		return Generic
	}
}

var (
	detected  Features
	fromEnv   bool
	activeISA atomic.Uint32
)

func init() {
	detected = detect()
	activeISA.Store(uint32(choose(detected, os.Getenv(EnvISA))))
}

// choose resolves the start-up ISA from the detected features and an
// optional override value.
func choose(f Features, override string) ISA {
	if override != "" {
		if isa, ok := ParseISA(override); ok && f.Supports(isa) {
			fromEnv = true
			return isa
		}
	}
	return f.Best(runtime.GOOS)
}

// Detected returns the CPU features found at start-up.
func Detected() Features {
	return detected
}

// FromEnv reports whether the start-up ISA came from EnvISA.
func FromEnv() bool {
	return fromEnv
}

// ActiveISA returns the ISA the kernels are currently tiled for.
func ActiveISA() ISA {
	return ISA(activeISA.Load())
}

// Enabled reports whether the batched backends may be selected.
func Enabled() bool {
	return ActiveISA() != Generic
}

// Override forces the active ISA regardless of CPU support and returns a
// function that restores the previous one.
func Override(isa ISA) (restore func()) {
	prev := activeISA.Swap(uint32(isa))
	return func() {
		activeISA.Store(prev)
	}
}
