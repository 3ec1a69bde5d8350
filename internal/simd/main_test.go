package simd

import (
	"fmt"
	"os"
	"runtime"
	"testing"
)

// TestMain logs which register width the kernels are tiled for on this host.
func TestMain(m *testing.M) {
	f := Detected()
	fmt.Printf("simd: %s/%s %s=%q active=%s (%d-byte registers, from env: %v)\n",
		runtime.GOOS, runtime.GOARCH, EnvISA, os.Getenv(EnvISA),
		ActiveISA(), ActiveISA().RegisterBytes(), FromEnv())
	fmt.Printf("simd: features %+v\n\n", f)

	os.Exit(m.Run())
}
