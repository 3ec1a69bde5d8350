//go:build !amd64 && !arm64

package simd

func detect() Features {
	return Features{}
}
