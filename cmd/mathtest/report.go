package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/hupe1980/lazymat/internal/mathtest"
)

// writeReport writes report as indented JSON to path. Paths ending in
// ".zst" are zstd-compressed.
func writeReport(path string, report mathtest.Report) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	var w io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return err
		}
		defer func() {
			if cerr := zw.Close(); err == nil {
				err = cerr
			}
		}()
		w = zw
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// readReport reads a report written by writeReport.
func readReport(path string) (mathtest.Report, error) {
	var report mathtest.Report

	f, err := os.Open(path)
	if err != nil {
		return report, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return report, err
		}
		defer zr.Close()
		r = zr
	}

	err = json.NewDecoder(r).Decode(&report)
	return report, err
}
