// Command mathtest runs the reduction regression harness.
//
//	mathtest --types int,float64 --max-dim 8 --report report.json.zst
//	mathtest report report.json.zst
//
// Every test prints "Running '<name>'..." and failures print an
// "ERROR DETECTED during <operation>" diagnostic. The command exits with a
// non-zero status if any test fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewMathTestCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
