package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/dbeallor/rsdump/internal/cli"
	"github.com/dbeallor/rsdump/pkg/rsdump"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(rsdump.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(rsdump.ExitCodeForError(err))
	}
}
