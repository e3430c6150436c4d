package main

import (
	"fmt"
	"os"

	"github.com/TFMV/scout/cmd"
)

func main() {
	// Surface panics as a plain error line rather than a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "scout: fatal: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "scout: %v\n", err)
		os.Exit(1)
	}
}
