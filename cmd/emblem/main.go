package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Canceled contexts come from the user interrupting; no message
		// needed.
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "emblem:", err)
		}
		os.Exit(1)
	}
}
