package main

import (
	"fmt"
	"os"

	"github.com/denbox-io/denbox/cmd"
	"github.com/denbox-io/denbox/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(errors.GetExitCode(err))
	}
}
