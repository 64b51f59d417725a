package main

import (
	"fmt"
	"os"

	"github.com/qbcompile/qbc/cmd/qbc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
