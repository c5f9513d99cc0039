package main

import (
	"os"

	"github.com/bnema/interview-prep-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
