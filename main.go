package main

import (
	"os"

	"github.com/DeGlorio/AI-Job-Matching/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
