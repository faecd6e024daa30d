package main

import (
	"os"

	"github.com/AutomatedProcessImprovement/simulation-copilot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
