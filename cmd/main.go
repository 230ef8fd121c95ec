package main

import (
	"os"

	"github.com/elianna-2004/kahoot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
