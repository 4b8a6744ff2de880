package main

import (
	"os"

	"github.com/planwt/planwt/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
