package main

import (
	"os"

	"github.com/abhisek/factforge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
