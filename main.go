package main

import (
	"os"

	"github.com/abhisek/az104/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
