package main

import (
	"os"

	"github.com/badnails/TestProjectGateway/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
