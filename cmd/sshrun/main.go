package main

import (
	"os"

	"github.com/jmartelli/sshrun/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
