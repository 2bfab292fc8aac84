package main

import (
	"os"

	"github.com/ThomasCrouzet/compose2easypanel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
