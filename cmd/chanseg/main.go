package main

import (
	"os"

	"github.com/chanseg/chanseg/cmd"
)

func main() {
	if err := cmd.CmdChanseg.Execute(); err != nil {
		os.Exit(1)
	}
}
