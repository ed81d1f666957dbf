package main

import (
	"os"

	"github.com/grovetools/reorder/cli"
	"github.com/grovetools/reorder/cmd"
)

func main() {
	if err := cli.Execute(cmd.NewRootCmd()); err != nil {
		os.Exit(1)
	}
}
