package main

import (
	"os"

	"github.com/qxad-lang/qxad/cmd/qxad/cmd"
	"github.com/qxad-lang/qxad/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !cmd.Reported(err) {
			cli.ExitWithError("%v", err)
		}
		os.Exit(1)
	}
}
