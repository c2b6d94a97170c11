package main

import (
	"os"
	_ "time/tzdata"

	"github.com/goliatone/go-formkit/cmd/formkit/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
