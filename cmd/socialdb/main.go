package main

import (
	"os"

	"socialdb/cmd/socialdb/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
