package main

import (
	"os"

	"minisearch/cmd/searchcli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
