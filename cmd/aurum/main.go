package main

import (
	"os"

	"github.com/aurumkit/aurum/cmd/aurum/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
