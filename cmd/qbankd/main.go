package main

import (
	"os"

	"github.com/pyq-bank/qbank/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
