package main

import (
	"fmt"
	"os"

	"github.com/kiranmohan-hh/mcp-server/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCodeFor(err))
	}
}
