package main

import (
	"os"

	"github.com/maxviazov/nba-totals/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
