package main

import (
	"os"

	"github.com/nepali-holidays/nepcal/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
