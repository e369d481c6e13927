package main

import (
	"os"

	"github.com/randomtemp/randomtemp/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
