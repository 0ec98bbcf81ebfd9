package main

import (
	"os"

	"github.com/leengari/rabbet/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], cli.StdStreams()))
}
