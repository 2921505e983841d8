package main

import (
	"os"

	"github.com/ryabkov82/scimerge/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
