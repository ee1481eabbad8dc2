package main

import (
	"os"

	"github.com/invoice-tracker/invoicetrack/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
