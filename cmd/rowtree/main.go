// Command rowtree is the CLI entry point: one positional argument (the
// database file path), no flags, no environment variables (spec.md §6).
package main

import (
	"fmt"
	"os"

	"github.com/mmihic/rowtree/repl"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}

	if err := repl.Run(os.Args[1], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
