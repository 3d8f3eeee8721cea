package repl

import (
	"fmt"
	"io"

	"github.com/mmihic/rowtree/page"
)

// printRow writes one row in the "(<id>, <username>, <email>)" format
// spec.md §6 requires for select output.
func printRow(out io.Writer, row page.Row) {
	fmt.Fprintf(out, "(%d, %s, %s)\n", row.ID, row.Username, row.Email)
}
