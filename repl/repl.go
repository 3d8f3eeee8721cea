package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/mmihic/rowtree/btree"
	"github.com/mmihic/rowtree/engine"
)

// Run drives the REPL against the table opened at path until .exit or EOF
// on in. Grounded on the teacher's main.go main loop, restructured so the
// meta-command / statement-execution split matches spec.md §6 exactly.
func Run(path string, in io.Reader, out io.Writer) error {
	table, err := engine.Open(path)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	for {
		fmt.Fprint(out, prompt)
		line, err := readInput(reader)
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if line == "" {
			continue
		}

		if line[0] == '.' {
			if handleMetaCommand(line, table, out) == metaExit {
				return table.Close()
			}
			continue
		}

		stmt, perr := parseStatement(line)
		if perr != nil {
			fmt.Fprintln(out, perr.Error())
			continue
		}
		execute(table, stmt, out)
	}

	return table.Close()
}

// execute runs one parsed statement against table, printing the result
// line spec.md §6 specifies for each outcome.
func execute(table *engine.Table, stmt *Statement, out io.Writer) {
	switch stmt.Type {
	case StatementInsert:
		err := table.Insert(stmt.RowToInsert)
		switch {
		case err == nil:
			fmt.Fprintln(out, "Executed.")
		case err == btree.ErrDuplicateKey:
			fmt.Fprintln(out, "Error: Duplicate key.")
		case err == btree.ErrTableFull:
			fmt.Fprintln(out, "Error: Table is full")
		default:
			logrus.WithError(err).Error("repl: insert failed")
			fmt.Fprintln(out, "Error:", err)
		}
	case StatementSelect:
		executeSelect(table, out)
	}
}

func executeSelect(table *engine.Table, out io.Writer) {
	cursor, err := table.Start()
	if err != nil {
		logrus.WithError(err).Error("repl: select failed")
		fmt.Fprintln(out, "Error:", err)
		return
	}
	for !cursor.EndOfTable {
		row, err := cursor.Value()
		if err != nil {
			logrus.WithError(err).Error("repl: select failed reading row")
			fmt.Fprintln(out, "Error:", err)
			return
		}
		printRow(out, row)
		if err := cursor.Advance(); err != nil {
			logrus.WithError(err).Error("repl: select failed advancing cursor")
			fmt.Fprintln(out, "Error:", err)
			return
		}
	}
	fmt.Fprintln(out, "Executed.")
}
