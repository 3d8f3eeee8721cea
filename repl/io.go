// Package repl is the line-oriented front end spec.md §1 calls an
// "external collaborator": the prompt, input reader, meta-command
// dispatch, statement parser, and printing. None of it is the storage
// core, but a complete repo still needs it wired end to end. Grounded on
// the teacher's io.go/command.go/statement.go/main.go.
package repl

import (
	"bufio"
	"strings"
)

const prompt = "db > "

func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}
