package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmihic/rowtree/page"
)

// StatementType distinguishes the two statements this REPL understands.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parser's output: either Insert{row} or Select
// (spec.md §1 "produces Insert{row} or Select").
type Statement struct {
	Type        StatementType
	RowToInsert page.Row
}

// Parse error sentinels, matching the literal messages spec.md §6 requires.
const (
	msgSyntaxError      = "Syntax error. Could not parse statement."
	msgNegativeID       = "ID must be positive."
	msgStringTooLong    = "String is too long."
	msgUnrecognizedStmt = "Unrecognized keyword at start of '%s'."
)

// prepareError is a user-facing parse failure: the REPL prints Message and
// continues (spec.md §7 "User errors").
type prepareError struct {
	Message string
}

func (e *prepareError) Error() string { return e.Message }

// parseStatement turns one input line into a Statement, or a
// *prepareError describing why it could not be parsed.
func parseStatement(input string) (*Statement, error) {
	switch {
	case input == "select":
		return &Statement{Type: StatementSelect}, nil
	case strings.HasPrefix(input, "insert"):
		return parseInsert(input)
	default:
		return nil, &prepareError{Message: fmt.Sprintf(msgUnrecognizedStmt, input)}
	}
}

func parseInsert(input string) (*Statement, error) {
	fields := strings.Fields(input)
	// fields[0] == "insert"; need id, username, email.
	if len(fields) < 4 {
		return nil, &prepareError{Message: msgSyntaxError}
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, &prepareError{Message: msgSyntaxError}
	}
	if id < 0 {
		return nil, &prepareError{Message: msgNegativeID}
	}
	username, email := fields[2], fields[3]
	if len(username) > page.UsernameSize-1 || len(email) > page.EmailSize-1 {
		return nil, &prepareError{Message: msgStringTooLong}
	}
	row := page.Row{ID: uint32(id), Username: username, Email: email}
	return &Statement{Type: StatementInsert, RowToInsert: row}, nil
}
