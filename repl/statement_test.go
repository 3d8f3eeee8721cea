package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmihic/rowtree/page"
)

func TestParseSelect(t *testing.T) {
	stmt, err := parseStatement("select")
	require.NoError(t, err)
	assert.Equal(t, StatementSelect, stmt.Type)
}

func TestParseInsert(t *testing.T) {
	stmt, err := parseStatement("insert 1 user1 person1@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatementInsert, stmt.Type)
	assert.Equal(t, page.Row{ID: 1, Username: "user1", Email: "person1@example.com"}, stmt.RowToInsert)
}

func TestParseInsertNegativeID(t *testing.T) {
	_, err := parseStatement("insert -1 foo bar")
	require.Error(t, err)
	assert.Equal(t, msgNegativeID, err.Error())
}

func TestParseInsertOversizeUsername(t *testing.T) {
	username := ""
	for i := 0; i < 33; i++ {
		username += "a"
	}
	_, err := parseStatement("insert 1 " + username + " foo@bar")
	require.Error(t, err)
	assert.Equal(t, msgStringTooLong, err.Error())
}

func TestParseInsertMissingFields(t *testing.T) {
	_, err := parseStatement("insert 1 user1")
	require.Error(t, err)
	assert.Equal(t, msgSyntaxError, err.Error())
}

func TestParseUnrecognizedKeyword(t *testing.T) {
	_, err := parseStatement("delete 1")
	require.Error(t, err)
	assert.Equal(t, "Unrecognized keyword at start of 'delete 1'.", err.Error())
}
