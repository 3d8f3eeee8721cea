package engine

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmihic/rowtree/page"
)

func tempDBPath(t *testing.T) string {
	f, err := os.CreateTemp("", "engine_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestOpenInsertFindClose(t *testing.T) {
	path := tempDBPath(t)
	table, err := Open(path)
	require.NoError(t, err)

	row := page.Row{ID: 1, Username: "user1", Email: "person1@example.com"}
	require.NoError(t, table.Insert(row))

	cursor, err := table.Find(1)
	require.NoError(t, err)
	got, err := cursor.Value()
	require.NoError(t, err)
	assert.Equal(t, row, got)

	require.NoError(t, table.Close())
}

func TestReopenPreservesRows(t *testing.T) {
	path := tempDBPath(t)
	table, err := Open(path)
	require.NoError(t, err)
	for id := uint32(1); id <= 5; id++ {
		require.NoError(t, table.Insert(page.Row{ID: id, Username: "u", Email: "e"}))
	}
	require.NoError(t, table.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	cursor, err := reopened.Start()
	require.NoError(t, err)
	count := 0
	for !cursor.EndOfTable {
		_, err := cursor.Value()
		require.NoError(t, err)
		count++
		require.NoError(t, cursor.Advance())
	}
	assert.Equal(t, 5, count)
}
