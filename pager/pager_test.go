package pager

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDBPath(t *testing.T) string {
	f, err := os.CreateTemp("", "pager_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func TestOpenEmptyFile(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path)
	require.NoError(t, err)
	defer p.Close()

	assert.EqualValues(t, 0, p.NumPages())
}

func TestGetDemandLoadsAndGrowsNumPages(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path)
	require.NoError(t, err)
	defer p.Close()

	buf, err := p.Get(0)
	require.NoError(t, err)
	assert.Len(t, buf, PageSize)
	assert.EqualValues(t, 1, p.NumPages())

	buf[0] = 0xAB
	buf2, err := p.Get(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), buf2[0], "Get must return the same resident buffer, not a fresh copy")
}

func TestGetUnusedPageNumIsMonotonic(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path)
	require.NoError(t, err)
	defer p.Close()

	assert.EqualValues(t, 0, p.GetUnusedPageNum())
	_, err = p.Get(0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, p.GetUnusedPageNum())
}

func TestFlushAndReopenPersists(t *testing.T) {
	path := tempDBPath(t)
	p, err := Open(path)
	require.NoError(t, err)

	buf, err := p.Get(0)
	require.NoError(t, err)
	buf[0] = 0x42
	require.NoError(t, p.Close())

	p2, err := Open(path)
	require.NoError(t, err)
	defer p2.Close()

	assert.EqualValues(t, 1, p2.NumPages())
	got, err := p2.Get(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x42), got[0])
}
