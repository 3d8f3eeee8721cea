package repl

import (
	"bytes"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDBPath(t *testing.T) string {
	f, err := os.CreateTemp("", "repl_test_*.db")
	require.NoError(t, err)
	path := f.Name()
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(path) })
	return path
}

func runLines(t *testing.T, lines ...string) string {
	t.Helper()
	path := tempDBPath(t)
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	require.NoError(t, Run(path, in, &out))
	return out.String()
}

// TestSingleInsertAndSelect is spec.md §8 scenario S1.
func TestSingleInsertAndSelect(t *testing.T) {
	out := runLines(t, "insert 1 user1 person1@example.com", "select", ".exit")
	assert.Contains(t, out, "Executed.")
	assert.Contains(t, out, "(1, user1, person1@example.com)")
}

// TestDuplicateKeyScenario is spec.md §8 scenario S2.
func TestDuplicateKeyScenario(t *testing.T) {
	out := runLines(t,
		"insert 1 user1 person1@example.com",
		"insert 1 user1 person1@example.com",
		".exit")
	assert.Contains(t, out, "Error: Duplicate key.")
}

// TestOversizeStringScenario is spec.md §8 scenario S3.
func TestOversizeStringScenario(t *testing.T) {
	longUsername := strings.Repeat("a", 33)
	out := runLines(t,
		"insert 1 "+longUsername+" foo@bar",
		"select",
		".exit")
	assert.Contains(t, out, "String is too long.")
	assert.NotContains(t, out, longUsername)
}

// TestNegativeIDScenario is spec.md §8 scenario S4.
func TestNegativeIDScenario(t *testing.T) {
	out := runLines(t, "insert -1 foo bar", ".exit")
	assert.Contains(t, out, "ID must be positive.")
}

func TestUnrecognizedMetaCommand(t *testing.T) {
	out := runLines(t, ".nonsense", ".exit")
	assert.Contains(t, out, "Unrecognized command '.nonsense'.")
}

func TestConstantsCommand(t *testing.T) {
	out := runLines(t, ".constants", ".exit")
	assert.Contains(t, out, "ROW_SIZE: 293")
	assert.Contains(t, out, "LEAF_NODE_MAX_CELLS: 13")
}

// TestLeafSplitScenario is spec.md §8 scenario S5.
func TestLeafSplitScenario(t *testing.T) {
	var lines []string
	for id := 1; id <= 14; id++ {
		lines = append(lines, "insert "+strconv.Itoa(id)+" user email@example.com")
	}
	lines = append(lines, ".btree", "select", ".exit")
	out := runLines(t, lines...)

	assert.Contains(t, out, "- internal (size 1)")
	assert.Contains(t, out, "- leaf (size 7)")
	for id := 1; id <= 14; id++ {
		assert.Contains(t, out, "("+strconv.Itoa(id)+", user, email@example.com)")
	}
}
