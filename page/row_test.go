package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	row := Row{ID: 1, Username: "user1", Email: "person1@example.com"}
	buf := make([]byte, RowSize)
	require.NoError(t, Serialize(row, buf))

	got, err := Deserialize(buf)
	require.NoError(t, err)
	assert.Equal(t, row, got)
}

func TestSerializeRejectsOversizeFields(t *testing.T) {
	buf := make([]byte, RowSize)

	longUsername := Row{ID: 1, Username: string(make([]byte, 33)), Email: "foo@bar"}
	assert.ErrorIs(t, Serialize(longUsername, buf), ErrStringTooLong)

	longEmail := Row{ID: 1, Username: "foo", Email: string(make([]byte, 256))}
	assert.ErrorIs(t, Serialize(longEmail, buf), ErrStringTooLong)
}

func TestSerializeRejectsWrongBufferSize(t *testing.T) {
	row := Row{ID: 1, Username: "a", Email: "b"}
	err := Serialize(row, make([]byte, RowSize-1))
	assert.Error(t, err)
}
