package page

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Row is the fixed-shape record the tree stores: (id, username, email).
// Unlike the teacher's generic column.Schema, spec.md pins the shape of
// every row, so there is no schema layer here — see DESIGN.md.
type Row struct {
	ID       uint32
	Username string
	Email    string
}

// ErrStringTooLong is returned when Username or Email exceeds its field
// width before truncation would silently lose bytes.
var ErrStringTooLong = errors.New("string is too long")

// Validate checks field widths against the on-disk limits (32 bytes for
// username, 255 for email) without the trailing NUL.
func (r Row) Validate() error {
	if len(r.Username) > UsernameSize-1 {
		return ErrStringTooLong
	}
	if len(r.Email) > EmailSize-1 {
		return ErrStringTooLong
	}
	return nil
}

// Serialize writes r into dst, which must be exactly RowSize bytes.
func Serialize(r Row, dst []byte) error {
	if len(dst) != RowSize {
		return errors.Errorf("page: row buffer is %d bytes, want %d", len(dst), RowSize)
	}
	if err := r.Validate(); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = 0
	}
	binary.LittleEndian.PutUint32(dst[0:IDSize], r.ID)
	copy(dst[IDSize:IDSize+UsernameSize-1], r.Username)
	copy(dst[IDSize+UsernameSize:IDSize+UsernameSize+EmailSize-1], r.Email)
	return nil
}

// Deserialize reads a Row out of src, which must be exactly RowSize bytes.
func Deserialize(src []byte) (Row, error) {
	if len(src) != RowSize {
		return Row{}, errors.Errorf("page: row buffer is %d bytes, want %d", len(src), RowSize)
	}
	id := binary.LittleEndian.Uint32(src[0:IDSize])
	username := trimNUL(src[IDSize : IDSize+UsernameSize])
	email := trimNUL(src[IDSize+UsernameSize : IDSize+UsernameSize+EmailSize])
	return Row{ID: id, Username: username, Email: email}, nil
}

func trimNUL(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
