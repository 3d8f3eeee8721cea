package btree

import "github.com/pkg/errors"

// ErrDuplicateKey is returned by Insert when the row's id already exists.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrTableFull is returned by Insert once the pager has exhausted
// pager.TableMaxPages. spec.md §9.4 flags this as reachable-but-never-wired
// in the source; this rewrite wires it up for real.
var ErrTableFull = errors.New("table is full")
