// Package engine is the facade spec.md §2 calls out: open(path) -> Table,
// close(Table), find(key) -> Cursor, insert(row), start() -> Cursor. It is
// the thin layer the REPL (an external collaborator per spec.md §1) talks
// to; all the tree/pager machinery lives underneath. Grounded on the shape
// of the teacher's table/table.go OpenTable/Close, though the body is
// replaced: the teacher's flat row-array model doesn't match spec.md's
// B+-tree-only data model, so Table here wraps a btree.Tree instead.
package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/mmihic/rowtree/btree"
	"github.com/mmihic/rowtree/pager"
	"github.com/mmihic/rowtree/page"
)

// Table is the open database: a pager and the B+ tree built over it.
type Table struct {
	Pager *pager.Pager
	Tree  *btree.Tree
	path  string
}

// Open opens path, creating it if it does not yet exist, and initializes
// an empty root leaf for a brand-new file (spec.md §3 Lifecycle).
func Open(path string) (*Table, error) {
	pgr, err := pager.Open(path)
	if err != nil {
		return nil, err
	}
	tree, err := btree.Open(pgr)
	if err != nil {
		return nil, err
	}
	logrus.WithField("path", path).Info("engine: opened table")
	return &Table{Pager: pgr, Tree: tree, path: path}, nil
}

// Close flushes every resident page and releases the file and its
// buffers. There is no durability guarantee before Close (spec.md §5).
func (t *Table) Close() error {
	err := t.Pager.Close()
	logrus.WithField("path", t.path).Info("engine: closed table")
	return err
}

// Insert adds row, rejecting a duplicate key.
func (t *Table) Insert(row page.Row) error {
	return t.Tree.Insert(row)
}

// Find returns a cursor positioned at key, or at its insertion point if
// key is absent.
func (t *Table) Find(key uint32) (*btree.Cursor, error) {
	return t.Tree.Find(key)
}

// Start returns a cursor at the first row in ascending key order.
func (t *Table) Start() (*btree.Cursor, error) {
	return t.Tree.Start()
}
