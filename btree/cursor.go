package btree

import "github.com/mmihic/rowtree/page"

// Cursor is a position (page, cell) on the leaf chain, plus an
// end-of-table flag (spec.md §3 Cursor). It is invalidated by any
// mutating call on the tree that produced it — spec.md §5 Resource
// ownership.
type Cursor struct {
	tree       *Tree
	Page       uint32
	Cell       uint32
	EndOfTable bool
}

// Value returns the row at the cursor's current position.
func (c *Cursor) Value() (page.Row, error) {
	return c.tree.Row(c.Page, c.Cell)
}

// Advance moves the cursor to the next cell, following next_leaf when the
// current leaf is exhausted. next_leaf == 0 means end-of-table: page 0 is
// the root and a leaf chain never legitimately points back to it, so 0 is
// safe to reuse as the "no next leaf" sentinel (spec.md §9.2).
func (c *Cursor) Advance() error {
	buf, err := c.tree.getPage(c.Page)
	if err != nil {
		return err
	}
	c.Cell++
	if c.Cell < page.LeafNumCells(buf) {
		return nil
	}
	next := page.LeafNextLeaf(buf)
	if next == 0 {
		c.EndOfTable = true
		return nil
	}
	c.Page = next
	c.Cell = 0
	return nil
}
