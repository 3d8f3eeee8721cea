// Insert-side tree surgery: leaf insert/split, root creation, and internal
// insert/split — spec.md §4.5. Grounded on the teacher's
// table/btree_node.go (LeafNode.Insert / InteriorNode.Insert), rewritten to
// follow spec.md's exact redistribution and cascade rules rather than the
// teacher's simpler midpoint split (the teacher doesn't model a separate
// right_child or the LEFT_SPLIT/RIGHT_SPLIT asymmetry spec.md requires).
package btree

import (
	"github.com/mmihic/rowtree/page"
)

// leafInsert inserts (key, row) at cursor's position, splitting the leaf
// first if it is already at capacity.
func (t *Tree) leafInsert(cursor *Cursor, key uint32, row page.Row) error {
	buf, err := t.getPage(cursor.Page)
	if err != nil {
		return err
	}
	numCells := page.LeafNumCells(buf)
	if numCells < page.LeafMaxCells {
		for i := numCells; i > cursor.Cell; i-- {
			copy(page.LeafCell(buf, i), page.LeafCell(buf, i-1))
		}
		page.SetLeafKey(buf, cursor.Cell, key)
		if err := page.Serialize(row, page.LeafValue(buf, cursor.Cell)); err != nil {
			return err
		}
		page.SetLeafNumCells(buf, numCells+1)
		return nil
	}
	return t.leafSplit(cursor, key, row)
}

// leafSplit redistributes the full leaf's MAX cells plus the new (key, row)
// across the old leaf and a freshly allocated sibling, per spec.md §4.5's
// "iterate i from MAX down to 0" rule, then fixes up the parent (or
// creates a new root).
func (t *Tree) leafSplit(cursor *Cursor, key uint32, row page.Row) error {
	oldPage := cursor.Page
	oldBuf, err := t.getPage(oldPage)
	if err != nil {
		return err
	}
	oldMaxBeforeSplit := page.LeafKey(oldBuf, page.LeafMaxCells-1)

	newPage, err := t.allocatePage()
	if err != nil {
		return err
	}
	newBuf, err := t.getPage(newPage)
	if err != nil {
		return err
	}
	page.InitLeaf(newBuf)
	page.SetParent(newBuf, page.Parent(oldBuf))
	page.SetLeafNextLeaf(newBuf, page.LeafNextLeaf(oldBuf))
	page.SetLeafNextLeaf(oldBuf, newPage)

	rowBuf := make([]byte, page.RowSize)
	if err := page.Serialize(row, rowBuf); err != nil {
		return err
	}

	for i := int(page.LeafMaxCells); i >= 0; i-- {
		idx := uint32(i)
		var dest page.Buf
		if idx >= page.LeafLeftSplitCount {
			dest = newBuf
		} else {
			dest = oldBuf
		}
		within := idx % page.LeafLeftSplitCount

		switch {
		case idx == cursor.Cell:
			page.SetLeafKey(dest, within, key)
			copy(page.LeafValue(dest, within), rowBuf)
		case idx > cursor.Cell:
			copy(page.LeafCell(dest, within), page.LeafCell(oldBuf, idx-1))
		default:
			copy(page.LeafCell(dest, within), page.LeafCell(oldBuf, idx))
		}
	}
	page.SetLeafNumCells(oldBuf, page.LeafLeftSplitCount)
	page.SetLeafNumCells(newBuf, page.LeafRightSplitCount)

	if page.IsRoot(oldBuf) {
		_, err := t.createNewRoot(newPage)
		return err
	}

	parentPage := page.Parent(oldBuf)
	parentBuf, err := t.getPage(parentPage)
	if err != nil {
		return err
	}
	newMax := page.LeafKey(oldBuf, page.LeafNumCells(oldBuf)-1)
	updateInternalKey(parentBuf, oldMaxBeforeSplit, newMax)
	return t.internalInsert(parentPage, newPage)
}

// createNewRoot promotes the current root's contents into a freshly
// allocated left child, and reinitializes the root page as an internal
// node with two children: the new left child and rightPage. Returns the
// new left child's page number. See spec.md §4.5 "Create-new-root".
func (t *Tree) createNewRoot(rightPage uint32) (uint32, error) {
	rootBuf, err := t.getPage(RootPage)
	if err != nil {
		return 0, err
	}
	wasInternal := page.Type(rootBuf) == page.NodeInternal

	// Materialize rightPage before allocating the left child. The two page
	// numbers cannot collide either way: GetUnusedPageNum reserves every
	// number it hands out by advancing the pager's page count.
	rightBuf, err := t.getPage(rightPage)
	if err != nil {
		return 0, err
	}
	leftPage, err := t.allocatePage()
	if err != nil {
		return 0, err
	}
	leftBuf, err := t.getPage(leftPage)
	if err != nil {
		return 0, err
	}

	if wasInternal {
		page.InitInternal(rightBuf)
	}

	copy(leftBuf, rootBuf)
	page.SetIsRoot(leftBuf, false)

	if page.Type(leftBuf) == page.NodeInternal {
		n := page.InternalNumKeys(leftBuf)
		for i := uint32(0); i < n; i++ {
			child := page.InternalChild(leftBuf, i)
			page.CheckChild(child)
			childBuf, err := t.getPage(child)
			if err != nil {
				return 0, err
			}
			page.SetParent(childBuf, leftPage)
		}
		rc := page.InternalRightChild(leftBuf)
		page.CheckChild(rc)
		rcBuf, err := t.getPage(rc)
		if err != nil {
			return 0, err
		}
		page.SetParent(rcBuf, leftPage)
	}

	page.InitInternal(rootBuf)
	page.SetIsRoot(rootBuf, true)
	page.SetInternalNumKeys(rootBuf, 1)
	page.SetInternalChild(rootBuf, 0, leftPage)
	leftMax, err := t.maxKey(leftPage)
	if err != nil {
		return 0, err
	}
	page.SetInternalKey(rootBuf, 0, leftMax)
	page.SetInternalRightChild(rootBuf, rightPage)

	page.SetParent(leftBuf, RootPage)
	page.SetParent(rightBuf, RootPage)

	return leftPage, nil
}

// internalInsert splices childPage into parentPage as a new cell (or the
// right child), splitting parentPage first if it is already at capacity.
// See spec.md §4.5 "Internal insert".
func (t *Tree) internalInsert(parentPage, childPage uint32) error {
	parentBuf, err := t.getPage(parentPage)
	if err != nil {
		return err
	}
	childBuf, err := t.getPage(childPage)
	if err != nil {
		return err
	}
	childMax, err := t.maxKey(childPage)
	if err != nil {
		return err
	}

	n := page.InternalNumKeys(parentBuf)
	if n >= page.InternalMaxCells {
		return t.internalSplit(parentPage, childPage)
	}

	if page.InternalRightChild(parentBuf) == page.InvalidPageNum {
		page.SetInternalRightChild(parentBuf, childPage)
		page.SetParent(childBuf, parentPage)
		return nil
	}

	index := internalFindChild(parentBuf, childMax)
	rightChildPage := page.InternalRightChild(parentBuf)
	rightMax, err := t.maxKey(rightChildPage)
	if err != nil {
		return err
	}

	page.SetInternalNumKeys(parentBuf, n+1)

	if childMax > rightMax {
		page.SetInternalChild(parentBuf, n, rightChildPage)
		page.SetInternalKey(parentBuf, n, rightMax)
		page.SetInternalRightChild(parentBuf, childPage)
	} else {
		for i := n; i > index; i-- {
			page.SetInternalChild(parentBuf, i, page.InternalChild(parentBuf, i-1))
			page.SetInternalKey(parentBuf, i, page.InternalChildKey(parentBuf, i-1))
		}
		page.SetInternalChild(parentBuf, index, childPage)
		page.SetInternalKey(parentBuf, index, childMax)
	}
	page.SetParent(childBuf, parentPage)
	return nil
}

// internalSplit splits an overflowing internal node, cascading into a new
// root when the overflowing node is itself the root. See spec.md §4.5
// "Internal split" for the step numbering mirrored in the comments below.
func (t *Tree) internalSplit(oldPage, childPage uint32) error {
	oldBuf, err := t.getPage(oldPage)
	if err != nil {
		return err
	}
	// 1. Snapshot old_max.
	oldMax, err := t.maxKey(oldPage)
	if err != nil {
		return err
	}
	childBuf, err := t.getPage(childPage)
	if err != nil {
		return err
	}
	childMax, err := t.maxKey(childPage)
	if err != nil {
		return err
	}

	newPage, err := t.allocatePage()
	if err != nil {
		return err
	}

	// 2. Determine splitting_root and set up parent/new.
	splittingRoot := page.IsRoot(oldBuf)
	var parentPage uint32
	var newBuf page.Buf

	if splittingRoot {
		leftPage, err := t.createNewRoot(newPage)
		if err != nil {
			return err
		}
		parentPage = RootPage
		oldPage = leftPage
		oldBuf, err = t.getPage(oldPage)
		if err != nil {
			return err
		}
		newBuf, err = t.getPage(newPage)
		if err != nil {
			return err
		}
	} else {
		parentPage = page.Parent(oldBuf)
		newBuf, err = t.getPage(newPage)
		if err != nil {
			return err
		}
		page.InitInternal(newBuf)
	}

	// 3. Move old.right_child into new.
	curPage := page.InternalRightChild(oldBuf)
	page.CheckChild(curPage)
	if err := t.internalInsert(newPage, curPage); err != nil {
		return err
	}
	curBuf, err := t.getPage(curPage)
	if err != nil {
		return err
	}
	page.SetParent(curBuf, newPage)
	page.SetInternalRightChild(oldBuf, page.InvalidPageNum)

	// 4. Move the upper half of old's cells into new.
	for i := int(page.InternalMaxCells) - 1; i > int(page.InternalMaxCells)/2; i-- {
		curPage = page.InternalChild(oldBuf, uint32(i))
		if err := t.internalInsert(newPage, curPage); err != nil {
			return err
		}
		curBuf, err = t.getPage(curPage)
		if err != nil {
			return err
		}
		page.SetParent(curBuf, newPage)
		page.SetInternalNumKeys(oldBuf, page.InternalNumKeys(oldBuf)-1)
	}

	// 5. Promote old's remaining highest child to its right_child.
	n := page.InternalNumKeys(oldBuf)
	page.SetInternalRightChild(oldBuf, page.InternalChild(oldBuf, n-1))
	page.SetInternalNumKeys(oldBuf, n-1)

	// 6. Route the original insertion target.
	maxAfterSplit, err := t.maxKey(oldPage)
	if err != nil {
		return err
	}
	destPage := oldPage
	if childMax >= maxAfterSplit {
		destPage = newPage
	}
	if err := t.internalInsert(destPage, childPage); err != nil {
		return err
	}
	page.SetParent(childBuf, destPage)

	// 7. Fix up the parent's key for old, and insert new into it.
	parentBuf, err := t.getPage(parentPage)
	if err != nil {
		return err
	}
	newMaxForOld, err := t.maxKey(oldPage)
	if err != nil {
		return err
	}
	updateInternalKey(parentBuf, oldMax, newMaxForOld)

	if !splittingRoot {
		if err := t.internalInsert(parentPage, newPage); err != nil {
			return err
		}
		page.SetParent(newBuf, parentPage)
	}

	return nil
}
