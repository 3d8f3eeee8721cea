// Node-level operations: the §4.3 layer of spec.md. Grounded on the
// teacher's table/btree_node.go (LeafNode/InteriorNode methods), redone as
// free functions over page.Buf views so the tagged-dispatch lives in one
// place (page.Type) instead of a Go interface per spec.md §9.
package btree

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/mmihic/rowtree/page"
	"github.com/mmihic/rowtree/pager"
)

func (t *Tree) getPage(pageNum uint32) (page.Buf, error) {
	buf, err := t.pgr.Get(pageNum)
	if err != nil {
		return nil, errors.Wrapf(err, "btree: get page %d", pageNum)
	}
	return buf, nil
}

func (t *Tree) allocatePage() (uint32, error) {
	if t.pgr.NumPages() >= pager.TableMaxPages {
		return 0, ErrTableFull
	}
	return t.pgr.GetUnusedPageNum(), nil
}

// maxKey returns the greatest key reachable from pageNum: the last leaf
// cell for a leaf, or the max key of the right child's subtree for an
// internal node, resolved recursively (spec.md §4.3 get_node_max_key).
func (t *Tree) maxKey(pageNum uint32) (uint32, error) {
	buf, err := t.getPage(pageNum)
	if err != nil {
		return 0, err
	}
	if page.Type(buf) == page.NodeLeaf {
		n := page.LeafNumCells(buf)
		if n == 0 {
			return 0, nil
		}
		return page.LeafKey(buf, n-1), nil
	}
	right := page.InternalRightChild(buf)
	page.CheckChild(right)
	return t.maxKey(right)
}

// leafFind returns the first cell index i in buf with key(i) >= searched,
// or NumCells if every key is smaller. This is the insertion point;
// callers check equality separately (spec.md §4.3 leaf_find).
func leafFind(buf page.Buf, key uint32) uint32 {
	n := int(page.LeafNumCells(buf))
	idx := sort.Search(n, func(i int) bool {
		return page.LeafKey(buf, uint32(i)) >= key
	})
	return uint32(idx)
}

// internalFindChild returns the least cell index i with cell_key(i) >= key,
// or NumKeys if every key is smaller — meaning "follow the right child"
// (spec.md §4.3 internal_find_child).
func internalFindChild(buf page.Buf, key uint32) uint32 {
	n := int(page.InternalNumKeys(buf))
	idx := sort.Search(n, func(i int) bool {
		return page.InternalChildKey(buf, uint32(i)) >= key
	})
	return uint32(idx)
}

// updateInternalKey rewrites the separator key that used to equal oldKey
// to newKey, used when a child's max key changes after a split (spec.md
// §4.3 update_internal_key).
func updateInternalKey(buf page.Buf, oldKey, newKey uint32) {
	idx := internalFindChild(buf, oldKey)
	page.SetInternalKey(buf, idx, newKey)
}
