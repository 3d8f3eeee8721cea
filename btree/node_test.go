package btree

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmihic/rowtree/page"
)

func TestLeafFindReturnsInsertionPoint(t *testing.T) {
	buf := make([]byte, page.Size)
	page.InitLeaf(buf)
	page.SetLeafNumCells(buf, 3)
	page.SetLeafKey(buf, 0, 10)
	page.SetLeafKey(buf, 1, 20)
	page.SetLeafKey(buf, 2, 30)

	assert.EqualValues(t, 0, leafFind(buf, 5))
	assert.EqualValues(t, 0, leafFind(buf, 10))
	assert.EqualValues(t, 1, leafFind(buf, 15))
	assert.EqualValues(t, 2, leafFind(buf, 25))
	assert.EqualValues(t, 3, leafFind(buf, 35))
}

func TestInternalFindChild(t *testing.T) {
	buf := make([]byte, page.Size)
	page.InitInternal(buf)
	page.SetInternalNumKeys(buf, 2)
	page.SetInternalChild(buf, 0, 1)
	page.SetInternalKey(buf, 0, 10)
	page.SetInternalChild(buf, 1, 2)
	page.SetInternalKey(buf, 1, 20)
	page.SetInternalRightChild(buf, 3)

	assert.EqualValues(t, 0, internalFindChild(buf, 5))
	assert.EqualValues(t, 0, internalFindChild(buf, 10))
	assert.EqualValues(t, 1, internalFindChild(buf, 15))
	assert.EqualValues(t, 2, internalFindChild(buf, 25), "keys beyond every cell follow right_child")
}

func TestUpdateInternalKey(t *testing.T) {
	buf := make([]byte, page.Size)
	page.InitInternal(buf)
	page.SetInternalNumKeys(buf, 1)
	page.SetInternalChild(buf, 0, 1)
	page.SetInternalKey(buf, 0, 10)
	page.SetInternalRightChild(buf, 2)

	updateInternalKey(buf, 10, 99)
	assert.EqualValues(t, 99, page.InternalChildKey(buf, 0))
}
