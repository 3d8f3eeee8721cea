package repl

import (
	"fmt"
	"io"

	"github.com/mmihic/rowtree/btree"
	"github.com/mmihic/rowtree/engine"
	"github.com/mmihic/rowtree/page"
)

// metaResult tells Run whether a meta command wants the REPL to exit.
type metaResult int

const (
	metaContinue metaResult = iota
	metaExit
)

// handleMetaCommand dispatches a line starting with '.'. Unrecognized
// commands print a message and the REPL continues (spec.md §6).
func handleMetaCommand(input string, table *engine.Table, out io.Writer) metaResult {
	switch input {
	case ".exit":
		return metaExit
	case ".btree":
		printBTree(out, table)
		return metaContinue
	case ".constants":
		printConstants(out)
		return metaContinue
	default:
		fmt.Fprintf(out, "Unrecognized command '%s'.\n", input)
		return metaContinue
	}
}

func printConstants(out io.Writer) {
	fmt.Fprintln(out, "ROW_SIZE:", page.RowSize)
	fmt.Fprintln(out, "COMMON_NODE_HEADER_SIZE:", page.CommonHdrSize)
	fmt.Fprintln(out, "LEAF_NODE_HEADER_SIZE:", page.LeafHdrSize)
	fmt.Fprintln(out, "LEAF_NODE_CELL_SIZE:", page.LeafCellSize)
	fmt.Fprintln(out, "LEAF_NODE_SPACE_FOR_CELLS:", page.LeafSpaceForCells)
	fmt.Fprintln(out, "LEAF_NODE_MAX_CELLS:", page.LeafMaxCells)
}

// printBTree dumps the tree from the root in pre-order, using the format
// spec.md §6 specifies: leaves as "- leaf (size N)" with one "- <key>" per
// cell, internals as "- internal (size N)" alternating child subtrees and
// "- key <k>" lines, indented 3 spaces per level.
func printBTree(out io.Writer, table *engine.Table) {
	printNode(out, table, btree.RootPage, 0)
}

func printNode(out io.Writer, table *engine.Table, pageNum uint32, level int) {
	info, err := table.Tree.Inspect(pageNum)
	if err != nil {
		fmt.Fprintf(out, "%s- <error reading page %d: %v>\n", indent(level), pageNum, err)
		return
	}

	switch info.Kind {
	case btree.KindLeaf:
		fmt.Fprintf(out, "%s- leaf (size %d)\n", indent(level), info.NumCells)
		for _, k := range info.Keys {
			fmt.Fprintf(out, "%s- %d\n", indent(level+1), k)
		}
	default: // internal
		fmt.Fprintf(out, "%s- internal (size %d)\n", indent(level), info.NumCells)
		if info.NumCells == 0 {
			return
		}
		children, err := table.Tree.Children(pageNum)
		if err != nil {
			fmt.Fprintf(out, "%s- <error reading children of %d: %v>\n", indent(level+1), pageNum, err)
			return
		}
		for i, key := range info.Keys {
			printNode(out, table, children[i], level+1)
			fmt.Fprintf(out, "%s- key %d\n", indent(level+1), key)
		}
		printNode(out, table, children[len(children)-1], level+1)
	}
}

func indent(level int) string {
	out := make([]byte, 0, level*3)
	for i := 0; i < level; i++ {
		out = append(out, ' ', ' ', ' ')
	}
	return string(out)
}
