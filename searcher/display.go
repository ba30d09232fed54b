package searcher

import (
	"fmt"
	"sort"
	"strings"
)

// DisplayTree draws n and its descendants, one indented line per node, down to maxDepth
// levels below n. A negative maxDepth draws the whole subtree.
func DisplayTree(n Node, maxDepth int) string {
	var sb strings.Builder
	displayTree(&sb, n, 0, maxDepth)
	return sb.String()
}

func displayTree(sb *strings.Builder, n Node, level, maxDepth int) {
	fmt.Fprintf(sb, "%s[M: %s D: %d W/V: %d/%d U: %d C: %d]\n",
		strings.Repeat("  ", level), actionName(n), n.Depth(), n.Wins(), n.Visits(), n.Untried(), len(n.get().children))
	if maxDepth >= 0 && level >= maxDepth {
		return
	}
	for _, child := range n.Children() {
		displayTree(sb, child, level+1, maxDepth)
	}
}

// DisplayChildren lists the children of n from most to least visited.
func DisplayChildren(n Node) string {
	children := n.Children()
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Visits() > children[j].Visits()
	})

	var sb strings.Builder
	for _, child := range children {
		fmt.Fprintf(&sb, "N: %s, D: %d, W/V: %d/%d, S: %.4f\n",
			actionName(child), child.Depth(), child.Wins(), child.Visits(), child.Score())
	}
	return sb.String()
}

func actionName(n Node) string {
	if n.Action() == nil {
		return "root"
	}
	return strings.ReplaceAll(n.Action().String(), "\n", " ")
}
