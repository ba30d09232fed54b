package searcher

import (
	"errors"
	"fmt"

	"aitrees/game"
)

var ErrNoMatchingChild = errors.New("no child holds the state")

// ChildWithState finds the child whose state equals target. Children that have not been
// expanded yet are expanded one by one until a match turns up or no actions remain.
func (n Node) ChildWithState(target game.State) (Node, error) {
	for _, child := range n.Children() {
		if game.Equal(child.State(), target) {
			return child, nil
		}
	}

	for {
		action, ok := n.UntriedAction()
		if !ok {
			break
		}
		child := n.AddChild(action, action.Apply())
		if game.Equal(child.State(), target) {
			return child, nil
		}
	}
	return Node{}, fmt.Errorf("%w among %d children:\n%s", ErrNoMatchingChild, len(n.get().children), target)
}

// AsRoot copies the subtree under n into a new tree with n as its root. Statistics,
// children and untried actions are kept; depths restart at 0. The source tree is left
// untouched and can be dropped.
func (n Node) AsRoot() Node {
	t := &tree{
		nodes:  make([]node, 0, n.Size()),
		policy: n.t.policy,
		rng:    n.t.rng,
	}
	offset := n.Depth()

	var clone func(id, parent int32) int32
	clone = func(id, parent int32) int32 {
		src := n.t.nodes[id]
		dst := src
		dst.parent = parent
		dst.depth = src.depth - offset
		dst.untried = append([]game.Action(nil), src.untried...)
		dst.children = make([]int32, 0, len(src.children))
		if parent == noParent {
			dst.action = nil
		}

		t.nodes = append(t.nodes, dst)
		cloned := int32(len(t.nodes) - 1)
		for _, child := range src.children {
			c := clone(child, cloned)
			t.nodes[cloned].children = append(t.nodes[cloned].children, c)
		}
		return cloned
	}
	clone(n.id, noParent)

	return Node{t: t, id: 0}
}

// Advance moves root to the node for an observed state and re-roots there. The root is
// returned as is when it already holds state, and a zero root stays zero.
func Advance(root Node, state game.State) (Node, error) {
	if root.IsZero() {
		return Node{}, nil
	}
	if game.Equal(root.State(), state) {
		return root, nil
	}

	child, err := root.ChildWithState(state)
	if err != nil {
		return Node{}, err
	}
	return child.AsRoot(), nil
}
