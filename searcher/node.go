package searcher

import (
	"aitrees/game"
)

const noParent = -1

type node struct {
	parent   int32
	depth    int
	action   game.Action // Incoming action, nil at the root
	actor    game.Actor  // Actor whose move produced state
	state    game.State
	untried  []game.Action // Shuffled once, popped from the end
	children []int32
	visits   uint64
	wins     uint64
}

// tree is an arena of nodes. Index 0 is always the root.
type tree struct {
	nodes  []node
	policy Policy
	rng    game.Rand
}

// Node is a handle to a node of a search tree. The zero Node refers to no node.
// A tree is not safe for concurrent use.
type Node struct {
	t  *tree
	id int32
}

// NewRoot builds a single-node tree for state. The untried actions of every node are
// shuffled once with rng, and children are scored with policy.
func NewRoot(state game.State, policy Policy, rng game.Rand) Node {
	if policy == nil {
		policy = WinRate{}
	}
	t := &tree{policy: policy, rng: rng}
	t.push(node{
		parent: noParent,
		actor:  state.JustActed(),
		state:  state,
	})
	return Node{t: t, id: 0}
}

func (t *tree) push(n node) int32 {
	if !n.state.IsTerminal() {
		n.untried = n.state.LegalActions()
		t.rng.Shuffle(len(n.untried), func(i, j int) {
			n.untried[i], n.untried[j] = n.untried[j], n.untried[i]
		})
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

func (n Node) get() *node {
	return &n.t.nodes[n.id]
}

func (n Node) IsZero() bool {
	return n.t == nil
}

func (n Node) IsRoot() bool {
	return n.get().parent == noParent
}

func (n Node) Depth() int {
	return n.get().depth
}

// Parent returns the zero Node for the root.
func (n Node) Parent() Node {
	parent := n.get().parent
	if parent == noParent {
		return Node{}
	}
	return Node{t: n.t, id: parent}
}

func (n Node) Children() []Node {
	ids := n.get().children
	children := make([]Node, len(ids))
	for i, id := range ids {
		children[i] = Node{t: n.t, id: id}
	}
	return children
}

// Action is the move that led from the parent to this node, nil at the root.
func (n Node) Action() game.Action {
	return n.get().action
}

// Actor is the actor whose move produced this node's state.
func (n Node) Actor() game.Actor {
	return n.get().actor
}

func (n Node) State() game.State {
	return n.get().state
}

func (n Node) Visits() uint64 {
	return n.get().visits
}

func (n Node) Wins() uint64 {
	return n.get().wins
}

// Untried is the number of legal actions not yet expanded into children.
func (n Node) Untried() int {
	return len(n.get().untried)
}

func (n Node) FullyExpanded() bool {
	return len(n.get().untried) == 0
}

func (n Node) HasChildren() bool {
	return len(n.get().children) > 0
}

func (n Node) Policy() Policy {
	return n.t.policy
}

// Size is the number of nodes in the subtree rooted at n.
func (n Node) Size() int {
	size := 1
	for _, child := range n.get().children {
		size += Node{t: n.t, id: child}.Size()
	}
	return size
}

// UntriedAction pops the next action from the pre-shuffled pool.
func (n Node) UntriedAction() (game.Action, bool) {
	nd := n.get()
	if len(nd.untried) == 0 {
		return nil, false
	}
	last := len(nd.untried) - 1
	action := nd.untried[last]
	nd.untried[last] = nil
	nd.untried = nd.untried[:last]
	return action, true
}

// AddChild attaches state, reached through action, as a new child. The action must
// already have been taken out of the untried pool.
func (n Node) AddChild(action game.Action, state game.State) Node {
	parent := n.get()
	id := n.t.push(node{
		parent: n.id,
		depth:  parent.depth + 1,
		action: action,
		actor:  action.Actor(),
		state:  state,
	})
	// push may grow the arena, so the parent is looked up again
	nd := n.get()
	nd.children = append(nd.children, id)
	return Node{t: n.t, id: id}
}

// Update records one playout result from the perspective of the node's actor.
func (n Node) Update(outcome game.Outcome) {
	nd := n.get()
	nd.visits++
	if outcome == game.Win {
		nd.wins++
	}
}

// Score is the policy value of n as seen from its parent.
func (n Node) Score() float64 {
	nd := n.get()
	var parentVisits uint64
	if nd.parent != noParent {
		parentVisits = n.t.nodes[nd.parent].visits
	}
	return n.t.policy.Score(parentVisits, nd.wins, nd.visits)
}

// SelectChild returns the child with the highest policy score, the first one on ties.
// It returns the zero Node when there are no children.
func (n Node) SelectChild() Node {
	nd := n.get()
	if len(nd.children) == 0 {
		return Node{}
	}

	best := nd.children[0]
	bestScore := n.t.policy.Score(nd.visits, n.t.nodes[best].wins, n.t.nodes[best].visits)
	for _, id := range nd.children[1:] {
		child := &n.t.nodes[id]
		if score := n.t.policy.Score(nd.visits, child.wins, child.visits); score > bestScore {
			best, bestScore = id, score
		}
	}
	return Node{t: n.t, id: best}
}

// BestChild returns the most visited child, the first one on ties.
func (n Node) BestChild() (Node, bool) {
	nd := n.get()
	if len(nd.children) == 0 {
		return Node{}, false
	}

	best := nd.children[0]
	for _, id := range nd.children[1:] {
		if n.t.nodes[id].visits > n.t.nodes[best].visits {
			best = id
		}
	}
	return Node{t: n.t, id: best}, true
}

func (n Node) BestAction() (game.Action, bool) {
	best, ok := n.BestChild()
	if !ok {
		return nil, false
	}
	return best.Action(), true
}
