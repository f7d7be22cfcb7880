// Package mcts implements arena-based Monte Carlo tree search against
// any rules.Engine: a pluggable selection policy drives in-tree
// descent, a simulation policy handles rollouts past the tree's
// frontier, and an opponent policy models non-searching players whose
// edges grow lazily as they're sampled.
package mcts

import (
	"math"

	"github.com/signalnine/cardsim/core"
)

// NodeId indexes a Tree's arena. NodeNone marks an edge with no child
// yet (unexpanded).
type NodeId uint32

const NodeNone NodeId = math.MaxUint32

// Edge is one action out of a node: the action itself, the child it
// leads to (NodeNone until expanded), how many times it's been taken,
// accumulated per-player reward, and a prior probability used by PUCT.
type Edge struct {
	Action      core.Action
	Child       NodeId
	Visits      uint32
	TotalReward core.PlayerMap[float64]
	Prior       float32
}

func NewEdge(action core.Action, playerCount int) Edge {
	return Edge{Action: action, Child: NodeNone, TotalReward: core.NewPlayerMap(playerCount, 0.0), Prior: 1.0}
}

func NewEdgeWithPrior(action core.Action, playerCount int, prior float32) Edge {
	e := NewEdge(action, playerCount)
	e.Prior = prior
	return e
}

// MeanReward is edge's average reward for player, 0 if never visited.
func (e *Edge) MeanReward(player core.PlayerId) float64 {
	if e.Visits == 0 {
		return 0
	}
	return e.TotalReward.Get(player) / float64(e.Visits)
}

func (e *Edge) IsExpanded() bool { return e.Child != NodeNone }

// Node is one arena entry: its position in the tree (parent id and the
// edge index that led to it), whose turn it is, its depth, visit
// count, terminal status, and its outgoing edges.
type Node struct {
	Parent         NodeId
	ParentEdgeIdx  uint16
	ToMove         core.PlayerId
	Depth          uint16
	Visits         uint32
	IsTerminal     bool
	TerminalReward *core.PlayerMap[float64]
	Edges          []Edge
}

func NewNode(parent NodeId, parentEdgeIdx uint16, toMove core.PlayerId, depth uint16) *Node {
	return &Node{Parent: parent, ParentEdgeIdx: parentEdgeIdx, ToMove: toMove, Depth: depth}
}

func RootNode(toMove core.PlayerId) *Node { return NewNode(NodeNone, 0, toMove, 0) }

// IsFullyExpanded is false for a node with no edges at all - an
// unpopulated node is not "done", it simply hasn't been visited yet.
func (n *Node) IsFullyExpanded() bool {
	if len(n.Edges) == 0 {
		return false
	}
	for i := range n.Edges {
		if !n.Edges[i].IsExpanded() {
			return false
		}
	}
	return true
}

func (n *Node) HasUnexpanded() bool {
	for i := range n.Edges {
		if !n.Edges[i].IsExpanded() {
			return true
		}
	}
	return false
}

func (n *Node) UnexpandedEdges() []int {
	var out []int
	for i := range n.Edges {
		if !n.Edges[i].IsExpanded() {
			out = append(out, i)
		}
	}
	return out
}

// BestEdgeByVisits returns the index of the most-visited edge, or -1
// if the node has no edges.
func (n *Node) BestEdgeByVisits() int {
	best := -1
	var bestVisits uint32
	for i := range n.Edges {
		if best == -1 || n.Edges[i].Visits > bestVisits {
			best = i
			bestVisits = n.Edges[i].Visits
		}
	}
	return best
}

// BestEdgeByReward returns the index of the edge with the highest mean
// reward for player, or -1 if the node has no edges.
func (n *Node) BestEdgeByReward(player core.PlayerId) int {
	best := -1
	var bestReward float64
	for i := range n.Edges {
		r := n.Edges[i].MeanReward(player)
		if best == -1 || r > bestReward {
			best = i
			bestReward = r
		}
	}
	return best
}

// Tree is the search arena: nodes are heap-allocated and referenced by
// index so NodeIds stay stable even as the backing index slice grows.
type Tree struct {
	nodes       []*Node
	root        NodeId
	playerCount int
}

func NewTree(playerCount int) *Tree { return NewTreeWithCapacity(playerCount, 1024) }

func NewTreeWithCapacity(playerCount, capacity int) *Tree {
	return &Tree{nodes: make([]*Node, 0, capacity), playerCount: playerCount}
}

func (t *Tree) Root() NodeId { return t.root }

func (t *Tree) Get(id NodeId) *Node { return t.nodes[id] }

func (t *Tree) GetMut(id NodeId) *Node { return t.nodes[id] }

func (t *Tree) Alloc(node *Node) NodeId {
	id := NodeId(len(t.nodes))
	t.nodes = append(t.nodes, node)
	return id
}

func (t *Tree) Len() int { return len(t.nodes) }

// Reset discards every node and starts a fresh root for rootPlayer.
// Previously issued NodeIds become invalid.
func (t *Tree) Reset(rootPlayer core.PlayerId) {
	t.nodes = t.nodes[:0]
	t.root = t.Alloc(RootNode(rootPlayer))
}

// TreeStats summarizes a tree's shape after a search.
type TreeStats struct {
	NodeCount     int
	MaxDepth      int
	TerminalCount int
	TotalEdges    int
	ExpandedEdges int
}

func (s TreeStats) BranchingFactor() float64 {
	if s.NodeCount == 0 {
		return 0
	}
	return float64(s.TotalEdges) / float64(s.NodeCount)
}

func (s TreeStats) ExpansionRatio() float64 {
	if s.TotalEdges == 0 {
		return 0
	}
	return float64(s.ExpandedEdges) / float64(s.TotalEdges)
}

func (t *Tree) Stats() TreeStats {
	var s TreeStats
	s.NodeCount = len(t.nodes)
	for _, n := range t.nodes {
		if int(n.Depth) > s.MaxDepth {
			s.MaxDepth = int(n.Depth)
		}
		if n.IsTerminal {
			s.TerminalCount++
		}
		s.TotalEdges += len(n.Edges)
		for j := range n.Edges {
			if n.Edges[j].IsExpanded() {
				s.ExpandedEdges++
			}
		}
	}
	return s
}
