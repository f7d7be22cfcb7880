package mcts

import (
	"testing"

	"github.com/signalnine/cardsim/core"
)

func TestNodeIsFullyExpandedFalseWhenEmpty(t *testing.T) {
	n := RootNode(core.PlayerId(0))
	if n.IsFullyExpanded() {
		t.Fatal("a node with zero edges must not report fully expanded")
	}
}

func TestNodeIsFullyExpanded(t *testing.T) {
	n := RootNode(core.PlayerId(0))
	n.Edges = []Edge{NewEdge(core.NewAction(1), 2), NewEdge(core.NewAction(2), 2)}
	if n.IsFullyExpanded() {
		t.Fatal("expected node with unexpanded edges to not be fully expanded")
	}
	n.Edges[0].Child = NodeId(1)
	n.Edges[1].Child = NodeId(2)
	if !n.IsFullyExpanded() {
		t.Fatal("expected node with every edge expanded to report fully expanded")
	}
}

func TestEdgeMeanRewardAndExpanded(t *testing.T) {
	e := NewEdge(core.NewAction(1), 2)
	if e.IsExpanded() {
		t.Fatal("a freshly created edge should not be expanded")
	}
	if e.MeanReward(core.PlayerId(0)) != 0 {
		t.Fatal("mean reward of an unvisited edge should be 0")
	}
	e.Visits = 4
	e.TotalReward.Set(core.PlayerId(0), 2.0)
	if got := e.MeanReward(core.PlayerId(0)); got != 0.5 {
		t.Fatalf("expected mean reward 0.5, got %v", got)
	}
}

func TestNodeBestEdgeByVisitsAndReward(t *testing.T) {
	n := RootNode(core.PlayerId(0))
	n.Edges = []Edge{NewEdge(core.NewAction(1), 2), NewEdge(core.NewAction(2), 2)}
	n.Edges[0].Visits = 3
	n.Edges[1].Visits = 9
	if idx := n.BestEdgeByVisits(); idx != 1 {
		t.Fatalf("expected edge 1 (most visits), got %d", idx)
	}
	n.Edges[0].TotalReward.Set(core.PlayerId(0), 3.0) // mean 1.0
	n.Edges[1].TotalReward.Set(core.PlayerId(0), 0.0) // mean 0
	if idx := n.BestEdgeByReward(core.PlayerId(0)); idx != 0 {
		t.Fatalf("expected edge 0 (best reward), got %d", idx)
	}
}

func TestTreeAllocAndReset(t *testing.T) {
	tree := NewTree(2)
	tree.Reset(core.PlayerId(0))
	root := tree.Root()
	if tree.Len() != 1 {
		t.Fatalf("expected 1 node after Reset, got %d", tree.Len())
	}
	child := tree.Alloc(NewNode(root, 0, core.PlayerId(1), 1))
	if tree.Len() != 2 {
		t.Fatalf("expected 2 nodes after Alloc, got %d", tree.Len())
	}
	if tree.Get(child).Parent != root {
		t.Fatal("expected allocated child's Parent to be root")
	}

	tree.Reset(core.PlayerId(1))
	if tree.Len() != 1 {
		t.Fatalf("expected Reset to discard prior nodes, got %d", tree.Len())
	}
}

func TestTreeStats(t *testing.T) {
	tree := NewTree(2)
	tree.Reset(core.PlayerId(0))
	root := tree.GetMut(tree.Root())
	root.Edges = []Edge{NewEdge(core.NewAction(1), 2), NewEdge(core.NewAction(2), 2)}
	child := tree.Alloc(NewNode(tree.Root(), 0, core.PlayerId(1), 1))
	root.Edges[0].Child = child

	stats := tree.Stats()
	if stats.NodeCount != 2 {
		t.Fatalf("expected 2 nodes, got %d", stats.NodeCount)
	}
	if stats.TotalEdges != 2 {
		t.Fatalf("expected 2 total edges, got %d", stats.TotalEdges)
	}
	if stats.ExpandedEdges != 1 {
		t.Fatalf("expected 1 expanded edge, got %d", stats.ExpandedEdges)
	}
	if got := stats.ExpansionRatio(); got != 0.5 {
		t.Fatalf("expected expansion ratio 0.5, got %v", got)
	}
}
