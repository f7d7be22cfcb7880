package mcts

import (
	"time"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/rules"
	"github.com/signalnine/cardsim/state"
)

// pathStep is one (node, edge) pair along a single simulation pass,
// root-first order built up as the walk descends, consumed tip-to-root
// by Backpropagate.
type pathStep struct {
	node NodeId
	edge int
}

// Stats summarizes one Run call.
type Stats struct {
	Iterations      int
	NodesExpanded   int
	Simulations     int
	MaxDepthReached int
	ElapsedMicros   int64
}

// Search owns a tree and the three pluggable policies a run needs.
// Safe to reuse across multiple Run calls against different states;
// Run resets the tree each time.
type Search struct {
	Tree       *Tree
	Config     Config
	Selection  SelectionPolicy
	Simulation SimulationPolicy
	Opponent   OpponentPolicy

	rng       *core.RNG
	lastStats Stats
}

func NewSearch(playerCount int, cfg Config) *Search {
	return &Search{
		Tree:       NewTree(playerCount),
		Config:     cfg,
		Selection:  UCB1Policy{},
		Simulation: RandomSimulation{},
		Opponent:   UniformOpponent{},
		rng:        core.NewRNG(cfg.Seed),
	}
}

func (s *Search) Stats() Stats { return s.lastStats }

// Run searches from st on behalf of searchingPlayer for up to
// iterations passes, returning the chosen action (false if no action
// is available - the state is already terminal, or the root has no
// legal actions).
func (s *Search) Run(engine rules.Engine, st *state.GameState, searchingPlayer core.PlayerId, iterations int) (core.Action, bool) {
	started := time.Now()
	var stats Stats
	playerCount := st.PlayerCount()

	s.Tree.Reset(st.Public.ActivePlayer)
	root := s.Tree.Root()

	if result, terminal := engine.IsTerminal(st); terminal {
		rewards := outcomeRewards(result, playerCount)
		rootNode := s.Tree.GetMut(root)
		rootNode.IsTerminal = true
		rootNode.TerminalReward = &rewards
		return core.Action{}, false
	}

	rootActions := rules.LegalActions(engine, st, st.Public.ActivePlayer)
	if len(rootActions) == 0 {
		return core.Action{}, false
	}
	if len(rootActions) == 1 {
		return rootActions[0], true
	}

	rootNode := s.Tree.GetMut(root)
	for _, a := range rootActions {
		rootNode.Edges = append(rootNode.Edges, NewEdge(a, playerCount))
	}

	for i := 0; i < iterations; i++ {
		if s.Tree.Len() > s.Config.MaxNodes {
			break
		}
		snapshot := st.CloneState()
		s.runOnePass(engine, snapshot, searchingPlayer, &stats)
		stats.Iterations++
	}
	stats.ElapsedMicros = time.Since(started).Microseconds()
	s.lastStats = stats

	rootNode = s.Tree.GetMut(root)
	if len(rootNode.Edges) == 0 {
		return core.Action{}, false
	}

	var chosen int
	if s.Config.Temperature <= 0 {
		chosen = rootNode.BestEdgeByVisits()
	} else {
		chosen = s.softmaxSelect(rootNode)
	}
	if chosen < 0 {
		return core.Action{}, false
	}
	return rootNode.Edges[chosen].Action, true
}

// runOnePass walks st tip-ward from the root, mutating st in place as
// it applies actions, and backpropagates a reward once it hits a
// terminal node, a depth cap, or a freshly-expanded leaf.
func (s *Search) runOnePass(engine rules.Engine, st *state.GameState, searchingPlayer core.PlayerId, stats *Stats) {
	var path []pathStep
	nodeID := s.Tree.Root()

	for {
		node := s.Tree.GetMut(nodeID)

		if int(node.Depth) > stats.MaxDepthReached {
			stats.MaxDepthReached = int(node.Depth)
		}

		if node.IsTerminal {
			s.Backpropagate(path, *node.TerminalReward)
			return
		}

		if s.Config.MaxDepth != 0 && uint32(node.Depth) >= s.Config.MaxDepth {
			s.Backpropagate(path, heuristicRewards(st, st.PlayerCount()))
			return
		}

		if node.ToMove != searchingPlayer {
			action, ok := s.Opponent.ChooseAction(engine, st, node.ToMove, s.rng)
			if !ok {
				s.Backpropagate(path, heuristicRewards(st, st.PlayerCount()))
				return
			}
			edgeIdx := s.findOrCreateEdge(node, action, st.PlayerCount())
			engine.ApplyAction(st, node.ToMove, action)
			if !node.Edges[edgeIdx].IsExpanded() {
				child := s.allocChild(engine, st, nodeID, edgeIdx, searchingPlayer)
				stats.NodesExpanded++
				path = append(path, pathStep{node: nodeID, edge: edgeIdx})
				nodeID = child
				continue
			}
			path = append(path, pathStep{node: nodeID, edge: edgeIdx})
			nodeID = node.Edges[edgeIdx].Child
			continue
		}

		if unexpanded := node.UnexpandedEdges(); len(unexpanded) > 0 {
			pick := unexpanded[s.rng.Intn(len(unexpanded))]
			engine.ApplyAction(st, node.ToMove, node.Edges[pick].Action)
			s.allocChild(engine, st, nodeID, pick, searchingPlayer)
			stats.NodesExpanded++
			path = append(path, pathStep{node: nodeID, edge: pick})

			rewards := s.Simulation.Simulate(engine, st, s.rng, s.Config.MaxDepth)
			stats.Simulations++
			s.Backpropagate(path, rewards)
			return
		}

		if len(node.Edges) == 0 {
			s.Backpropagate(path, heuristicRewards(st, st.PlayerCount()))
			return
		}

		edgeIdx := s.Selection.Select(node, searchingPlayer, s.Config)
		engine.ApplyAction(st, node.ToMove, node.Edges[edgeIdx].Action)
		if !node.Edges[edgeIdx].IsExpanded() {
			s.allocChild(engine, st, nodeID, edgeIdx, searchingPlayer)
			stats.NodesExpanded++
		}
		path = append(path, pathStep{node: nodeID, edge: edgeIdx})
		nodeID = node.Edges[edgeIdx].Child
	}
}

// allocChild creates a new node reached by parent's edgeIdx, expands it
// (checks terminality, and for the searching player's own nodes,
// eagerly enumerates legal actions), and wires the edge to it.
func (s *Search) allocChild(engine rules.Engine, st *state.GameState, parent NodeId, edgeIdx int, searchingPlayer core.PlayerId) NodeId {
	parentNode := s.Tree.GetMut(parent)
	child := NewNode(parent, uint16(edgeIdx), st.Public.ActivePlayer, parentNode.Depth+1)
	childID := s.Tree.Alloc(child)

	if result, terminal := engine.IsTerminal(st); terminal {
		rewards := outcomeRewards(result, st.PlayerCount())
		child.IsTerminal = true
		child.TerminalReward = &rewards
	} else if child.ToMove == searchingPlayer {
		for _, a := range rules.LegalActions(engine, st, child.ToMove) {
			child.Edges = append(child.Edges, NewEdge(a, st.PlayerCount()))
		}
	}

	s.Tree.GetMut(parent).Edges[edgeIdx].Child = childID
	return childID
}

func (s *Search) findOrCreateEdge(node *Node, action core.Action, playerCount int) int {
	for i := range node.Edges {
		if node.Edges[i].Action.Equal(action) {
			return i
		}
	}
	node.Edges = append(node.Edges, NewEdge(action, playerCount))
	return len(node.Edges) - 1
}

// Backpropagate walks path tip-to-root, incrementing each node's and
// edge's visit count and accumulating reward - never negating between
// levels, so every edge's mean reward stays in the same player's frame.
func (s *Search) Backpropagate(path []pathStep, rewards core.PlayerMap[float64]) {
	for i := len(path) - 1; i >= 0; i-- {
		step := path[i]
		node := s.Tree.GetMut(step.node)
		node.Visits++
		edge := &node.Edges[step.edge]
		edge.Visits++
		for p := 0; p < rewards.Len(); p++ {
			player := core.PlayerId(p)
			edge.TotalReward.Set(player, edge.TotalReward.Get(player)+rewards.Get(player))
		}
	}
	if len(path) == 0 {
		s.Tree.GetMut(s.Tree.Root()).Visits++
	}
}

// softmaxSelect samples a root edge proportional to
// softmax(visits/temperature), using a clone of the search's RNG so
// the final-selection draw never perturbs the caller-visible stream.
func (s *Search) softmaxSelect(node *Node) int {
	rngCopy := s.rng.Fork()
	visits := make([]float64, len(node.Edges))
	for i := range node.Edges {
		visits[i] = float64(node.Edges[i].Visits)
	}
	return core.SoftmaxSample(rngCopy, visits, s.Config.Temperature)
}
