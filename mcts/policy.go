package mcts

import (
	"math"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/rules"
	"github.com/signalnine/cardsim/state"
)

// SelectionPolicy picks which edge to descend into at a fully-expanded
// node, from player's perspective.
type SelectionPolicy interface {
	Select(node *Node, player core.PlayerId, cfg Config) int
}

// UCB1Policy is the classic argmax of Q(a) + c*sqrt(ln N / n(a)), with
// unvisited edges treated as +Inf so every edge is tried at least once.
type UCB1Policy struct{}

func (UCB1Policy) Select(node *Node, player core.PlayerId, cfg Config) int {
	best := -1
	bestScore := math.Inf(-1)
	for i := range node.Edges {
		e := &node.Edges[i]
		var score float64
		if e.Visits == 0 {
			score = math.Inf(1)
		} else {
			score = e.MeanReward(player) + cfg.ExplorationConstant*math.Sqrt(math.Log(float64(node.Visits))/float64(e.Visits))
		}
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// PUCTPolicy is argmax of Q(a) + c*P(a)*sqrt(N)/(1+n(a)), using each
// edge's prior probability instead of a visit-count bonus.
type PUCTPolicy struct{}

func (PUCTPolicy) Select(node *Node, player core.PlayerId, cfg Config) int {
	best := -1
	bestScore := math.Inf(-1)
	sqrtN := math.Sqrt(float64(node.Visits))
	for i := range node.Edges {
		e := &node.Edges[i]
		score := e.MeanReward(player) + cfg.ExplorationConstant*float64(e.Prior)*sqrtN/(1+float64(e.Visits))
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

// SimulationPolicy plays a state forward past the tree's frontier and
// returns a per-player reward estimate.
type SimulationPolicy interface {
	Simulate(engine rules.Engine, st *state.GameState, rng *core.RNG, maxDepth uint32) core.PlayerMap[float64]
}

// RandomSimulation samples uniformly among legal actions until the
// game ends or maxDepth is reached (0 = unbounded).
type RandomSimulation struct{}

func (RandomSimulation) Simulate(engine rules.Engine, st *state.GameState, rng *core.RNG, maxDepth uint32) core.PlayerMap[float64] {
	playerCount := st.PlayerCount()
	var depth uint32
	for {
		if result, terminal := engine.IsTerminal(st); terminal {
			return outcomeRewards(result, playerCount)
		}
		if maxDepth != 0 && depth >= maxDepth {
			return heuristicRewards(st, playerCount)
		}
		actions := rules.LegalActions(engine, st, st.Public.ActivePlayer)
		if len(actions) == 0 {
			return core.NewPlayerMap(playerCount, 0.5)
		}
		action := actions[rng.Intn(len(actions))]
		engine.ApplyAction(st, st.Public.ActivePlayer, action)
		depth++
	}
}

// OutcomeRewards maps a finished game's result to a per-player reward
// vector: the winner gets 1 and everyone else 0, a draw gives everyone
// 0.5, and a multi-winner result splits 1 evenly among the winners.
// Exported for training's outcome computation, which needs the exact
// same mapping when a self-play game ends.
func OutcomeRewards(result rules.GameResult, playerCount int) core.PlayerMap[float64] {
	return outcomeRewards(result, playerCount)
}

func outcomeRewards(result rules.GameResult, playerCount int) core.PlayerMap[float64] {
	switch result.Kind {
	case rules.ResultWinner:
		return core.NewPlayerMapFunc(playerCount, func(p core.PlayerId) float64 {
			if p == result.Winner {
				return 1.0
			}
			return 0.0
		})
	case rules.ResultWinners:
		share := 1.0 / float64(len(result.Winners))
		return core.NewPlayerMapFunc(playerCount, func(p core.PlayerId) float64 {
			if result.IsWinner(p) {
				return share
			}
			return 0.0
		})
	default: // ResultDraw
		return core.NewPlayerMap(playerCount, 0.5)
	}
}

// heuristicRewards estimates a non-terminal state's value from each
// player's "life" player-state key, normalized to sum to 1 (falling
// back to a uniform split if every player is at or below zero).
func heuristicRewards(st *state.GameState, playerCount int) core.PlayerMap[float64] {
	values := make([]float64, playerCount)
	var sum float64
	for p := 0; p < playerCount; p++ {
		v := math.Max(float64(st.Public.GetPlayerState(core.PlayerId(p), "life", 0)), 0)
		values[p] = v
		sum += v
	}
	if sum == 0 {
		return core.NewPlayerMap(playerCount, 1.0/float64(playerCount))
	}
	return core.NewPlayerMapFunc(playerCount, func(p core.PlayerId) float64 { return values[p] / sum })
}

// OpponentPolicy models how a non-searching player chooses actions
// during tree descent.
type OpponentPolicy interface {
	ChooseAction(engine rules.Engine, st *state.GameState, opponent core.PlayerId, rng *core.RNG) (core.Action, bool)
}

// UniformOpponent samples uniformly among the opponent's legal actions.
type UniformOpponent struct{}

func (UniformOpponent) ChooseAction(engine rules.Engine, st *state.GameState, opponent core.PlayerId, rng *core.RNG) (core.Action, bool) {
	actions := rules.LegalActions(engine, st, opponent)
	if len(actions) == 0 {
		return core.Action{}, false
	}
	return actions[rng.Intn(len(actions))], true
}
