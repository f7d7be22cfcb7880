// Package rps is a minimal two-player rock-paper-scissors fixture used
// to exercise the rules.Engine contract, mcts.Search, and the training
// harness end to end. It is not a shipped game - just proof the
// contracts are implementable against something simpler than a real
// card game.
package rps

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/rules"
	"github.com/signalnine/cardsim/state"
	"github.com/signalnine/cardsim/training"
)

const (
	Rock core.TemplateId = iota + 1
	Paper
	Scissors
)

const moveKey = "move"

// Engine plays one round: player 0 moves, then player 1 moves, then the
// round resolves to a winner or a draw.
type Engine struct {
	cfg *core.GameConfig
}

func NewEngine() *Engine {
	cfg := core.NewGameConfig(2).
		WithTemplate(core.NoArgTemplate(Rock, "rock")).
		WithTemplate(core.NoArgTemplate(Paper, "paper")).
		WithTemplate(core.NoArgTemplate(Scissors, "scissors"))
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() *core.GameConfig { return e.cfg }

func (e *Engine) LegalTemplates(st *state.GameState, player core.PlayerId) []core.TemplateId {
	if st.Public.GetPlayerState(player, moveKey, 0) != 0 {
		return nil
	}
	return []core.TemplateId{Rock, Paper, Scissors}
}

func (e *Engine) LegalPointers(st *state.GameState, player core.PlayerId, template core.TemplateId, priorPointers []core.EntityId) []core.EntityId {
	return nil
}

func (e *Engine) ApplyAction(st *state.GameState, player core.PlayerId, action core.Action) {
	st.Public.SetPlayerState(player, moveKey, int64(action.Template))
	if player == 0 {
		st.Public.SetActivePlayer(1)
	}
}

func (e *Engine) IsTerminal(st *state.GameState) (rules.GameResult, bool) {
	p0 := core.TemplateId(st.Public.GetPlayerState(0, moveKey, 0))
	p1 := core.TemplateId(st.Public.GetPlayerState(1, moveKey, 0))
	if p0 == 0 || p1 == 0 {
		return rules.GameResult{}, false
	}
	if p0 == p1 {
		return rules.DrawResult(), true
	}
	if beats(p0, p1) {
		return rules.WinnerResult(core.PlayerId(0)), true
	}
	return rules.WinnerResult(core.PlayerId(1)), true
}

func beats(a, b core.TemplateId) bool {
	switch a {
	case Rock:
		return b == Scissors
	case Paper:
		return b == Rock
	case Scissors:
		return b == Paper
	}
	return false
}

// Encoder encodes each player's own move as a one-hot vector over the
// three throws, plus a flag for whether they've moved yet. A player
// never sees the opponent's throw before both have committed, matching
// real rock-paper-scissors' simultaneity even though this engine
// sequences the two moves internally.
type Encoder struct{}

func (Encoder) OutputShape() []int   { return []int{4} }
func (Encoder) ActionSpaceSize() int { return 3 }
func (Encoder) PlayerCount() int     { return 2 }

func (Encoder) Encode(st *state.GameState, perspective core.PlayerId) training.EncodedState {
	tensor := make([]float32, 4)
	move := core.TemplateId(st.Public.GetPlayerState(perspective, moveKey, 0))
	if move != 0 {
		tensor[move-1] = 1.0
		tensor[3] = 1.0
	}
	return training.NewEncodedState(tensor, []int{4})
}
