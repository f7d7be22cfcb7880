// Package rules defines the contract a concrete game implements: legal
// action enumeration, action application, and terminal-state detection.
// Everything in this package is state-agnostic infrastructure; the
// games themselves live under games/.
package rules

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/state"
)

// GameResultKind tags which variant of GameResult applies.
type GameResultKind int

const (
	ResultWinner GameResultKind = iota
	ResultDraw
	ResultWinners
)

// GameResult is the outcome of a finished game: a single winner, a
// draw, or (for games that can end in a tie among a subset of players)
// multiple simultaneous winners.
type GameResult struct {
	Kind    GameResultKind
	Winner  core.PlayerId
	Winners []core.PlayerId
}

func WinnerResult(p core.PlayerId) GameResult { return GameResult{Kind: ResultWinner, Winner: p} }
func DrawResult() GameResult                  { return GameResult{Kind: ResultDraw} }
func WinnersResult(ps []core.PlayerId) GameResult {
	return GameResult{Kind: ResultWinners, Winners: ps}
}

// IsWinner reports whether p is among the game's winners, under either
// the single- or multi-winner variant.
func (r GameResult) IsWinner(p core.PlayerId) bool {
	switch r.Kind {
	case ResultWinner:
		return r.Winner == p
	case ResultWinners:
		for _, w := range r.Winners {
			if w == p {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Engine is the contract every concrete game implements. The engine
// package never interprets templates or pointers itself - a game owns
// all of that meaning, and the engine only sequences turns, resolves
// effects, and drives search against whatever the game reports.
type Engine interface {
	Config() *core.GameConfig
	LegalTemplates(st *state.GameState, player core.PlayerId) []core.TemplateId
	LegalPointers(st *state.GameState, player core.PlayerId, template core.TemplateId, priorPointers []core.EntityId) []core.EntityId
	ApplyAction(st *state.GameState, player core.PlayerId, action core.Action)
	IsTerminal(st *state.GameState) (GameResult, bool)
}

// LegalActions enumerates every fully-formed legal action for player,
// mirroring the original trait's default method (Go interfaces carry
// no default bodies, so this is a free function instead of
// Engine.LegalActions). For each legal template it recursively extends
// the pointer prefix via LegalPointers; an empty LegalPointers result
// marks the prefix as complete and emits it as one Action. A template
// whose first LegalPointers call is empty emits a single no-pointer
// Action.
func LegalActions(engine Engine, st *state.GameState, player core.PlayerId) []core.Action {
	var out []core.Action
	for _, tmpl := range engine.LegalTemplates(st, player) {
		enumerateActionsForTemplate(engine, st, player, tmpl, nil, &out)
	}
	return out
}

func enumerateActionsForTemplate(engine Engine, st *state.GameState, player core.PlayerId, template core.TemplateId, prefix []core.EntityId, out *[]core.Action) {
	nextPointers := engine.LegalPointers(st, player, template, prefix)
	if len(nextPointers) == 0 {
		*out = append(*out, core.NewActionWithPointers(template, prefix))
		return
	}
	for _, p := range nextPointers {
		extended := append(append([]core.EntityId{}, prefix...), p)
		enumerateActionsForTemplate(engine, st, player, template, extended, out)
	}
}
