package rules

import (
	"testing"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/state"
)

// stubEngine is a minimal two-template rules.Engine used only to
// exercise LegalActions' recursive enumeration: template 1 takes no
// pointers, template 2 takes exactly one pointer drawn from a fixed
// candidate set.
type stubEngine struct {
	cfg *core.GameConfig
}

func (s *stubEngine) Config() *core.GameConfig { return s.cfg }

func (s *stubEngine) LegalTemplates(st *state.GameState, player core.PlayerId) []core.TemplateId {
	return []core.TemplateId{1, 2}
}

func (s *stubEngine) LegalPointers(st *state.GameState, player core.PlayerId, template core.TemplateId, prior []core.EntityId) []core.EntityId {
	if template == 1 {
		return nil
	}
	if len(prior) == 0 {
		return []core.EntityId{10, 11}
	}
	return nil
}

func (s *stubEngine) ApplyAction(st *state.GameState, player core.PlayerId, action core.Action) {}

func (s *stubEngine) IsTerminal(st *state.GameState) (GameResult, bool) { return GameResult{}, false }

func TestLegalActionsEnumeratesAllPointerCombinations(t *testing.T) {
	st := state.NewGameState(2, 1)
	engine := &stubEngine{cfg: core.NewGameConfig(2)}

	actions := LegalActions(engine, st, core.PlayerId(0))
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions (1 no-arg + 2 single-pointer), got %d: %v", len(actions), actions)
	}

	var sawNoArg, sawPointer10, sawPointer11 bool
	for _, a := range actions {
		switch {
		case a.Template == 1 && a.IsNoArg():
			sawNoArg = true
		case a.Template == 2 && len(a.Pointers) == 1 && a.Pointers[0] == 10:
			sawPointer10 = true
		case a.Template == 2 && len(a.Pointers) == 1 && a.Pointers[0] == 11:
			sawPointer11 = true
		}
	}
	if !sawNoArg || !sawPointer10 || !sawPointer11 {
		t.Fatalf("expected all 3 combinations present, got %v", actions)
	}
}

func TestGameResultIsWinner(t *testing.T) {
	single := WinnerResult(core.PlayerId(1))
	if !single.IsWinner(core.PlayerId(1)) || single.IsWinner(core.PlayerId(0)) {
		t.Fatal("single-winner IsWinner mismatch")
	}

	multi := WinnersResult([]core.PlayerId{0, 2})
	if !multi.IsWinner(0) || multi.IsWinner(1) || !multi.IsWinner(2) {
		t.Fatal("multi-winner IsWinner mismatch")
	}

	draw := DrawResult()
	if draw.IsWinner(0) {
		t.Fatal("a draw should have no winners")
	}
}
