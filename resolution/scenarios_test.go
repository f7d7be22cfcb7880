package resolution

import (
	"testing"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
	"github.com/signalnine/cardsim/state"
)

// TestScenarioDamageResolution: 2-player state, both life=20; immediate
// resolver; queue damage(5) targeting player 1; process -> Complete;
// player 1 life = 15, player 0 life = 20.
func TestScenarioDamageResolution(t *testing.T) {
	st := state.NewGameState(2, 1)
	st.Public.SetPlayerState(core.PlayerId(0), "life", 20)
	st.Public.SetPlayerState(core.PlayerId(1), "life", 20)

	im := NewImmediate()
	batch := effects.NewBatchList()
	batch.AddPlayer(effects.Damage(5), core.PlayerId(1))
	im.QueueAction(core.NewAction(core.TemplateId(1)), batch, core.PlayerId(0))

	status := im.Process(st, newTestResolverContext())
	if status.Kind != StatusComplete {
		t.Fatalf("expected Complete, got %v", status.Kind)
	}
	if got := st.Public.GetPlayerState(0, "life", -1); got != 20 {
		t.Fatalf("expected player 0's life unchanged at 20, got %d", got)
	}
	if got := st.Public.GetPlayerState(1, "life", -1); got != 15 {
		t.Fatalf("expected player 1's life reduced to 15, got %d", got)
	}
}

// TestScenarioLIFOStack: 2-player; push set_player_state("counter",1)
// then respond with set_player_state("counter",2); both players pass
// twice; after first resolution counter=2, after second counter=1.
func TestScenarioLIFOStack(t *testing.T) {
	st := state.NewGameState(2, 2)
	ps := NewPriorityStack(2, core.PlayerId(0))

	first := effects.NewBatchList()
	first.AddZone(effects.SetTurnState("counter", 1))
	ps.QueueAction(core.NewAction(core.TemplateId(1)), first, core.PlayerId(0))

	second := effects.NewBatchList()
	second.AddZone(effects.SetTurnState("counter", 2))
	ps.Respond(second, core.PlayerId(1), "respond with counter=2")

	ctx := newTestResolverContext()

	if status := ps.Process(st, ctx); status.Kind != StatusWaitingForPriority {
		t.Fatalf("expected to wait for priority after the respond, got %v", status.Kind)
	}

	// Responder has priority (player 1); both players pass.
	if ps.Pass(core.PlayerId(1)) {
		t.Fatal("expected the first pass (of 2 players) to not yet complete the round")
	}
	if !ps.Pass(core.PlayerId(0)) {
		t.Fatal("expected the second pass to complete the round")
	}
	if status := ps.Process(st, ctx); status.Kind != StatusProcessing {
		t.Fatalf("expected Processing after the round completes, got %v", status.Kind)
	}
	if got := st.Public.GetTurnState("counter", -1); got != 2 {
		t.Fatalf("expected counter=2 after the first (top-of-stack) resolution, got %d", got)
	}

	// Second round: the original entry is now on top; priority returned to
	// the resolved entry's controller (player 1), and both players pass again.
	if status := ps.Process(st, ctx); status.Kind != StatusWaitingForPriority {
		t.Fatalf("expected to wait for priority again, got %v", status.Kind)
	}
	if ps.Pass(core.PlayerId(1)) {
		t.Fatal("expected the first pass of the second round to not yet complete it")
	}
	if !ps.Pass(core.PlayerId(0)) {
		t.Fatal("expected the second pass of the second round to complete it")
	}
	if status := ps.Process(st, ctx); status.Kind != StatusProcessing {
		t.Fatalf("expected Processing for the second resolution, got %v", status.Kind)
	}
	if got := st.Public.GetTurnState("counter", -1); got != 1 {
		t.Fatalf("expected counter=1 after the second resolution, got %d", got)
	}
}

// TestScenarioPriorityCyclesFourPlayers: 4-player stack; queue one
// effect controlled by player 0; passes in order 0,1,2,3 -> stack ready
// to resolve; passes in order 0,1,2 return false each, but
// priority_player() returns 1, then 2, then 3.
func TestScenarioPriorityCyclesFourPlayers(t *testing.T) {
	ps := NewPriorityStack(4, core.PlayerId(0))
	batch := effects.NewBatchList()
	batch.AddPlayer(effects.SetPlayer("marker", 1), core.PlayerId(0))
	ps.QueueAction(core.NewAction(core.TemplateId(1)), batch, core.PlayerId(0))

	if ps.Pass(core.PlayerId(0)) {
		t.Fatal("expected pass 1/4 to not complete the round")
	}
	if got := *ps.PriorityPlayer(); got != core.PlayerId(1) {
		t.Fatalf("expected priority to advance to player 1, got %d", got)
	}
	if ps.Pass(core.PlayerId(1)) {
		t.Fatal("expected pass 2/4 to not complete the round")
	}
	if got := *ps.PriorityPlayer(); got != core.PlayerId(2) {
		t.Fatalf("expected priority to advance to player 2, got %d", got)
	}
	if ps.Pass(core.PlayerId(2)) {
		t.Fatal("expected pass 3/4 to not complete the round")
	}
	if got := *ps.PriorityPlayer(); got != core.PlayerId(3) {
		t.Fatalf("expected priority to advance to player 3, got %d", got)
	}
	if !ps.Pass(core.PlayerId(3)) {
		t.Fatal("expected the 4th pass to complete the round")
	}
}
