package resolution

import (
	"testing"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
	"github.com/signalnine/cardsim/state"
)

func TestPriorityStackResolvesLIFO(t *testing.T) {
	st := state.NewGameState(3, 1)
	ps := NewPriorityStack(3, core.PlayerId(0))

	b1 := effects.NewBatchList()
	b1.AddPlayer(effects.SetPlayer("marker", 1), core.PlayerId(0))
	ps.QueueAction(core.NewAction(core.TemplateId(1)), b1, core.PlayerId(0))

	b2 := effects.NewBatchList()
	b2.AddPlayer(effects.SetPlayer("marker", 2), core.PlayerId(0))
	ps.QueueAction(core.NewAction(core.TemplateId(2)), b2, core.PlayerId(0))

	ctx := newTestResolverContext()

	// Everyone must pass for the top entry to resolve.
	ps.Pass(core.PlayerId(0))
	ps.Pass(core.PlayerId(1))
	ps.Pass(core.PlayerId(2))
	status := ps.Process(st, ctx)
	if status.Kind != StatusProcessing {
		t.Fatalf("expected Processing after a full pass round, got %v", status.Kind)
	}
	if got := st.Public.GetPlayerState(core.PlayerId(0), "marker", -1); got != 2 {
		t.Fatalf("expected the last-queued entry (marker=2) to resolve first (LIFO), got %d", got)
	}

	ps.Pass(core.PlayerId(0))
	ps.Pass(core.PlayerId(1))
	ps.Pass(core.PlayerId(2))
	status = ps.Process(st, ctx)
	if status.Kind != StatusProcessing {
		t.Fatalf("expected Processing for the second entry, got %v", status.Kind)
	}
	if got := st.Public.GetPlayerState(core.PlayerId(0), "marker", -1); got != 1 {
		t.Fatalf("expected the first-queued entry (marker=1) to resolve second, got %d", got)
	}

	status = ps.Process(st, ctx)
	if status.Kind != StatusComplete {
		t.Fatalf("expected Complete once the stack is drained, got %v", status.Kind)
	}
}

func TestPriorityStackPassRejectsWrongPlayer(t *testing.T) {
	ps := NewPriorityStack(2, core.PlayerId(0))
	b := effects.NewBatchList()
	b.AddPlayer(effects.SetPlayer("x", 1), core.PlayerId(0))
	ps.QueueAction(core.NewAction(core.TemplateId(1)), b, core.PlayerId(0))

	if ps.Pass(core.PlayerId(1)) {
		t.Fatal("expected Pass from a non-priority player to be rejected")
	}
	if ps.Pass(core.PlayerId(0)) {
		t.Fatal("expected a single pass with 2 players to not yet complete the round")
	}
}

func TestPriorityStackRespondResetsPasses(t *testing.T) {
	st := state.NewGameState(2, 1)
	ps := NewPriorityStack(2, core.PlayerId(0))
	b := effects.NewBatchList()
	b.AddPlayer(effects.SetPlayer("x", 1), core.PlayerId(0))
	ps.QueueAction(core.NewAction(core.TemplateId(1)), b, core.PlayerId(0))

	ps.Pass(core.PlayerId(0))
	response := effects.NewBatchList()
	response.AddPlayer(effects.SetPlayer("y", 9), core.PlayerId(1))
	ps.Respond(response, core.PlayerId(1), "counter")

	if ps.StackSize() != 2 {
		t.Fatalf("expected Respond to push onto the stack, got size %d", ps.StackSize())
	}
	if p := ps.PriorityPlayer(); p == nil || *p != core.PlayerId(1) {
		t.Fatalf("expected priority to move to the responder, got %v", p)
	}

	ps.Pass(core.PlayerId(1))
	ps.Pass(core.PlayerId(0))
	status := ps.Process(st, newTestResolverContext())
	if status.Kind != StatusProcessing {
		t.Fatalf("expected Processing after the reset pass round completes, got %v", status.Kind)
	}
	if got := st.Public.GetPlayerState(core.PlayerId(1), "y", -1); got != 9 {
		t.Fatalf("expected the response entry to resolve first, got %d", got)
	}
}
