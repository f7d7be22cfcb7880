package triggers

import (
	"testing"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
	"github.com/signalnine/cardsim/state"
)

func TestRegistryFindTriggersOrdersByPriorityThenID(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()

	low := NewTrigger(0, core.EntityId(100), TimingAfter, EventType(core.EventTypeId(1))).WithPriority(1)
	high := NewTrigger(0, core.EntityId(101), TimingAfter, EventType(core.EventTypeId(1))).WithPriority(10)
	mid := NewTrigger(0, core.EntityId(102), TimingAfter, EventType(core.EventTypeId(1))).WithPriority(5)
	tie := NewTrigger(0, core.EntityId(103), TimingAfter, EventType(core.EventTypeId(1))).WithPriority(5)

	lowID := reg.Register(low)
	highID := reg.Register(high)
	midID := reg.Register(mid)
	tieID := reg.Register(tie)

	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(1)), st)
	matches := reg.FindTriggers(TimingAfter, ctx)

	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(matches))
	}
	if matches[0].Trigger.ID != highID || matches[1].Trigger.ID != midID || matches[2].Trigger.ID != tieID || matches[3].Trigger.ID != lowID {
		t.Fatalf("expected priority-descending order with ties by ascending ID, got %v, %v, %v, %v",
			matches[0].Trigger.ID, matches[1].Trigger.ID, matches[2].Trigger.ID, matches[3].Trigger.ID)
	}
}

func TestRegistryFindTriggersFiltersTimingAndCondition(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()

	reg.Register(NewTrigger(0, core.EntityId(1), TimingBefore, EventType(core.EventTypeId(1))))
	afterID := reg.Register(NewTrigger(0, core.EntityId(2), TimingAfter, EventType(core.EventTypeId(1))))
	reg.Register(NewTrigger(0, core.EntityId(3), TimingAfter, EventType(core.EventTypeId(2))))

	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(1)), st)
	matches := reg.FindTriggers(TimingAfter, ctx)

	if len(matches) != 1 || matches[0].Trigger.ID != afterID {
		t.Fatalf("expected only the TimingAfter/EventType(1) trigger to match, got %v", matches)
	}
}

func TestRegistryOnceTriggerFiresOnlyOnce(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()

	id := reg.Register(NewTrigger(0, core.EntityId(1), TimingAfter, Always).WithUses(1))
	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(1)), st)

	first := reg.FindTriggers(TimingAfter, ctx)
	if len(first) != 1 {
		t.Fatalf("expected trigger to fire the first time, got %d matches", len(first))
	}
	trig, ok := reg.Get(id)
	if !ok || trig.UsesRemaining == nil || *trig.UsesRemaining != 0 {
		t.Fatal("expected once-trigger to have zero uses remaining after its first match")
	}

	second := reg.FindTriggers(TimingAfter, ctx)
	if len(second) != 0 {
		t.Fatalf("expected once-trigger to not fire again, got %d matches", len(second))
	}
}

func TestRegistryDisabledTriggerDoesNotFire(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()

	id := reg.Register(NewTrigger(0, core.EntityId(1), TimingAfter, Always))
	reg.SetEnabled(id, false)

	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(1)), st)
	matches := reg.FindTriggers(TimingAfter, ctx)
	if len(matches) != 0 {
		t.Fatalf("expected disabled trigger to not fire, got %d matches", len(matches))
	}
}

func TestRegistryRemoveForSource(t *testing.T) {
	reg := NewRegistry()
	source := core.EntityId(42)
	reg.Register(NewTrigger(0, source, TimingAfter, Always))
	reg.Register(NewTrigger(0, source, TimingBefore, Always))
	reg.Register(NewTrigger(0, core.EntityId(43), TimingAfter, Always))

	if reg.Len() != 3 {
		t.Fatalf("expected 3 registered triggers, got %d", reg.Len())
	}
	reg.RemoveForSource(source)
	if reg.Len() != 1 {
		t.Fatalf("expected 1 remaining trigger after RemoveForSource, got %d", reg.Len())
	}
	remaining := reg.TriggersForSource(core.EntityId(43))
	if len(remaining) != 1 {
		t.Fatalf("expected the unrelated trigger to survive, got %d", len(remaining))
	}
}

func TestRegistryFindTriggersCopiesEffectsAndController(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()

	p1 := core.PlayerId(1)
	trig := NewTrigger(0, core.EntityId(7), TimingAfter, Always).
		WithController(p1).
		WithEffects(effects.ModifyPlayer("life", 5), effects.ModifyPlayer("life", 1))
	reg.Register(trig)

	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(1)), st)
	matches := reg.FindTriggers(TimingAfter, ctx)

	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	te := matches[0]
	if te.Controller == nil || *te.Controller != p1 {
		t.Fatalf("expected TriggeredEffect.Controller to be copied from the Trigger, got %v", te.Controller)
	}
	if len(te.Effects) != 2 {
		t.Fatalf("expected TriggeredEffect.Effects to carry the Trigger's 2 effects, got %d", len(te.Effects))
	}
}

func TestRegistryFindTriggersDecrementsUsesRemaining(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()

	id := reg.Register(NewTrigger(0, core.EntityId(1), TimingAfter, Always).WithUses(2))
	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(1)), st)

	if matches := reg.FindTriggers(TimingAfter, ctx); len(matches) != 1 {
		t.Fatalf("expected trigger to fire on first use, got %d matches", len(matches))
	}
	trig, _ := reg.Get(id)
	if trig.UsesRemaining == nil || *trig.UsesRemaining != 1 {
		t.Fatalf("expected 1 use remaining after the first fire, got %v", trig.UsesRemaining)
	}

	if matches := reg.FindTriggers(TimingAfter, ctx); len(matches) != 1 {
		t.Fatalf("expected trigger to fire on second use, got %d matches", len(matches))
	}
	if matches := reg.FindTriggers(TimingAfter, ctx); len(matches) != 0 {
		t.Fatalf("expected trigger to not fire after uses are exhausted, got %d matches", len(matches))
	}
}

func TestRegistryFindTriggersScansUnindexedConditions(t *testing.T) {
	st := state.NewGameState(2, 1)
	reg := NewRegistry()
	reg.Register(NewTrigger(0, core.EntityId(1), TimingAfter, Always))

	ctx := NewConditionContext(NewGameEvent(core.EventTypeId(999)), st)
	matches := reg.FindTriggers(TimingAfter, ctx)
	if len(matches) != 1 {
		t.Fatalf("expected Always-conditioned trigger to match any event type, got %d matches", len(matches))
	}
}
