package resolution

import (
	"sort"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
	"github.com/signalnine/cardsim/state"
	"github.com/signalnine/cardsim/triggers"
)

// PriorityStack implements APNAP-style stack resolution: entries
// resolve last-in-first-out, and every player must pass in turn order
// before the top of the stack resolves (a full round of consecutive
// passes). Any player may respond while priority is open, which resets
// the pass count and reopens the round starting from the responder.
type PriorityStack struct {
	stack           []entry
	pendingTriggers []triggers.TriggeredEffect
	current         core.PlayerId
	passes          int
	nextEntryID     uint32
	playerCount     int
}

func NewPriorityStack(playerCount int, startingPlayer core.PlayerId) *PriorityStack {
	return &PriorityStack{current: startingPlayer, playerCount: playerCount}
}

func (ps *PriorityStack) QueueAction(sourceAction core.Action, batch *effects.Batch, controller core.PlayerId) {
	ps.nextEntryID++
	ps.stack = append(ps.stack, entry{id: ps.nextEntryID, sourceAction: sourceAction, batch: batch, controller: controller})
	ps.passes = 0
	ps.current = controller
}

func (ps *PriorityStack) QueueTriggered(te triggers.TriggeredEffect) {
	ps.pendingTriggers = append(ps.pendingTriggers, te)
}

// Process flushes any pending triggers onto the stack first (sorted by
// trigger id ascending, so lower-id triggers end up resolving later -
// last pushed, first resolved). If the stack is empty, resolution is
// Complete. If every player has passed in a row, the top entry resolves
// and priority returns to its controller. Otherwise the current player
// must act or pass.
func (ps *PriorityStack) Process(st *state.GameState, ctx effects.ResolverContext) Status {
	if len(ps.pendingTriggers) > 0 {
		sort.Slice(ps.pendingTriggers, func(i, j int) bool {
			return ps.pendingTriggers[i].Trigger.ID < ps.pendingTriggers[j].Trigger.ID
		})
		for _, te := range ps.pendingTriggers {
			ps.pushTriggered(te)
		}
		ps.pendingTriggers = nil
		ps.passes = 0
	}

	if len(ps.stack) == 0 {
		return Complete()
	}

	if ps.passes >= ps.playerCount {
		top := ps.stack[len(ps.stack)-1]
		ps.stack = ps.stack[:len(ps.stack)-1]
		effects.ResolveBatch(st, top.batch, ctx)
		ps.passes = 0
		ps.current = top.controller
		return Processing()
	}

	return WaitingForPriority(ps.current)
}

func (ps *PriorityStack) pushTriggered(te triggers.TriggeredEffect) {
	if len(te.Effects) == 0 {
		return
	}
	batch := effects.NewBatchList()
	for _, eff := range te.Effects {
		if te.Controller != nil {
			batch.AddPlayer(eff, *te.Controller)
		} else {
			batch.AddZone(eff)
		}
	}
	ps.nextEntryID++
	ps.stack = append(ps.stack, entry{id: ps.nextEntryID, batch: batch, controller: derefOrZero(te.Controller)})
}

// Pass registers player's pass. Rejects (returns false) if player does
// not currently hold priority. Returns true once every player has
// passed in a row - the caller should re-invoke Process to resolve the
// top of the stack.
func (ps *PriorityStack) Pass(player core.PlayerId) bool {
	if player != ps.current {
		return false
	}
	ps.passes++
	if ps.passes >= ps.playerCount {
		return true
	}
	ps.current = core.PlayerId((int(ps.current) + 1) % ps.playerCount)
	return false
}

// Respond pushes a new entry on top of the stack in response to the
// current state of priority, resetting the pass count and handing
// priority to the responder.
func (ps *PriorityStack) Respond(responseEffects *effects.Batch, controller core.PlayerId, description string) {
	ps.nextEntryID++
	ps.stack = append(ps.stack, entry{id: ps.nextEntryID, batch: responseEffects, controller: controller, description: description})
	ps.passes = 0
	ps.current = controller
}

func (ps *PriorityStack) IsComplete() bool {
	return len(ps.stack) == 0 && len(ps.pendingTriggers) == 0
}

func (ps *PriorityStack) PriorityPlayer() *core.PlayerId {
	if ps.IsComplete() {
		return nil
	}
	p := ps.current
	return &p
}

func (ps *PriorityStack) Clear() {
	ps.stack = nil
	ps.pendingTriggers = nil
	ps.passes = 0
}

// StackSize returns the number of entries currently on the stack
// (excluding any not-yet-flushed pending triggers).
func (ps *PriorityStack) StackSize() int { return len(ps.stack) }
