package resolution

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
	"github.com/signalnine/cardsim/state"
	"github.com/signalnine/cardsim/triggers"
)

// Immediate resolves every queued batch with no player input, popping
// from the end of pending (LIFO), matching the original Rust's
// `while let Some(pending) = self.pending.pop()`.
type Immediate struct {
	pending []entry
	nextID  uint32
}

func NewImmediate() *Immediate {
	return &Immediate{}
}

func (im *Immediate) QueueAction(sourceAction core.Action, batch *effects.Batch, controller core.PlayerId) {
	im.nextID++
	im.pending = append(im.pending, entry{id: im.nextID, sourceAction: sourceAction, batch: batch, controller: controller})
}

// QueueTriggered turns a fired trigger into a queued batch: every
// effect on te targets te.Controller if known, or resolves as a
// zone-level effect (no target) otherwise.
func (im *Immediate) QueueTriggered(te triggers.TriggeredEffect) {
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
	im.nextID++
	im.pending = append(im.pending, entry{id: im.nextID, batch: batch, controller: derefOrZero(te.Controller)})
}

func derefOrZero(p *core.PlayerId) core.PlayerId {
	if p == nil {
		return 0
	}
	return *p
}

// Process drains every pending entry through the resolver in LIFO order
// (pop from the end) and reports Complete - Immediate never asks for
// player input.
func (im *Immediate) Process(st *state.GameState, ctx effects.ResolverContext) Status {
	for len(im.pending) > 0 {
		last := len(im.pending) - 1
		e := im.pending[last]
		im.pending = im.pending[:last]
		effects.ResolveBatch(st, e.batch, ctx)
	}
	return Complete()
}

func (im *Immediate) IsComplete() bool { return len(im.pending) == 0 }

func (im *Immediate) PriorityPlayer() *core.PlayerId { return nil }

func (im *Immediate) Clear() { im.pending = nil }
