// Package resolution sequences effect batches onto a game state: an
// Immediate resolver that drains a plain queue with no player input,
// and a PriorityStack resolver implementing APNAP-style priority
// passing with instant-speed responses.
package resolution

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
	"github.com/signalnine/cardsim/state"
	"github.com/signalnine/cardsim/triggers"
)

// StatusKind tags which variant of Status applies.
type StatusKind int

const (
	StatusComplete StatusKind = iota
	StatusWaitingForPriority
	StatusProcessing
)

// Status reports a resolution system's progress after one Process call.
type Status struct {
	Kind   StatusKind
	Player core.PlayerId
}

func Complete() Status { return Status{Kind: StatusComplete} }
func Processing() Status { return Status{Kind: StatusProcessing} }
func WaitingForPriority(p core.PlayerId) Status {
	return Status{Kind: StatusWaitingForPriority, Player: p}
}

// System is the common interface both resolution strategies implement,
// so a rules.Engine can be written against either one.
type System interface {
	QueueAction(sourceAction core.Action, batch *effects.Batch, controller core.PlayerId)
	QueueTriggered(te triggers.TriggeredEffect)
	Process(st *state.GameState, ctx effects.ResolverContext) Status
	IsComplete() bool
	PriorityPlayer() *core.PlayerId
	Clear()
}

// entry pairs a queued effect batch with the action that produced it
// (for logging/replay) and the player who controls how it resolves.
type entry struct {
	id         uint32
	sourceAction core.Action
	batch      *effects.Batch
	controller core.PlayerId
	description string
}
