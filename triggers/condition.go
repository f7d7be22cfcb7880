package triggers

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/state"
)

// ConditionKind tags which field(s) of TriggerCondition apply.
type ConditionKind int

const (
	CondEventType ConditionKind = iota
	CondAnyEventType
	CondSourceIs
	CondTargetIs
	CondSourceControlledBy
	CondTargetControlledBy
	CondForPlayer
	CondSourceInZone
	CondTargetInZone
	CondValueAtLeast
	CondValueAtMost
	CondValueInRange
	CondHasTag
	CondNotTag
	CondAll
	CondAny
	CondNot
	CondAlways
	CondNever
	CondCustom
)

// TriggerCondition is a composable predicate over (event, state),
// represented as a tagged struct tree rather than an interface
// hierarchy (see effects.Effect for the same pattern).
type TriggerCondition struct {
	Kind ConditionKind

	EventType     core.EventTypeId
	EventTypes    []core.EventTypeId
	Entity        core.EntityId
	Player        core.PlayerId
	Zone          core.ZoneId
	ValueIndex    int
	Min           int64
	Max           int64
	Tag           string
	Children      []TriggerCondition
	Child         *TriggerCondition
	CustomKey     string
}

func EventType(e core.EventTypeId) TriggerCondition { return TriggerCondition{Kind: CondEventType, EventType: e} }
func AnyEventType(es []core.EventTypeId) TriggerCondition {
	return TriggerCondition{Kind: CondAnyEventType, EventTypes: es}
}
func SourceIs(e core.EntityId) TriggerCondition { return TriggerCondition{Kind: CondSourceIs, Entity: e} }
func TargetIs(e core.EntityId) TriggerCondition { return TriggerCondition{Kind: CondTargetIs, Entity: e} }
func SourceControlledBy(p core.PlayerId) TriggerCondition {
	return TriggerCondition{Kind: CondSourceControlledBy, Player: p}
}
func TargetControlledBy(p core.PlayerId) TriggerCondition {
	return TriggerCondition{Kind: CondTargetControlledBy, Player: p}
}
func ForPlayerCondition(p core.PlayerId) TriggerCondition { return TriggerCondition{Kind: CondForPlayer, Player: p} }
func SourceInZone(z core.ZoneId) TriggerCondition { return TriggerCondition{Kind: CondSourceInZone, Zone: z} }
func TargetInZone(z core.ZoneId) TriggerCondition { return TriggerCondition{Kind: CondTargetInZone, Zone: z} }
func ValueAtLeast(index int, min int64) TriggerCondition {
	return TriggerCondition{Kind: CondValueAtLeast, ValueIndex: index, Min: min}
}
func ValueAtMost(index int, max int64) TriggerCondition {
	return TriggerCondition{Kind: CondValueAtMost, ValueIndex: index, Max: max}
}
func ValueInRange(index int, min, max int64) TriggerCondition {
	return TriggerCondition{Kind: CondValueInRange, ValueIndex: index, Min: min, Max: max}
}
func HasTag(tag string) TriggerCondition { return TriggerCondition{Kind: CondHasTag, Tag: tag} }
func NotTag(tag string) TriggerCondition { return TriggerCondition{Kind: CondNotTag, Tag: tag} }
func All(conds ...TriggerCondition) TriggerCondition { return TriggerCondition{Kind: CondAll, Children: conds} }
func Any(conds ...TriggerCondition) TriggerCondition { return TriggerCondition{Kind: CondAny, Children: conds} }
func Not(c TriggerCondition) TriggerCondition { return TriggerCondition{Kind: CondNot, Child: &c} }

var Always = TriggerCondition{Kind: CondAlways}
var Never = TriggerCondition{Kind: CondNever}

func CustomCondition(key string) TriggerCondition { return TriggerCondition{Kind: CondCustom, CustomKey: key} }

// And combines the receiver with other, flattening into an existing
// All if the receiver is already one (mirrors the original's builder).
func (c TriggerCondition) And(other TriggerCondition) TriggerCondition {
	if c.Kind == CondAll {
		c.Children = append(append([]TriggerCondition{}, c.Children...), other)
		return c
	}
	return All(c, other)
}

// Or combines the receiver with other, flattening into an existing Any.
func (c TriggerCondition) Or(other TriggerCondition) TriggerCondition {
	if c.Kind == CondAny {
		c.Children = append(append([]TriggerCondition{}, c.Children...), other)
		return c
	}
	return Any(c, other)
}

func (c TriggerCondition) Negate() TriggerCondition { return Not(c) }

// ConditionContext bundles the event and state a condition evaluates
// against, plus an optional custom-evaluator callback for CondCustom.
type ConditionContext struct {
	Event      GameEvent
	State      *state.GameState
	EvalCustom func(key string, event *GameEvent, st *state.GameState) bool
}

func NewConditionContext(event GameEvent, st *state.GameState) ConditionContext {
	return ConditionContext{Event: event, State: st}
}

func (c ConditionContext) WithCustomEval(eval func(key string, event *GameEvent, st *state.GameState) bool) ConditionContext {
	c.EvalCustom = eval
	return c
}

// Evaluate recursively evaluates condition against ctx.
func Evaluate(condition TriggerCondition, ctx ConditionContext) bool {
	switch condition.Kind {
	case CondEventType:
		return ctx.Event.EventType == condition.EventType
	case CondAnyEventType:
		for _, et := range condition.EventTypes {
			if ctx.Event.EventType == et {
				return true
			}
		}
		return false
	case CondSourceIs:
		return ctx.Event.Source != nil && *ctx.Event.Source == condition.Entity
	case CondTargetIs:
		return ctx.Event.Target != nil && *ctx.Event.Target == condition.Entity
	case CondSourceControlledBy:
		if ctx.Event.Source == nil {
			return false
		}
		card, ok := ctx.State.GetCard(*ctx.Event.Source)
		return ok && card.Controller != nil && *card.Controller == condition.Player
	case CondTargetControlledBy:
		if ctx.Event.Target == nil {
			return false
		}
		card, ok := ctx.State.GetCard(*ctx.Event.Target)
		return ok && card.Controller != nil && *card.Controller == condition.Player
	case CondForPlayer:
		return ctx.Event.Player != nil && *ctx.Event.Player == condition.Player
	case CondSourceInZone:
		return ctx.Event.Source != nil && ctx.State.Zones.IsInZone(*ctx.Event.Source, condition.Zone)
	case CondTargetInZone:
		return ctx.Event.Target != nil && ctx.State.Zones.IsInZone(*ctx.Event.Target, condition.Zone)
	case CondValueAtLeast:
		return ctx.Event.Value(condition.ValueIndex, int64(-1)<<63) >= condition.Min
	case CondValueAtMost:
		return ctx.Event.Value(condition.ValueIndex, int64(1)<<63-1) <= condition.Max
	case CondValueInRange:
		v := ctx.Event.Value(condition.ValueIndex, 0)
		return v >= condition.Min && v <= condition.Max
	case CondHasTag:
		return ctx.Event.HasTag(condition.Tag)
	case CondNotTag:
		return !ctx.Event.HasTag(condition.Tag)
	case CondAll:
		for _, child := range condition.Children {
			if !Evaluate(child, ctx) {
				return false
			}
		}
		return true
	case CondAny:
		for _, child := range condition.Children {
			if Evaluate(child, ctx) {
				return true
			}
		}
		return false
	case CondNot:
		return !Evaluate(*condition.Child, ctx)
	case CondAlways:
		return true
	case CondNever:
		return false
	case CondCustom:
		if ctx.EvalCustom == nil {
			return false
		}
		return ctx.EvalCustom(condition.CustomKey, &ctx.Event, ctx.State)
	default:
		return false
	}
}
