package effects

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/state"
	"github.com/signalnine/cardsim/zones"
)

// ResultKind tags which variant of Result applies.
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultFailed
	ResultSkipped
)

// Result is the outcome of resolving a single effect against a target.
type Result struct {
	Kind   ResultKind
	Reason string
}

func Success() Result           { return Result{Kind: ResultSuccess} }
func Failed(reason string) Result { return Result{Kind: ResultFailed, Reason: reason} }
func Skipped() Result           { return Result{Kind: ResultSkipped} }

// ResolverContext supplies per-player deck/hand zone lookups (used by
// DrawCards when an effect doesn't specify zones explicitly) and an
// optional condition evaluator for Conditional effects. Callbacks never
// mutate state.
type ResolverContext struct {
	GetDeckZone   func(core.PlayerId) core.ZoneId
	GetHandZone   func(core.PlayerId) core.ZoneId
	EvalCondition func(key string, st *state.GameState) bool
}

func NewResolverContext(getDeckZone, getHandZone func(core.PlayerId) core.ZoneId) ResolverContext {
	return ResolverContext{
		GetDeckZone:   getDeckZone,
		GetHandZone:   getHandZone,
		EvalCondition: func(string, *state.GameState) bool { return false },
	}
}

func (c ResolverContext) WithConditionEval(eval func(key string, st *state.GameState) bool) ResolverContext {
	c.EvalCondition = eval
	return c
}

func toZonesPosition(e Effect) zones.Position {
	if !e.HasPosition {
		return zones.Top
	}
	switch e.Position {
	case PositionBottom:
		return zones.Bottom
	case PositionIndex:
		return zones.Index(e.PositionIndex)
	default:
		return zones.Top
	}
}

func isPlayerEntity(st *state.GameState, e core.EntityId) bool {
	return int(e) < st.PlayerCount()
}

// ResolveBatch resolves every entry in batch in submission order,
// applying each entry to every one of its targets (in slice order), or
// via the zone-effect path if the entry has no targets. Returns one
// Result per (entry, target) pair resolved, in resolution order.
func ResolveBatch(st *state.GameState, batch *Batch, ctx ResolverContext) []Result {
	var results []Result
	for _, entry := range batch.Entries() {
		if len(entry.Targets) == 0 {
			results = append(results, resolveZoneEffect(st, entry.Effect, ctx))
			continue
		}
		for _, target := range entry.Targets {
			results = append(results, ResolveSingle(st, entry.Effect, target, ctx))
		}
	}
	return results
}

// ResolveSingle resolves one effect against one target.
func ResolveSingle(st *state.GameState, e Effect, target core.EntityId, ctx ResolverContext) Result {
	switch e.Kind {
	case KindModifyPlayerState:
		if !isPlayerEntity(st, target) {
			return Failed("target is not a player")
		}
		st.Public.ModifyPlayerState(core.PlayerId(target), e.Key, e.Delta)
		return Success()

	case KindSetPlayerState:
		if !isPlayerEntity(st, target) {
			return Failed("target is not a player")
		}
		st.Public.SetPlayerState(core.PlayerId(target), e.Key, e.Value)
		return Success()

	case KindMoveCard:
		if isPlayerEntity(st, target) {
			return Failed("target is a player, not a card")
		}
		card, ok := st.GetCard(target)
		if !ok {
			return Failed("card not found")
		}
		st.Zones.MoveToZone(target, e.Destination, toZonesPosition(e))
		card.Zone = e.Destination
		return Success()

	case KindDrawCards:
		if !isPlayerEntity(st, target) {
			return Failed("target is not a player")
		}
		player := core.PlayerId(target)
		fromZone := resolveZone(e.FromZone, player, ctx.GetDeckZone)
		toZone := resolveZone(e.ToZone, player, ctx.GetHandZone)
		drawn := 0
		for i := 0; i < e.Count; i++ {
			entity, ok := st.Zones.PopTop(fromZone)
			if !ok {
				break
			}
			st.Zones.AddToZone(entity, toZone, zones.Top)
			if card, ok := st.GetCard(entity); ok {
				card.Zone = toZone
			}
			st.Public.HandSizes.Set(player, st.Public.HandSizes.Get(player)+1)
			drawn++
		}
		if drawn == 0 {
			return Failed("deck was empty")
		}
		return Success()

	case KindModifyCardState:
		if isPlayerEntity(st, target) {
			return Failed("target is a player, not a card")
		}
		card, ok := st.GetCard(target)
		if !ok {
			return Failed("card not found")
		}
		card.ModifyState(e.Key, e.Delta)
		return Success()

	case KindSetCardState:
		if isPlayerEntity(st, target) {
			return Failed("target is a player, not a card")
		}
		card, ok := st.GetCard(target)
		if !ok {
			return Failed("card not found")
		}
		card.SetState(e.Key, e.Value)
		return Success()

	case KindModifyTurnState:
		st.Public.SetTurnState(e.Key, st.Public.GetTurnState(e.Key, 0)+e.Delta)
		return Success()

	case KindSetTurnState:
		st.Public.SetTurnState(e.Key, e.Value)
		return Success()

	case KindShuffleZone:
		st.Zones.ShuffleZone(e.Zone, st.RNG)
		return Success()

	case KindBatch:
		for _, sub := range e.Effects {
			r := ResolveSingle(st, sub, target, ctx)
			if r.Kind == ResultFailed {
				return r
			}
		}
		return Success()

	case KindConditional:
		if ctx.EvalCondition(e.ConditionKey, st) {
			return ResolveSingle(st, *e.Inner, target, ctx)
		}
		return Skipped()

	default:
		return Failed("unknown effect kind")
	}
}

// resolveZoneEffect handles effects submitted with no targets: only
// ShuffleZone and the turn-state variants make sense without a target;
// everything else fails.
func resolveZoneEffect(st *state.GameState, e Effect, ctx ResolverContext) Result {
	switch e.Kind {
	case KindShuffleZone:
		st.Zones.ShuffleZone(e.Zone, st.RNG)
		return Success()
	case KindModifyTurnState:
		st.Public.SetTurnState(e.Key, st.Public.GetTurnState(e.Key, 0)+e.Delta)
		return Success()
	case KindSetTurnState:
		st.Public.SetTurnState(e.Key, e.Value)
		return Success()
	default:
		return Failed("effect requires a target")
	}
}

func resolveZone(explicit *core.ZoneId, player core.PlayerId, fallback func(core.PlayerId) core.ZoneId) core.ZoneId {
	if explicit != nil {
		return *explicit
	}
	return fallback(player)
}
