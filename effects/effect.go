// Package effects defines the atomic Effect tagged union, the
// EffectBatch/Entry pairing of effects with targets, target selection,
// and the stateless Resolver that applies effects to a game state.
package effects

import "github.com/signalnine/cardsim/core"

// Kind tags which variant of Effect is populated.
type Kind int

const (
	KindModifyPlayerState Kind = iota
	KindSetPlayerState
	KindMoveCard
	KindDrawCards
	KindShuffleZone
	KindModifyCardState
	KindSetCardState
	KindModifyTurnState
	KindSetTurnState
	KindBatch
	KindConditional
)

// ZonePosition mirrors zones.Position without importing the zones
// package, since Effect values must be constructible from effects-only
// call sites; the resolver translates it at the point of use.
type ZonePosition int

const (
	PositionTop ZonePosition = iota
	PositionBottom
	PositionIndex
)

// Effect is an atomic, game-agnostic mutation of state, parameterized
// by a target supplied separately (see Entry). Implemented as a tagged
// struct rather than an interface hierarchy, matching the engine's
// general preference for flat data over polymorphism.
type Effect struct {
	Kind Kind

	// ModifyPlayerState / SetPlayerState / ModifyCardState / SetCardState
	// / ModifyTurnState / SetTurnState
	Key   string
	Delta int64
	Value int64

	// MoveCard
	Destination   core.ZoneId
	Position      ZonePosition
	PositionIndex int
	HasPosition   bool

	// DrawCards
	Count      int
	FromZone   *core.ZoneId
	ToZone     *core.ZoneId

	// ShuffleZone
	Zone core.ZoneId

	// Batch
	Effects []Effect

	// Conditional
	ConditionKey string
	Inner        *Effect
}

func ModifyPlayerState(key string, delta int64) Effect {
	return Effect{Kind: KindModifyPlayerState, Key: key, Delta: delta}
}

func SetPlayerState(key string, value int64) Effect {
	return Effect{Kind: KindSetPlayerState, Key: key, Value: value}
}

func MoveCard(destination core.ZoneId) Effect {
	return Effect{Kind: KindMoveCard, Destination: destination}
}

func MoveCardAt(destination core.ZoneId, pos ZonePosition, index int) Effect {
	return Effect{Kind: KindMoveCard, Destination: destination, Position: pos, PositionIndex: index, HasPosition: true}
}

func DrawCards(count int, fromZone, toZone *core.ZoneId) Effect {
	return Effect{Kind: KindDrawCards, Count: count, FromZone: fromZone, ToZone: toZone}
}

func ShuffleZone(zone core.ZoneId) Effect { return Effect{Kind: KindShuffleZone, Zone: zone} }

func ModifyCardState(key string, delta int64) Effect {
	return Effect{Kind: KindModifyCardState, Key: key, Delta: delta}
}

func SetCardState(key string, value int64) Effect {
	return Effect{Kind: KindSetCardState, Key: key, Value: value}
}

func ModifyTurnState(key string, delta int64) Effect {
	return Effect{Kind: KindModifyTurnState, Key: key, Delta: delta}
}

func SetTurnState(key string, value int64) Effect {
	return Effect{Kind: KindSetTurnState, Key: key, Value: value}
}

func NewBatch(effects ...Effect) Effect { return Effect{Kind: KindBatch, Effects: effects} }

func Conditional(conditionKey string, inner Effect) Effect {
	return Effect{Kind: KindConditional, ConditionKey: conditionKey, Inner: &inner}
}

// Damage creates a ModifyPlayerState effect against the conventional
// "life" key.
func Damage(amount int64) Effect { return ModifyPlayerState("life", -amount) }

// Heal creates a ModifyPlayerState effect against the conventional
// "life" key.
func Heal(amount int64) Effect { return ModifyPlayerState("life", amount) }

func Draw(count int) Effect { return DrawCards(count, nil, nil) }

func MoveTo(zone core.ZoneId) Effect { return MoveCard(zone) }

func MoveToTop(zone core.ZoneId) Effect { return MoveCardAt(zone, PositionTop, 0) }

func MoveToBottom(zone core.ZoneId) Effect { return MoveCardAt(zone, PositionBottom, 0) }

func ModifyPlayer(key string, delta int64) Effect { return ModifyPlayerState(key, delta) }

func SetPlayer(key string, value int64) Effect { return SetPlayerState(key, value) }

func ModifyCard(key string, delta int64) Effect { return ModifyCardState(key, delta) }

func SetCard(key string, value int64) Effect { return SetCardState(key, value) }

// Entry pairs an effect with the entities it targets. An empty Targets
// slice signals a zone-level effect handled by the resolver's
// zone-effect code path (ShuffleZone, turn-state variants).
type Entry struct {
	Effect  Effect
	Targets []core.EntityId
}

// Batch is an ordered list of (Effect, targets) pairs - the unit the
// resolver consumes. Named Batch (not EffectBatch) since it already
// lives in package effects.
type Batch struct {
	entries []Entry
}

func NewBatchList() *Batch { return &Batch{} }

func (b *Batch) Add(effect Effect, targets []core.EntityId) {
	cp := make([]core.EntityId, len(targets))
	copy(cp, targets)
	b.entries = append(b.entries, Entry{Effect: effect, Targets: cp})
}

func (b *Batch) AddSingle(effect Effect, target core.EntityId) {
	b.Add(effect, []core.EntityId{target})
}

func (b *Batch) AddPlayer(effect Effect, player core.PlayerId) {
	b.Add(effect, []core.EntityId{core.PlayerEntityId(player)})
}

func (b *Batch) AddZone(effect Effect) {
	b.entries = append(b.entries, Entry{Effect: effect})
}

func (b *Batch) Entries() []Entry { return b.entries }

func (b *Batch) Len() int { return len(b.entries) }

func (b *Batch) IsEmpty() bool { return len(b.entries) == 0 }
