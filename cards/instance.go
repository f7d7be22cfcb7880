package cards

import (
	"fmt"
	"sort"

	"github.com/signalnine/cardsim/core"
)

// Instance is the per-game mutable state of a card: which entity it is,
// which definition it instantiates, who owns/controls it, where it
// currently sits, and an arbitrary string->int64 state map (counters,
// damage, tap status - booleans encode as 0/1, entity refs as raw ids).
type Instance struct {
	EntityID   core.EntityId
	CardID     core.CardId
	Owner      *core.PlayerId
	Controller *core.PlayerId
	Zone       core.ZoneId
	FaceDown   bool
	State      map[string]int64
}

// NewInstance creates an owned card instance; controller starts equal
// to owner (games transfer control separately via SetController).
func NewInstance(entity core.EntityId, card core.CardId, owner core.PlayerId, zone core.ZoneId) *Instance {
	o := owner
	c := owner
	return &Instance{EntityID: entity, CardID: card, Owner: &o, Controller: &c, Zone: zone, State: map[string]int64{}}
}

// NewNeutralInstance creates a card instance with no owner/controller,
// for shared or game-controlled cards (e.g. a token pool).
func NewNeutralInstance(entity core.EntityId, card core.CardId, zone core.ZoneId) *Instance {
	return &Instance{EntityID: entity, CardID: card, Zone: zone, State: map[string]int64{}}
}

func (i *Instance) IsNeutral() bool { return i.Owner == nil }

// OwnerUnchecked panics if the card has no owner.
func (i *Instance) OwnerUnchecked() core.PlayerId {
	if i.Owner == nil {
		panic("cards: card has no owner")
	}
	return *i.Owner
}

// ControllerUnchecked panics if the card has no controller.
func (i *Instance) ControllerUnchecked() core.PlayerId {
	if i.Controller == nil {
		panic("cards: card has no controller")
	}
	return *i.Controller
}

func (i *Instance) SetController(p *core.PlayerId) { i.Controller = p }

func (i *Instance) GetState(key string, fallback int64) int64 {
	if v, ok := i.State[key]; ok {
		return v
	}
	return fallback
}

func (i *Instance) SetState(key string, v int64) { i.State[key] = v }

func (i *Instance) ModifyState(key string, delta int64) {
	i.State[key] = i.GetState(key, 0) + delta
}

func (i *Instance) HasFlag(key string) bool { return i.GetState(key, 0) != 0 }

func (i *Instance) SetFlag(key string, v bool) {
	if v {
		i.State[key] = 1
	} else {
		i.State[key] = 0
	}
}

func (i *Instance) ClearState() { i.State = map[string]int64{} }

func (i *Instance) ClearStateKeys(keys []string) {
	for _, k := range keys {
		delete(i.State, k)
	}
}

// SortedStateKeys returns State's keys sorted, so callers hash or
// serialize card state deterministically.
func (i *Instance) SortedStateKeys() []string {
	keys := make([]string, 0, len(i.State))
	for k := range i.State {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the instance, used by GameState.CloneState.
func (i *Instance) Clone() *Instance {
	out := &Instance{EntityID: i.EntityID, CardID: i.CardID, Zone: i.Zone, FaceDown: i.FaceDown}
	if i.Owner != nil {
		o := *i.Owner
		out.Owner = &o
	}
	if i.Controller != nil {
		c := *i.Controller
		out.Controller = &c
	}
	out.State = make(map[string]int64, len(i.State))
	for k, v := range i.State {
		out.State[k] = v
	}
	return out
}

func (i *Instance) String() string {
	return fmt.Sprintf("Instance(entity=%s card=%s zone=%s)", i.EntityID, i.CardID, i.Zone)
}
