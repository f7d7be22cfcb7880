// Package zones tracks which zone every entity currently occupies, and
// the ordering of entities within zones that care about order.
package zones

import (
	"fmt"

	"github.com/signalnine/cardsim/core"
)

// Position selects where in an ordered zone a newly added or moved
// entity lands.
type Position struct {
	kind  positionKind
	index int
}

type positionKind int

const (
	posTop positionKind = iota
	posBottom
	posIndex
)

var (
	// Top places the entity at the end of the order slice (the top).
	Top = Position{kind: posTop}
	// Bottom places the entity at the start of the order slice.
	Bottom = Position{kind: posBottom}
)

// Index places the entity at position i, clamped to the zone's length.
func Index(i int) Position { return Position{kind: posIndex, index: i} }

// Manager tracks entity->zone membership and, for ordered zones, the
// explicit sequence of entities within the zone.
type Manager struct {
	locations map[core.EntityId]core.ZoneId
	order     map[core.ZoneId][]core.EntityId
}

// NewManager returns an empty zone manager.
func NewManager() *Manager {
	return &Manager{
		locations: make(map[core.EntityId]core.ZoneId),
		order:     make(map[core.ZoneId][]core.EntityId),
	}
}

// InitOrderedZone marks zone as order-tracked. Must be called before
// adding entities to it if insertion order should be tracked.
func (m *Manager) InitOrderedZone(zone core.ZoneId) {
	if _, ok := m.order[zone]; !ok {
		m.order[zone] = []core.EntityId{}
	}
}

// IsOrdered reports whether zone has been initialized as ordered.
func (m *Manager) IsOrdered(zone core.ZoneId) bool {
	_, ok := m.order[zone]
	return ok
}

// AddToZone places entity into zone at pos (default Top if pos is the
// zero Position). Panics if entity is already tracked anywhere - this
// is a programmer error, not a recoverable game condition.
func (m *Manager) AddToZone(entity core.EntityId, zone core.ZoneId, pos Position) {
	if _, exists := m.locations[entity]; exists {
		panic(fmt.Sprintf("zones: entity %d already exists in zone manager", uint32(entity)))
	}
	m.locations[entity] = zone
	if order, ok := m.order[zone]; ok {
		m.order[zone] = insertAt(order, entity, pos)
	}
}

func insertAt(order []core.EntityId, entity core.EntityId, pos Position) []core.EntityId {
	switch pos.kind {
	case posBottom:
		out := make([]core.EntityId, 0, len(order)+1)
		out = append(out, entity)
		return append(out, order...)
	case posIndex:
		i := pos.index
		if i > len(order) {
			i = len(order)
		}
		if i < 0 {
			i = 0
		}
		out := make([]core.EntityId, 0, len(order)+1)
		out = append(out, order[:i]...)
		out = append(out, entity)
		out = append(out, order[i:]...)
		return out
	default: // posTop
		return append(order, entity)
	}
}

// MoveToZone moves entity to newZone at pos, returning the entity's
// previous zone. Returns false if the entity is not tracked. If the
// entity is already in newZone, this is a no-op that still reports the
// (unchanged) zone.
func (m *Manager) MoveToZone(entity core.EntityId, newZone core.ZoneId, pos Position) (core.ZoneId, bool) {
	oldZone, ok := m.locations[entity]
	if !ok {
		return 0, false
	}
	if oldZone == newZone {
		return oldZone, true
	}
	if order, tracked := m.order[oldZone]; tracked {
		m.order[oldZone] = removeEntity(order, entity)
	}
	m.locations[entity] = newZone
	if order, tracked := m.order[newZone]; tracked {
		m.order[newZone] = insertAt(order, entity, pos)
	}
	return oldZone, true
}

func removeEntity(order []core.EntityId, entity core.EntityId) []core.EntityId {
	out := order[:0]
	for _, e := range order {
		if e != entity {
			out = append(out, e)
		}
	}
	return out
}

// Remove drops entity from all tracking, returning its former zone.
func (m *Manager) Remove(entity core.EntityId) (core.ZoneId, bool) {
	zone, ok := m.locations[entity]
	if !ok {
		return 0, false
	}
	delete(m.locations, entity)
	if order, tracked := m.order[zone]; tracked {
		m.order[zone] = removeEntity(order, entity)
	}
	return zone, true
}

// GetZone returns the zone entity currently occupies.
func (m *Manager) GetZone(entity core.EntityId) (core.ZoneId, bool) {
	z, ok := m.locations[entity]
	return z, ok
}

// IsInZone reports whether entity currently occupies zone.
func (m *Manager) IsInZone(entity core.EntityId, zone core.ZoneId) bool {
	z, ok := m.locations[entity]
	return ok && z == zone
}

// CardsInZone returns every entity currently in zone, via a full scan.
// Works regardless of whether the zone is order-tracked.
func (m *Manager) CardsInZone(zone core.ZoneId) []core.EntityId {
	var out []core.EntityId
	for e, z := range m.locations {
		if z == zone {
			out = append(out, e)
		}
	}
	return out
}

// CardsInZoneOrdered returns the tracked order slice for zone, or an
// empty slice if the zone was never initialized as ordered.
func (m *Manager) CardsInZoneOrdered(zone core.ZoneId) []core.EntityId {
	return m.order[zone]
}

// ZoneSize returns the number of entities in zone.
func (m *Manager) ZoneSize(zone core.ZoneId) int {
	if order, ok := m.order[zone]; ok {
		return len(order)
	}
	return len(m.CardsInZone(zone))
}

// TopCard returns the entity at the top of an ordered zone.
func (m *Manager) TopCard(zone core.ZoneId) (core.EntityId, bool) {
	order := m.order[zone]
	if len(order) == 0 {
		return 0, false
	}
	return order[len(order)-1], true
}

// BottomCard returns the entity at the bottom of an ordered zone.
func (m *Manager) BottomCard(zone core.ZoneId) (core.EntityId, bool) {
	order := m.order[zone]
	if len(order) == 0 {
		return 0, false
	}
	return order[0], true
}

// PopTop removes and returns the entity at the top of an ordered zone.
func (m *Manager) PopTop(zone core.ZoneId) (core.EntityId, bool) {
	order := m.order[zone]
	if len(order) == 0 {
		return 0, false
	}
	entity := order[len(order)-1]
	m.order[zone] = order[:len(order)-1]
	delete(m.locations, entity)
	return entity, true
}

// PopBottom removes and returns the entity at the bottom of an ordered
// zone.
func (m *Manager) PopBottom(zone core.ZoneId) (core.EntityId, bool) {
	order := m.order[zone]
	if len(order) == 0 {
		return 0, false
	}
	entity := order[0]
	m.order[zone] = order[1:]
	delete(m.locations, entity)
	return entity, true
}

// Shuffler is the subset of *core.RNG that ShuffleZone needs, declared
// locally so this package need not import core's concrete RNG type
// into its exported surface beyond what state.go already shares.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShuffleZone randomizes an ordered zone's sequence in place using rng.
// A no-op if zone was never initialized as ordered.
func (m *Manager) ShuffleZone(zone core.ZoneId, rng Shuffler) {
	order, ok := m.order[zone]
	if !ok {
		return
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
}

// TotalCards returns the number of entities tracked across all zones.
func (m *Manager) TotalCards() int { return len(m.locations) }

// Contains reports whether entity is tracked anywhere.
func (m *Manager) Contains(entity core.EntityId) bool {
	_, ok := m.locations[entity]
	return ok
}

// Clone returns a deep copy sufficient for MCTS's cheap game-state
// snapshot contract: independent locations/order maps and slices.
func (m *Manager) Clone() *Manager {
	out := &Manager{
		locations: make(map[core.EntityId]core.ZoneId, len(m.locations)),
		order:     make(map[core.ZoneId][]core.EntityId, len(m.order)),
	}
	for k, v := range m.locations {
		out.locations[k] = v
	}
	for k, v := range m.order {
		cp := make([]core.EntityId, len(v))
		copy(cp, v)
		out.order[k] = cp
	}
	return out
}
