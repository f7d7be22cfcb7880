// Package triggers implements composable event-matching conditions and
// the priority-ordered, event-type-indexed trigger registry.
package triggers

import "github.com/signalnine/cardsim/core"

// GameEvent is a structured record of something that happened: an
// event-type id, optional source/target/player, an extra-entities list,
// a positional values list (games assign meaning - e.g. values[0] is
// conventionally a damage amount), a zones list (zone-change events use
// zones[0]=from, zones[1]=to), and a tag list.
type GameEvent struct {
	EventType     core.EventTypeId
	Source        *core.EntityId
	Target        *core.EntityId
	Player        *core.PlayerId
	OtherEntities []core.EntityId
	Values        []int64
	Zones         []core.ZoneId
	Tags          []string
}

func NewGameEvent(eventType core.EventTypeId) GameEvent {
	return GameEvent{EventType: eventType}
}

func (e GameEvent) WithSource(s core.EntityId) GameEvent { e.Source = &s; return e }
func (e GameEvent) WithTarget(t core.EntityId) GameEvent { e.Target = &t; return e }
func (e GameEvent) WithPlayer(p core.PlayerId) GameEvent { e.Player = &p; return e }
func (e GameEvent) WithEntity(ent core.EntityId) GameEvent {
	e.OtherEntities = append(e.OtherEntities, ent)
	return e
}
func (e GameEvent) WithValue(v int64) GameEvent { e.Values = append(e.Values, v); return e }
func (e GameEvent) WithZone(z core.ZoneId) GameEvent { e.Zones = append(e.Zones, z); return e }
func (e GameEvent) WithTag(tag string) GameEvent { e.Tags = append(e.Tags, tag); return e }

func (e GameEvent) Value(index int, fallback int64) int64 {
	if index >= 0 && index < len(e.Values) {
		return e.Values[index]
	}
	return fallback
}

func (e GameEvent) Zone(index int) (core.ZoneId, bool) {
	if index >= 0 && index < len(e.Zones) {
		return e.Zones[index], true
	}
	return 0, false
}

func (e GameEvent) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Damage builds a conventional damage event: source, target, and
// values[0] = amount.
func Damage(eventType core.EventTypeId, source, target core.EntityId, amount int64) GameEvent {
	return NewGameEvent(eventType).WithSource(source).WithTarget(target).WithValue(amount)
}

// ZoneChange builds a conventional zone-change event: target=card,
// zones[0]=from, zones[1]=to.
func ZoneChange(eventType core.EventTypeId, card core.EntityId, from, to core.ZoneId) GameEvent {
	return NewGameEvent(eventType).WithTarget(card).WithZone(from).WithZone(to)
}

// ForPlayer builds an event scoped to a single player.
func ForPlayer(eventType core.EventTypeId, player core.PlayerId) GameEvent {
	return NewGameEvent(eventType).WithPlayer(player)
}

// ForCard builds an event where source=card and player=controller.
func ForCard(eventType core.EventTypeId, card core.EntityId, controller core.PlayerId) GameEvent {
	return NewGameEvent(eventType).WithSource(card).WithPlayer(controller)
}

// EventTypeConfig documents an event type a game defines.
type EventTypeConfig struct {
	ID          core.EventTypeId
	Name        string
	Description string
}

func NewEventTypeConfig(id core.EventTypeId, name string) EventTypeConfig {
	return EventTypeConfig{ID: id, Name: name}
}

func (c EventTypeConfig) WithDescription(desc string) EventTypeConfig {
	c.Description = desc
	return c
}
