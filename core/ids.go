// Package core holds the identifier types, per-player map, deterministic
// RNG, and action/config types shared by every other package.
package core

import "fmt"

// EntityId identifies any runtime object: a player, card, token, or
// ability instance. Values in [0, playerCount) are reserved for players;
// everything else is allocated by GameState from a monotonic counter.
type EntityId uint32

func (e EntityId) String() string { return fmt.Sprintf("Entity(%d)", uint32(e)) }

// PlayerId identifies a player. Player count is capped at 255 so a
// PlayerId always fits in a byte.
type PlayerId uint8

func (p PlayerId) String() string { return fmt.Sprintf("Player(%d)", uint8(p)) }

// PlayerEntityId returns the EntityId a player occupies in entity space.
func PlayerEntityId(p PlayerId) EntityId { return EntityId(p) }

// FirstNonPlayerEntity returns the first EntityId available for
// game-allocated entities given playerCount players.
func FirstNonPlayerEntity(playerCount int) EntityId { return EntityId(playerCount) }

// ZoneId identifies a zone (deck, hand, discard, battlefield, ...).
// Games assign meaning; the engine treats it as opaque.
type ZoneId uint16

func (z ZoneId) String() string { return fmt.Sprintf("Zone(%d)", uint16(z)) }

// CardId identifies a CardDefinition.
type CardId uint32

func (c CardId) String() string { return fmt.Sprintf("Card(%d)", uint32(c)) }

// CardTypeId is an opaque, game-defined card type tag.
type CardTypeId uint32

// TemplateId identifies an action template (the "verb" of an Action).
type TemplateId uint16

func (t TemplateId) String() string { return fmt.Sprintf("Template(%d)", uint16(t)) }

// PhaseId is an opaque, game-defined game-phase tag. The zero value is
// the default initial phase unless a game overrides it.
type PhaseId uint32

// EventTypeId identifies a kind of GameEvent. Opaque to the engine.
type EventTypeId uint32

func (e EventTypeId) String() string { return fmt.Sprintf("EventType(%d)", uint32(e)) }

// TriggerId identifies a registered Trigger.
type TriggerId uint32

func (t TriggerId) String() string { return fmt.Sprintf("Trigger(%d)", uint32(t)) }
