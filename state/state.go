// Package state composes core's identifiers, the zone manager, and card
// instances into the split PublicState/GameState substrate every other
// package operates on. It is a separate package from core (rather than
// living inside core as the spec's component lettering might suggest)
// because it depends on both zones and cards, which themselves depend on
// core's identifier types - folding it into core would create an import
// cycle.
package state

import (
	"github.com/signalnine/cardsim/cards"
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/zones"
)

// PublicState is the observable portion of a game's state: phase, turn
// tracking, active/priority players, per-player and per-turn counters,
// hand sizes, known-card sets, and action history. Everything here is
// visible to an MCTS search driving any player (contrast GameState's
// private hands/decks/card map).
type PublicState struct {
	PlayerCount     int
	Phase           core.PhaseId
	TurnNumber      uint32
	ActionSequence  uint32
	ActivePlayer    core.PlayerId
	PriorityPlayers []core.PlayerId
	PlayerState     core.PlayerMap[map[string]int64]
	TurnState       map[string]int64
	HandSizes       core.PlayerMap[uint32]
	KnownHandCards  core.PlayerMap[map[core.CardId]struct{}]
	ActionHistory   []core.ActionRecord
}

// NewPublicState builds the public state for playerCount players.
// Panics if playerCount is outside [1,255] (core.NewPlayerMap enforces
// this).
func NewPublicState(playerCount int) PublicState {
	return PublicState{
		PlayerCount:     playerCount,
		TurnNumber:      1,
		ActivePlayer:    0,
		PriorityPlayers: []core.PlayerId{0},
		PlayerState:     core.NewPlayerMapFunc(playerCount, func(core.PlayerId) map[string]int64 { return map[string]int64{} }),
		TurnState:       map[string]int64{},
		HandSizes:       core.NewPlayerMap(playerCount, uint32(0)),
		KnownHandCards:  core.NewPlayerMapFunc(playerCount, func(core.PlayerId) map[core.CardId]struct{} { return map[core.CardId]struct{}{} }),
	}
}

func (p *PublicState) GetPlayerState(player core.PlayerId, key string, fallback int64) int64 {
	if v, ok := p.PlayerState.Get(player)[key]; ok {
		return v
	}
	return fallback
}

func (p *PublicState) SetPlayerState(player core.PlayerId, key string, value int64) {
	p.PlayerState.Get(player)[key] = value
}

func (p *PublicState) ModifyPlayerState(player core.PlayerId, key string, delta int64) {
	m := p.PlayerState.Get(player)
	m[key] = m[key] + delta
}

func (p *PublicState) GetTurnState(key string, fallback int64) int64 {
	if v, ok := p.TurnState[key]; ok {
		return v
	}
	return fallback
}

func (p *PublicState) SetTurnState(key string, value int64) { p.TurnState[key] = value }

func (p *PublicState) SetActivePlayer(player core.PlayerId) { p.ActivePlayer = player }

func (p *PublicState) SetPriority(player core.PlayerId) { p.PriorityPlayers = []core.PlayerId{player} }

func (p *PublicState) SetPriorityMultiple(players []core.PlayerId) {
	p.PriorityPlayers = append([]core.PlayerId(nil), players...)
}

func (p *PublicState) HasPriority(player core.PlayerId) bool {
	for _, pl := range p.PriorityPlayers {
		if pl == player {
			return true
		}
	}
	return false
}

// AdvanceTurn bumps the turn counter, clears per-turn state, and resets
// the action-sequence counter.
func (p *PublicState) AdvanceTurn() {
	p.TurnNumber++
	p.TurnState = map[string]int64{}
	p.ActionSequence = 0
}

// AdvanceTurnPreserveState bumps the turn counter and resets the
// action-sequence counter, but keeps per-turn state intact.
func (p *PublicState) AdvanceTurnPreserveState() {
	p.TurnNumber++
	p.ActionSequence = 0
}

func (p *PublicState) RecordAction(record core.ActionRecord) {
	p.ActionHistory = append(p.ActionHistory, record)
}

// NextSequence returns the current action-sequence value then advances
// it, for tagging successive actions within a turn.
func (p *PublicState) NextSequence() uint32 {
	seq := p.ActionSequence
	p.ActionSequence++
	return seq
}

// Clone returns a deep copy of the public state.
func (p *PublicState) Clone() PublicState {
	out := *p
	out.PriorityPlayers = append([]core.PlayerId(nil), p.PriorityPlayers...)
	out.PlayerState = core.NewPlayerMapFunc(p.PlayerCount, func(id core.PlayerId) map[string]int64 {
		src := p.PlayerState.Get(id)
		m := make(map[string]int64, len(src))
		for k, v := range src {
			m[k] = v
		}
		return m
	})
	out.TurnState = make(map[string]int64, len(p.TurnState))
	for k, v := range p.TurnState {
		out.TurnState[k] = v
	}
	out.HandSizes = p.HandSizes.Clone()
	out.KnownHandCards = core.NewPlayerMapFunc(p.PlayerCount, func(id core.PlayerId) map[core.CardId]struct{} {
		src := p.KnownHandCards.Get(id)
		m := make(map[core.CardId]struct{}, len(src))
		for k := range src {
			m[k] = struct{}{}
		}
		return m
	})
	out.ActionHistory = append([]core.ActionRecord(nil), p.ActionHistory...)
	return out
}

// GameState composes PublicState with the zone manager, private hands
// and decks, the card-instance map, and the owning RNG.
type GameState struct {
	Public       PublicState
	Zones        *zones.Manager
	Hands        core.PlayerMap[[]core.CardId]
	Decks        core.PlayerMap[[]core.CardId]
	Cards        map[core.EntityId]*cards.Instance
	RNG          *core.RNG
	nextEntityID core.EntityId
}

// NewGameState builds a fresh game state for playerCount players, seeded
// with the given RNG seed. Entity allocation starts immediately after
// the player id range.
func NewGameState(playerCount int, seed uint64) *GameState {
	return &GameState{
		Public:       NewPublicState(playerCount),
		Zones:        zones.NewManager(),
		Hands:        core.NewPlayerMapFunc(playerCount, func(core.PlayerId) []core.CardId { return nil }),
		Decks:        core.NewPlayerMapFunc(playerCount, func(core.PlayerId) []core.CardId { return nil }),
		Cards:        map[core.EntityId]*cards.Instance{},
		RNG:          core.NewRNG(seed),
		nextEntityID: core.FirstNonPlayerEntity(playerCount),
	}
}

func (g *GameState) PlayerCount() int { return g.Public.PlayerCount }

// AllocEntity returns a fresh EntityId from the monotonic counter.
func (g *GameState) AllocEntity() core.EntityId {
	id := g.nextEntityID
	g.nextEntityID++
	return id
}

// AddCard inserts a card instance into the card map and places it into
// its declared zone via the zone manager.
func (g *GameState) AddCard(card *cards.Instance) {
	g.Cards[card.EntityID] = card
	g.Zones.AddToZone(card.EntityID, card.Zone, zones.Top)
}

func (g *GameState) GetCard(id core.EntityId) (*cards.Instance, bool) {
	c, ok := g.Cards[id]
	return c, ok
}

func (g *GameState) Hand(player core.PlayerId) []core.CardId { return g.Hands.Get(player) }

func (g *GameState) AddToHand(player core.PlayerId, card core.CardId) {
	hand := append(g.Hands.Get(player), card)
	g.Hands.Set(player, hand)
	g.Public.HandSizes.Set(player, g.Public.HandSizes.Get(player)+1)
}

// RemoveFromHand removes the first occurrence of card from player's
// hand, returning whether it was found.
func (g *GameState) RemoveFromHand(player core.PlayerId, card core.CardId) bool {
	hand := g.Hands.Get(player)
	for i, c := range hand {
		if c == card {
			hand = append(hand[:i], hand[i+1:]...)
			g.Hands.Set(player, hand)
			g.Public.HandSizes.Set(player, g.Public.HandSizes.Get(player)-1)
			return true
		}
	}
	return false
}

func (g *GameState) SetDeck(player core.PlayerId, deck []core.CardId) { g.Decks.Set(player, deck) }

func (g *GameState) Deck(player core.PlayerId) []core.CardId { return g.Decks.Get(player) }

func (g *GameState) DeckSize(player core.PlayerId) int { return len(g.Decks.Get(player)) }

// DrawCard pops the top (last element) of player's deck into their
// hand, returning the drawn card id, or false if the deck is empty.
func (g *GameState) DrawCard(player core.PlayerId) (core.CardId, bool) {
	deck := g.Decks.Get(player)
	if len(deck) == 0 {
		return 0, false
	}
	card := deck[len(deck)-1]
	g.Decks.Set(player, deck[:len(deck)-1])
	g.AddToHand(player, card)
	return card, true
}

// ShuffleDeck randomizes player's deck order using the state's RNG.
func (g *GameState) ShuffleDeck(player core.PlayerId) {
	deck := g.Decks.Get(player)
	g.RNG.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// CloneState returns a cheap snapshot suitable for one MCTS iteration.
//
// This method has a pointer receiver and mutates the receiver even
// though it looks like a read: forking g.RNG advances g's own fork
// counter, so every clone's RNG stream is distinct and deterministic.
// This mirrors the original engine's GameState::clone_state(&mut self)
// exactly - it is the one surprising non-const-looking method in this
// package, called out here rather than silently "fixed" to take a
// value receiver.
func (g *GameState) CloneState() *GameState {
	out := &GameState{
		Public:       g.Public.Clone(),
		Zones:        g.Zones.Clone(),
		Hands:        g.Hands.Clone(),
		Decks:        g.Decks.Clone(),
		Cards:        make(map[core.EntityId]*cards.Instance, len(g.Cards)),
		RNG:          g.RNG.Fork(),
		nextEntityID: g.nextEntityID,
	}
	for id, c := range g.Cards {
		out.Cards[id] = c.Clone()
	}
	// PlayerMap[[]CardId].Clone only copies the slice header; deep-copy
	// each player's hand/deck slice so mutating the clone's hand never
	// touches the source's backing array.
	out.Hands = core.NewPlayerMapFunc(g.PlayerCount(), func(p core.PlayerId) []core.CardId {
		src := g.Hands.Get(p)
		cp := make([]core.CardId, len(src))
		copy(cp, src)
		return cp
	})
	out.Decks = core.NewPlayerMapFunc(g.PlayerCount(), func(p core.PlayerId) []core.CardId {
		src := g.Decks.Get(p)
		cp := make([]core.CardId, len(src))
		copy(cp, src)
		return cp
	})
	return out
}
