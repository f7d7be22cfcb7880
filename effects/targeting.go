package effects

import (
	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/state"
)

// TargetTypeKind tags which field of TargetType applies.
type TargetTypeKind int

const (
	TargetPlayer TargetTypeKind = iota
	TargetCard
	TargetAny
)

// TargetType describes what kind of entity a TargetSpec looks for.
type TargetType struct {
	Kind  TargetTypeKind
	Zones []core.ZoneId // only used for TargetCard
}

// TargetCountKind tags which field of TargetCount applies.
type TargetCountKind int

const (
	CountExactly TargetCountKind = iota
	CountUpTo
	CountAtLeast
	CountRange
	CountAll
)

// TargetCount describes how many targets a spec requires.
type TargetCount struct {
	Kind     TargetCountKind
	N        int
	RangeMin int
	RangeMax int
}

func ExactlyN(n int) TargetCount   { return TargetCount{Kind: CountExactly, N: n} }
func UpToN(n int) TargetCount      { return TargetCount{Kind: CountUpTo, N: n} }
func AtLeastN(n int) TargetCount   { return TargetCount{Kind: CountAtLeast, N: n} }
func RangeN(min, max int) TargetCount {
	return TargetCount{Kind: CountRange, RangeMin: min, RangeMax: max}
}
func AllTargets() TargetCount { return TargetCount{Kind: CountAll} }

// FilterKind tags which field(s) of TargetFilter apply.
type FilterKind int

const (
	FilterOpponent FilterKind = iota
	FilterSelf
	FilterNotSelf
	FilterSpecificPlayer
	FilterInZone
	FilterHasCardType
	FilterOwnedBy
	FilterControlledBy
	FilterStateInRange
	FilterNotSource
	FilterCustom
)

// TargetFilter narrows the candidate set a TargetSelector enumerates.
type TargetFilter struct {
	Kind FilterKind

	Player   core.PlayerId
	Zone     core.ZoneId
	CardType core.CardTypeId
	Key      string
	Min      *int64
	Max      *int64
	Custom   string
}

func Opponent() TargetFilter              { return TargetFilter{Kind: FilterOpponent} }
func SelfFilter() TargetFilter             { return TargetFilter{Kind: FilterSelf} }
func NotSelf() TargetFilter                { return TargetFilter{Kind: FilterNotSelf} }
func SpecificPlayer(p core.PlayerId) TargetFilter {
	return TargetFilter{Kind: FilterSpecificPlayer, Player: p}
}
func InZone(z core.ZoneId) TargetFilter { return TargetFilter{Kind: FilterInZone, Zone: z} }
func HasCardType(t core.CardTypeId) TargetFilter {
	return TargetFilter{Kind: FilterHasCardType, CardType: t}
}
func OwnedBy(p core.PlayerId) TargetFilter { return TargetFilter{Kind: FilterOwnedBy, Player: p} }
func ControlledBy(p core.PlayerId) TargetFilter {
	return TargetFilter{Kind: FilterControlledBy, Player: p}
}
func StateInRange(key string, min, max *int64) TargetFilter {
	return TargetFilter{Kind: FilterStateInRange, Key: key, Min: min, Max: max}
}
func NotSource() TargetFilter         { return TargetFilter{Kind: FilterNotSource} }
func Custom(key string) TargetFilter  { return TargetFilter{Kind: FilterCustom, Custom: key} }

// TargetSpec bundles a target type, ordered filter list, a count
// policy, and whether the target is optional.
type TargetSpec struct {
	Type     TargetType
	Filters  []TargetFilter
	Count    TargetCount
	Optional bool
}

func SinglePlayer() TargetSpec {
	return TargetSpec{Type: TargetType{Kind: TargetPlayer}, Count: ExactlyN(1)}
}

func SingleOpponent() TargetSpec {
	return TargetSpec{Type: TargetType{Kind: TargetPlayer}, Filters: []TargetFilter{Opponent()}, Count: ExactlyN(1)}
}

func SingleCard(zones []core.ZoneId) TargetSpec {
	return TargetSpec{Type: TargetType{Kind: TargetCard, Zones: zones}, Count: ExactlyN(1)}
}

func MultipleCards(zones []core.ZoneId, count int) TargetSpec {
	return TargetSpec{Type: TargetType{Kind: TargetCard, Zones: zones}, Count: ExactlyN(count)}
}

func (s TargetSpec) WithFilter(f TargetFilter) TargetSpec {
	s.Filters = append(s.Filters, f)
	return s
}

func (s TargetSpec) MakeOptional() TargetSpec {
	s.Optional = true
	return s
}

// TargetSelector binds a spec to an acting player and optional source
// entity, and enumerates/validates candidate targets against a state.
type TargetSelector struct {
	Spec         TargetSpec
	ActingPlayer core.PlayerId
	Source       *core.EntityId
}

func NewTargetSelector(spec TargetSpec, actingPlayer core.PlayerId) TargetSelector {
	return TargetSelector{Spec: spec, ActingPlayer: actingPlayer}
}

func (s TargetSelector) WithSource(source core.EntityId) TargetSelector {
	s.Source = &source
	return s
}

// ValidTargets enumerates every entity satisfying the spec's type and
// filters, given st.
func (s TargetSelector) ValidTargets(st *state.GameState) []core.EntityId {
	var candidates []core.EntityId
	switch s.Spec.Type.Kind {
	case TargetPlayer, TargetAny:
		for p := 0; p < st.PlayerCount(); p++ {
			candidates = append(candidates, core.PlayerEntityId(core.PlayerId(p)))
		}
	case TargetCard:
		for _, z := range s.Spec.Type.Zones {
			candidates = append(candidates, st.Zones.CardsInZone(z)...)
		}
	}
	var out []core.EntityId
	for _, c := range candidates {
		if s.passesAllFilters(st, c) {
			out = append(out, c)
		}
	}
	return out
}

func (s TargetSelector) isPlayerEntity(st *state.GameState, e core.EntityId) bool {
	return int(e) < st.PlayerCount()
}

func (s TargetSelector) passesAllFilters(st *state.GameState, e core.EntityId) bool {
	for _, f := range s.Spec.Filters {
		if !s.passesFilter(st, e, f) {
			return false
		}
	}
	return true
}

func (s TargetSelector) passesFilter(st *state.GameState, e core.EntityId, f TargetFilter) bool {
	switch f.Kind {
	case FilterOpponent:
		return s.isPlayerEntity(st, e) && core.PlayerId(e) != s.ActingPlayer
	case FilterSelf:
		return s.isPlayerEntity(st, e) && core.PlayerId(e) == s.ActingPlayer
	case FilterNotSelf:
		return !s.isPlayerEntity(st, e) || core.PlayerId(e) != s.ActingPlayer
	case FilterSpecificPlayer:
		return s.isPlayerEntity(st, e) && core.PlayerId(e) == f.Player
	case FilterInZone:
		return st.Zones.IsInZone(e, f.Zone)
	case FilterHasCardType:
		// No CardRegistry access here; conservatively always false, as
		// documented in SPEC_FULL.md.
		return false
	case FilterOwnedBy:
		card, ok := st.GetCard(e)
		return ok && card.Owner != nil && *card.Owner == f.Player
	case FilterControlledBy:
		card, ok := st.GetCard(e)
		return ok && card.Controller != nil && *card.Controller == f.Player
	case FilterStateInRange:
		card, ok := st.GetCard(e)
		if !ok {
			return false
		}
		v := card.GetState(f.Key, 0)
		if f.Min != nil && v < *f.Min {
			return false
		}
		if f.Max != nil && v > *f.Max {
			return false
		}
		return true
	case FilterNotSource:
		return s.Source == nil || e != *s.Source
	case FilterCustom:
		// Permissive escape hatch: game code is expected to post-filter.
		// Deliberately asymmetric with TriggerCondition's Custom, which
		// defaults to false - see SPEC_FULL.md.
		return true
	default:
		return true
	}
}

func (s TargetSpec) minRequired() int {
	switch s.Count.Kind {
	case CountExactly:
		return s.Count.N
	case CountAtLeast:
		return s.Count.N
	case CountRange:
		return s.Count.RangeMin
	default:
		return 0
	}
}

// HasEnoughTargets reports whether enough valid targets exist in st to
// satisfy the spec's count policy (always true if the spec is optional).
func (s TargetSelector) HasEnoughTargets(st *state.GameState) bool {
	if s.Spec.Optional {
		return true
	}
	return len(s.ValidTargets(st)) >= s.Spec.minRequired()
}

// ValidateSelection checks a proposed target list against the spec's
// count policy and confirms every selected entity is actually valid.
func (s TargetSelector) ValidateSelection(st *state.GameState, selected []core.EntityId) bool {
	if !s.countValid(len(selected)) {
		return false
	}
	valid := s.ValidTargets(st)
	for _, sel := range selected {
		found := false
		for _, v := range valid {
			if v == sel {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s TargetSelector) countValid(n int) bool {
	if s.Spec.Optional && n == 0 {
		return true
	}
	switch s.Spec.Count.Kind {
	case CountExactly:
		return n == s.Spec.Count.N
	case CountUpTo:
		return n <= s.Spec.Count.N
	case CountAtLeast:
		return n >= s.Spec.Count.N
	case CountRange:
		return n >= s.Spec.Count.RangeMin && n <= s.Spec.Count.RangeMax
	case CountAll:
		return true
	default:
		return true
	}
}
