package triggers

import (
	"sort"

	"github.com/signalnine/cardsim/core"
	"github.com/signalnine/cardsim/effects"
)

// TriggerTiming describes when, relative to the event it matches, a
// trigger's effect is meant to resolve.
type TriggerTiming int

const (
	TimingAfter TriggerTiming = iota
	TimingBefore
	TimingReplace
)

// Trigger binds a condition to an owning source entity, an event
// timing, and a priority used to order simultaneous firings. Priority
// is descending (higher fires first); ties break by ascending TriggerId,
// the order triggers were registered in.
type Trigger struct {
	ID            core.TriggerId
	Name          string
	Source        core.EntityId
	Controller    *core.PlayerId
	EventTypes    []core.EventTypeId
	Timing        TriggerTiming
	Priority      int
	Effects       []effects.Effect
	Enabled       bool
	UsesRemaining *uint32
	Cond          TriggerCondition
}

func NewTrigger(id core.TriggerId, source core.EntityId, timing TriggerTiming, cond TriggerCondition) Trigger {
	return Trigger{ID: id, Source: source, Timing: timing, Cond: cond, Enabled: true}
}

func (t Trigger) WithName(name string) Trigger { t.Name = name; return t }

func (t Trigger) WithController(p core.PlayerId) Trigger { t.Controller = &p; return t }

// AlsoOn adds an explicit event type to listen for, beyond whatever
// eventTypesOf derives from t.Cond.
func (t Trigger) AlsoOn(eventType core.EventTypeId) Trigger {
	for _, et := range t.EventTypes {
		if et == eventType {
			return t
		}
	}
	t.EventTypes = append(t.EventTypes, eventType)
	return t
}

func (t Trigger) WithEffect(e effects.Effect) Trigger {
	t.Effects = append(t.Effects, e)
	return t
}

func (t Trigger) WithEffects(es ...effects.Effect) Trigger {
	t.Effects = append(t.Effects, es...)
	return t
}

func (t Trigger) WithPriority(p int) Trigger { t.Priority = p; return t }

// WithUses limits this trigger to firing uses times before CanFire
// starts returning false.
func (t Trigger) WithUses(uses uint32) Trigger {
	t.UsesRemaining = &uses
	return t
}

// CanFire reports whether t is eligible to fire at all (enabled, and
// either unlimited or still has uses remaining).
func (t Trigger) CanFire() bool {
	if !t.Enabled {
		return false
	}
	if t.UsesRemaining != nil && *t.UsesRemaining == 0 {
		return false
	}
	return true
}

// UseTrigger consumes one use, saturating at zero. A no-op for
// unlimited (UsesRemaining == nil) triggers.
func (t *Trigger) UseTrigger() {
	if t.UsesRemaining == nil {
		return
	}
	if *t.UsesRemaining > 0 {
		*t.UsesRemaining--
	}
}

// TriggeredEffect is a Trigger matched against the event that fired it.
// FindTriggers copies Effects and Controller from the matched Trigger
// before the result is queued with a resolution.System: effects resolve
// against Controller if known, or as zone effects (no target) otherwise.
type TriggeredEffect struct {
	Trigger    Trigger
	Event      GameEvent
	Effects    []effects.Effect
	Controller *core.PlayerId
}

func (te TriggeredEffect) WithEffects(es ...effects.Effect) TriggeredEffect {
	te.Effects = es
	return te
}

func (te TriggeredEffect) WithController(p core.PlayerId) TriggeredEffect {
	te.Controller = &p
	return te
}

// Registry indexes registered triggers by event type for O(matching)
// lookup rather than a linear scan of every trigger on every event.
type Registry struct {
	byID        map[core.TriggerId]Trigger
	byEventType map[core.EventTypeId][]core.TriggerId
	nextID      core.TriggerId
}

func NewRegistry() *Registry {
	return &Registry{
		byID:        make(map[core.TriggerId]Trigger),
		byEventType: make(map[core.EventTypeId][]core.TriggerId),
	}
}

// Register assigns the next free TriggerId to t and stores it, indexing
// it under every EventTypeId its condition could plausibly match.
func (r *Registry) Register(t Trigger) core.TriggerId {
	r.nextID++
	t.ID = r.nextID
	return r.RegisterWithID(t)
}

// RegisterWithID stores t under its own ID, overwriting any existing
// trigger with that ID.
func (r *Registry) RegisterWithID(t Trigger) core.TriggerId {
	r.byID[t.ID] = t
	for _, et := range indexKeysOf(t) {
		r.byEventType[et] = append(r.byEventType[et], t.ID)
	}
	if t.ID >= r.nextID {
		r.nextID = t.ID
	}
	return t.ID
}

// indexKeysOf returns the union of t's explicit EventTypes and whatever
// eventTypesOf derives from its condition, deduplicated.
func indexKeysOf(t Trigger) []core.EventTypeId {
	seen := make(map[core.EventTypeId]bool, len(t.EventTypes))
	var out []core.EventTypeId
	for _, et := range t.EventTypes {
		if !seen[et] {
			seen[et] = true
			out = append(out, et)
		}
	}
	for _, et := range eventTypesOf(t.Cond) {
		if !seen[et] {
			seen[et] = true
			out = append(out, et)
		}
	}
	return out
}

// eventTypesOf extracts the concrete event types a condition could
// match, for indexing purposes. Conditions that can match any event type
// (Always, Custom, Not, an Any with such a child, etc.) return empty;
// FindTriggers scans every trigger with no index keys on each event.
func eventTypesOf(c TriggerCondition) []core.EventTypeId {
	switch c.Kind {
	case CondEventType:
		return []core.EventTypeId{c.EventType}
	case CondAnyEventType:
		return c.EventTypes
	case CondAll, CondAny:
		var out []core.EventTypeId
		for _, child := range c.Children {
			childTypes := eventTypesOf(child)
			if c.Kind == CondAny && len(childTypes) == 0 {
				return nil
			}
			out = append(out, childTypes...)
		}
		return out
	case CondNot:
		return nil
	default:
		return nil
	}
}

func (r *Registry) Unregister(id core.TriggerId) {
	delete(r.byID, id)
	for et, ids := range r.byEventType {
		if remaining := removeID(ids, id); len(remaining) > 0 {
			r.byEventType[et] = remaining
		} else {
			delete(r.byEventType, et)
		}
	}
}

func removeID(ids []core.TriggerId, id core.TriggerId) []core.TriggerId {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func (r *Registry) Get(id core.TriggerId) (Trigger, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// GetMut applies fn to the stored trigger with id, if present.
func (r *Registry) GetMut(id core.TriggerId, fn func(*Trigger)) bool {
	t, ok := r.byID[id]
	if !ok {
		return false
	}
	fn(&t)
	r.byID[id] = t
	return true
}

// FindTriggers returns every registered trigger that can fire, matches
// timing, and whose condition evaluates true against ctx, sorted by
// descending priority then ascending TriggerId.
func (r *Registry) FindTriggers(timing TriggerTiming, ctx ConditionContext) []TriggeredEffect {
	candidateIDs := r.byEventType[ctx.Event.EventType]
	seen := make(map[core.TriggerId]bool, len(candidateIDs))
	var matched []Trigger
	consider := func(id core.TriggerId) {
		if seen[id] {
			return
		}
		seen[id] = true
		t, ok := r.byID[id]
		if !ok || !t.CanFire() || t.Timing != timing {
			return
		}
		if Evaluate(t.Cond, ctx) {
			matched = append(matched, t)
		}
	}
	for _, id := range candidateIDs {
		consider(id)
	}
	// Conditions with no concrete event type (Always, Custom, Not, etc.)
	// aren't indexed; fall back to scanning those.
	for id, t := range r.byID {
		if len(indexKeysOf(t)) == 0 {
			consider(id)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority > matched[j].Priority
		}
		return matched[i].ID < matched[j].ID
	})
	out := make([]TriggeredEffect, len(matched))
	for i, t := range matched {
		out[i] = TriggeredEffect{
			Trigger:    t,
			Event:      ctx.Event,
			Effects:    append([]effects.Effect(nil), t.Effects...),
			Controller: t.Controller,
		}
		r.GetMut(t.ID, func(tr *Trigger) { tr.UseTrigger() })
	}
	return out
}

// TriggersForSource returns every registered trigger owned by source.
func (r *Registry) TriggersForSource(source core.EntityId) []Trigger {
	var out []Trigger
	for _, t := range r.byID {
		if t.Source == source {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// RemoveForSource unregisters every trigger owned by source, as when a
// card bearing them leaves play.
func (r *Registry) RemoveForSource(source core.EntityId) {
	for _, t := range r.TriggersForSource(source) {
		r.Unregister(t.ID)
	}
}

func (r *Registry) SetEnabled(id core.TriggerId, enabled bool) bool {
	return r.GetMut(id, func(t *Trigger) { t.Enabled = enabled })
}

func (r *Registry) Len() int { return len(r.byID) }

func (r *Registry) IsEmpty() bool { return len(r.byID) == 0 }
