// Package cards holds the immutable CardDefinition template type and
// the per-game mutable CardInstance type, plus the tagged-union
// attribute values card definitions carry.
package cards

import (
	"sort"

	"github.com/signalnine/cardsim/core"
)

// AttributeKind tags which field of AttributeValue is populated.
type AttributeKind int

const (
	AttrInt AttributeKind = iota
	AttrBool
	AttrText
	AttrIntList
	AttrTextList
)

// AttributeValue is a tagged union of the attribute value kinds a
// CardDefinition can carry. Implemented as a plain struct (rather than
// an interface-per-kind) to mirror the original's plain tagged-enum
// shape without Go-side allocation for the common scalar cases.
type AttributeValue struct {
	Kind     AttributeKind
	Int      int64
	Bool     bool
	Text     string
	IntList  []int64
	TextList []string
}

func IntAttr(v int64) AttributeValue       { return AttributeValue{Kind: AttrInt, Int: v} }
func BoolAttr(v bool) AttributeValue       { return AttributeValue{Kind: AttrBool, Bool: v} }
func TextAttr(v string) AttributeValue     { return AttributeValue{Kind: AttrText, Text: v} }
func IntListAttr(v []int64) AttributeValue { return AttributeValue{Kind: AttrIntList, IntList: v} }
func TextListAttr(v []string) AttributeValue {
	return AttributeValue{Kind: AttrTextList, TextList: v}
}

// Definition is an immutable, shared card template: id, name, opaque
// type id, and a string-keyed attribute map.
type Definition struct {
	ID         core.CardId
	Name       string
	CardType   core.CardTypeId
	Attributes map[string]AttributeValue
}

// NewDefinition creates a definition with an empty attribute map.
func NewDefinition(id core.CardId, name string, cardType core.CardTypeId) *Definition {
	return &Definition{ID: id, Name: name, CardType: cardType, Attributes: map[string]AttributeValue{}}
}

// WithAttr sets an attribute and returns the receiver for chaining.
func (d *Definition) WithAttr(key string, v AttributeValue) *Definition {
	d.Attributes[key] = v
	return d
}

func (d *Definition) GetAttr(key string) (AttributeValue, bool) {
	v, ok := d.Attributes[key]
	return v, ok
}

func (d *Definition) GetInt(key string, fallback int64) int64 {
	if v, ok := d.Attributes[key]; ok && v.Kind == AttrInt {
		return v.Int
	}
	return fallback
}

func (d *Definition) GetBool(key string, fallback bool) bool {
	if v, ok := d.Attributes[key]; ok && v.Kind == AttrBool {
		return v.Bool
	}
	return fallback
}

func (d *Definition) GetText(key string) (string, bool) {
	if v, ok := d.Attributes[key]; ok && v.Kind == AttrText {
		return v.Text, true
	}
	return "", false
}

// SortedAttrKeys returns the attribute map's keys in sorted order, for
// deterministic hashing/serialization.
func (d *Definition) SortedAttrKeys() []string {
	keys := make([]string, 0, len(d.Attributes))
	for k := range d.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
