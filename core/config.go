package core

// ZoneVisibility describes who can observe a zone's contents.
type ZoneVisibility int

const (
	ZoneVisibilityPublic ZoneVisibility = iota
	ZoneVisibilityOwnerOnly
	ZoneVisibilityHidden
	ZoneVisibilityCustom
)

// ZoneConfig describes one zone a game defines (deck, hand, discard...).
type ZoneConfig struct {
	ID         ZoneId
	Name       string
	Owner      *PlayerId
	Visibility ZoneVisibility
	Ordered    bool
	MaxCards   *int
}

// NewZoneConfig creates a zone config defaulting to public, unordered.
func NewZoneConfig(id ZoneId, name string) ZoneConfig {
	return ZoneConfig{ID: id, Name: name, Visibility: ZoneVisibilityPublic}
}

func (z ZoneConfig) WithOwner(p PlayerId) ZoneConfig {
	z.Owner = &p
	return z
}

func (z ZoneConfig) OwnerOnly() ZoneConfig {
	z.Visibility = ZoneVisibilityOwnerOnly
	return z
}

func (z ZoneConfig) Hidden() ZoneConfig {
	z.Visibility = ZoneVisibilityHidden
	return z
}

func (z ZoneConfig) AsOrdered() ZoneConfig {
	z.Ordered = true
	return z
}

func (z ZoneConfig) WithMaxCards(max int) ZoneConfig {
	z.MaxCards = &max
	return z
}

// TemplateConfig describes an action template (the "verb" of an Action).
type TemplateConfig struct {
	ID               TemplateId
	Name             string
	PointerCount     int
	VariablePointers bool
}

func NewTemplateConfig(id TemplateId, name string, pointerCount int) TemplateConfig {
	return TemplateConfig{ID: id, Name: name, PointerCount: pointerCount}
}

func NoArgTemplate(id TemplateId, name string) TemplateConfig {
	return TemplateConfig{ID: id, Name: name, PointerCount: 0}
}

func (t TemplateConfig) WithVariablePointers() TemplateConfig {
	t.VariablePointers = true
	return t
}

// GameConfig bundles the zones, templates, and player count a game
// defines. It carries no behavior of its own - it is consulted by
// RulesEngine implementations and by tests constructing fixtures.
type GameConfig struct {
	PlayerCount  int
	Zones        []ZoneConfig
	Templates    []TemplateConfig
	InitialPhase PhaseId
}

// NewGameConfig panics if playerCount is outside [1,255].
func NewGameConfig(playerCount int) *GameConfig {
	assertPlayerCount(playerCount)
	return &GameConfig{PlayerCount: playerCount}
}

func (c *GameConfig) WithZone(z ZoneConfig) *GameConfig {
	c.Zones = append(c.Zones, z)
	return c
}

func (c *GameConfig) WithTemplate(t TemplateConfig) *GameConfig {
	c.Templates = append(c.Templates, t)
	return c
}

func (c *GameConfig) WithInitialPhase(p PhaseId) *GameConfig {
	c.InitialPhase = p
	return c
}

func (c *GameConfig) GetZone(id ZoneId) (ZoneConfig, bool) {
	for _, z := range c.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return ZoneConfig{}, false
}

func (c *GameConfig) GetTemplate(id TemplateId) (TemplateConfig, bool) {
	for _, t := range c.Templates {
		if t.ID == id {
			return t, true
		}
	}
	return TemplateConfig{}, false
}
