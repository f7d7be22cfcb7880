package core

// Action is a complete game action: a template (the verb) plus zero or
// more entity pointers (the nouns - targets, sources, etc). The engine
// never interprets a template's meaning, only compares and stores it.
type Action struct {
	Template TemplateId
	Pointers []EntityId
}

// NewAction creates a no-argument action.
func NewAction(template TemplateId) Action {
	return Action{Template: template}
}

// NewActionWithPointers creates an action with the given pointers.
func NewActionWithPointers(template TemplateId, pointers []EntityId) Action {
	cp := make([]EntityId, len(pointers))
	copy(cp, pointers)
	return Action{Template: template, Pointers: cp}
}

func (a *Action) PushPointer(e EntityId) { a.Pointers = append(a.Pointers, e) }

func (a Action) PointerCount() int { return len(a.Pointers) }

func (a Action) IsNoArg() bool { return len(a.Pointers) == 0 }

// Equal reports whether two actions are identical (same template, same
// pointers in the same order).
func (a Action) Equal(b Action) bool {
	if a.Template != b.Template || len(a.Pointers) != len(b.Pointers) {
		return false
	}
	for i := range a.Pointers {
		if a.Pointers[i] != b.Pointers[i] {
			return false
		}
	}
	return true
}

// ActionRecord is a recorded action with metadata, used for the public
// state's action history (MCTS opponent-consistency bookkeeping, replay,
// and training-data provenance).
type ActionRecord struct {
	Player   PlayerId
	Action   Action
	Turn     uint32
	Sequence uint32
}

func NewActionRecord(player PlayerId, action Action, turn, sequence uint32) ActionRecord {
	return ActionRecord{Player: player, Action: action, Turn: turn, Sequence: sequence}
}
