package recipe

// State is a step of one recipe flow.
type State string

const (
	StateIdle        State = "idle"
	StateValidating  State = "validating"
	StateGenerating  State = "generating"
	StateTranslating State = "translating"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

var transitions = map[State][]State{
	StateIdle:        {StateValidating},
	StateValidating:  {StateGenerating, StateFailed},
	StateGenerating:  {StateTranslating, StateDone, StateFailed},
	StateTranslating: {StateDone},
}

// CanTransition reports whether to may directly follow from.
// Translating never leads to Failed: a failed translation still ends in Done.
func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
