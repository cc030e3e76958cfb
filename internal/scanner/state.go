package scanner

// State is the position of a scan within the page layout.
type State int

const (
	StateSeekingDifficulty State = iota
	// StateSeekingName captures the line that follows the difficulty marker.
	// The name itself lives on the problem-statement line.
	StateSeekingName
	StateSeekingProblem
	StateSeekingExamples
	StateSeekingNoteOrMoreExamples
	StateDone
)

var stateNames = map[State]string{
	StateSeekingDifficulty:         "SEEKING_DIFFICULTY",
	StateSeekingName:               "SEEKING_NAME",
	StateSeekingProblem:            "SEEKING_PROBLEM",
	StateSeekingExamples:           "SEEKING_EXAMPLES",
	StateSeekingNoteOrMoreExamples: "SEEKING_NOTE_OR_MORE_EXAMPLES",
	StateDone:                      "DONE",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Layout describes how the sample tests are laid out in the source.
type Layout int

const (
	LayoutUnknown Layout = iota
	// LayoutSingleLine means every input/output pair sits on the marker line.
	LayoutSingleLine
	// LayoutMultiLine means sample data continues on the following lines.
	LayoutMultiLine
)

func (l Layout) String() string {
	switch l {
	case LayoutSingleLine:
		return "single-line"
	case LayoutMultiLine:
		return "multi-line"
	default:
		return "unknown"
	}
}

// MarshalText lets Result encode the layout by name.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
