package valem

import (
	"cmp"
	"strings"
)

// StateKind identifies the grammar a state token was parsed with. The
// order of the constants is the canonical order of states on a species.
type StateKind int

const (
	KeyValuePair StateKind = iota
	GenericExcitedState
	AtomicConfiguration
	AtomicTermSymbol
	DiatomicMolecularConfiguration
	MolecularTermSymbol
	VibrationalState
	RotationalState
	RacahSymbol
)

var stateKindNames = [...]string{
	"KeyValuePair",
	"GenericExcitedState",
	"AtomicConfiguration",
	"AtomicTermSymbol",
	"DiatomicMolecularConfiguration",
	"MolecularTermSymbol",
	"VibrationalState",
	"RotationalState",
	"RacahSymbol",
}

// String returns the name of the state kind, e.g. "AtomicTermSymbol".
func (k StateKind) String() string {
	if k < 0 || int(k) >= len(stateKindNames) {
		return "Unknown"
	}
	return stateKindNames[k]
}

// State is a single parsed state of a species.
type State struct {
	Kind StateKind
	// Text is the canonical form of the state.
	Text  string
	HTML  string
	LaTeX string

	// key is set for KeyValuePair states only.
	key string
}

func (s State) String() string {
	return s.Text
}

type stateFunc func(string) (*State, bool, error)

// stateParsers are tried in order, the first one recognizing the token
// decides the outcome.
var stateParsers = []stateFunc{
	parseKeyValue,
	parseGenericExcited,
	parseRacah,
	parseMolecularTerm,
	parseAtomicTerm,
	parseDiatomicConfig,
	parseAtomicConfig,
}

func parseState(text string) (*State, error) {
	s := normalize(text)
	if s == "" {
		return nil, &StateParseError{Text: text, Reason: "empty state"}
	}
	for _, fn := range stateParsers {
		st, ok, err := fn(s)
		if err != nil {
			return nil, &StateParseError{Text: text, Reason: err.Error()}
		}
		if ok {
			return st, nil
		}
	}
	return nil, &StateParseError{Text: text, Reason: "unrecognized state"}
}

func compareStates(a, b State) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return strings.Compare(a.Text, b.Text)
}
