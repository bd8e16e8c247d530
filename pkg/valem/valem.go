// Package valem parses chemical formulas, excitation states, stateful
// species and reactions into canonical text with HTML and LaTeX
// renderings.
//
// Canonical text is the identity of an entity: two inputs that describe
// the same species, state set or reaction produce the same canonical
// text, and parsing canonical text again returns it unchanged.
//
// The package is pure: it keeps no state and performs no I/O.
package valem

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Parser turns user text into canonical structures.
type Parser interface {
	// Formula parses a chemical formula such as "H2O", "(235U)" or "e-".
	Formula(text string) (*Formula, error)

	// State parses one state token such as "2Po_1/2" or "v=1".
	State(text string) (*State, error)

	// StatefulSpecies parses a formula followed by states, "H2 v=0;J=2".
	StatefulSpecies(text string) (*StatefulSpecies, error)

	// Reaction parses a reaction. When strict is true the reaction must
	// conserve charge and atoms.
	Reaction(text string, strict bool) (*Reaction, error)
}

type parser struct{}

// New returns the default Parser.
func New() Parser {
	return parser{}
}

func (parser) Formula(text string) (*Formula, error) {
	return parseFormula(text)
}

func (parser) State(text string) (*State, error) {
	return parseState(text)
}

func (parser) StatefulSpecies(text string) (*StatefulSpecies, error) {
	return parseStatefulSpecies(text)
}

func (parser) Reaction(text string, strict bool) (*Reaction, error) {
	return parseReaction(text, strict)
}

// normalize converts input to NFC, so precomposed and combining forms of
// the same letter compare equal, and trims surrounding space.
func normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
