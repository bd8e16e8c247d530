package valem

import (
	"errors"
	"fmt"
)

// ParseError is implemented by every error the parser returns for
// malformed input.
type ParseError interface {
	error
	// Input returns the text that failed to parse.
	Input() string
}

// FormulaParseError is returned for text that is not a valid formula.
type FormulaParseError struct {
	Text   string
	Reason string
}

func (e *FormulaParseError) Error() string {
	return fmt.Sprintf("invalid formula %q: %s", e.Text, e.Reason)
}

func (e *FormulaParseError) Input() string { return e.Text }

// StateParseError is returned for a state token that matches no known
// state grammar or violates its constraints.
type StateParseError struct {
	Text   string
	Reason string
}

func (e *StateParseError) Error() string {
	return fmt.Sprintf("invalid state %q: %s", e.Text, e.Reason)
}

func (e *StateParseError) Input() string { return e.Text }

// StatefulSpeciesError is returned when individually valid states cannot
// be combined, for example two generic excited states on one species.
type StatefulSpeciesError struct {
	Text   string
	Reason string
}

func (e *StatefulSpeciesError) Error() string {
	return fmt.Sprintf("invalid stateful species %q: %s", e.Text, e.Reason)
}

func (e *StatefulSpeciesError) Input() string { return e.Text }

// ReactionParseError is returned for reaction text with broken syntax.
type ReactionParseError struct {
	Text   string
	Reason string
}

func (e *ReactionParseError) Error() string {
	return fmt.Sprintf("invalid reaction %q: %s", e.Text, e.Reason)
}

func (e *ReactionParseError) Input() string { return e.Text }

// ReactionBalanceError is returned by strict parsing when charge or atoms
// are not conserved.
type ReactionBalanceError struct {
	Text   string
	Reason string
}

func (e *ReactionBalanceError) Error() string {
	return fmt.Sprintf("unbalanced reaction %q: %s", e.Text, e.Reason)
}

func (e *ReactionBalanceError) Input() string { return e.Text }

// IsParseError reports whether err, or any error it wraps, came from
// the parser.
func IsParseError(err error) bool {
	var pe ParseError
	return errors.As(err, &pe)
}
