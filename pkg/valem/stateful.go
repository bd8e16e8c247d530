package valem

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// StatefulSpecies is a formula together with zero or more states,
// e.g. "H2 v=0;J=2".
type StatefulSpecies struct {
	// Text is the canonical form: the formula followed, after a single
	// space, by its states in canonical order joined with ";".
	Text    string
	HTML    string
	LaTeX   string
	Formula *Formula
	States  []State
}

func (ss *StatefulSpecies) String() string {
	return ss.Text
}

func parseStatefulSpecies(text string) (*StatefulSpecies, error) {
	s := normalize(text)
	formulaText, rest := s, ""
	if i := strings.IndexFunc(s, unicode.IsSpace); i >= 0 {
		formulaText, rest = s[:i], s[i+1:]
	}

	f, err := parseFormula(formulaText)
	if err != nil {
		return nil, err
	}

	tokens := strings.FieldsFunc(rest, func(r rune) bool {
		return r == ';' || r == ',' || unicode.IsSpace(r)
	})
	states := make([]State, 0, len(tokens))
	for _, v := range tokens {
		st, err := parseState(v)
		if err != nil {
			return nil, err
		}
		states = append(states, *st)
	}
	if err := checkComposition(states); err != nil {
		return nil, &StatefulSpeciesError{Text: text, Reason: err.Error()}
	}
	slices.SortFunc(states, compareStates)

	res := &StatefulSpecies{
		Text:    f.Text,
		HTML:    f.HTML,
		LaTeX:   f.LaTeX,
		Formula: f,
		States:  states,
	}
	if len(states) == 0 {
		return res, nil
	}
	txt := make([]string, len(states))
	html := make([]string, len(states))
	latex := make([]string, len(states))
	for i, v := range states {
		txt[i], html[i], latex[i] = v.Text, v.HTML, v.LaTeX
	}
	res.Text += " " + strings.Join(txt, ";")
	res.HTML += " " + strings.Join(html, ";")
	res.LaTeX += `\;` + strings.Join(latex, ";")
	return res, nil
}

// checkComposition allows one state of each kind, except key-value pairs
// which only need distinct keys.
func checkComposition(states []State) error {
	kinds := make(map[StateKind]string)
	keys := make(map[string]struct{})
	for _, v := range states {
		if v.Kind == KeyValuePair {
			if _, ok := keys[v.key]; ok {
				return fmt.Errorf("repeated key %q", v.key)
			}
			keys[v.key] = struct{}{}
			continue
		}
		if prev, ok := kinds[v.Kind]; ok {
			return fmt.Errorf("%s and %s are both of kind %s",
				prev, v.Text, v.Kind)
		}
		kinds[v.Kind] = v.Text
	}
	return nil
}
