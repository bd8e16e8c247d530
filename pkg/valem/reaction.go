package valem

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// ArrowForward separates reactants from products.
	ArrowForward = "→"
	// ArrowReversible marks a reversible reaction.
	ArrowReversible = "⇌"
)

var arrows = map[string]string{
	"->":  ArrowForward,
	"→":   ArrowForward,
	"<->": ArrowReversible,
	"<=>": ArrowReversible,
	"↔":   ArrowReversible,
	"⇌":   ArrowReversible,
}

// MaxReactionLen is the longest canonical reaction text in characters.
// Since every unit of a coefficient is spelled out, it also bounds the
// coefficients.
const MaxReactionLen = 256

var stoichRe = regexp.MustCompile(`^(\d+)\s*(\S.*)$`)

// Term is a stateful species with its stoichiometric coefficient.
type Term struct {
	Count   int
	Species *StatefulSpecies
}

// Reaction is a parsed reaction.
type Reaction struct {
	// Text is the canonical form. Each species appears as many times as
	// its coefficient, "2H -> H2" becomes "H + H → H2".
	Text      string
	HTML      string
	LaTeX     string
	Arrow     string
	Reactants []Term
	Products  []Term
}

func (r *Reaction) String() string {
	return r.Text
}

func parseReaction(text string, strict bool) (*Reaction, error) {
	s := normalize(text)
	fields := strings.Fields(s)

	arrowIdx := -1
	var arrow string
	for i, v := range fields {
		if a, ok := arrows[v]; ok {
			if arrowIdx >= 0 {
				return nil, &ReactionParseError{Text: text,
					Reason: "more than one arrow"}
			}
			arrowIdx, arrow = i, a
		}
	}
	if arrowIdx < 0 {
		return nil, &ReactionParseError{Text: text, Reason: "no arrow"}
	}

	lhs, err := parseSide(text, fields[:arrowIdx])
	if err != nil {
		return nil, err
	}
	rhs, err := parseSide(text, fields[arrowIdx+1:])
	if err != nil {
		return nil, err
	}

	n := sideLen(lhs) + utf8.RuneCountInString(arrow) + 2 + sideLen(rhs)
	if n > MaxReactionLen {
		return nil, &ReactionParseError{Text: text,
			Reason: fmt.Sprintf(
				"canonical text has %d characters, the limit is %d",
				n, MaxReactionLen)}
	}

	res := &Reaction{Arrow: arrow, Reactants: lhs, Products: rhs}
	lt, lh, ll := renderSide(lhs)
	rt, rh, rl := renderSide(rhs)
	res.Text = lt + " " + arrow + " " + rt
	res.HTML = lh + " " + arrow + " " + rh
	latexArrow := `\rightarrow`
	if arrow == ArrowReversible {
		latexArrow = `\rightleftharpoons`
	}
	res.LaTeX = ll + " " + latexArrow + " " + rl

	if strict {
		if err := checkBalance(text, lhs, rhs); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// parseSide splits whitespace separated fields on "+" tokens and merges
// identical species keeping the order of first appearance.
func parseSide(text string, fields []string) ([]Term, error) {
	if len(fields) == 0 {
		return nil, &ReactionParseError{Text: text, Reason: "empty side"}
	}
	var res []Term
	index := make(map[string]int)
	var term []string
	flush := func() error {
		if len(term) == 0 {
			return &ReactionParseError{Text: text, Reason: "empty term"}
		}
		t, err := parseTerm(text, strings.Join(term, " "))
		if err != nil {
			return err
		}
		term = term[:0]
		if i, ok := index[t.Species.Text]; ok {
			res[i].Count += t.Count
			return nil
		}
		index[t.Species.Text] = len(res)
		res = append(res, t)
		return nil
	}
	for _, v := range fields {
		if v == "+" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		term = append(term, v)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return res, nil
}

func parseTerm(text, term string) (Term, error) {
	count := 1
	if m := stoichRe.FindStringSubmatch(term); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n == 0 || n > MaxReactionLen {
			return Term{}, &ReactionParseError{Text: text,
				Reason: fmt.Sprintf("invalid stoichiometry in %q", term)}
		}
		count, term = n, m[2]
	}
	ss, err := parseStatefulSpecies(term)
	if err != nil {
		return Term{}, err
	}
	return Term{Count: count, Species: ss}, nil
}

// sideLen is the length of the expanded side in characters.
func sideLen(terms []Term) int {
	var res, units int
	for _, v := range terms {
		res += v.Count * utf8.RuneCountInString(v.Species.Text)
		units += v.Count
	}
	if units > 1 {
		res += (units - 1) * len(" + ")
	}
	return res
}

func renderSide(terms []Term) (string, string, string) {
	var txt, html, latex []string
	for _, v := range terms {
		for range v.Count {
			txt = append(txt, v.Species.Text)
		}
		prefix := ""
		if v.Count > 1 {
			prefix = strconv.Itoa(v.Count)
		}
		html = append(html, prefix+v.Species.HTML)
		latex = append(latex, prefix+v.Species.LaTeX)
	}
	return strings.Join(txt, " + "),
		strings.Join(html, " + "),
		strings.Join(latex, " + ")
}

func checkBalance(text string, lhs, rhs []Term) error {
	charge := func(terms []Term) int {
		var res int
		for _, v := range terms {
			res += v.Count * v.Species.Formula.Charge
		}
		return res
	}
	atoms := func(terms []Term) map[string]int {
		res := make(map[string]int)
		for _, v := range terms {
			for k, n := range v.Species.Formula.Atoms {
				res[k] += v.Count * n
			}
		}
		return res
	}
	if cl, cr := charge(lhs), charge(rhs); cl != cr {
		return &ReactionBalanceError{Text: text,
			Reason: fmt.Sprintf("charge %d on the left, %d on the right", cl, cr)}
	}
	if !sameAtoms(atoms(lhs), atoms(rhs)) {
		return &ReactionBalanceError{Text: text,
			Reason: "atoms are not conserved"}
	}
	return nil
}

// OrderedText returns canonical reaction text with the terms of each side
// sorted lexicographically, so reactions that differ only in the order of
// their terms share the same ordered text.
func OrderedText(text string) string {
	for _, arrow := range []string{ArrowForward, ArrowReversible} {
		lhs, rhs, ok := strings.Cut(text, " "+arrow+" ")
		if !ok {
			continue
		}
		return sortTerms(lhs) + " " + arrow + " " + sortTerms(rhs)
	}
	return text
}

func sortTerms(side string) string {
	terms := strings.Split(side, " + ")
	slices.Sort(terms)
	return strings.Join(terms, " + ")
}
