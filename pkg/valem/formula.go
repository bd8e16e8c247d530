package valem

import (
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// FormulaKind separates ordinary formulas from the special species that
// take part in reactions without having a composition.
type FormulaKind int

const (
	Molecule FormulaKind = iota
	Electron
	Positron
	Photon
	ThirdBody
)

// Formula is a parsed chemical formula.
type Formula struct {
	// Text is the canonical form, e.g. "C3H8+2" or "(1H)2(16O)".
	Text string
	// HTML is the HTML rendering with subscripts and superscripts.
	HTML string
	// LaTeX is the LaTeX rendering.
	LaTeX string
	// Charge is the net charge in units of the elementary charge.
	Charge int
	Kind   FormulaKind
	// Prefix is the isomer prefix without the hyphen ("ortho", "cis").
	Prefix string
	// Atoms maps element symbols, or isotopes written as "(235U)", to
	// the number of atoms. Special species have no atoms.
	Atoms map[string]int
}

func (f *Formula) String() string {
	return f.Text
}

var specialFormulas = map[string]Formula{
	"e-": {Text: "e-", HTML: "e<sup>-</sup>", LaTeX: `\mathrm{e}^{-}`,
		Charge: -1, Kind: Electron},
	"e": {Text: "e-", HTML: "e<sup>-</sup>", LaTeX: `\mathrm{e}^{-}`,
		Charge: -1, Kind: Electron},
	"e+": {Text: "e+", HTML: "e<sup>+</sup>", LaTeX: `\mathrm{e}^{+}`,
		Charge: 1, Kind: Positron},
	"hν": {Text: "hν", HTML: "hν", LaTeX: `h\nu`, Kind: Photon},
	"hv": {Text: "hν", HTML: "hν", LaTeX: `h\nu`, Kind: Photon},
	"M":  {Text: "M", HTML: "M", LaTeX: `\mathrm{M}`, Kind: ThirdBody},
}

// formulaNode is an element, an isotope or a parenthesised group,
// followed by its multiplier.
type formulaNode struct {
	symbol string
	mass   int
	group  []formulaNode
	count  int
}

func parseFormula(text string) (*Formula, error) {
	s := normalize(text)
	if s == "" {
		return nil, &FormulaParseError{Text: text, Reason: "empty formula"}
	}
	if f, ok := specialFormulas[s]; ok {
		return &f, nil
	}

	var prefix string
	if pre, rest, ok := strings.Cut(s, "-"); ok && rest != "" {
		if _, isPrefix := formulaPrefixes[pre]; isPrefix {
			prefix = pre
			s = rest
		}
	}

	body, charge, err := splitCharge(s)
	if err != nil {
		return nil, &FormulaParseError{Text: text, Reason: err.Error()}
	}
	if body == "" {
		return nil, &FormulaParseError{Text: text, Reason: "no atoms"}
	}

	p := formulaParser{src: body}
	nodes, err := p.parseSeq(0)
	if err != nil {
		return nil, &FormulaParseError{Text: text, Reason: err.Error()}
	}

	res := &Formula{
		Charge: charge,
		Kind:   Molecule,
		Prefix: prefix,
		Atoms:  make(map[string]int),
	}
	if err = countAtoms(nodes, 1, res.Atoms); err != nil {
		return nil, &FormulaParseError{Text: text, Reason: err.Error()}
	}

	var txt, html, latex strings.Builder
	if prefix != "" {
		txt.WriteString(prefix + "-")
		html.WriteString("<i>" + prefix + "</i>-")
		latex.WriteString(`\textit{` + prefix + `}-`)
	}
	renderNodes(nodes, &txt, &html, &latex)
	txt.WriteString(chargeText(charge))
	if charge != 0 {
		html.WriteString("<sup>" + chargeSup(charge) + "</sup>")
		latex.WriteString("^{" + chargeSup(charge) + "}")
	}
	res.Text = txt.String()
	res.HTML = html.String()
	res.LaTeX = latex.String()
	return res, nil
}

// splitCharge separates a trailing charge ("+", "-", "+2", "-3") from the
// formula body.
func splitCharge(s string) (string, int, error) {
	i := len(s)
	for i > 0 && isDigit(s[i-1]) {
		i--
	}
	if i == 0 || (s[i-1] != '+' && s[i-1] != '-') {
		return s, 0, nil
	}
	charge := 1
	if digits := s[i:]; digits != "" {
		n, err := strconv.Atoi(digits)
		if err != nil {
			return "", 0, err
		}
		if n == 0 {
			return "", 0, fmt.Errorf("zero charge magnitude")
		}
		charge = n
	}
	if s[i-1] == '-' {
		charge = -charge
	}
	return s[:i-1], charge, nil
}

func chargeText(charge int) string {
	switch {
	case charge == 1:
		return "+"
	case charge == -1:
		return "-"
	case charge > 1:
		return "+" + strconv.Itoa(charge)
	case charge < -1:
		return strconv.Itoa(charge)
	}
	return ""
}

func chargeSup(charge int) string {
	switch {
	case charge == 1:
		return "+"
	case charge == -1:
		return "-"
	case charge > 1:
		return strconv.Itoa(charge) + "+"
	default:
		return strconv.Itoa(-charge) + "-"
	}
}

type formulaParser struct {
	src string
	pos int
}

func (p *formulaParser) parseSeq(depth int) ([]formulaNode, error) {
	var res []formulaNode
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		var node formulaNode
		switch {
		case c == ')':
			if depth == 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
			return res, nil
		case c == '(':
			p.pos++
			var err error
			node, err = p.parseParen(depth)
			if err != nil {
				return nil, err
			}
		case isUpper(c):
			sym, err := p.parseSymbol()
			if err != nil {
				return nil, err
			}
			node.symbol = sym
		default:
			return nil, fmt.Errorf("unexpected character %q", p.src[p.pos:])
		}
		count, err := p.parseCount()
		if err != nil {
			return nil, err
		}
		node.count = count
		res = append(res, node)
	}
	if depth > 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	return res, nil
}

// parseParen parses either an isotope "(235U)" or a group "(CH3)", the
// opening parenthesis is already consumed.
func (p *formulaParser) parseParen(depth int) (formulaNode, error) {
	var node formulaNode
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos > start {
		mass, err := strconv.Atoi(p.src[start:p.pos])
		if err != nil || mass == 0 {
			return node, fmt.Errorf("invalid mass number")
		}
		if p.pos >= len(p.src) || !isUpper(p.src[p.pos]) {
			return node, fmt.Errorf("isotope without element")
		}
		sym, err := p.parseSymbol()
		if err != nil {
			return node, err
		}
		if p.pos >= len(p.src) || p.src[p.pos] != ')' {
			return node, fmt.Errorf("unterminated isotope")
		}
		p.pos++
		node.symbol = sym
		node.mass = mass
		return node, nil
	}

	group, err := p.parseSeq(depth + 1)
	if err != nil {
		return node, err
	}
	if len(group) == 0 {
		return node, fmt.Errorf("empty group")
	}
	// parseSeq stops at the closing parenthesis
	p.pos++
	node.group = group
	return node, nil
}

func (p *formulaParser) parseSymbol() (string, error) {
	if p.pos+1 < len(p.src) && isLower(p.src[p.pos+1]) {
		sym := p.src[p.pos : p.pos+2]
		if isElement(sym) {
			p.pos += 2
			return sym, nil
		}
	}
	sym := p.src[p.pos : p.pos+1]
	if !isElement(sym) {
		return "", fmt.Errorf("unknown element at %q", p.src[p.pos:])
	}
	p.pos++
	return sym, nil
}

func (p *formulaParser) parseCount() (int, error) {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		return 1, nil
	}
	digits := p.src[start:p.pos]
	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 || digits[0] == '0' {
		return 0, fmt.Errorf("invalid multiplier %q", digits)
	}
	return n, nil
}

// maxAtoms limits the number of atoms of one element in a formula.
const maxAtoms = math.MaxInt32

func countAtoms(nodes []formulaNode, mult int, atoms map[string]int) error {
	for _, v := range nodes {
		if v.count > maxAtoms/mult {
			return fmt.Errorf("more than %d atoms", maxAtoms)
		}
		n := v.count * mult
		if v.group != nil {
			if err := countAtoms(v.group, n, atoms); err != nil {
				return err
			}
			continue
		}
		key := v.symbol
		if v.mass > 0 {
			key = fmt.Sprintf("(%d%s)", v.mass, v.symbol)
		}
		if atoms[key] > maxAtoms-n {
			return fmt.Errorf("more than %d atoms of %s", maxAtoms, key)
		}
		atoms[key] += n
	}
	return nil
}

func renderNodes(
	nodes []formulaNode,
	txt, html, latex *strings.Builder,
) {
	for _, v := range nodes {
		switch {
		case v.group != nil:
			txt.WriteString("(")
			html.WriteString("(")
			latex.WriteString(`\left(`)
			renderNodes(v.group, txt, html, latex)
			txt.WriteString(")")
			html.WriteString(")")
			latex.WriteString(`\right)`)
		case v.mass > 0:
			m := strconv.Itoa(v.mass)
			txt.WriteString("(" + m + v.symbol + ")")
			html.WriteString("<sup>" + m + "</sup>" + v.symbol)
			latex.WriteString(`{}^{` + m + `}\mathrm{` + v.symbol + `}`)
		default:
			txt.WriteString(v.symbol)
			html.WriteString(v.symbol)
			latex.WriteString(`\mathrm{` + v.symbol + `}`)
		}
		if v.count > 1 {
			c := strconv.Itoa(v.count)
			txt.WriteString(c)
			html.WriteString("<sub>" + c + "</sub>")
			latex.WriteString("_{" + c + "}")
		}
	}
}

// sameAtoms compares atom counts ignoring zero entries.
func sameAtoms(a, b map[string]int) bool {
	clean := func(m map[string]int) map[string]int {
		res := maps.Clone(m)
		maps.DeleteFunc(res, func(_ string, v int) bool { return v == 0 })
		return res
	}
	return maps.Equal(clean(a), clean(b))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
