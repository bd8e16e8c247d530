package valem

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	keyRe     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	valueRe   = regexp.MustCompile(`^[^\s=;,]+$`)
	vibRe     = regexp.MustCompile(`^(\d+|\*)$`)
	excitedRe = regexp.MustCompile(`^(\*{1,3}|\d+\*)$`)
	racahRe   = regexp.MustCompile(
		`^(\d+)([spdfgh])('?)\[(\d+(?:/2)?)\]_?(\d+(?:/2)?)?$`)
	molTermRe = regexp.MustCompile(
		`^(?:([A-Za-z]'{0,2})\()?(\d+)([ΣΠΔΦΓ])([+-]?)([gu]?)(?:_(\d+(?:/2)?))?(\))?$`)
	atomTermRe = regexp.MustCompile(
		`^(\d+)([SPDFGHIKLMNOQRTUV])(o?)(?:_(\d+(?:/2)?))?$`)
	diatomicOrbRe = regexp.MustCompile(`^(\d*)([σπδφ])([gu]?)(\d*)$`)
	atomicOrbRe   = regexp.MustCompile(`^(\d+)([spdfghik])(\d*)$`)
	nobleCoreRe   = regexp.MustCompile(`^\[(He|Ne|Ar|Kr|Xe|Rn)\]`)
)

var (
	upperGreek = strings.NewReplacer(
		"SIGMA", "Σ", "DELTA", "Δ", "GAMMA", "Γ", "PHI", "Φ", "PI", "Π",
	)
	lowerGreek = strings.NewReplacer(
		"sigma", "σ", "delta", "δ", "phi", "φ", "pi", "π",
	)
	greekLaTeX = map[string]string{
		"Σ": `\Sigma`, "Π": `\Pi`, "Δ": `\Delta`, "Φ": `\Phi`, "Γ": `\Gamma`,
		"σ": `\sigma`, "π": `\pi`, "δ": `\delta`, "φ": `\phi`,
	}
	termLetters    = "SPDFGHIKLMNOQRTUV"
	orbitalLetters = "spdfghik"
)

func parseKeyValue(s string) (*State, bool, error) {
	key, val, ok := strings.Cut(s, "=")
	if !ok {
		return nil, false, nil
	}
	if key == "" || val == "" {
		return nil, true, errors.New("key and value are required")
	}
	switch key {
	case "v":
		if !vibRe.MatchString(val) {
			return nil, true, fmt.Errorf("invalid vibrational quantum number %q", val)
		}
		if val != "*" {
			n, _ := strconv.Atoi(val)
			val = strconv.Itoa(n)
		}
		txt := "v=" + val
		return &State{Kind: VibrationalState, Text: txt,
			HTML: "<i>v</i>=" + val, LaTeX: "v=" + val}, true, nil
	case "J":
		j, err := parseRotational(val)
		if err != nil {
			return nil, true, err
		}
		txt := "J=" + j
		return &State{Kind: RotationalState, Text: txt,
			HTML: "<i>J</i>=" + j, LaTeX: "J=" + j}, true, nil
	}
	if !keyRe.MatchString(key) || !valueRe.MatchString(val) {
		return nil, true, fmt.Errorf("invalid key-value pair %q", s)
	}
	txt := key + "=" + val
	return &State{Kind: KeyValuePair, Text: txt, HTML: txt,
		LaTeX: `\mathrm{` + key + `}=` + val, key: key}, true, nil
}

// parseRotational accepts integers, halves written as fractions ("3/2")
// or decimals ("1.5") and returns the canonical fraction form.
func parseRotational(val string) (string, error) {
	bad := fmt.Errorf("invalid rotational quantum number %q", val)
	if intPart, frac, ok := strings.Cut(val, "."); ok {
		n, err := strconv.Atoi(intPart)
		if err != nil || n < 0 {
			return "", bad
		}
		frac = strings.TrimRight(frac, "0")
		switch frac {
		case "":
			return strconv.Itoa(n), nil
		case "5":
			return strconv.Itoa(2*n+1) + "/2", nil
		}
		return "", bad
	}
	twice, err := parseHalfInt(val)
	if err != nil {
		return "", bad
	}
	return halfIntText(twice), nil
}

// parseHalfInt parses "N" or "N/2" with odd N, and returns twice the value.
func parseHalfInt(s string) (int, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.Atoi(num)
		if err != nil || den != "2" || n < 0 || n%2 == 0 {
			return 0, fmt.Errorf("invalid half-integer %q", s)
		}
		return n, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid quantum number %q", s)
	}
	return 2 * n, nil
}

func halfIntText(twice int) string {
	if twice%2 == 0 {
		return strconv.Itoa(twice / 2)
	}
	return strconv.Itoa(twice) + "/2"
}

func parseGenericExcited(s string) (*State, bool, error) {
	if !excitedRe.MatchString(s) {
		return nil, false, nil
	}
	i := strings.Index(s, "*")
	html := s[:i] + "<sup>" + s[i:] + "</sup>"
	latex := s[:i] + "^{" + s[i:] + "}"
	return &State{Kind: GenericExcitedState, Text: s, HTML: html,
		LaTeX: latex}, true, nil
}

func parseRacah(s string) (*State, bool, error) {
	m := racahRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false, nil
	}
	n, l, prime, k, j := m[1], m[2], m[3], m[4], m[5]
	kk, err := parseHalfInt(k)
	if err != nil {
		return nil, true, err
	}
	core := n + l + prime + "[" + halfIntText(kk) + "]"
	res := &State{Kind: RacahSymbol, Text: core, HTML: core, LaTeX: core}
	if j != "" {
		jj, err := parseHalfInt(j)
		if err != nil {
			return nil, true, err
		}
		js := halfIntText(jj)
		res.Text += "_" + js
		res.HTML += "<sub>" + js + "</sub>"
		res.LaTeX += "_{" + js + "}"
	}
	return res, true, nil
}

func parseMolecularTerm(s string) (*State, bool, error) {
	m := molTermRe.FindStringSubmatch(upperGreek.Replace(s))
	if m == nil {
		return nil, false, nil
	}
	label, mult, term, refl, parity, omega, closing :=
		m[1], m[2], m[3], m[4], m[5], m[6], m[7]
	if (label == "") != (closing == "") {
		return nil, true, errors.New("unbalanced term symbol parentheses")
	}
	if refl != "" && term != "Σ" {
		return nil, true, errors.New("reflection symmetry is defined for Σ terms only")
	}
	if n, _ := strconv.Atoi(mult); n == 0 {
		return nil, true, errors.New("multiplicity must be positive")
	}
	mult = strings.TrimLeft(mult, "0")

	var txt, html, latex strings.Builder
	if label != "" {
		txt.WriteString(label + "(")
		html.WriteString(label + "(")
		latex.WriteString(`\mathrm{` + label + `}(`)
	}
	txt.WriteString(mult + term + refl + parity)
	html.WriteString("<sup>" + mult + "</sup>" + term)
	latex.WriteString("{}^{" + mult + "}" + greekLaTeX[term])
	if refl != "" {
		html.WriteString("<sup>" + refl + "</sup>")
		latex.WriteString("^{" + refl + "}")
	}
	var sub []string
	if parity != "" {
		sub = append(sub, parity)
	}
	if omega != "" {
		ww, err := parseHalfInt(omega)
		if err != nil {
			return nil, true, err
		}
		o := halfIntText(ww)
		txt.WriteString("_" + o)
		sub = append(sub, o)
	}
	if len(sub) > 0 {
		html.WriteString("<sub>" + strings.Join(sub, ",") + "</sub>")
		latex.WriteString("_{" + strings.Join(sub, ",") + "}")
	}
	if label != "" {
		txt.WriteString(")")
		html.WriteString(")")
		latex.WriteString(")")
	}
	return &State{Kind: MolecularTermSymbol, Text: txt.String(),
		HTML: html.String(), LaTeX: latex.String()}, true, nil
}

func parseAtomicTerm(s string) (*State, bool, error) {
	m := atomTermRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false, nil
	}
	mult, _ := strconv.Atoi(m[1])
	letter, odd, j := m[2], m[3], m[4]
	if mult == 0 {
		return nil, true, errors.New("multiplicity must be positive")
	}
	ms := strconv.Itoa(mult)
	txt := ms + letter + odd
	html := "<sup>" + ms + "</sup>" + letter
	latex := "{}^{" + ms + `}\mathrm{` + letter + "}"
	if odd != "" {
		html += "<sup>o</sup>"
		latex += "^{o}"
	}
	if j != "" {
		jj, err := parseHalfInt(j)
		if err != nil {
			return nil, true, err
		}
		// compare doubled values: |L-S| <= J <= L+S in integer steps
		ll := 2 * strings.Index(termLetters, letter)
		ss := mult - 1
		lo, hi := ll-ss, ll+ss
		if lo < 0 {
			lo = -lo
		}
		if jj < lo || jj > hi || (hi-jj)%2 != 0 {
			return nil, true, fmt.Errorf("J=%s is not allowed for %s",
				halfIntText(jj), ms+letter)
		}
		js := halfIntText(jj)
		txt += "_" + js
		html += "<sub>" + js + "</sub>"
		latex += "_{" + js + "}"
	}
	return &State{Kind: AtomicTermSymbol, Text: txt, HTML: html,
		LaTeX: latex}, true, nil
}

func parseDiatomicConfig(s string) (*State, bool, error) {
	norm := lowerGreek.Replace(s)
	if !strings.ContainsAny(norm, "σπδφ") {
		return nil, false, nil
	}
	var txt, html, latex []string
	seen := make(map[string]struct{})
	for _, orb := range strings.Split(norm, ".") {
		m := diatomicOrbRe.FindStringSubmatch(orb)
		if m == nil {
			return nil, false, nil
		}
		n, sym, parity, occ := m[1], m[2], m[3], m[4]
		name := n + sym + parity
		if _, ok := seen[name]; ok {
			return nil, true, fmt.Errorf("repeated orbital %s", name)
		}
		seen[name] = struct{}{}
		k := 1
		if occ != "" {
			k, _ = strconv.Atoi(occ)
		}
		limit := 4
		if sym == "σ" {
			limit = 2
		}
		if k < 1 || k > limit {
			return nil, true, fmt.Errorf("invalid occupancy of %s", name)
		}
		t, h, l := name, n+sym, n+greekLaTeX[sym]
		if parity != "" {
			h += "<sub>" + parity + "</sub>"
			l += "_{" + parity + "}"
		}
		if k > 1 {
			ks := strconv.Itoa(k)
			t += ks
			h += "<sup>" + ks + "</sup>"
			l += "^{" + ks + "}"
		}
		txt = append(txt, t)
		html = append(html, h)
		latex = append(latex, l)
	}
	return &State{
		Kind:  DiatomicMolecularConfiguration,
		Text:  strings.Join(txt, "."),
		HTML:  strings.Join(html, "."),
		LaTeX: strings.Join(latex, "."),
	}, true, nil
}

func parseAtomicConfig(s string) (*State, bool, error) {
	var txt, html, latex []string
	rest := s
	if core := nobleCoreRe.FindString(s); core != "" {
		txt = append(txt, core)
		html = append(html, core)
		latex = append(latex, core)
		rest = strings.TrimPrefix(s[len(core):], ".")
		if rest == "" {
			return &State{Kind: AtomicConfiguration, Text: core, HTML: core,
				LaTeX: core}, true, nil
		}
	}
	seen := make(map[string]struct{})
	for _, orb := range strings.Split(rest, ".") {
		m := atomicOrbRe.FindStringSubmatch(orb)
		if m == nil {
			return nil, false, nil
		}
		n, _ := strconv.Atoi(m[1])
		letter := m[2]
		l := strings.Index(orbitalLetters, letter)
		name := strconv.Itoa(n) + letter
		if n == 0 || l >= n {
			return nil, true, fmt.Errorf("orbital %s does not exist", name)
		}
		if _, ok := seen[name]; ok {
			return nil, true, fmt.Errorf("repeated orbital %s", name)
		}
		seen[name] = struct{}{}
		k := 1
		if m[3] != "" {
			k, _ = strconv.Atoi(m[3])
		}
		if k < 1 || k > 2*(2*l+1) {
			return nil, true, fmt.Errorf("invalid occupancy of %s", name)
		}
		t, h, lx := name, name, name
		if k > 1 {
			ks := strconv.Itoa(k)
			t += ks
			h += "<sup>" + ks + "</sup>"
			lx += "^{" + ks + "}"
		}
		txt = append(txt, t)
		html = append(html, h)
		latex = append(latex, lx)
	}
	return &State{
		Kind:  AtomicConfiguration,
		Text:  strings.Join(txt, "."),
		HTML:  strings.Join(html, "."),
		LaTeX: strings.Join(latex, "."),
	}, true, nil
}
