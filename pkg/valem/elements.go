package valem

// elements holds chemical element symbols together with the hydrogen
// isotopes D and T, which conventionally appear in formulas as elements.
var elements = func() map[string]struct{} {
	symbols := []string{
		"H", "D", "T", "He",
		"Li", "Be", "B", "C", "N", "O", "F", "Ne",
		"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
		"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
		"Ga", "Ge", "As", "Se", "Br", "Kr",
		"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
		"In", "Sn", "Sb", "Te", "I", "Xe",
		"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
		"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
		"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
		"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
		"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
		"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
	}
	res := make(map[string]struct{}, len(symbols))
	for _, v := range symbols {
		res[v] = struct{}{}
	}
	return res
}()

// formulaPrefixes are the isomer and structure prefixes allowed in front
// of a formula, separated from it by a hyphen.
var formulaPrefixes = map[string]struct{}{
	"cis": {}, "trans": {}, "ortho": {}, "meta": {}, "para": {},
	"n": {}, "i": {}, "iso": {}, "sec": {}, "tert": {}, "neo": {},
	"o": {}, "m": {}, "p": {}, "l": {}, "d": {},
}

func isElement(s string) bool {
	_, ok := elements[s]
	return ok
}
