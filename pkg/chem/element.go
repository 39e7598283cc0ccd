package chem

import "strings"

// Element describes one entry of the periodic table as far as the toolkit
// needs it.
type Element struct {
	Number int
	Symbol string
	// Mass is the standard atomic weight in g/mol.
	Mass float64
	// Valences lists the allowed neutral valences in ascending order. An empty
	// list disables valence checking for the element.
	Valences []int
	// Group is the IUPAC group number, used to adjust valences for charge.
	Group int
}

// MaxValence returns the largest neutral valence or -1 when unchecked.
func (e *Element) MaxValence() int {
	if len(e.Valences) == 0 {
		return -1
	}
	return e.Valences[len(e.Valences)-1]
}

// dummy is the "*" attachment atom.
var dummy = &Element{Number: 0, Symbol: "*"}

var elementTable = []*Element{
	{Number: 1, Symbol: "H", Mass: 1.008, Valences: []int{1}, Group: 1},
	{Number: 2, Symbol: "He", Mass: 4.003, Group: 18},
	{Number: 3, Symbol: "Li", Mass: 6.941, Valences: []int{1}, Group: 1},
	{Number: 4, Symbol: "Be", Mass: 9.012, Valences: []int{2}, Group: 2},
	{Number: 5, Symbol: "B", Mass: 10.812, Valences: []int{3}, Group: 13},
	{Number: 6, Symbol: "C", Mass: 12.011, Valences: []int{4}, Group: 14},
	{Number: 7, Symbol: "N", Mass: 14.007, Valences: []int{3}, Group: 15},
	{Number: 8, Symbol: "O", Mass: 15.999, Valences: []int{2}, Group: 16},
	{Number: 9, Symbol: "F", Mass: 18.998, Valences: []int{1}, Group: 17},
	{Number: 10, Symbol: "Ne", Mass: 20.180, Group: 18},
	{Number: 11, Symbol: "Na", Mass: 22.990, Valences: []int{1}, Group: 1},
	{Number: 12, Symbol: "Mg", Mass: 24.305, Valences: []int{2}, Group: 2},
	{Number: 13, Symbol: "Al", Mass: 26.982, Valences: []int{3}, Group: 13},
	{Number: 14, Symbol: "Si", Mass: 28.086, Valences: []int{4}, Group: 14},
	{Number: 15, Symbol: "P", Mass: 30.974, Valences: []int{3, 5, 7}, Group: 15},
	{Number: 16, Symbol: "S", Mass: 32.067, Valences: []int{2, 4, 6}, Group: 16},
	{Number: 17, Symbol: "Cl", Mass: 35.453, Valences: []int{1}, Group: 17},
	{Number: 18, Symbol: "Ar", Mass: 39.948, Group: 18},
	{Number: 19, Symbol: "K", Mass: 39.098, Valences: []int{1}, Group: 1},
	{Number: 20, Symbol: "Ca", Mass: 40.078, Valences: []int{2}, Group: 2},
	{Number: 26, Symbol: "Fe", Mass: 55.845},
	{Number: 29, Symbol: "Cu", Mass: 63.546},
	{Number: 30, Symbol: "Zn", Mass: 65.390},
	{Number: 33, Symbol: "As", Mass: 74.922, Valences: []int{3, 5}, Group: 15},
	{Number: 34, Symbol: "Se", Mass: 78.971, Valences: []int{2, 4, 6}, Group: 16},
	{Number: 35, Symbol: "Br", Mass: 79.904, Valences: []int{1}, Group: 17},
	{Number: 50, Symbol: "Sn", Mass: 118.711},
	{Number: 52, Symbol: "Te", Mass: 127.600, Valences: []int{2, 4, 6}, Group: 16},
	{Number: 53, Symbol: "I", Mass: 126.904, Valences: []int{1, 3, 5}, Group: 17},
	{Number: 78, Symbol: "Pt", Mass: 195.084},
}

var (
	elementsBySymbol = map[string]*Element{}
	elementsByNumber = map[int]*Element{}
)

func init() {
	for _, e := range elementTable {
		elementsBySymbol[e.Symbol] = e
		elementsByNumber[e.Number] = e
	}
	elementsByNumber[0] = dummy
}

// LookupElement returns the element with the given symbol.
func LookupElement(symbol string) (*Element, bool) {
	if symbol == "*" {
		return dummy, true
	}
	e, ok := elementsBySymbol[symbol]
	return e, ok
}

// ElementByNumber returns the element with the given atomic number.
func ElementByNumber(n int) (*Element, bool) {
	e, ok := elementsByNumber[n]
	return e, ok
}

// organic subset atoms may be written without brackets.
var organicSubset = map[string]bool{
	"B": true, "C": true, "N": true, "O": true, "P": true, "S": true,
	"F": true, "Cl": true, "Br": true, "I": true,
}

var aromaticOrganic = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
}

// aromaticBracket lists lowercase symbols accepted inside brackets.
var aromaticBracket = map[string]bool{
	"b": true, "c": true, "n": true, "o": true, "p": true, "s": true,
	"se": true, "as": true, "te": true,
}

func isOrganic(e *Element) bool {
	return organicSubset[e.Symbol]
}

func isAromaticOrganic(e *Element) bool {
	return aromaticOrganic[strings.ToLower(e.Symbol)]
}

// allowedValence returns the highest valence permitted for an element
// carrying the given formal charge, or -1 when the element is unchecked.
func allowedValence(e *Element, charge int) int {
	max := e.MaxValence()
	if max < 0 {
		return -1
	}
	return chargedValence(e, max, charge)
}

// chargedValence shifts a neutral valence v of e for a formal charge.
func chargedValence(e *Element, v, charge int) int {
	abs := charge
	if abs < 0 {
		abs = -abs
	}
	switch e.Group {
	case 1, 2:
		v -= abs
	case 13:
		v -= charge
	case 14:
		v -= abs
	default:
		v += charge
	}
	if v < 0 {
		v = 0
	}
	return v
}

//Personal.AI order the ending
