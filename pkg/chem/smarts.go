package chem

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// query tests one atom or one bond of a molecule, depending on where it sits
// in a pattern.
type query func(m *Molecule, i int) bool

func andQuery(a, b query) query {
	return func(m *Molecule, i int) bool { return a(m, i) && b(m, i) }
}

func orQuery(a, b query) query {
	return func(m *Molecule, i int) bool { return a(m, i) || b(m, i) }
}

func notQuery(a query) query {
	return func(m *Molecule, i int) bool { return !a(m, i) }
}

func anyQuery(*Molecule, int) bool { return true }

// Pattern is a compiled SMARTS substructure query.
type Pattern struct {
	src   string
	atoms []query
	bonds []patternBond
	// prior[k] holds the bonds joining atom k to lower-numbered atoms.
	prior [][]int
}

type patternBond struct {
	a, b int
	q    query
}

func (pb patternBond) other(k int) int {
	if pb.a == k {
		return pb.b
	}
	return pb.a
}

// String returns the SMARTS the pattern was compiled from.
func (p *Pattern) String() string { return p.src }

// MustCompileSMARTS is CompileSMARTS for static patterns; it panics on error.
func MustCompileSMARTS(s string) *Pattern {
	p, err := CompileSMARTS(s)
	if err != nil {
		panic(err)
	}
	return p
}

type smartsRing struct {
	atom int
	bond string
}

// CompileSMARTS parses a SMARTS pattern. Supported are bracket atoms with
// element, aromaticity, #n, isotope, H, D, X, v, R, r and charge primitives,
// recursive $() environments, the ! & , ; operators, bond primitives
// - = # : ~ @, branches, ring closures and '.'-separated components.
func CompileSMARTS(s string) (*Pattern, error) {
	p := &Pattern{src: s}
	fail := func(pos int, msg string) error {
		return &SyntaxError{Input: s, Pos: pos, Msg: msg}
	}

	prev := -1
	var branches []int
	bond := ""
	rings := map[int]smartsRing{}
	for pos := 0; pos < len(s); {
		c := s[pos]
		switch {
		case c == '(':
			if prev < 0 {
				return nil, fail(pos, "branch without a preceding atom")
			}
			branches = append(branches, prev)
			pos++
		case c == ')':
			if len(branches) == 0 {
				return nil, fail(pos, "unbalanced ')'")
			}
			prev = branches[len(branches)-1]
			branches = branches[:len(branches)-1]
			pos++
		case c == '.':
			prev = -1
			pos++
		case strings.IndexByte("-=#:~@!/\\&,;", c) >= 0:
			bond += string(c)
			pos++
		case c == '%' || isDigit(c):
			if prev < 0 {
				return nil, fail(pos, "ring bond without a preceding atom")
			}
			var num int
			if c == '%' {
				if pos+2 >= len(s) || !isDigit(s[pos+1]) || !isDigit(s[pos+2]) {
					return nil, fail(pos, "'%' must be followed by two digits")
				}
				num, _ = strconv.Atoi(s[pos+1 : pos+3])
				pos += 3
			} else {
				num = int(c - '0')
				pos++
			}
			open, ok := rings[num]
			if !ok {
				rings[num] = smartsRing{atom: prev, bond: bond}
				bond = ""
				continue
			}
			expr := open.bond
			if expr == "" {
				expr = bond
			}
			q, err := compileBond(expr)
			if err != nil {
				return nil, fail(pos, err.Error())
			}
			p.addBond(open.atom, prev, q)
			delete(rings, num)
			bond = ""
		default:
			q, n, err := compileAtom(s[pos:])
			if err != nil {
				return nil, fail(pos, err.Error())
			}
			pos += n
			idx := len(p.atoms)
			p.atoms = append(p.atoms, q)
			p.prior = append(p.prior, nil)
			if prev >= 0 {
				bq, err := compileBond(bond)
				if err != nil {
					return nil, fail(pos, err.Error())
				}
				p.addBond(prev, idx, bq)
			} else if bond != "" {
				return nil, fail(pos, "bond without a preceding atom")
			}
			bond = ""
			prev = idx
		}
	}
	switch {
	case len(branches) > 0:
		return nil, fail(len(s), "unbalanced '('")
	case len(rings) > 0:
		return nil, fail(len(s), "unclosed ring")
	case bond != "":
		return nil, fail(len(s), "dangling bond")
	case len(p.atoms) == 0:
		return nil, fail(0, "no atoms")
	}
	return p, nil
}

func (p *Pattern) addBond(a, b int, q query) {
	p.bonds = append(p.bonds, patternBond{a: a, b: b, q: q})
	hi := a
	if b > hi {
		hi = b
	}
	p.prior[hi] = append(p.prior[hi], len(p.bonds)-1)
}

// compileAtom reads one atom at the start of s and returns its query and the
// number of bytes consumed.
func compileAtom(s string) (query, int, error) {
	if s[0] == '[' {
		depth := 0
		for k := 1; k < len(s); k++ {
			switch s[k] {
			case '(':
				depth++
			case ')':
				depth--
			case ']':
				if depth == 0 {
					q, err := compileExpr(s[1:k], atomPrimitive)
					return q, k + 1, err
				}
			}
		}
		return nil, 0, fmt.Errorf("unterminated bracket atom")
	}
	if len(s) >= 2 && (s[:2] == "Cl" || s[:2] == "Br") {
		return elementQuery(atomicNumber(s[:2]), false), 2, nil
	}
	switch c := s[0]; c {
	case '*':
		return anyQuery, 1, nil
	case 'a':
		return isAromatic, 1, nil
	case 'A':
		return isAliphatic, 1, nil
	case 'B', 'C', 'N', 'O', 'P', 'S', 'F', 'I':
		return elementQuery(atomicNumber(string(c)), false), 1, nil
	case 'b', 'c', 'n', 'o', 'p', 's':
		return elementQuery(atomicNumber(strings.ToUpper(string(c))), true), 1, nil
	default:
		return nil, 0, fmt.Errorf("unexpected character %q", string(c))
	}
}

func compileBond(expr string) (query, error) {
	if expr == "" {
		return func(m *Molecule, bi int) bool {
			o := m.Bonds[bi].Order
			return o == BondSingle || o == BondAromatic
		}, nil
	}
	return compileExpr(expr, bondPrimitive)
}

// exprParser reads the operator grammar shared by atom and bond expressions:
// ! binds tightest, then & and juxtaposition, then ',', then ';'.
type exprParser struct {
	s    string
	pos  int
	prim func(e *exprParser) (query, error)
}

func compileExpr(s string, prim func(e *exprParser) (query, error)) (query, error) {
	if s == "" {
		return nil, fmt.Errorf("empty expression")
	}
	e := &exprParser{s: s, prim: prim}
	q, err := e.lowAnd()
	if err != nil {
		return nil, err
	}
	if e.pos != len(e.s) {
		return nil, fmt.Errorf("unexpected %q in %q", e.s[e.pos:], s)
	}
	return q, nil
}

func (e *exprParser) peek() byte {
	if e.pos < len(e.s) {
		return e.s[e.pos]
	}
	return 0
}

func (e *exprParser) lowAnd() (query, error) {
	q, err := e.or()
	if err != nil {
		return nil, err
	}
	for e.peek() == ';' {
		e.pos++
		r, err := e.or()
		if err != nil {
			return nil, err
		}
		q = andQuery(q, r)
	}
	return q, nil
}

func (e *exprParser) or() (query, error) {
	q, err := e.highAnd()
	if err != nil {
		return nil, err
	}
	for e.peek() == ',' {
		e.pos++
		r, err := e.highAnd()
		if err != nil {
			return nil, err
		}
		q = orQuery(q, r)
	}
	return q, nil
}

func (e *exprParser) highAnd() (query, error) {
	q, err := e.not()
	if err != nil {
		return nil, err
	}
	for {
		switch e.peek() {
		case 0, ',', ';':
			return q, nil
		case '&':
			e.pos++
		}
		r, err := e.not()
		if err != nil {
			return nil, err
		}
		q = andQuery(q, r)
	}
}

func (e *exprParser) not() (query, error) {
	if e.peek() == '!' {
		e.pos++
		q, err := e.not()
		if err != nil {
			return nil, err
		}
		return notQuery(q), nil
	}
	if e.pos >= len(e.s) {
		return nil, fmt.Errorf("missing operand in %q", e.s)
	}
	return e.prim(e)
}

// number reads a decimal count, or returns def when none follows.
func (e *exprParser) number(def int) int {
	start := e.pos
	for e.pos < len(e.s) && isDigit(e.s[e.pos]) {
		e.pos++
	}
	if start == e.pos {
		return def
	}
	n, _ := strconv.Atoi(e.s[start:e.pos])
	return n
}

func bondPrimitive(e *exprParser) (query, error) {
	c := e.s[e.pos]
	e.pos++
	order := func(o BondOrder) query {
		return func(m *Molecule, bi int) bool { return m.Bonds[bi].Order == o }
	}
	switch c {
	case '-', '/', '\\':
		return order(BondSingle), nil
	case '=':
		return order(BondDouble), nil
	case '#':
		return order(BondTriple), nil
	case ':':
		return order(BondAromatic), nil
	case '~':
		return anyQuery, nil
	case '@':
		return func(m *Molecule, bi int) bool { return m.IsBondInRing(bi) }, nil
	}
	return nil, fmt.Errorf("unknown bond primitive %q", string(c))
}

func atomPrimitive(e *exprParser) (query, error) {
	c := e.s[e.pos]
	switch {
	case c == '$':
		return e.recursive()
	case c == '#':
		e.pos++
		n := e.number(-1)
		if n < 0 {
			return nil, fmt.Errorf("'#' without atomic number")
		}
		return func(m *Molecule, i int) bool { return m.Atoms[i].Element.Number == n }, nil
	case isDigit(c):
		iso := e.number(0)
		return func(m *Molecule, i int) bool { return m.Atoms[i].Isotope == iso }, nil
	case c == '*':
		e.pos++
		return anyQuery, nil
	case c == '+' || c == '-':
		return e.charge(), nil
	}
	if q, ok := e.element(); ok {
		return q, nil
	}

	e.pos++
	switch c {
	case 'a':
		return isAromatic, nil
	case 'A':
		return isAliphatic, nil
	case 'H':
		n := e.number(1)
		return func(m *Molecule, i int) bool { return m.Atoms[i].Hs == n }, nil
	case 'D':
		n := e.number(1)
		return func(m *Molecule, i int) bool { return m.Degree(i) == n }, nil
	case 'X':
		n := e.number(1)
		return func(m *Molecule, i int) bool { return m.Degree(i)+m.Atoms[i].Hs == n }, nil
	case 'v':
		n := e.number(1)
		return func(m *Molecule, i int) bool { return m.smartsValence(i) == n }, nil
	case 'R':
		n := e.number(-1)
		if n < 0 {
			return func(m *Molecule, i int) bool { return m.IsInRing(i) }, nil
		}
		return func(m *Molecule, i int) bool { return m.ringCount(i) == n }, nil
	case 'r':
		n := e.number(-1)
		if n < 0 {
			return func(m *Molecule, i int) bool { return m.IsInRing(i) }, nil
		}
		return func(m *Molecule, i int) bool { return m.atomRingSize(i) == n }, nil
	}
	return nil, fmt.Errorf("unknown atom primitive %q", string(c))
}

func (e *exprParser) recursive() (query, error) {
	if e.pos+1 >= len(e.s) || e.s[e.pos+1] != '(' {
		return nil, fmt.Errorf("'$' must be followed by '('")
	}
	depth := 0
	for k := e.pos + 1; k < len(e.s); k++ {
		switch e.s[k] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sub, err := CompileSMARTS(e.s[e.pos+2 : k])
				if err != nil {
					return nil, err
				}
				e.pos = k + 1
				return sub.MatchesAt, nil
			}
		}
	}
	return nil, fmt.Errorf("unterminated recursive SMARTS")
}

func (e *exprParser) charge() query {
	sign := 1
	if e.s[e.pos] == '-' {
		sign = -1
	}
	sym := e.s[e.pos]
	e.pos++
	n := 1
	if isDigit(e.peek()) {
		n = e.number(1)
	} else {
		for e.peek() == sym {
			n++
			e.pos++
		}
	}
	want := sign * n
	return func(m *Molecule, i int) bool { return m.Atoms[i].Charge == want }
}

// element reads an element symbol, preferring two-letter symbols. Upper case
// means aliphatic, lower case aromatic. A lone H is left to the hydrogen
// count primitive.
func (e *exprParser) element() (query, bool) {
	rest := e.s[e.pos:]
	if len(rest) >= 2 {
		two := rest[:2]
		if isUpper(two[0]) && isLower(two[1]) {
			if n := atomicNumber(two); n > 0 {
				e.pos += 2
				return elementQuery(n, false), true
			}
		}
		switch two {
		case "se", "as", "te":
			e.pos += 2
			return elementQuery(atomicNumber(strings.ToUpper(two[:1])+two[1:]), true), true
		}
	}
	c := rest[0]
	switch {
	case c == 'H':
		return nil, false
	case isUpper(c):
		if n := atomicNumber(string(c)); n > 0 {
			e.pos++
			return elementQuery(n, false), true
		}
	case strings.IndexByte("bcnops", c) >= 0:
		e.pos++
		return elementQuery(atomicNumber(strings.ToUpper(string(c))), true), true
	}
	return nil, false
}

func elementQuery(n int, aromatic bool) query {
	return func(m *Molecule, i int) bool {
		a := m.Atoms[i]
		return a.Element.Number == n && a.Aromatic == aromatic
	}
}

func isAromatic(m *Molecule, i int) bool { return m.Atoms[i].Aromatic }

func isAliphatic(m *Molecule, i int) bool { return !m.Atoms[i].Aromatic && !m.Atoms[i].IsDummy() }

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

// smartsValence is the total valence of atom i with aromatic systems counted
// in their Kekulé form.
func (m *Molecule) smartsValence(i int) int {
	v := m.bondValence(i, false) + m.Atoms[i].Hs
	if m.needsPiBond(i) {
		v++
	}
	return v
}

// periodicSymbols is indexed by atomic number.
var periodicSymbols = strings.Fields(`* H He Li Be B C N O F Ne Na Mg Al Si P S Cl Ar K Ca
	Sc Ti V Cr Mn Fe Co Ni Cu Zn Ga Ge As Se Br Kr Rb Sr Y Zr Nb Mo Tc Ru Rh Pd
	Ag Cd In Sn Sb Te I Xe Cs Ba La Ce Pr Nd Pm Sm Eu Gd Tb Dy Ho Er Tm Yb Lu Hf
	Ta W Re Os Ir Pt Au Hg Tl Pb Bi Po At Rn Fr Ra Ac Th Pa U Np Pu Am Cm Bk Cf
	Es Fm Md No Lr Rf Db Sg Bh Hs Mt Ds Rg Cn Nh Fl Mc Lv Ts Og`)

var periodicNumbers = func() map[string]int {
	out := make(map[string]int, len(periodicSymbols))
	for n, sym := range periodicSymbols {
		out[sym] = n
	}
	return out
}()

// atomicNumber returns the atomic number of sym, or 0.
func atomicNumber(sym string) int {
	return periodicNumbers[sym]
}

// HasMatch reports whether the pattern occurs anywhere in m.
func (p *Pattern) HasMatch(m *Molecule) bool {
	return p.search(m, -1, func([]int) bool { return true })
}

// MatchesAt reports whether the pattern occurs with its first atom on atom i.
func (p *Pattern) MatchesAt(m *Molecule, i int) bool {
	return p.search(m, i, func([]int) bool { return true })
}

// CountMatches returns the number of distinct atom sets the pattern maps
// onto.
func (p *Pattern) CountMatches(m *Molecule) int {
	seen := map[string]struct{}{}
	p.search(m, -1, func(mapping []int) bool {
		key := append([]int(nil), mapping...)
		sort.Ints(key)
		var sb strings.Builder
		for _, a := range key {
			sb.WriteString(strconv.Itoa(a))
			sb.WriteByte(',')
		}
		seen[sb.String()] = struct{}{}
		return false
	})
	return len(seen)
}

// search enumerates injective mappings of the pattern onto m, first atom
// pinned to anchor unless it is negative, until visit returns true.
func (p *Pattern) search(m *Molecule, anchor int, visit func(mapping []int) bool) bool {
	if len(m.Atoms) < len(p.atoms) {
		return false
	}
	mapping := make([]int, len(p.atoms))
	used := make([]bool, len(m.Atoms))
	var step func(k int) bool
	try := func(k, c int) bool {
		if used[c] || !p.atoms[k](m, c) {
			return false
		}
		for _, pbi := range p.prior[k] {
			pb := p.bonds[pbi]
			bi, ok := m.BondBetween(c, mapping[pb.other(k)])
			if !ok || !pb.q(m, bi) {
				return false
			}
		}
		mapping[k] = c
		used[c] = true
		if step(k + 1) {
			return true
		}
		used[c] = false
		return false
	}
	step = func(k int) bool {
		if k == len(p.atoms) {
			return visit(mapping)
		}
		switch {
		case len(p.prior[k]) > 0:
			from := mapping[p.bonds[p.prior[k][0]].other(k)]
			for _, bi := range m.adj[from] {
				if try(k, m.Bonds[bi].Other(from)) {
					return true
				}
			}
		case k == 0 && anchor >= 0:
			return try(k, anchor)
		default:
			for c := range m.Atoms {
				if try(k, c) {
					return true
				}
			}
		}
		return false
	}
	return step(0)
}

//Personal.AI order the ending
