package chem

import (
	"strconv"
	"strings"
)

// ringPlaceholder fills an opener's neighbour slot until its ring closes.
const ringPlaceholder = -2

type ringOpen struct {
	atom  int
	order BondOrder
	dir   int
	slot  int
}

type smilesParser struct {
	src  string
	pos  int
	mol  *Molecule
	prev int

	branches   []int
	pending    BondOrder
	pendingDir int
	rings      map[int]ringOpen
}

// ParseSMILES reads a SMILES string into a sanitized molecule: double-bond
// geometry is read from / and \ marks, explicit hydrogens are folded, rings
// and aromaticity perceived, implicit hydrogens assigned and valences checked.
func ParseSMILES(s string) (*Molecule, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptySMILES
	}
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		// anything after whitespace is a title
		s = s[:i]
	}
	p := &smilesParser{src: s, mol: NewMolecule(), prev: -1, rings: map[int]ringOpen{}}
	if err := p.parse(); err != nil {
		return nil, err
	}
	m := p.mol
	m.perceiveBondStereo()
	m.foldHydrogens()
	if err := m.settleAromaticFlags(); err != nil {
		return nil, err
	}
	m.assignImplicitHs()
	if err := Sanitize(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MustParseSMILES is ParseSMILES for static inputs; it panics on error.
func MustParseSMILES(s string) *Molecule {
	m, err := ParseSMILES(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (p *smilesParser) fail(msg string) error {
	return &SyntaxError{Input: p.src, Pos: p.pos, Msg: msg}
}

func (p *smilesParser) parse() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '(':
			if p.prev < 0 {
				return p.fail("branch without a preceding atom")
			}
			if p.pending != 0 {
				return p.fail("bond before branch")
			}
			p.branches = append(p.branches, p.prev)
			p.pos++
		case c == ')':
			if len(p.branches) == 0 {
				return p.fail("unbalanced ')'")
			}
			if p.pending != 0 {
				return p.fail("dangling bond at end of branch")
			}
			p.prev = p.branches[len(p.branches)-1]
			p.branches = p.branches[:len(p.branches)-1]
			p.pos++
		case strings.IndexByte("-=#:/\\$", c) >= 0:
			if p.pending != 0 {
				return p.fail("consecutive bond symbols")
			}
			switch c {
			case '/':
				p.pending, p.pendingDir = BondSingle, 1
			case '\\':
				p.pending, p.pendingDir = BondSingle, -1
			case '-':
				p.pending = BondSingle
			case '=':
				p.pending = BondDouble
			case '#':
				p.pending = BondTriple
			case ':':
				p.pending = BondAromatic
			default:
				return p.fail("quadruple bonds are not supported")
			}
			p.pos++
		case c == '.':
			if p.pending != 0 {
				return p.fail("bond before '.'")
			}
			p.prev = -1
			p.pos++
		case c == '%' || (c >= '0' && c <= '9'):
			if err := p.ringBond(); err != nil {
				return err
			}
		default:
			idx, err := p.atom()
			if err != nil {
				return err
			}
			if p.prev >= 0 {
				order := p.pending
				if order == 0 {
					order = p.implicitOrder(p.prev, idx)
				}
				bi, err := p.mol.addBond(p.prev, idx, order, true)
				if err != nil {
					return p.fail(err.Error())
				}
				p.mol.Bonds[bi].dir = p.pendingDir
			} else if p.pending != 0 {
				return p.fail("bond without a preceding atom")
			}
			p.pending, p.pendingDir = 0, 0
			if a := p.mol.Atoms[idx]; a.Chirality != ChiralityNone && a.bracket && a.Hs > 0 {
				a.refs = append(a.refs, hydrogenRef)
			}
			p.prev = idx
		}
	}
	switch {
	case len(p.branches) > 0:
		return p.fail("unbalanced '('")
	case len(p.rings) > 0:
		return p.fail("unclosed ring")
	case p.pending != 0:
		return p.fail("dangling bond")
	case len(p.mol.Atoms) == 0:
		return p.fail("no atoms")
	}
	return nil
}

func (p *smilesParser) implicitOrder(a, b int) BondOrder {
	if p.mol.Atoms[a].Aromatic && p.mol.Atoms[b].Aromatic {
		return BondAromatic
	}
	return BondSingle
}

func (p *smilesParser) ringBond() error {
	if p.prev < 0 {
		return p.fail("ring bond without a preceding atom")
	}
	var num int
	if p.src[p.pos] == '%' {
		if p.pos+2 >= len(p.src) || !isDigit(p.src[p.pos+1]) || !isDigit(p.src[p.pos+2]) {
			return p.fail("'%' must be followed by two digits")
		}
		num, _ = strconv.Atoi(p.src[p.pos+1 : p.pos+3])
		p.pos += 3
	} else {
		num = int(p.src[p.pos] - '0')
		p.pos++
	}

	open, ok := p.rings[num]
	if !ok {
		a := p.mol.Atoms[p.prev]
		p.rings[num] = ringOpen{atom: p.prev, order: p.pending, dir: p.pendingDir, slot: len(a.refs)}
		a.refs = append(a.refs, ringPlaceholder)
		p.pending, p.pendingDir = 0, 0
		return nil
	}

	order := p.pending
	if open.order != 0 {
		if order != 0 && order != open.order {
			return p.fail("conflicting ring bond orders")
		}
		order = open.order
	}
	if order == 0 {
		order = p.implicitOrder(open.atom, p.prev)
	}
	bi, err := p.mol.addBond(open.atom, p.prev, order, false)
	if err != nil {
		return p.fail(err.Error())
	}
	// A mark at the opening digit reads from the opener to the closer; one
	// at the closing digit reads the other way.
	switch {
	case open.dir != 0:
		p.mol.Bonds[bi].dir = open.dir
	case p.pendingDir != 0:
		p.mol.Bonds[bi].dir = -p.pendingDir
	}
	p.mol.Atoms[open.atom].refs[open.slot] = p.prev
	p.mol.Atoms[p.prev].refs = append(p.mol.Atoms[p.prev].refs, open.atom)
	delete(p.rings, num)
	p.pending, p.pendingDir = 0, 0
	return nil
}

func (p *smilesParser) atom() (int, error) {
	c := p.src[p.pos]
	switch {
	case c == '[':
		return p.bracketAtom()
	case c == '*':
		p.pos++
		return p.mol.addAtom(&Atom{Element: dummy}), nil
	}

	if p.pos+1 < len(p.src) {
		two := p.src[p.pos : p.pos+2]
		if two == "Cl" || two == "Br" {
			el, _ := LookupElement(two)
			p.pos += 2
			return p.mol.addAtom(&Atom{Element: el}), nil
		}
	}
	sym := string(c)
	if organicSubset[sym] {
		el, _ := LookupElement(sym)
		p.pos++
		return p.mol.addAtom(&Atom{Element: el}), nil
	}
	if aromaticOrganic[sym] {
		el, _ := LookupElement(strings.ToUpper(sym))
		p.pos++
		return p.mol.addAtom(&Atom{Element: el, Aromatic: true}), nil
	}
	return -1, p.fail("unexpected character " + strconv.Quote(sym))
}

func (p *smilesParser) bracketAtom() (int, error) {
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return -1, p.fail("unterminated bracket atom")
	}
	body := p.src[p.pos+1 : p.pos+end]
	start := p.pos
	p.pos += end + 1

	a := &Atom{bracket: true}
	i := 0
	fail := func(msg string) (int, error) {
		return -1, &SyntaxError{Input: p.src, Pos: start + 1 + i, Msg: msg}
	}

	for i < len(body) && isDigit(body[i]) {
		a.Isotope = a.Isotope*10 + int(body[i]-'0')
		i++
	}

	switch {
	case i < len(body) && body[i] == '*':
		a.Element = dummy
		i++
	case i < len(body) && body[i] >= 'a' && body[i] <= 'z':
		sym := ""
		if i+1 < len(body) && aromaticBracket[body[i:i+2]] {
			sym = body[i : i+2]
		} else if aromaticBracket[body[i:i+1]] {
			sym = body[i : i+1]
		}
		if sym == "" {
			return fail("unknown aromatic symbol")
		}
		el, _ := LookupElement(strings.ToUpper(sym[:1]) + sym[1:])
		a.Element = el
		a.Aromatic = true
		i += len(sym)
	case i < len(body) && body[i] >= 'A' && body[i] <= 'Z':
		var el *Element
		if i+1 < len(body) && body[i+1] >= 'a' && body[i+1] <= 'z' {
			if e, ok := LookupElement(body[i : i+2]); ok {
				el = e
				i += 2
			}
		}
		if el == nil {
			e, ok := LookupElement(body[i : i+1])
			if !ok {
				return fail("unknown element")
			}
			el = e
			i++
		}
		a.Element = el
	default:
		return fail("missing element symbol")
	}

	if i < len(body) && body[i] == '@' {
		a.Chirality = ChiralityCCW
		i++
		if i < len(body) && body[i] == '@' {
			a.Chirality = ChiralityCW
			i++
		}
		if i < len(body) && body[i] >= 'A' && body[i] <= 'Z' && body[i] != 'H' {
			return fail("only tetrahedral @ and @@ are supported")
		}
	}

	if i < len(body) && body[i] == 'H' {
		i++
		a.Hs = 1
		if i < len(body) && isDigit(body[i]) {
			a.Hs = int(body[i] - '0')
			i++
		}
	}

	if i < len(body) && (body[i] == '+' || body[i] == '-') {
		sign := 1
		if body[i] == '-' {
			sign = -1
		}
		sc := body[i]
		i++
		n := 1
		if i < len(body) && isDigit(body[i]) {
			n = 0
			for i < len(body) && isDigit(body[i]) {
				n = n*10 + int(body[i]-'0')
				i++
			}
		} else {
			for i < len(body) && body[i] == sc {
				n++
				i++
			}
		}
		a.Charge = sign * n
	}

	if i < len(body) && body[i] == ':' {
		i++
		if i >= len(body) || !isDigit(body[i]) {
			return fail("atom class must be numeric")
		}
		for i < len(body) && isDigit(body[i]) {
			i++
		}
	}

	if i != len(body) {
		return fail("unexpected characters in bracket atom")
	}
	return p.mol.addAtom(a), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// perceiveBondStereo tags each double bond that has a marked single bond at
// both ends. It runs before hydrogens are folded so an explicit [H] can
// serve as the reference atom.
func (m *Molecule) perceiveBondStereo() {
	for _, b := range m.Bonds {
		if b.Order != BondDouble {
			continue
		}
		ra, sa, ok := m.markedNeighbour(b.Begin, b.End)
		if !ok {
			continue
		}
		rb, sb, ok := m.markedNeighbour(b.End, b.Begin)
		if !ok {
			continue
		}
		b.StereoAtoms = [2]int{ra, rb}
		if sa == sb {
			b.Stereo = StereoCis
		} else {
			b.Stereo = StereoTrans
		}
	}
}

// markedNeighbour returns the first neighbour of x, other than partner,
// joined by a marked bond, and the side it sits on seen from x.
func (m *Molecule) markedNeighbour(x, partner int) (int, int, bool) {
	for _, bi := range m.adj[x] {
		e := m.Bonds[bi]
		n := e.Other(x)
		if e.dir == 0 || n == partner {
			continue
		}
		if e.Begin == x {
			return n, e.dir, true
		}
		return n, -e.dir, true
	}
	return 0, 0, false
}

// foldHydrogens merges plain [H] atoms with exactly one heavy neighbour into
// that neighbour's hydrogen count.
func (m *Molecule) foldHydrogens() {
	drop := make([]bool, len(m.Atoms))
	found := false
	for i, a := range m.Atoms {
		if a.Element.Number != 1 || a.Isotope != 0 || a.Charge != 0 || a.Hs != 0 || len(m.adj[i]) != 1 {
			continue
		}
		b := m.Bonds[m.adj[i][0]]
		if b.Order != BondSingle {
			continue
		}
		n := b.Other(i)
		na := m.Atoms[n]
		if na.Element.Number == 1 {
			continue
		}
		drop[i] = true
		found = true
		na.folded++
		na.Hs++
	}
	if found {
		m.removeAtoms(drop)
	}
}

// settleAromaticFlags demotes aromatic bonds outside rings to single bonds and
// rejects aromatic atoms outside rings.
func (m *Molecule) settleAromaticFlags() error {
	ri := m.ringInfo()
	for bi, b := range m.Bonds {
		if b.Order == BondAromatic && !ri.bondInRing[bi] {
			b.Order = BondSingle
		}
	}
	for i, a := range m.Atoms {
		if a.Aromatic && !ri.atomInRing[i] {
			return &AromaticityError{Atom: i, Msg: "non-ring atom marked aromatic"}
		}
	}
	return nil
}

// assignImplicitHs fills the hydrogen count of every atom written outside
// brackets from its default valence.
func (m *Molecule) assignImplicitHs() {
	for i, a := range m.Atoms {
		if !a.bracket {
			a.Hs = m.defaultHs(i) + a.folded
		}
	}
	for _, a := range m.Atoms {
		a.folded = 0
	}
}

// defaultHs is the hydrogen count a reader infers for atom i written without
// brackets.
func (m *Molecule) defaultHs(i int) int {
	a := m.Atoms[i]
	if a.IsDummy() || !isOrganic(a.Element) {
		return 0
	}
	if a.Aromatic {
		if a.Element.Number != 6 {
			return 0
		}
		h := 4 - m.bondValence(i, true) - a.folded
		if h < 0 {
			return 0
		}
		return h
	}
	v := m.bondValence(i, false) + a.folded
	for _, allowed := range a.Element.Valences {
		if allowed >= v {
			return allowed - v
		}
	}
	return 0
}

//Personal.AI order the ending
