// Package chem is a small cheminformatics toolkit: SMILES reading and
// canonical writing, ring and aromaticity perception, valence sanitization,
// hydrogen replacement and the drug-likeness descriptors used for fragment
// scans (molecular weight, Crippen logP, H-bond donors/acceptors, TPSA,
// rotatable bonds, aromatic rings, structural alerts and QED).
//
// Hydrogens are implicit: every atom carries a total hydrogen count and
// explicit [H] atoms are folded into their neighbour while parsing.
// Stereochemistry covers tetrahedral centres (@, @@) and the cis/trans
// geometry of double bonds (/, \).
package chem

import "fmt"

// BondOrder is the multiplicity of a bond.
type BondOrder int

const (
	BondSingle   BondOrder = 1
	BondDouble   BondOrder = 2
	BondTriple   BondOrder = 3
	BondAromatic BondOrder = 4
)

// valence returns the number of electron pairs the bond contributes to each
// end. Aromatic bonds count as one; the extra pi contribution is added per
// atom.
func (o BondOrder) valence() int {
	switch o {
	case BondDouble:
		return 2
	case BondTriple:
		return 3
	default:
		return 1
	}
}

func (o BondOrder) String() string {
	switch o {
	case BondSingle:
		return "single"
	case BondDouble:
		return "double"
	case BondTriple:
		return "triple"
	case BondAromatic:
		return "aromatic"
	default:
		return fmt.Sprintf("BondOrder(%d)", int(o))
	}
}

// Chirality is the tetrahedral tag written as @ or @@.
type Chirality int

const (
	ChiralityNone Chirality = iota
	// ChiralityCCW is "@": looking from the first neighbour, the rest are
	// anticlockwise.
	ChiralityCCW
	// ChiralityCW is "@@".
	ChiralityCW
)

func (c Chirality) invert() Chirality {
	switch c {
	case ChiralityCCW:
		return ChiralityCW
	case ChiralityCW:
		return ChiralityCCW
	default:
		return c
	}
}

// BondStereo is the cis/trans configuration of a double bond, stated
// relative to Bond.StereoAtoms.
type BondStereo int

const (
	StereoNone BondStereo = iota
	// StereoCis puts both reference atoms on the same side.
	StereoCis
	// StereoTrans puts them on opposite sides.
	StereoTrans
)

func (s BondStereo) String() string {
	switch s {
	case StereoCis:
		return "cis"
	case StereoTrans:
		return "trans"
	default:
		return "none"
	}
}

// hydrogenRef marks the implicit hydrogen in an atom's neighbour order.
const hydrogenRef = -1

// Atom is a heavy atom (or the "*" dummy) with its attached hydrogens.
type Atom struct {
	Element   *Element
	Charge    int
	Isotope   int
	Aromatic  bool
	Hs        int
	Chirality Chirality

	// refs is the neighbour order in which the chirality tag was written.
	refs []int
	// bracket is true when the atom was written in brackets, which fixes its
	// hydrogen count.
	bracket bool
	// folded counts explicit [H] atoms merged into this one.
	folded int
}

// IsDummy reports whether the atom is a "*" attachment point.
func (a *Atom) IsDummy() bool {
	return a.Element.Number == 0
}

// Symbol returns the element symbol, lower-cased for aromatic atoms.
func (a *Atom) Symbol() string {
	if a.Aromatic {
		return lower(a.Element.Symbol)
	}
	return a.Element.Symbol
}

func (a *Atom) clone() *Atom {
	c := *a
	c.refs = append([]int(nil), a.refs...)
	return &c
}

// Bond joins two atoms.
type Bond struct {
	Begin int
	End   int
	Order BondOrder

	// Stereo is set on double bonds with a known geometry. StereoAtoms holds
	// the neighbour of Begin and the neighbour of End it refers to;
	// hydrogenRef stands for an implicit hydrogen.
	Stereo      BondStereo
	StereoAtoms [2]int

	// dir is the / (+1) or \ (-1) mark read for a single bond, taken in
	// the Begin to End direction.
	dir int
}

// Other returns the atom at the opposite end of the bond.
func (b *Bond) Other(i int) int {
	if b.Begin == i {
		return b.End
	}
	return b.Begin
}

// Molecule is an undirected graph of atoms and bonds.
type Molecule struct {
	Atoms []*Atom
	Bonds []*Bond

	adj   [][]int // bond indices incident to each atom
	rings *ringInfo
}

// NewMolecule returns an empty molecule.
func NewMolecule() *Molecule {
	return &Molecule{}
}

// NumAtoms returns the number of atoms, dummies included.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// NumHeavyAtoms returns the number of non-dummy atoms.
func (m *Molecule) NumHeavyAtoms() int {
	n := 0
	for _, a := range m.Atoms {
		if !a.IsDummy() && a.Element.Number != 1 {
			n++
		}
	}
	return n
}

// TotalHs returns the hydrogen count of atom i.
func (m *Molecule) TotalHs(i int) int {
	return m.Atoms[i].Hs
}

// AtomBonds returns the indices of bonds incident to atom i.
func (m *Molecule) AtomBonds(i int) []int {
	return m.adj[i]
}

// Neighbors returns the atoms bonded to atom i in bond order.
func (m *Molecule) Neighbors(i int) []int {
	out := make([]int, 0, len(m.adj[i]))
	for _, bi := range m.adj[i] {
		out = append(out, m.Bonds[bi].Other(i))
	}
	return out
}

// Degree returns the number of bonded neighbours of atom i.
func (m *Molecule) Degree(i int) int {
	return len(m.adj[i])
}

// BondBetween returns the index of the bond joining i and j.
func (m *Molecule) BondBetween(i, j int) (int, bool) {
	for _, bi := range m.adj[i] {
		if m.Bonds[bi].Other(i) == j {
			return bi, true
		}
	}
	return -1, false
}

func (m *Molecule) addAtom(a *Atom) int {
	m.Atoms = append(m.Atoms, a)
	m.adj = append(m.adj, nil)
	m.rings = nil
	return len(m.Atoms) - 1
}

// addBond joins i and j. When trackRefs is set both atoms record the other in
// their written neighbour order.
func (m *Molecule) addBond(i, j int, order BondOrder, trackRefs bool) (int, error) {
	if i == j {
		return -1, fmt.Errorf("atom %d bonded to itself", i)
	}
	if _, ok := m.BondBetween(i, j); ok {
		return -1, fmt.Errorf("duplicate bond between atoms %d and %d", i, j)
	}
	m.Bonds = append(m.Bonds, &Bond{Begin: i, End: j, Order: order})
	bi := len(m.Bonds) - 1
	m.adj[i] = append(m.adj[i], bi)
	m.adj[j] = append(m.adj[j], bi)
	if trackRefs {
		m.Atoms[i].refs = append(m.Atoms[i].refs, j)
		m.Atoms[j].refs = append(m.Atoms[j].refs, i)
	}
	m.rings = nil
	return bi, nil
}

// Clone returns a deep copy.
func (m *Molecule) Clone() *Molecule {
	c := &Molecule{
		Atoms: make([]*Atom, len(m.Atoms)),
		Bonds: make([]*Bond, len(m.Bonds)),
		adj:   make([][]int, len(m.adj)),
	}
	for i, a := range m.Atoms {
		c.Atoms[i] = a.clone()
	}
	for i, b := range m.Bonds {
		nb := *b
		c.Bonds[i] = &nb
	}
	for i, l := range m.adj {
		c.adj[i] = append([]int(nil), l...)
	}
	return c
}

// removeAtoms drops the marked atoms and every bond touching them, renumbering
// the remainder. Neighbour references to removed atoms become hydrogenRef.
func (m *Molecule) removeAtoms(drop []bool) {
	remap := make([]int, len(m.Atoms))
	atoms := make([]*Atom, 0, len(m.Atoms))
	for i, a := range m.Atoms {
		if drop[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(atoms)
		atoms = append(atoms, a)
	}
	bonds := make([]*Bond, 0, len(m.Bonds))
	for _, b := range m.Bonds {
		if drop[b.Begin] || drop[b.End] {
			continue
		}
		b.Begin, b.End = remap[b.Begin], remap[b.End]
		bonds = append(bonds, b)
	}
	for _, a := range atoms {
		for k, r := range a.refs {
			if r >= 0 {
				a.refs[k] = remap[r]
			}
		}
	}
	for _, b := range bonds {
		if b.Stereo == StereoNone {
			continue
		}
		for k, r := range b.StereoAtoms {
			if r >= 0 {
				b.StereoAtoms[k] = remap[r]
			}
		}
	}
	m.Atoms = atoms
	m.Bonds = bonds
	m.rebuildAdjacency()
}

func (m *Molecule) rebuildAdjacency() {
	m.adj = make([][]int, len(m.Atoms))
	for bi, b := range m.Bonds {
		m.adj[b.Begin] = append(m.adj[b.Begin], bi)
		m.adj[b.End] = append(m.adj[b.End], bi)
	}
	m.rings = nil
}

// bondValence sums the valence contributions of the bonds on atom i. Aromatic
// atoms get one extra unit for their pi bond when they have aromatic bonds and
// piExtra is set.
func (m *Molecule) bondValence(i int, piExtra bool) int {
	v := 0
	arom := 0
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		if b.Order == BondAromatic {
			arom++
		}
		v += b.Order.valence()
	}
	if piExtra && m.Atoms[i].Aromatic && arom > 0 {
		v++
	}
	return v
}

// heavyDegree counts neighbours that are not dummies.
func (m *Molecule) heavyDegree(i int) int {
	n := 0
	for _, bi := range m.adj[i] {
		if !m.Atoms[m.Bonds[bi].Other(i)].IsDummy() {
			n++
		}
	}
	return n
}

func lower(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}

//Personal.AI order the ending
