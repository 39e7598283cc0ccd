package chem

import "math"

// Properties bundles the descriptors computed for one molecule.
type Properties struct {
	MolWt          float64
	LogP           float64
	HBD            int
	HBA            int
	TPSA           float64
	RotatableBonds int
	AromaticRings  int
	// Alerts is the number of QED structural alerts that match.
	Alerts int
	// QEDAcceptors is the acceptor count QED weighs, which is not the
	// Lipinski HBA.
	QEDAcceptors int
	HeavyAtoms   int
	QED          float64
}

// ComputeProperties evaluates every descriptor of m.
func ComputeProperties(m *Molecule) Properties {
	p := Properties{
		MolWt:          MolWt(m),
		LogP:           CrippenLogP(m),
		HBD:            NumHDonors(m),
		HBA:            NumHAcceptors(m),
		TPSA:           TPSA(m),
		RotatableBonds: NumRotatableBonds(m),
		AromaticRings:  NumAromaticRings(m),
		Alerts:         len(StructuralAlerts(m)),
		QEDAcceptors:   QEDAcceptors(m),
		HeavyAtoms:     m.NumHeavyAtoms(),
	}
	p.QED = qedFromProperties(p)
	return p
}

const hydrogenMass = 1.008

// MolWt returns the average molecular weight including implicit hydrogens.
func MolWt(m *Molecule) float64 {
	w := 0.0
	for _, a := range m.Atoms {
		if a.IsDummy() {
			continue
		}
		if a.Isotope > 0 {
			w += float64(a.Isotope)
		} else {
			w += a.Element.Mass
		}
		w += float64(a.Hs) * hydrogenMass
	}
	return w
}

// totalValence is the bond valence plus hydrogens of atom i, with aromatic
// bonds counted as 1.5.
func (m *Molecule) totalValence(i int) int {
	twice := 0
	for _, bi := range m.adj[i] {
		switch m.Bonds[bi].Order {
		case BondAromatic:
			twice += 3
		default:
			twice += 2 * m.Bonds[bi].Order.valence()
		}
	}
	return int(math.Round(float64(twice)/2)) + m.Atoms[i].Hs
}

func (m *Molecule) isElement(i, number int) bool {
	return m.Atoms[i].Element.Number == number
}

// hasDoubleToHetero reports whether atom i carries a double bond to O, N, P
// or S.
func (m *Molecule) hasDoubleToHetero(i int) bool {
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		if b.Order != BondDouble {
			continue
		}
		switch m.Atoms[b.Other(i)].Element.Number {
		case 7, 8, 15, 16:
			return true
		}
	}
	return false
}

// singleToAcidLike reports whether atom i is singly bonded to an atom that
// carries a double bond to O, N, P or S (amide N, acid OH).
func (m *Molecule) singleToAcidLike(i int) bool {
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		if b.Order != BondSingle {
			continue
		}
		if m.hasDoubleToHetero(b.Other(i)) {
			return true
		}
	}
	return false
}

// NumHDonors counts Lipinski donors: N-H (neutral trivalent or cationic
// tetravalent), neutral O-H and S-H, and aromatic n-H.
func NumHDonors(m *Molecule) int {
	n := 0
	for i, a := range m.Atoms {
		if a.Hs == 0 {
			continue
		}
		switch a.Element.Number {
		case 7:
			if a.Aromatic {
				if a.Hs == 1 && a.Charge == 0 {
					n++
				}
				continue
			}
			v := m.totalValence(i)
			if (a.Charge == 0 && v == 3) || (a.Charge == 1 && v == 4) {
				n++
			}
		case 8, 16:
			if !a.Aromatic && a.Hs == 1 && a.Charge == 0 {
				n++
			}
		}
	}
	return n
}

// NumHAcceptors counts Lipinski acceptors.
func NumHAcceptors(m *Molecule) int {
	n := 0
	for i, a := range m.Atoms {
		if acceptor(m, i, a) {
			n++
		}
	}
	return n
}

func acceptor(m *Molecule, i int, a *Atom) bool {
	switch a.Element.Number {
	case 8, 16:
		if a.Aromatic {
			if a.Charge != 0 {
				return false
			}
			for _, nb := range m.Neighbors(i) {
				if m.Atoms[nb].Aromatic && m.isElement(nb, 7) {
					return false
				}
				if m.Atoms[nb].Aromatic && m.isElement(nb, 6) {
					for _, nb2 := range m.Neighbors(nb) {
						if nb2 != i && m.Atoms[nb2].Aromatic && m.isElement(nb2, 7) {
							return false
						}
					}
				}
			}
			return true
		}
		if a.Charge < 0 {
			return true
		}
		v := m.totalValence(i)
		if v != 2 {
			return false
		}
		if a.Hs == 0 {
			return true
		}
		return a.Hs == 1 && !m.singleToAcidLike(i)
	case 7:
		if a.Aromatic {
			return a.Hs == 0 && a.Charge == 0
		}
		return m.totalValence(i) == 3 && a.Charge == 0 && !m.singleToAcidLike(i)
	}
	return false
}

// NumRotatableBonds counts acyclic single bonds between non-terminal heavy
// atoms, excluding triple-bond neighbours, amide-like C-N/O/S bonds and bonds
// to CX3 end groups (CF3, CCl3, CBr3, tert-butyl).
func NumRotatableBonds(m *Molecule) int {
	n := 0
	for bi, b := range m.Bonds {
		if b.Order != BondSingle || m.IsBondInRing(bi) {
			continue
		}
		if !rotorEnd(m, b.Begin) || !rotorEnd(m, b.End) {
			continue
		}
		if amideLike(m, b.Begin, b.End) || amideLike(m, b.End, b.Begin) {
			continue
		}
		n++
	}
	return n
}

func rotorEnd(m *Molecule, i int) bool {
	if m.heavyDegree(i) < 2 || m.Atoms[i].IsDummy() {
		return false
	}
	for _, bi := range m.adj[i] {
		if m.Bonds[bi].Order == BondTriple {
			return false
		}
	}
	return !symmetricEndGroup(m, i)
}

// symmetricEndGroup matches C(F)(F)F, C(Cl)(Cl)Cl, C(Br)(Br)Br and C(CH3)3.
func symmetricEndGroup(m *Molecule, i int) bool {
	a := m.Atoms[i]
	if a.Element.Number != 6 || a.Aromatic || m.Degree(i) != 4 {
		return false
	}
	counts := map[string]int{}
	for _, nb := range m.Neighbors(i) {
		na := m.Atoms[nb]
		switch {
		case na.Element.Number == 9 || na.Element.Number == 17 || na.Element.Number == 35:
			counts[na.Element.Symbol]++
		case na.Element.Number == 6 && !na.Aromatic && na.Hs == 3:
			counts["CH3"]++
		}
	}
	for _, c := range counts {
		if c >= 3 {
			return true
		}
	}
	return false
}

// amideLike reports whether c is a three-connected carbon double bonded to
// N, O or S and x is a non-terminal N, O or S.
func amideLike(m *Molecule, c, x int) bool {
	if !m.isElement(c, 6) || m.Degree(c) != 3 {
		return false
	}
	switch m.Atoms[x].Element.Number {
	case 7, 8, 16:
	default:
		return false
	}
	if m.heavyDegree(x) < 2 {
		return false
	}
	for _, bi := range m.adj[c] {
		b := m.Bonds[bi]
		if b.Order != BondDouble {
			continue
		}
		switch m.Atoms[b.Other(c)].Element.Number {
		case 7, 8, 16:
			return true
		}
	}
	return false
}

// NumAromaticRings counts perceived rings whose atoms are all aromatic.
func NumAromaticRings(m *Molecule) int {
	n := 0
	for _, r := range m.Rings() {
		all := true
		for _, a := range r {
			if !m.Atoms[a].Aromatic {
				all = false
				break
			}
		}
		if all {
			n++
		}
	}
	return n
}

//Personal.AI order the ending
