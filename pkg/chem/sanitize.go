package chem

// Sanitize re-perceives rings, checks that aromatic flags sit on ring atoms,
// verifies every atom's valence, checks that aromatic systems kekulize,
// perceives aromaticity of Kekulé rings and drops double-bond geometry that
// cannot hold. It mutates m.
func Sanitize(m *Molecule) error {
	m.rings = nil
	ri := m.ringInfo()
	for i, a := range m.Atoms {
		if a.Aromatic && !ri.atomInRing[i] {
			return &AromaticityError{Atom: i, Msg: "non-ring atom marked aromatic"}
		}
	}
	for bi, b := range m.Bonds {
		if b.Order == BondAromatic && !ri.bondInRing[bi] {
			return &AromaticityError{Atom: b.Begin, Msg: "non-ring bond marked aromatic"}
		}
	}
	if err := checkValences(m); err != nil {
		return err
	}
	if err := checkKekulization(m); err != nil {
		return err
	}
	perceiveAromaticity(m)
	cleanBondStereo(m)
	return nil
}

func checkValences(m *Molecule) error {
	for i, a := range m.Atoms {
		if a.IsDummy() {
			continue
		}
		allowed := allowedValence(a.Element, a.Charge)
		if allowed < 0 {
			continue
		}
		v := m.bondValence(i, false) + a.Hs
		if v > allowed {
			return &ValenceError{
				Atom:    i,
				Symbol:  a.Element.Symbol,
				Charge:  a.Charge,
				Valence: v,
				Allowed: allowed,
			}
		}
	}
	return nil
}

// cleanBondStereo clears the geometry of bonds that are no longer double,
// of double bonds inside rings smaller than eight and of ends whose reference
// atom is not a neighbour.
func cleanBondStereo(m *Molecule) {
	for bi, b := range m.Bonds {
		if b.Stereo == StereoNone {
			continue
		}
		if size := m.bondRingSize(bi); b.Order != BondDouble || (size > 0 && size < 8) ||
			!m.stereoEnd(b.Begin, b.End, b.StereoAtoms[0]) ||
			!m.stereoEnd(b.End, b.Begin, b.StereoAtoms[1]) {
			b.Stereo = StereoNone
			b.StereoAtoms = [2]int{}
		}
	}
}

// stereoEnd reports whether x, double bonded to partner, can carry geometry
// referenced to ref.
func (m *Molecule) stereoEnd(x, partner, ref int) bool {
	a := m.Atoms[x]
	others, found := 0, false
	for _, bi := range m.adj[x] {
		n := m.Bonds[bi].Other(x)
		if n == partner {
			continue
		}
		others++
		if n == ref {
			found = true
		}
	}
	if total := others + a.Hs; a.Hs > 1 || total < 1 || total > 2 {
		return false
	}
	if ref == hydrogenRef {
		return a.Hs == 1
	}
	return found
}

//Personal.AI order the ending
