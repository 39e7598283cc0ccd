package chem

// perceiveAromaticity marks Kekulé rings that satisfy Hückel's 4n+2 rule as
// aromatic. Every ring is judged against the bond orders as written, so fused
// systems such as naphthalene resolve ring by ring.
func perceiveAromaticity(m *Molecule) {
	ri := m.ringInfo()
	var hits []int
	for k, ring := range ri.rings {
		if len(ring) < 5 || len(ring) > 7 {
			continue
		}
		if ringAlreadyAromatic(m, ri.ringBonds[k]) {
			continue
		}
		if huckel(m, ring, ri.ringBonds[k]) {
			hits = append(hits, k)
		}
	}
	for _, k := range hits {
		for _, a := range ri.rings[k] {
			m.Atoms[a].Aromatic = true
		}
		for _, bi := range ri.ringBonds[k] {
			m.Bonds[bi].Order = BondAromatic
		}
	}
}

func ringAlreadyAromatic(m *Molecule, bonds []int) bool {
	for _, bi := range bonds {
		if m.Bonds[bi].Order != BondAromatic {
			return false
		}
	}
	return true
}

func huckel(m *Molecule, ring, bonds []int) bool {
	inRing := make(map[int]bool, len(bonds))
	for _, bi := range bonds {
		inRing[bi] = true
	}
	total := 0
	for _, a := range ring {
		e := piElectrons(m, a, inRing)
		if e < 0 {
			return false
		}
		total += e
	}
	return total%4 == 2
}

// piElectrons returns the electrons atom i donates to the ring whose bonds
// are in ringBonds, or -1 when the atom cannot take part in an aromatic ring.
func piElectrons(m *Molecule, i int, ringBonds map[int]bool) int {
	a := m.Atoms[i]
	ri := m.ringInfo()

	doubles := 0
	exoElectronegative := false
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		switch b.Order {
		case BondTriple:
			return -1
		case BondDouble:
			doubles++
			if ringBonds[bi] {
				continue
			}
			other := m.Atoms[b.Other(i)]
			switch {
			case ri.bondInRing[bi]:
				// double bond shared with a fused ring
			case other.Element.Number == 7 || other.Element.Number == 8 || other.Element.Number == 16:
				exoElectronegative = true
			default:
				return -1
			}
		}
	}
	if doubles > 1 {
		return -1
	}

	if a.Aromatic {
		switch a.Element.Number {
		case 6:
			return 1
		case 7, 15:
			if a.Hs > 0 || m.Degree(i) == 3 {
				return 2
			}
			return 1
		default:
			return 2
		}
	}

	if doubles == 1 {
		if exoElectronegative {
			return 0
		}
		return 1
	}

	switch a.Element.Number {
	case 5:
		if a.Charge == 0 && m.Degree(i)+a.Hs == 3 {
			return 0
		}
	case 6:
		switch a.Charge {
		case -1:
			return 2
		case 1:
			return 0
		}
	case 7, 15:
		if a.Charge == 0 && m.Degree(i)+a.Hs == 3 {
			return 2
		}
	case 8, 16, 34:
		if a.Charge == 0 && m.Degree(i) == 2 {
			return 2
		}
	}
	return -1
}

//Personal.AI order the ending
