package chem

// checkKekulization verifies that the aromatic atoms which still lack a pi
// bond can be paired off by double bonds along aromatic bonds. A system with
// no such pairing, like c1cccc1, is rejected.
func checkKekulization(m *Molecule) error {
	needy := make([]bool, len(m.Atoms))
	found := false
	for i := range m.Atoms {
		if m.needsPiBond(i) {
			needy[i] = true
			found = true
		}
	}
	if !found {
		return nil
	}

	partners := make([][]int, len(m.Atoms))
	for _, b := range m.Bonds {
		if b.Order == BondAromatic && needy[b.Begin] && needy[b.End] {
			partners[b.Begin] = append(partners[b.Begin], b.End)
			partners[b.End] = append(partners[b.End], b.Begin)
		}
	}
	for i, n := range needy {
		if n && len(partners[i]) == 0 {
			return &AromaticityError{Atom: i, Msg: "cannot kekulize aromatic system"}
		}
	}

	match := make([]int, len(m.Atoms))
	for i := range match {
		match[i] = -1
	}
	seen := make([]bool, len(m.Atoms))
	for start, n := range needy {
		if !n || seen[start] {
			continue
		}
		comp := needyComponent(partners, seen, start)
		if len(comp)%2 == 1 || !pairAtoms(partners, match, comp) {
			return &AromaticityError{Atom: start, Msg: "cannot kekulize aromatic system"}
		}
	}
	return nil
}

// needsPiBond reports whether aromatic atom i sits below its next allowed
// valence when every aromatic bond counts as single, i.e. it must take one
// of the ring's double bonds.
func (m *Molecule) needsPiBond(i int) bool {
	a := m.Atoms[i]
	if !a.Aromatic || a.IsDummy() || len(a.Element.Valences) == 0 {
		return false
	}
	arom := false
	for _, bi := range m.adj[i] {
		if m.Bonds[bi].Order == BondAromatic {
			arom = true
			break
		}
	}
	if !arom {
		return false
	}
	v := m.bondValence(i, false) + a.Hs
	for _, nv := range a.Element.Valences {
		if allowed := chargedValence(a.Element, nv, a.Charge); allowed >= v {
			return allowed > v
		}
	}
	return false
}

func needyComponent(partners [][]int, seen []bool, start int) []int {
	comp := []int{start}
	seen[start] = true
	for k := 0; k < len(comp); k++ {
		for _, n := range partners[comp[k]] {
			if !seen[n] {
				seen[n] = true
				comp = append(comp, n)
			}
		}
	}
	return comp
}

// pairAtoms searches for a perfect matching of comp, always branching on the
// unmatched atom with the fewest free partners.
func pairAtoms(partners [][]int, match []int, comp []int) bool {
	pick, best := -1, 0
	for _, i := range comp {
		if match[i] >= 0 {
			continue
		}
		free := 0
		for _, n := range partners[i] {
			if match[n] < 0 {
				free++
			}
		}
		if free == 0 {
			return false
		}
		if pick < 0 || free < best {
			pick, best = i, free
		}
	}
	if pick < 0 {
		return true
	}
	for _, n := range partners[pick] {
		if match[n] >= 0 {
			continue
		}
		match[pick], match[n] = n, pick
		if pairAtoms(partners, match, comp) {
			return true
		}
		match[pick], match[n] = -1, -1
	}
	return false
}

//Personal.AI order the ending
