package chem

// bondProfile counts the bond types from an atom to its heavy neighbours.
type bondProfile struct {
	single, double, triple, aromatic int
}

func (m *Molecule) profile(i int) bondProfile {
	var p bondProfile
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		if m.Atoms[b.Other(i)].IsDummy() {
			continue
		}
		switch b.Order {
		case BondSingle:
			p.single++
		case BondDouble:
			p.double++
		case BondTriple:
			p.triple++
		case BondAromatic:
			p.aromatic++
		}
	}
	return p
}

func (p bondProfile) heavy() int {
	return p.single + p.double + p.triple + p.aromatic
}

func (p bondProfile) is(single, double, triple, aromatic int) bool {
	return p.single == single && p.double == double && p.triple == triple && p.aromatic == aromatic
}

// TPSA returns the topological polar surface area from Ertl's nitrogen and
// oxygen fragment contributions.
func TPSA(m *Molecule) float64 {
	total := 0.0
	for i, a := range m.Atoms {
		switch a.Element.Number {
		case 7:
			total += nitrogenPSA(m, i, a)
		case 8:
			total += oxygenPSA(m, i, a)
		}
	}
	return total
}

func nitrogenPSA(m *Molecule, i int, a *Atom) float64 {
	p := m.profile(i)
	h := a.Hs
	ring3 := m.inRingOfSize(i, 3)

	if a.Aromatic {
		switch {
		case a.Charge == 0 && h == 0 && p.is(0, 0, 0, 2):
			return 12.89
		case a.Charge == 0 && h == 0 && p.is(0, 0, 0, 3):
			return 4.41
		case a.Charge == 0 && h == 0 && p.is(1, 0, 0, 2):
			return 4.93
		case a.Charge == 0 && h == 0 && p.is(0, 1, 0, 2):
			return 8.39
		case a.Charge == 0 && h == 1 && p.is(0, 0, 0, 2):
			return 15.79
		case a.Charge == 1 && h == 0 && p.is(0, 0, 0, 3):
			return 4.10
		case a.Charge == 1 && h == 0 && p.is(1, 0, 0, 2):
			return 3.88
		case a.Charge == 1 && h == 1 && p.is(0, 0, 0, 2):
			return 14.14
		}
		return fallbackPSA(30.5, 8.2, p.heavy(), h)
	}

	switch a.Charge {
	case 0:
		switch {
		case h == 0 && p.is(3, 0, 0, 0) && ring3:
			return 3.01
		case h == 0 && p.is(3, 0, 0, 0):
			return 3.24
		case h == 0 && p.is(1, 1, 0, 0):
			return 12.36
		case h == 0 && p.is(0, 0, 1, 0):
			return 23.79
		case h == 0 && p.is(1, 2, 0, 0):
			return 11.68
		case h == 0 && p.is(0, 1, 1, 0):
			return 13.60
		case h == 1 && p.is(2, 0, 0, 0) && ring3:
			return 21.94
		case h == 1 && p.is(2, 0, 0, 0):
			return 12.03
		case h == 1 && p.is(0, 1, 0, 0):
			return 23.85
		case h == 2 && p.is(1, 0, 0, 0):
			return 26.02
		}
	case 1:
		switch {
		case h == 0 && p.is(4, 0, 0, 0):
			return 0.00
		case h == 0 && p.is(2, 1, 0, 0):
			return 3.01
		case h == 0 && p.is(1, 0, 1, 0):
			return 4.36
		case h == 1 && p.is(3, 0, 0, 0):
			return 4.44
		case h == 1 && p.is(1, 1, 0, 0):
			return 13.97
		case h == 2 && p.is(2, 0, 0, 0):
			return 16.61
		case h == 2 && p.is(0, 1, 0, 0):
			return 25.59
		case h == 3 && p.is(1, 0, 0, 0):
			return 27.64
		}
	}
	return fallbackPSA(30.5, 8.2, p.heavy(), h)
}

func oxygenPSA(m *Molecule, i int, a *Atom) float64 {
	p := m.profile(i)
	h := a.Hs
	switch {
	case a.Aromatic && a.Charge == 0 && p.is(0, 0, 0, 2):
		return 13.14
	case a.Charge == 0 && h == 0 && p.is(2, 0, 0, 0) && m.inRingOfSize(i, 3):
		return 12.53
	case a.Charge == 0 && h == 0 && p.is(2, 0, 0, 0):
		return 9.23
	case a.Charge == 0 && h == 0 && p.is(0, 1, 0, 0):
		return 17.07
	case a.Charge == 0 && h == 1 && p.is(1, 0, 0, 0):
		return 20.23
	case a.Charge == -1 && h == 0 && p.is(1, 0, 0, 0):
		return 23.06
	}
	return fallbackPSA(28.5, 8.6, p.heavy(), h)
}

// fallbackPSA estimates unlisted environments from neighbour and hydrogen
// counts.
func fallbackPSA(base, perNeighbour float64, heavy, hs int) float64 {
	v := base - perNeighbour*float64(heavy) + 1.5*float64(hs)
	if v < 0 {
		return 0
	}
	return v
}

//Personal.AI order the ending
