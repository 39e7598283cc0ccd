package chem

// Wildman-Crippen atom contributions to logP. Types follow the published
// scheme; environments outside the table fall back to the per-element "S"
// (supplemental) values.
const (
	crC1  = 0.1441
	crC2  = 0.0000
	crC3  = -0.2035
	crC4  = -0.2051
	crC5  = -0.2783
	crC6  = 0.1551
	crC7  = 0.00170
	crC8  = 0.08452
	crC9  = -0.1444
	crC10 = -0.0516
	crC11 = 0.1193
	crC12 = -0.0967
	crC13 = -0.5443
	crC14 = 0.0000
	crC15 = 0.2450
	crC16 = 0.1980
	crC17 = 0.0000
	crC18 = 0.1581
	crC19 = 0.2955
	crC20 = 0.2713
	crC21 = 0.1360
	crC22 = 0.4619
	crC23 = 0.5437
	crC24 = 0.1893
	crC25 = -0.8186
	crC26 = 0.2640
	crC27 = 0.2148
	crCS  = 0.08129

	crH1 = 0.1230
	crH2 = -0.2677
	crH3 = 0.2142
	crH4 = 0.2980
	crHS = 0.1125

	crN1  = -1.0190
	crN2  = -0.7096
	crN3  = -1.0270
	crN4  = -0.5188
	crN5  = 0.08387
	crN6  = 0.1836
	crN7  = -0.3187
	crN8  = -0.4458
	crN9  = 0.01508
	crN10 = -1.950
	crN11 = -0.3239
	crN12 = -1.119
	crN13 = -0.3396
	crN14 = 0.2887
	crNS  = -0.4806

	crO1  = 0.1552
	crO2  = -0.2893
	crO3  = -0.0684
	crO4  = -0.4195
	crO5  = 0.0335
	crO6  = -0.3339
	crO7  = -1.189
	crO8  = 0.1788
	crO9  = -0.1526
	crO10 = 0.1129
	crO11 = 0.4833
	crO12 = -1.326
	crOS  = -0.1188

	crF   = 0.4202
	crCl  = 0.6895
	crBr  = 0.8456
	crI   = 0.8857
	crHal = -2.996
	crP   = 0.8612
	crS1  = 0.6482
	crS2  = -0.0024
	crS3  = 0.6237
	crMe1 = -0.3808
	crMe2 = -0.0025
)

// CrippenLogP returns the Wildman-Crippen octanol/water partition
// coefficient.
func CrippenLogP(m *Molecule) float64 {
	total := 0.0
	for i, a := range m.Atoms {
		if a.IsDummy() {
			continue
		}
		total += crippenAtom(m, i, a)
		total += float64(a.Hs) * crippenHydrogen(m, i, a)
	}
	return total
}

func crippenAtom(m *Molecule, i int, a *Atom) float64 {
	switch a.Element.Number {
	case 6:
		if a.Aromatic {
			return crippenAromaticCarbon(m, i, a)
		}
		return crippenAliphaticCarbon(m, i, a)
	case 7:
		return crippenNitrogen(m, i, a)
	case 8:
		return crippenOxygen(m, i, a)
	case 9, 17, 35, 53:
		if a.Charge < 0 {
			return crHal
		}
		switch a.Element.Number {
		case 9:
			return crF
		case 17:
			return crCl
		case 35:
			return crBr
		default:
			return crI
		}
	case 15:
		return crP
	case 16:
		switch {
		case a.Aromatic:
			return crS3
		case a.Charge != 0:
			return crS2
		default:
			return crS1
		}
	case 3, 11, 19:
		return crMe1
	case 4, 12, 20:
		return crMe2
	}
	return 0
}

func isHalogen(n int) bool {
	return n == 9 || n == 17 || n == 35 || n == 53
}

// crippenHetero lists the elements Crippen treats as heteroatom neighbours of
// sp3 carbon.
func crippenHetero(a *Atom) bool {
	switch a.Element.Number {
	case 7, 8, 15, 16:
		return !a.Aromatic
	}
	return isHalogen(a.Element.Number)
}

func crippenAliphaticCarbon(m *Molecule, i int, a *Atom) float64 {
	var hasTriple, doubleToC, doubleToHetero bool
	var aromNbr, aromCarbonNbr, heteroNbr, aliphCNbr, otherNbr int
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		n := m.Atoms[b.Other(i)]
		switch b.Order {
		case BondTriple:
			hasTriple = true
		case BondDouble:
			if n.Element.Number == 6 {
				doubleToC = true
			} else if !n.Aromatic {
				doubleToHetero = true
			}
		}
		switch {
		case n.Aromatic:
			aromNbr++
			if n.Element.Number == 6 {
				aromCarbonNbr++
			}
		case n.Element.Number == 6:
			aliphCNbr++
		case crippenHetero(n):
			heteroNbr++
		default:
			otherNbr++
		}
	}

	switch {
	case doubleToHetero:
		return crC5
	case hasTriple:
		return crC7
	case doubleToC:
		if aromNbr > 0 {
			return crC26
		}
		return crC6
	}

	deg := m.Degree(i)
	switch {
	case deg == 0:
		return crC1
	case aliphCNbr == deg && a.Hs >= 2:
		return crC1
	case aliphCNbr == deg:
		return crC2
	case heteroNbr > 0 && aromNbr == 0:
		if a.Hs >= 2 {
			return crC3
		}
		return crC4
	case aromNbr > 0:
		switch a.Hs {
		case 3:
			if aromCarbonNbr > 0 {
				return crC8
			}
			return crC9
		case 2:
			return crC10
		case 1:
			return crC11
		default:
			return crC12
		}
	case otherNbr > 0:
		return crC27
	}
	return crCS
}

func crippenAromaticCarbon(m *Molecule, i int, a *Atom) float64 {
	aromBonds := 0
	sub := -1
	exoDouble := false
	for _, bi := range m.adj[i] {
		b := m.Bonds[bi]
		switch b.Order {
		case BondAromatic:
			aromBonds++
		case BondDouble:
			exoDouble = true
		default:
			sub = b.Other(i)
		}
	}
	if exoDouble {
		return crC25
	}
	if sub >= 0 {
		s := m.Atoms[sub]
		n := s.Element.Number
		switch {
		case isHalogen(n):
			switch n {
			case 9:
				return crC14
			case 17:
				return crC15
			case 35:
				return crC16
			default:
				return crC17
			}
		case !s.Aromatic && n != 6 && n != 7 && n != 8 && n != 16 && a.Hs == 0:
			return crC13
		}
	}
	if a.Hs > 0 {
		return crC18
	}
	if aromBonds >= 3 {
		return crC19
	}
	if sub >= 0 {
		s := m.Atoms[sub]
		switch {
		case s.Aromatic:
			return crC20
		case s.Element.Number == 6:
			return crC21
		case s.Element.Number == 7:
			return crC22
		case s.Element.Number == 8:
			return crC23
		case s.Element.Number == 16:
			return crC24
		}
	}
	return crCS
}

func crippenNitrogen(m *Molecule, i int, a *Atom) float64 {
	if a.Aromatic {
		if a.Charge == 0 {
			return crN11
		}
		return crN12
	}
	p := m.profile(i)
	aromNbr := 0
	for _, nb := range m.Neighbors(i) {
		if m.Atoms[nb].Aromatic {
			aromNbr++
		}
	}
	switch {
	case a.Charge < 0:
		return crN14
	case a.Charge > 0:
		if a.Hs > 0 {
			return crN10
		}
		if p.triple > 0 {
			return crN14
		}
		for _, nb := range m.Neighbors(i) {
			if m.isElement(nb, 7) && m.Atoms[nb].Charge < 0 {
				return crN14
			}
		}
		return crN13
	}

	switch {
	case a.Hs == 2 && p.is(1, 0, 0, 0):
		if aromNbr > 0 {
			return crN3
		}
		return crN1
	case a.Hs == 1 && p.is(2, 0, 0, 0):
		if aromNbr > 0 {
			return crN4
		}
		return crN2
	case a.Hs == 1 && p.is(0, 1, 0, 0):
		return crN5
	case a.Hs == 0 && p.double == 1 && p.single == 1:
		return crN6
	case a.Hs == 0 && p.is(3, 0, 0, 0):
		if aromNbr > 0 {
			return crN8
		}
		return crN7
	case a.Hs == 0 && p.is(0, 0, 1, 0):
		return crN9
	}
	return crNS
}

func crippenOxygen(m *Molecule, i int, a *Atom) float64 {
	if a.Aromatic {
		return crO1
	}
	nbrs := m.Neighbors(i)
	switch {
	case a.Charge < 0:
		if len(nbrs) == 1 {
			n := nbrs[0]
			switch {
			case m.isElement(n, 7):
				return crO5
			case m.isElement(n, 16):
				return crO6
			case m.isElement(n, 6) && m.hasDoubleToHetero(n):
				return crO12
			}
		}
		return crO7
	case a.Charge > 0:
		return crOS
	case a.Hs > 0:
		return crO2
	}

	p := m.profile(i)
	if p.is(0, 1, 0, 0) {
		n := nbrs[0]
		na := m.Atoms[n]
		switch {
		case na.Element.Number == 7 || na.Element.Number == 8:
			return crO5
		case na.Aromatic:
			return crO8
		case na.Element.Number == 6:
			return carbonylOxygen(m, n, i)
		}
		return crOS
	}
	if p.is(2, 0, 0, 0) {
		for _, n := range nbrs {
			if m.Atoms[n].Aromatic {
				return crO4
			}
		}
		return crO3
	}
	return crOS
}

// carbonylOxygen classifies O in C=O by the carbon's other substituents.
func carbonylOxygen(m *Molecule, c, o int) float64 {
	hetero, arom := 0, 0
	for _, n := range m.Neighbors(c) {
		if n == o {
			continue
		}
		na := m.Atoms[n]
		if na.Aromatic {
			arom++
		}
		if na.Element.Number != 6 {
			hetero++
		}
	}
	switch {
	case hetero >= 2:
		return crO11
	case arom > 0:
		return crO10
	}
	return crO9
}

func crippenHydrogen(m *Molecule, i int, a *Atom) float64 {
	switch a.Element.Number {
	case 6:
		return crH1
	case 7:
		return crH3
	case 8:
		for _, n := range m.Neighbors(i) {
			na := m.Atoms[n]
			if (na.Element.Number == 6 && m.hasDoubleToHetero(n)) ||
				na.Element.Number == 7 || na.Element.Number == 8 || na.Element.Number == 16 {
				return crH4
			}
		}
		return crH2
	}
	return crHS
}

//Personal.AI order the ending
