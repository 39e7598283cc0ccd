package chem

import (
	"sort"
	"strconv"
	"strings"
)

// CanonicalSMILES writes m as a canonical SMILES string: the same molecule
// yields the same string whatever the input atom order. Tetrahedral chirality
// and cis/trans double-bond geometry are kept.
func (m *Molecule) CanonicalSMILES() string {
	if len(m.Atoms) == 0 {
		return ""
	}
	ranks, symmetry, stereo := canonicalRanks(m)
	w := &smilesWriter{
		mol:      m,
		ranks:    ranks,
		symmetry: symmetry,
		stereo:   stereo,
		visited:  make([]bool, len(m.Atoms)),
		usedBond: make([]bool, len(m.Bonds)),
		children: make([][]int, len(m.Atoms)),
		opens:    make([][]int, len(m.Atoms)),
		closes:   make([][]int, len(m.Atoms)),
		digit:    make(map[int]int),
	}
	return w.write()
}

// SMILES is an alias for CanonicalSMILES.
func (m *Molecule) SMILES() string {
	return m.CanonicalSMILES()
}

type smilesWriter struct {
	mol      *Molecule
	ranks    []int
	symmetry []int
	stereo   []stereoBond

	visited  []bool
	usedBond []bool
	children [][]int // child bonds in output order
	opens    [][]int // ring bonds opened at the atom
	closes   [][]int // ring bonds closed at the atom

	digit map[int]int // ring bond -> digit
	inUse [100]bool
	sb    strings.Builder

	from   []int    // atom a bond's symbol is written after
	markAt [][2]int // text position of a bond's symbol
	marks  []int    // +1 for /, -1 for \, read from the from atom
}

func (w *smilesWriter) write() string {
	m := w.mol
	order := make([]int, len(m.Atoms))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return w.ranks[order[a]] < w.ranks[order[b]] })

	var roots []int
	for _, start := range order {
		if w.visited[start] {
			continue
		}
		w.walk(start, -1)
		roots = append(roots, start)
	}
	if len(w.stereo) > 0 {
		w.placeBonds(roots)
		w.assignBondMarks()
	}
	for k, start := range roots {
		if k > 0 {
			w.sb.WriteByte('.')
		}
		w.emit(start, -1)
	}
	return w.sb.String()
}

// placeBonds records, for every written bond, the atom its symbol follows
// and where in the text the symbol lands.
func (w *smilesWriter) placeBonds(roots []int) {
	m := w.mol
	w.from = make([]int, len(m.Bonds))
	w.markAt = make([][2]int, len(m.Bonds))
	w.marks = make([]int, len(m.Bonds))
	pos := make([]int, len(m.Atoms))
	next := 0
	var visit func(u int)
	visit = func(u int) {
		pos[u] = next
		next++
		for _, bi := range w.children[u] {
			visit(m.Bonds[bi].Other(u))
		}
	}
	for _, r := range roots {
		visit(r)
	}
	for u := range m.Atoms {
		for _, bi := range w.children[u] {
			w.from[bi] = u
			w.markAt[bi] = [2]int{pos[m.Bonds[bi].Other(u)], 0}
		}
		for k, bi := range w.closes[u] {
			w.from[bi] = u
			w.markAt[bi] = [2]int{pos[u], k + 1}
		}
	}
}

// assignBondMarks chooses / and \ for the single bonds around each stereo
// double bond, taking them in text order so the first free mark is always /.
func (w *smilesWriter) assignBondMarks() {
	m := w.mol
	stereo := append([]stereoBond(nil), w.stereo...)
	first := func(sb stereoBond) [2]int {
		b := m.Bonds[sb.bond]
		best := [2]int{-1, -1}
		for _, x := range [2]int{b.Begin, b.End} {
			for _, e := range w.markable(x, b.Other(x)) {
				if best[0] < 0 || lessPlace(w.markAt[e], best) {
					best = w.markAt[e]
				}
			}
		}
		return best
	}
	sort.SliceStable(stereo, func(i, j int) bool {
		return lessPlace(first(stereo[i]), first(stereo[j]))
	})

	for _, sb := range stereo {
		b := m.Bonds[sb.bond]
		ends := [2]int{b.Begin, b.End}
		bonds := [2][]int{w.markable(b.Begin, b.End), w.markable(b.End, b.Begin)}
		if len(bonds[0]) == 0 || len(bonds[1]) == 0 {
			continue
		}
		rel := -1
		if sb.cis {
			rel = 1
		}
		var side [2]int
		for k := range ends {
			side[k] = w.knownSide(ends[k], sb.refs[k], bonds[k])
		}
		if side[0] == 0 && side[1] == 0 {
			k, e := 0, bonds[0][0]
			for j := range ends {
				for _, c := range bonds[j] {
					if lessPlace(w.markAt[c], w.markAt[e]) {
						k, e = j, c
					}
				}
			}
			w.marks[e] = 1
			side[k] = w.knownSide(ends[k], sb.refs[k], bonds[k])
		}
		switch {
		case side[0] == 0:
			side[0] = side[1] * rel
		case side[1] == 0:
			side[1] = side[0] * rel
		}
		for k := range ends {
			w.setMarks(ends[k], sb.refs[k], side[k], bonds[k])
		}
	}
}

// markable returns the single bonds of x other than the one to partner, in
// text order.
func (w *smilesWriter) markable(x, partner int) []int {
	var out []int
	for _, bi := range w.mol.adj[x] {
		b := w.mol.Bonds[bi]
		if b.Order == BondSingle && b.Other(x) != partner {
			out = append(out, bi)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessPlace(w.markAt[out[i]], w.markAt[out[j]]) })
	return out
}

// knownSide returns the side of ref at x implied by an already chosen mark,
// or 0.
func (w *smilesWriter) knownSide(x, ref int, bonds []int) int {
	for _, e := range bonds {
		if w.marks[e] == 0 {
			continue
		}
		s := w.sideOf(e, x, w.marks[e])
		if w.mol.Bonds[e].Other(x) != ref {
			s = -s
		}
		return s
	}
	return 0
}

func (w *smilesWriter) setMarks(x, ref, side int, bonds []int) {
	for _, e := range bonds {
		if w.marks[e] != 0 {
			continue
		}
		s := side
		if w.mol.Bonds[e].Other(x) != ref {
			s = -s
		}
		// sideOf is its own inverse
		w.marks[e] = w.sideOf(e, x, s)
	}
}

// sideOf converts between a mark on bond e and the side its far atom sits on
// as seen from x.
func (w *smilesWriter) sideOf(e, x, d int) int {
	if w.from[e] == x {
		return d
	}
	return -d
}

func lessPlace(a, b [2]int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

// sortedBonds returns atom i's bonds ordered by the rank of the far atom.
func (w *smilesWriter) sortedBonds(i int) []int {
	bonds := append([]int(nil), w.mol.adj[i]...)
	sort.Slice(bonds, func(a, b int) bool {
		return w.ranks[w.mol.Bonds[bonds[a]].Other(i)] < w.ranks[w.mol.Bonds[bonds[b]].Other(i)]
	})
	return bonds
}

// walk builds the depth-first spanning tree and classifies ring closures.
func (w *smilesWriter) walk(u, parentBond int) {
	w.visited[u] = true
	for _, bi := range w.sortedBonds(u) {
		if bi == parentBond || w.usedBond[bi] {
			continue
		}
		v := w.mol.Bonds[bi].Other(u)
		w.usedBond[bi] = true
		if w.visited[v] {
			w.opens[v] = append(w.opens[v], bi)
			w.closes[u] = append(w.closes[u], bi)
			continue
		}
		w.children[u] = append(w.children[u], bi)
		w.walk(v, bi)
	}
}

func (w *smilesWriter) emit(u, parentBond int) {
	m := w.mol

	// ring closures: close first, then open with the lowest free digits
	var ringText strings.Builder
	var ringNbrs []int
	for _, bi := range w.closes[u] {
		ringText.WriteString(w.bondSymbol(bi))
		ringText.WriteString(digitText(w.digit[bi]))
		ringNbrs = append(ringNbrs, m.Bonds[bi].Other(u))
	}
	for _, bi := range w.opens[u] {
		d := w.nextDigit()
		w.digit[bi] = d
		w.inUse[d] = true
		ringText.WriteString(digitText(d))
		ringNbrs = append(ringNbrs, m.Bonds[bi].Other(u))
	}
	for _, bi := range w.closes[u] {
		w.inUse[w.digit[bi]] = false
	}

	// neighbour order as written, for chirality
	var written []int
	if parentBond >= 0 {
		written = append(written, m.Bonds[parentBond].Other(u))
	}
	if m.Atoms[u].Hs > 0 {
		written = append(written, hydrogenRef)
	}
	written = append(written, ringNbrs...)
	for _, bi := range w.children[u] {
		written = append(written, m.Bonds[bi].Other(u))
	}

	if parentBond >= 0 {
		w.sb.WriteString(w.bondSymbol(parentBond))
	}
	w.sb.WriteString(w.atomText(u, w.outputChirality(u, written)))
	w.sb.WriteString(ringText.String())

	kids := w.children[u]
	for k, bi := range kids {
		v := m.Bonds[bi].Other(u)
		if k < len(kids)-1 {
			w.sb.WriteByte('(')
			w.emit(v, bi)
			w.sb.WriteByte(')')
		} else {
			w.emit(v, bi)
		}
	}
}

func (w *smilesWriter) nextDigit() int {
	for d := 1; d < len(w.inUse); d++ {
		if !w.inUse[d] {
			return d
		}
	}
	return len(w.inUse) - 1
}

func digitText(d int) string {
	if d < 10 {
		return strconv.Itoa(d)
	}
	return "%" + strconv.Itoa(d)
}

func (w *smilesWriter) bondSymbol(bi int) string {
	b := w.mol.Bonds[bi]
	a1, a2 := w.mol.Atoms[b.Begin], w.mol.Atoms[b.End]
	switch b.Order {
	case BondDouble:
		return "="
	case BondTriple:
		return "#"
	case BondAromatic:
		if a1.Aromatic && a2.Aromatic {
			return ""
		}
		return ":"
	default:
		if w.marks != nil {
			switch w.marks[bi] {
			case 1:
				return "/"
			case -1:
				return "\\"
			}
		}
		if a1.Aromatic && a2.Aromatic {
			return "-"
		}
		return ""
	}
}

// outputChirality maps the stored tag onto the written neighbour order, or
// drops it when the centre is not stereogenic.
func (w *smilesWriter) outputChirality(u int, written []int) Chirality {
	a := w.mol.Atoms[u]
	if a.Chirality == ChiralityNone || a.Hs > 1 || len(written) < 3 || len(written) > 4 {
		return ChiralityNone
	}
	if len(a.refs) != len(written) {
		return ChiralityNone
	}
	classes := map[int]bool{}
	for _, n := range written {
		c := -1
		if n != hydrogenRef {
			c = w.symmetry[n]
		}
		if classes[c] {
			return ChiralityNone
		}
		classes[c] = true
	}
	perm := make([]int, len(written))
	for k, n := range written {
		perm[k] = -1
		for j, r := range a.refs {
			if r == n {
				perm[k] = j
				break
			}
		}
		if perm[k] < 0 {
			return ChiralityNone
		}
	}
	if oddPermutation(perm) {
		return a.Chirality.invert()
	}
	return a.Chirality
}

func oddPermutation(p []int) bool {
	inv := 0
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if p[i] > p[j] {
				inv++
			}
		}
	}
	return inv%2 == 1
}

func (w *smilesWriter) atomText(u int, chiral Chirality) string {
	m := w.mol
	a := m.Atoms[u]
	sym := a.Symbol()

	bracket := a.Isotope != 0 || a.Charge != 0 || chiral != ChiralityNone
	switch {
	case a.IsDummy():
		bracket = bracket || a.Hs != 0
	case a.Aromatic:
		bracket = bracket || !aromaticOrganic[sym] || a.Hs != m.defaultHs(u)
	default:
		bracket = bracket || !isOrganic(a.Element) || a.Hs != m.defaultHs(u)
	}
	if !bracket {
		return sym
	}

	var sb strings.Builder
	sb.WriteByte('[')
	if a.Isotope != 0 {
		sb.WriteString(strconv.Itoa(a.Isotope))
	}
	sb.WriteString(sym)
	switch chiral {
	case ChiralityCCW:
		sb.WriteString("@")
	case ChiralityCW:
		sb.WriteString("@@")
	}
	if a.Hs > 0 {
		sb.WriteByte('H')
		if a.Hs > 1 {
			sb.WriteString(strconv.Itoa(a.Hs))
		}
	}
	switch {
	case a.Charge == 1:
		sb.WriteByte('+')
	case a.Charge == -1:
		sb.WriteByte('-')
	case a.Charge > 1:
		sb.WriteString("+" + strconv.Itoa(a.Charge))
	case a.Charge < -1:
		sb.WriteString(strconv.Itoa(a.Charge))
	}
	sb.WriteByte(']')
	return sb.String()
}

//Personal.AI order the ending
