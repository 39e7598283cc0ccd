package chem

import (
	"sort"
)

// stereoBond is a double bond whose geometry survives canonicalization. refs
// are the reference neighbours of Begin and End picked by symmetry class.
type stereoBond struct {
	bond int
	refs [2]int
	cis  bool
}

// canonicalRanks computes a canonical atom ordering. symmetry holds the
// graph-invariant classes before tie breaking; ranks is a total order in which
// symmetry-equivalent atoms are split deterministically. stereo lists the
// double bonds with a geometry that can be written.
func canonicalRanks(m *Molecule) (ranks, symmetry []int, stereo []stereoBond) {
	n := len(m.Atoms)
	if n == 0 {
		return nil, nil, nil
	}
	ri := m.ringInfo()

	inv := make([][]int, n)
	for i, a := range m.Atoms {
		ring := 0
		if ri.atomInRing[i] {
			ring = 1
		}
		arom := 0
		if a.Aromatic {
			arom = 1
		}
		inv[i] = []int{m.Degree(i), a.Element.Number, a.Isotope, a.Charge, a.Hs, arom, ring}
	}
	ranks = refine(m, rankByKeys(inv))
	if stereo = stereogenicBonds(m, ranks); len(stereo) > 0 {
		code := make([]int, n)
		for _, sb := range stereo {
			c := 1
			if sb.cis {
				c = 2
			}
			b := m.Bonds[sb.bond]
			code[b.Begin], code[b.End] = c, c
		}
		for i := range inv {
			inv[i] = append(inv[i], code[i])
		}
		ranks = refine(m, rankByKeys(inv))
	}
	symmetry = append([]int(nil), ranks...)

	for {
		r, ok := lowestTie(ranks)
		if !ok {
			break
		}
		pick := -1
		for i, v := range ranks {
			if v == r {
				pick = i
				break
			}
		}
		for i := range ranks {
			ranks[i] *= 2
		}
		ranks[pick]--
		ranks = refine(m, ranks)
	}
	return ranks, symmetry, stereo
}

// stereogenicBonds returns the tagged double bonds whose ends each carry two
// distinguishable substituents, with the geometry restated against the
// higher-class neighbour of each end.
func stereogenicBonds(m *Molecule, classes []int) []stereoBond {
	var out []stereoBond
	for bi, b := range m.Bonds {
		if b.Stereo == StereoNone {
			continue
		}
		ra, ok := stereoPick(m, classes, b.Begin, b.End)
		if !ok {
			continue
		}
		rb, ok := stereoPick(m, classes, b.End, b.Begin)
		if !ok {
			continue
		}
		cis := b.Stereo == StereoCis
		if ra != b.StereoAtoms[0] {
			cis = !cis
		}
		if rb != b.StereoAtoms[1] {
			cis = !cis
		}
		out = append(out, stereoBond{bond: bi, refs: [2]int{ra, rb}, cis: cis})
	}
	return out
}

// stereoPick chooses the reference neighbour of x across its double bond to
// partner. An implicit hydrogen is used only when x has no other neighbour.
func stereoPick(m *Molecule, classes []int, x, partner int) (int, bool) {
	var nbrs []int
	for _, bi := range m.adj[x] {
		if n := m.Bonds[bi].Other(x); n != partner {
			nbrs = append(nbrs, n)
		}
	}
	switch len(nbrs) {
	case 0:
		return hydrogenRef, m.Atoms[x].Hs == 1
	case 1:
		return nbrs[0], m.Atoms[x].Hs <= 1
	case 2:
		a, b := nbrs[0], nbrs[1]
		if classes[a] == classes[b] {
			return 0, false
		}
		if classes[a] > classes[b] {
			return a, true
		}
		return b, true
	}
	return 0, false
}

// refine iterates neighbour-rank refinement until the partition is stable.
func refine(m *Molecule, ranks []int) []int {
	n := len(ranks)
	classes := countClasses(ranks)
	for {
		keys := make([][]int, n)
		for i := 0; i < n; i++ {
			nb := make([]int, 0, len(m.adj[i]))
			for _, bi := range m.adj[i] {
				b := m.Bonds[bi]
				nb = append(nb, ranks[b.Other(i)]*8+int(b.Order))
			}
			sort.Ints(nb)
			keys[i] = append([]int{ranks[i]}, nb...)
		}
		next := rankByKeys(keys)
		c := countClasses(next)
		ranks = next
		if c == classes {
			return ranks
		}
		classes = c
	}
}

// rankByKeys assigns dense ranks by lexicographic key order.
func rankByKeys(keys [][]int) []int {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return compareKeys(keys[idx[a]], keys[idx[b]]) < 0
	})
	ranks := make([]int, len(keys))
	r := 0
	for k, i := range idx {
		if k > 0 && compareKeys(keys[idx[k-1]], keys[i]) != 0 {
			r++
		}
		ranks[i] = r
	}
	return ranks
}

func compareKeys(a, b []int) int {
	for k := 0; k < len(a) && k < len(b); k++ {
		if a[k] != b[k] {
			if a[k] < b[k] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func countClasses(ranks []int) int {
	seen := make(map[int]struct{}, len(ranks))
	for _, r := range ranks {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// lowestTie returns the smallest rank shared by more than one atom.
func lowestTie(ranks []int) (int, bool) {
	count := make(map[int]int, len(ranks))
	for _, r := range ranks {
		count[r]++
	}
	best, found := 0, false
	for r, c := range count {
		if c > 1 && (!found || r < best) {
			best, found = r, true
		}
	}
	return best, found
}

//Personal.AI order the ending
