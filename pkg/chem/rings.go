package chem

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// ringInfo holds the perceived ring system of a molecule.
type ringInfo struct {
	// rings is the smallest set of smallest rings, each listed in walk order.
	rings [][]int
	// ringBonds holds the bond indices of each ring.
	ringBonds  [][]int
	atomInRing []bool
	bondInRing []bool
	components int
}

// ringInfo returns the cached ring perception, computing it on first use.
func (m *Molecule) ringInfo() *ringInfo {
	if m.rings == nil {
		m.rings = perceiveRings(m)
	}
	return m.rings
}

// toGraph builds the gonum view of the molecular skeleton. Node IDs are atom
// indices.
func (m *Molecule) toGraph() *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := range m.Atoms {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, b := range m.Bonds {
		g.SetEdge(g.NewEdge(simple.Node(int64(b.Begin)), simple.Node(int64(b.End))))
	}
	return g
}

func perceiveRings(m *Molecule) *ringInfo {
	ri := &ringInfo{
		atomInRing: make([]bool, len(m.Atoms)),
		bondInRing: make([]bool, len(m.Bonds)),
	}
	g := m.toGraph()
	ri.components = len(topo.ConnectedComponents(g))

	// Ring membership from a cycle basis: a bond lies on a ring exactly when
	// it appears in some basis cycle.
	for _, cycle := range topo.UndirectedCyclesIn(g) {
		markCycle(m, ri, cycle)
	}

	nrings := len(m.Bonds) - len(m.Atoms) + ri.components
	if nrings <= 0 {
		return ri
	}
	ri.rings, ri.ringBonds = smallestRings(m, ri, nrings)
	return ri
}

func markCycle(m *Molecule, ri *ringInfo, cycle []graph.Node) {
	n := len(cycle)
	if n > 1 && cycle[0].ID() == cycle[n-1].ID() {
		n--
	}
	for k := 0; k < n; k++ {
		u := int(cycle[k].ID())
		v := int(cycle[(k+1)%n].ID())
		ri.atomInRing[u] = true
		if bi, ok := m.BondBetween(u, v); ok {
			ri.bondInRing[bi] = true
		}
	}
}

type ringCandidate struct {
	atoms []int
	bonds []int
	bits  []uint64
}

// smallestRings picks nrings linearly independent cycles, shortest first.
// Candidates are the shortest cycles through each ring bond, found by a BFS
// that visits neighbours in bond order so the result does not depend on map
// iteration.
func smallestRings(m *Molecule, ri *ringInfo, nrings int) ([][]int, [][]int) {
	words := (len(m.Bonds) + 63) / 64
	seen := map[string]bool{}
	var cands []ringCandidate

	for bi, b := range m.Bonds {
		if !ri.bondInRing[bi] {
			continue
		}
		path := shortestRingPath(m, ri, b.Begin, b.End, bi)
		if path == nil {
			continue
		}
		c := ringCandidate{atoms: path, bits: make([]uint64, words)}
		for k := range path {
			u, v := path[k], path[(k+1)%len(path)]
			e, _ := m.BondBetween(u, v)
			c.bonds = append(c.bonds, e)
			c.bits[e/64] |= 1 << uint(e%64)
		}
		key := bitsKey(c.bits)
		if seen[key] {
			continue
		}
		seen[key] = true
		cands = append(cands, c)
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if len(cands[i].atoms) != len(cands[j].atoms) {
			return len(cands[i].atoms) < len(cands[j].atoms)
		}
		return bitsKey(cands[i].bits) < bitsKey(cands[j].bits)
	})

	var basis [][]uint64
	var rings, bonds [][]int
	for _, c := range cands {
		if len(rings) == nrings {
			break
		}
		if reduce(basis, c.bits) {
			basis = append(basis, reduced(basis, c.bits))
			rings = append(rings, c.atoms)
			bonds = append(bonds, c.bonds)
		}
	}
	return rings, bonds
}

// shortestRingPath returns the atoms of the shortest path from u to v that
// avoids bond skip and stays on ring bonds, or nil.
func shortestRingPath(m *Molecule, ri *ringInfo, u, v, skip int) []int {
	prev := make([]int, len(m.Atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[u] = -1
	queue := []int{u}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		if x == v {
			break
		}
		for _, bi := range m.adj[x] {
			if bi == skip || !ri.bondInRing[bi] {
				continue
			}
			y := m.Bonds[bi].Other(x)
			if prev[y] != -2 {
				continue
			}
			prev[y] = x
			queue = append(queue, y)
		}
	}
	if prev[v] == -2 {
		return nil
	}
	var path []int
	for x := v; x != -1; x = prev[x] {
		path = append(path, x)
	}
	// path runs v..u; reverse to u..v
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// reduce reports whether bits is independent of the basis over GF(2).
func reduce(basis [][]uint64, bits []uint64) bool {
	r := reduced(basis, bits)
	for _, w := range r {
		if w != 0 {
			return true
		}
	}
	return false
}

// reduced eliminates the basis vectors' pivots from bits. The basis is kept
// in echelon form keyed by each vector's lowest set bit.
func reduced(basis [][]uint64, bits []uint64) []uint64 {
	r := append([]uint64(nil), bits...)
	for _, b := range basis {
		p := lowestBit(b)
		if p >= 0 && r[p/64]&(1<<uint(p%64)) != 0 {
			for k := range r {
				r[k] ^= b[k]
			}
		}
	}
	return r
}

func lowestBit(bits []uint64) int {
	for k, w := range bits {
		if w == 0 {
			continue
		}
		for j := 0; j < 64; j++ {
			if w&(1<<uint(j)) != 0 {
				return k*64 + j
			}
		}
	}
	return -1
}

func bitsKey(bits []uint64) string {
	b := make([]byte, 0, len(bits)*8)
	for k := len(bits) - 1; k >= 0; k-- {
		w := bits[k]
		for j := 7; j >= 0; j-- {
			b = append(b, byte(w>>(uint(j)*8)))
		}
	}
	return string(b)
}

// IsInRing reports whether atom i belongs to a ring.
func (m *Molecule) IsInRing(i int) bool {
	return m.ringInfo().atomInRing[i]
}

// IsBondInRing reports whether bond bi belongs to a ring.
func (m *Molecule) IsBondInRing(bi int) bool {
	return m.ringInfo().bondInRing[bi]
}

// Rings returns the smallest set of smallest rings as atom index lists.
func (m *Molecule) Rings() [][]int {
	return m.ringInfo().rings
}

// NumFragments returns the number of disconnected components.
func (m *Molecule) NumFragments() int {
	return m.ringInfo().components
}

// bondRingSize returns the size of the smallest perceived ring holding bond
// bi, or 0.
func (m *Molecule) bondRingSize(bi int) int {
	ri := m.ringInfo()
	size := 0
	for k, bonds := range ri.ringBonds {
		for _, e := range bonds {
			if e == bi && (size == 0 || len(ri.rings[k]) < size) {
				size = len(ri.rings[k])
			}
		}
	}
	return size
}

// atomRingSize returns the size of the smallest perceived ring holding atom
// i, or 0.
func (m *Molecule) atomRingSize(i int) int {
	size := 0
	for _, r := range m.ringInfo().rings {
		for _, a := range r {
			if a == i && (size == 0 || len(r) < size) {
				size = len(r)
			}
		}
	}
	return size
}

// ringCount returns how many perceived rings hold atom i.
func (m *Molecule) ringCount(i int) int {
	n := 0
	for _, r := range m.ringInfo().rings {
		for _, a := range r {
			if a == i {
				n++
				break
			}
		}
	}
	return n
}

// inRingOfSize reports whether atom i lies on a perceived ring of the size.
func (m *Molecule) inRingOfSize(i, size int) bool {
	for _, r := range m.ringInfo().rings {
		if len(r) != size {
			continue
		}
		for _, a := range r {
			if a == i {
				return true
			}
		}
	}
	return false
}

//Personal.AI order the ending
