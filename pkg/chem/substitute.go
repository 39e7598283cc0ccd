package chem

import "fmt"

// Fragment is a substituent written with a single "*" attachment point, e.g.
// "*C(F)(F)F". The atom bonded to "*" becomes bonded to the substitution
// site.
type Fragment struct {
	smiles string
	mol    *Molecule
	dummy  int
	attach int
	order  BondOrder
}

// ParseFragment parses and validates a substituent definition.
func ParseFragment(s string) (*Fragment, error) {
	m, err := ParseSMILES(s)
	if err != nil {
		return nil, err
	}
	f := &Fragment{smiles: s, mol: m, dummy: -1}
	for i, a := range m.Atoms {
		if !a.IsDummy() {
			continue
		}
		if f.dummy >= 0 {
			return nil, &FragmentError{SMILES: s, Msg: "more than one attachment point"}
		}
		f.dummy = i
	}
	if f.dummy < 0 {
		return nil, &FragmentError{SMILES: s, Msg: "no attachment point"}
	}
	if m.Degree(f.dummy) != 1 {
		return nil, &FragmentError{SMILES: s, Msg: "attachment point must have exactly one neighbour"}
	}
	b := m.Bonds[m.adj[f.dummy][0]]
	f.attach = b.Other(f.dummy)
	f.order = b.Order
	if f.order == BondAromatic {
		return nil, &FragmentError{SMILES: s, Msg: "aromatic attachment bond"}
	}
	return f, nil
}

// SMILES returns the definition the fragment was parsed from.
func (f *Fragment) SMILES() string { return f.smiles }

// NumAtoms returns the number of fragment atoms excluding the attachment
// point.
func (f *Fragment) NumAtoms() int { return len(f.mol.Atoms) - 1 }

// AttachmentOrder returns the order of the bond formed with the site.
func (f *Fragment) AttachmentOrder() BondOrder { return f.order }

// ReplaceHydrogen returns a copy of parent in which one hydrogen on atom site
// is replaced by frag. Neither input is modified. The product is not
// sanitized.
func ReplaceHydrogen(parent *Molecule, site int, frag *Fragment) (*Molecule, error) {
	if site < 0 || site >= len(parent.Atoms) {
		return nil, fmt.Errorf("%w: %d", ErrAtomIndex, site)
	}
	need := frag.order.valence()
	if parent.Atoms[site].Hs < need {
		return nil, ErrNoHydrogen
	}

	p := parent.Clone()
	base := len(p.Atoms)
	remap := make([]int, len(frag.mol.Atoms))
	next := base
	for i := range frag.mol.Atoms {
		if i == frag.dummy {
			remap[i] = site
			continue
		}
		remap[i] = next
		next++
	}
	for i, a := range frag.mol.Atoms {
		if i == frag.dummy {
			continue
		}
		c := a.clone()
		for k, r := range c.refs {
			if r >= 0 {
				c.refs[k] = remap[r]
			}
		}
		p.addAtom(c)
	}
	for _, b := range frag.mol.Bonds {
		if b.Begin == frag.dummy || b.End == frag.dummy {
			continue
		}
		bi, err := p.addBond(remap[b.Begin], remap[b.End], b.Order, false)
		if err != nil {
			return nil, err
		}
		if b.Stereo != StereoNone {
			nb := p.Bonds[bi]
			nb.Stereo = b.Stereo
			for k, r := range b.StereoAtoms {
				if r >= 0 {
					r = remap[r]
				}
				nb.StereoAtoms[k] = r
			}
		}
	}
	attach := remap[frag.attach]
	if _, err := p.addBond(site, attach, frag.order, false); err != nil {
		return nil, err
	}

	s := p.Atoms[site]
	s.Hs -= need
	replaced := false
	for k, r := range s.refs {
		if r == hydrogenRef {
			s.refs[k] = attach
			replaced = true
			break
		}
	}
	if !replaced {
		s.refs = append(s.refs, attach)
	}
	// the new substituent takes the place of the hydrogen a double bond's
	// geometry was read against
	for _, b := range p.Bonds[:len(parent.Bonds)] {
		if b.Stereo == StereoNone {
			continue
		}
		if b.Begin == site && b.StereoAtoms[0] == hydrogenRef {
			b.StereoAtoms[0] = attach
		}
		if b.End == site && b.StereoAtoms[1] == hydrogenRef {
			b.StereoAtoms[1] = attach
		}
	}
	return p, nil
}

//Personal.AI order the ending
