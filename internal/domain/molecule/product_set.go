package molecule

import "github.com/turtacn/FragSAR/pkg/chem"

// ProductSet collects unique product structures keyed by canonical SMILES,
// remembering the order in which keys were first seen.
type ProductSet struct {
	keys   []string
	values map[string]*chem.Molecule
}

// NewProductSet returns an empty set.
func NewProductSet() *ProductSet {
	return &ProductSet{values: make(map[string]*chem.Molecule)}
}

// Put stores m under key. An existing key keeps its position and has its
// structure replaced. It reports whether key was new.
func (s *ProductSet) Put(key string, m *chem.Molecule) bool {
	_, seen := s.values[key]
	if !seen {
		s.keys = append(s.keys, key)
	}
	s.values[key] = m
	return !seen
}

// Len returns the number of unique keys.
func (s *ProductSet) Len() int { return len(s.keys) }

// Keys returns the keys in insertion order.
func (s *ProductSet) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Values returns the stored structures in key insertion order.
func (s *ProductSet) Values() []*chem.Molecule {
	out := make([]*chem.Molecule, len(s.keys))
	for i, k := range s.keys {
		out[i] = s.values[k]
	}
	return out
}

// Get returns the structure stored under key.
func (s *ProductSet) Get(key string) (*chem.Molecule, bool) {
	m, ok := s.values[key]
	return m, ok
}

//Personal.AI order the ending
