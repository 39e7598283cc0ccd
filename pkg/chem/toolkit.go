package chem

// Toolkit exposes the package functions as methods so callers can depend on
// an interface and substitute a test double.
type Toolkit struct{}

// NewToolkit returns the default toolkit.
func NewToolkit() *Toolkit {
	return &Toolkit{}
}

// ParseSMILES parses and sanitizes a molecule.
func (t *Toolkit) ParseSMILES(s string) (*Molecule, error) {
	return ParseSMILES(s)
}

// ParseFragment parses a substituent with one attachment point.
func (t *Toolkit) ParseFragment(s string) (*Fragment, error) {
	return ParseFragment(s)
}

// ReplaceHydrogen grafts frag onto site. It yields one product per call; the
// slice form leaves room for toolkits that return several regio-variants.
func (t *Toolkit) ReplaceHydrogen(parent *Molecule, site int, frag *Fragment) ([]*Molecule, error) {
	p, err := ReplaceHydrogen(parent, site, frag)
	if err != nil {
		return nil, err
	}
	return []*Molecule{p}, nil
}

// Sanitize validates and normalises m in place.
func (t *Toolkit) Sanitize(m *Molecule) error {
	return Sanitize(m)
}

// CanonicalSMILES writes the canonical form of m.
func (t *Toolkit) CanonicalSMILES(m *Molecule) (string, error) {
	return m.CanonicalSMILES(), nil
}

// Properties computes every descriptor of m.
func (t *Toolkit) Properties(m *Molecule) (Properties, error) {
	return ComputeProperties(m), nil
}

//Personal.AI order the ending
