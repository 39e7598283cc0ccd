package molecule

import (
	"github.com/turtacn/FragSAR/pkg/chem"
)

// Toolkit is the chemistry capability the enumeration depends on. The
// domain never inspects a structure directly; every parse, edit, check and
// measurement goes through this interface.
type Toolkit interface {
	// ParseSMILES parses and sanitizes a structure.
	ParseSMILES(smiles string) (*chem.Molecule, error)

	// ParseFragment parses a substituent carrying one "*" attachment point.
	ParseFragment(smiles string) (*chem.Fragment, error)

	// ReplaceHydrogen replaces one hydrogen on atom site with frag and
	// returns the candidate structures. Candidates are not sanitized and the
	// parent is never modified.
	ReplaceHydrogen(parent *chem.Molecule, site int, frag *chem.Fragment) ([]*chem.Molecule, error)

	// Sanitize validates a candidate in place.
	Sanitize(m *chem.Molecule) error

	// CanonicalSMILES returns the stereo-aware canonical string of m.
	CanonicalSMILES(m *chem.Molecule) (string, error)

	// Properties computes the descriptor set of m.
	Properties(m *chem.Molecule) (chem.Properties, error)
}

var _ Toolkit = (*chem.Toolkit)(nil)

//Personal.AI order the ending
