package chem

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySMILES is returned for blank input.
	ErrEmptySMILES = errors.New("chem: empty SMILES")
	// ErrNoHydrogen is returned when a substitution site has no hydrogen left.
	ErrNoHydrogen = errors.New("chem: site has no hydrogen to replace")
	// ErrAtomIndex is returned for an out of range atom index.
	ErrAtomIndex = errors.New("chem: atom index out of range")
)

// SyntaxError reports malformed SMILES.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("chem: SMILES parse error at position %d in %q: %s", e.Pos, e.Input, e.Msg)
}

// ValenceError reports an atom whose bonds exceed what its element allows.
type ValenceError struct {
	Atom    int
	Symbol  string
	Charge  int
	Valence int
	Allowed int
}

func (e *ValenceError) Error() string {
	return fmt.Sprintf("chem: explicit valence for atom #%d %s (charge %d) is %d, greater than permitted %d",
		e.Atom, e.Symbol, e.Charge, e.Valence, e.Allowed)
}

// AromaticityError reports an aromatic flag on an atom or bond outside any
// ring.
type AromaticityError struct {
	Atom int
	Msg  string
}

func (e *AromaticityError) Error() string {
	return fmt.Sprintf("chem: atom #%d: %s", e.Atom, e.Msg)
}

// FragmentError reports a substituent definition without a usable
// attachment point.
type FragmentError struct {
	SMILES string
	Msg    string
}

func (e *FragmentError) Error() string {
	return fmt.Sprintf("chem: fragment %q: %s", e.SMILES, e.Msg)
}

//Personal.AI order the ending
