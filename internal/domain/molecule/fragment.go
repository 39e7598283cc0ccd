package molecule

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
)

// fragmentDefinitions is the fixed substituent library in table order. Each
// definition carries exactly one "*" attachment point.
var fragmentDefinitions = []struct {
	tag    string
	smiles string
}{
	{"F", "*F"},
	{"Cl", "*Cl"},
	{"Br", "*Br"},
	{"Me", "*C"},
	{"Et", "*CC"},
	{"iPr", "*C(C)C"},
	{"tBu", "*C(C)(C)C"},
	{"CF3", "*C(F)(F)F"},
	{"OCF3", "*OC(F)(F)F"},
	{"OH", "*O"},
	{"OMe", "*OC"},
	{"OEt", "*OCC"},
	{"CF2H", "*C(F)F"},
	{"NH2", "*N"},
	{"NMe2", "*N(C)C"},
	{"CONH2", "*C(=O)N"},
	{"SO2NH2", "*S(=O)(=O)N"},
	{"Acryl", "*C(=O)C=C"},
	{"ClAc", "*C(=O)CCl"},
	{"SulfonylF", "*S(=O)(=O)F"},
	{"Boro", "*B(O)O"},
	{"Isothio", "*N=C=S"},
	{"Ald", "*C=O"},
	{"Azide", "*N=[N+]=[N-]"},
	{"Alkyne", "*C#C"},
	{"Diazirine", "*C1N=N1"},
	{"Norborn", "*C1CCCC2CC1C2"},
	{"2-Pyr", "*c1ncccc1"},
	{"4-Pyr", "*c1ccncc1"},
	{"Imid", "*c1ncc[nH]1"},
	{"Thiaz", "*c1nccs1"},
}

// FragmentDefinition is one parsed entry of the fragment table.
type FragmentDefinition struct {
	Tag      string
	SMILES   string
	Fragment *chem.Fragment
}

// FragmentTable is the immutable, ordered tag → fragment map. It is safe
// for concurrent use.
type FragmentTable struct {
	entries []*FragmentDefinition
	index   map[string]int
}

// NewFragmentTable parses the built-in fragment library. A definition that
// fails to parse is a programming error and is reported as FRAG_002.
func NewFragmentTable(tk Toolkit) (*FragmentTable, error) {
	t := &FragmentTable{
		entries: make([]*FragmentDefinition, 0, len(fragmentDefinitions)),
		index:   make(map[string]int, len(fragmentDefinitions)),
	}
	for _, d := range fragmentDefinitions {
		f, err := tk.ParseFragment(d.smiles)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeFragmentInvalid, "invalid fragment definition").
				WithDetail(fmt.Sprintf("%s %s", d.tag, d.smiles))
		}
		t.index[d.tag] = len(t.entries)
		t.entries = append(t.entries, &FragmentDefinition{Tag: d.tag, SMILES: d.smiles, Fragment: f})
	}
	return t, nil
}

// NormalizeTag folds compatibility characters and typographic hyphens so
// that "2‑Pyr" (U+2011) finds "2-Pyr".
func NormalizeTag(tag string) string {
	tag = norm.NFKC.String(strings.TrimSpace(tag))
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u2010', '\u2011', '\u2012', '\u2013', '\u2212':
			return '-'
		}
		return r
	}, tag)
}

// Lookup resolves tag to its definition.
func (t *FragmentTable) Lookup(tag string) (*FragmentDefinition, error) {
	i, ok := t.index[NormalizeTag(tag)]
	if !ok {
		return nil, errors.New(errors.ErrCodeFragmentNotFound, "Unknown group: "+tag)
	}
	return t.entries[i], nil
}

// Resolve looks up every tag in order. A nil slice selects the whole table;
// an empty non-nil slice selects nothing.
func (t *FragmentTable) Resolve(tags []string) ([]*FragmentDefinition, error) {
	if tags == nil {
		return t.Entries(), nil
	}
	out := make([]*FragmentDefinition, 0, len(tags))
	for _, tag := range tags {
		d, err := t.Lookup(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Tags returns every tag in table order.
func (t *FragmentTable) Tags() []string {
	tags := make([]string, len(t.entries))
	for i, e := range t.entries {
		tags[i] = e.Tag
	}
	return tags
}

// Entries returns a copy of the table in order.
func (t *FragmentTable) Entries() []*FragmentDefinition {
	out := make([]*FragmentDefinition, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *FragmentTable) Len() int { return len(t.entries) }

//Personal.AI order the ending
