package molecule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
)

func newTable(t *testing.T) *FragmentTable {
	t.Helper()
	table, err := NewFragmentTable(chem.NewToolkit())
	require.NoError(t, err)
	return table
}

func TestNewFragmentTable_ParsesEveryDefinition(t *testing.T) {
	t.Parallel()

	table := newTable(t)
	assert.Equal(t, len(fragmentDefinitions), table.Len())
	assert.Equal(t, 31, table.Len())
	for _, e := range table.Entries() {
		require.NotNil(t, e.Fragment, e.Tag)
		assert.Equal(t, e.SMILES, e.Fragment.SMILES())
		assert.Equal(t, chem.BondSingle, e.Fragment.AttachmentOrder(), e.Tag)
	}
}

func TestFragmentTable_TagsInTableOrder(t *testing.T) {
	t.Parallel()

	tags := newTable(t).Tags()
	require.Len(t, tags, 31)
	assert.Equal(t, []string{"F", "Cl", "Br", "Me", "Et"}, tags[:5])
	assert.Equal(t, []string{"2-Pyr", "4-Pyr", "Imid", "Thiaz"}, tags[27:])
}

func TestFragmentTable_Lookup(t *testing.T) {
	t.Parallel()

	table := newTable(t)

	tests := []struct {
		name   string
		tag    string
		smiles string
	}{
		{"plain", "CF3", "*C(F)(F)F"},
		{"difluoromethyl", "CF2H", "*C(F)F"},
		{"ascii hyphen", "2-Pyr", "*c1ncccc1"},
		{"non-breaking hyphen", "2‑Pyr", "*c1ncccc1"},
		{"unicode hyphen", "4‐Pyr", "*c1ccncc1"},
		{"surrounding space", " Me ", "*C"},
		{"fullwidth digit", "２-Pyr", "*c1ncccc1"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d, err := table.Lookup(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.smiles, d.SMILES)
		})
	}
}

func TestFragmentTable_Lookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := newTable(t).Lookup("Xyz")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeFragmentNotFound))

	ae, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "Unknown group: Xyz", ae.Message)
}

func TestFragmentTable_Lookup_IsCaseSensitive(t *testing.T) {
	t.Parallel()

	_, err := newTable(t).Lookup("me")
	assert.Error(t, err)
}

func TestFragmentTable_Resolve(t *testing.T) {
	t.Parallel()

	table := newTable(t)

	all, err := table.Resolve(nil)
	require.NoError(t, err)
	assert.Len(t, all, table.Len())

	none, err := table.Resolve([]string{})
	require.NoError(t, err)
	assert.Empty(t, none)

	some, err := table.Resolve([]string{"OH", "F", "OH"})
	require.NoError(t, err)
	require.Len(t, some, 3)
	assert.Equal(t, "OH", some[0].Tag)
	assert.Equal(t, "F", some[1].Tag)

	_, err = table.Resolve([]string{"F", "nope"})
	assert.True(t, errors.IsCode(err, errors.ErrCodeFragmentNotFound))
}

func TestFragmentTable_EntriesIsACopy(t *testing.T) {
	t.Parallel()

	table := newTable(t)
	e := table.Entries()
	e[0] = nil
	assert.NotNil(t, table.Entries()[0])
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2-Pyr", NormalizeTag("2‑Pyr"))
	assert.Equal(t, "2-Pyr", NormalizeTag("2‐Pyr"))
	assert.Equal(t, "Me", NormalizeTag("\tMe\n"))
}

//Personal.AI order the ending
