package molecule

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/internal/testutil"
	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
)

// mockToolkit is a testify mock of Toolkit.
type mockToolkit struct {
	mock.Mock
}

func (m *mockToolkit) ParseSMILES(s string) (*chem.Molecule, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chem.Molecule), args.Error(1)
}

func (m *mockToolkit) ParseFragment(s string) (*chem.Fragment, error) {
	args := m.Called(s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chem.Fragment), args.Error(1)
}

func (m *mockToolkit) ReplaceHydrogen(parent *chem.Molecule, site int, frag *chem.Fragment) ([]*chem.Molecule, error) {
	args := m.Called(parent, site, frag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chem.Molecule), args.Error(1)
}

func (m *mockToolkit) Sanitize(mol *chem.Molecule) error {
	args := m.Called(mol)
	return args.Error(0)
}

func (m *mockToolkit) CanonicalSMILES(mol *chem.Molecule) (string, error) {
	args := m.Called(mol)
	return args.String(0), args.Error(1)
}

func (m *mockToolkit) Properties(mol *chem.Molecule) (chem.Properties, error) {
	args := m.Called(mol)
	return args.Get(0).(chem.Properties), args.Error(1)
}

func fragmentDef(t *testing.T, tag, smiles string) *FragmentDefinition {
	t.Helper()
	f, err := chem.ParseFragment(smiles)
	require.NoError(t, err)
	return &FragmentDefinition{Tag: tag, SMILES: smiles, Fragment: f}
}

func canon(s string) string {
	return chem.MustParseSMILES(s).CanonicalSMILES()
}

func newRealEnumerator() *Enumerator {
	return NewEnumerator(chem.NewToolkit(), logging.NewNopLogger())
}

// ─────────────────────────────────────────────────────────────────────────────
// Against the real toolkit
// ─────────────────────────────────────────────────────────────────────────────

func TestEnumerate_BenzeneAllGroups(t *testing.T) {
	t.Parallel()

	table := newTable(t)
	set, st, err := newRealEnumerator().Enumerate(context.Background(), chem.MustParseSMILES("c1ccccc1"), table.Entries(), 200)
	require.NoError(t, err)

	// every ring position is equivalent, so only the first site contributes
	assert.Equal(t, table.Len(), set.Len())
	assert.Equal(t, 6, st.Sites)
	assert.Equal(t, 6*table.Len(), st.Attempts)
	assert.Equal(t, 5*table.Len(), st.Duplicates)
	assert.Equal(t, 0, st.Rejected)
	assert.False(t, st.LimitReached)

	keys := set.Keys()
	assert.Equal(t, canon("Fc1ccccc1"), keys[0])
	assert.Equal(t, canon("Clc1ccccc1"), keys[1])
	assert.Equal(t, canon("Cc1ccccc1"), keys[3])
	assert.Equal(t, canon("c1ccccc1-c1ccccn1"), keys[27])
}

func TestEnumerate_Toluene(t *testing.T) {
	t.Parallel()

	set, st, err := newRealEnumerator().Enumerate(context.Background(),
		chem.MustParseSMILES("Cc1ccccc1"), []*FragmentDefinition{fragmentDef(t, "F", "*F")}, 200)
	require.NoError(t, err)

	assert.Equal(t, []string{
		canon("FCc1ccccc1"),
		canon("Cc1ccccc1F"),
		canon("Cc1cccc(F)c1"),
		canon("Cc1ccc(F)cc1"),
	}, set.Keys())
	assert.Equal(t, 6, st.Sites)
	assert.Equal(t, 2, st.Duplicates)
}

func TestEnumerate_LimitKeepsDeterministicPrefix(t *testing.T) {
	t.Parallel()

	table := newTable(t)
	parent := chem.MustParseSMILES("c1ccccc1")

	set, st, err := newRealEnumerator().Enumerate(context.Background(), parent, table.Entries(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, set.Len())
	assert.True(t, st.LimitReached)
	assert.Equal(t, 1, st.Sites)
	assert.Equal(t, 5, st.Attempts)
	assert.Equal(t, []string{
		canon("Fc1ccccc1"), canon("Clc1ccccc1"), canon("Brc1ccccc1"), canon("Cc1ccccc1"), canon("CCc1ccccc1"),
	}, set.Keys())

	again, _, err := newRealEnumerator().Enumerate(context.Background(), parent, table.Entries(), 5)
	require.NoError(t, err)
	assert.Equal(t, set.Keys(), again.Keys())
}

func TestEnumerate_LimitNeverExceeded(t *testing.T) {
	t.Parallel()

	table := newTable(t)
	parent := chem.MustParseSMILES("CC(=O)Nc1ccc(O)cc1")
	for _, limit := range []int{1, 2, 7, 31, 50, 64} {
		set, _, err := newRealEnumerator().Enumerate(context.Background(), parent, table.Entries(), limit)
		require.NoError(t, err)
		assert.LessOrEqual(t, set.Len(), limit)
	}
}

func TestEnumerate_NoDuplicateKeys(t *testing.T) {
	t.Parallel()

	table := newTable(t)
	set, _, err := newRealEnumerator().Enumerate(context.Background(),
		chem.MustParseSMILES("Oc1ccc(Cl)cc1"), table.Entries(), 10000)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, k := range set.Keys() {
		assert.False(t, seen[k], k)
		seen[k] = true
	}
}

func TestEnumerate_SingleSite(t *testing.T) {
	t.Parallel()

	set, st, err := newRealEnumerator().Enumerate(context.Background(),
		chem.MustParseSMILES("C"), []*FragmentDefinition{fragmentDef(t, "Me", "*C")}, 200)
	require.NoError(t, err)
	assert.Equal(t, []string{canon("CC")}, set.Keys())
	assert.Equal(t, 1, st.Sites)
}

func TestEnumerate_NoHydrogenSites(t *testing.T) {
	t.Parallel()

	set, st, err := newRealEnumerator().Enumerate(context.Background(),
		chem.MustParseSMILES("FC(F)(F)F"), newTable(t).Entries(), 200)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, st.Sites)
}

func TestEnumerate_NoFragments(t *testing.T) {
	t.Parallel()

	set, st, err := newRealEnumerator().Enumerate(context.Background(),
		chem.MustParseSMILES("c1ccccc1"), []*FragmentDefinition{}, 200)
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, st.Attempts)
}

func TestEnumerate_ParentIsNotModified(t *testing.T) {
	t.Parallel()

	parent := chem.MustParseSMILES("Cc1ccccc1")
	before := parent.CanonicalSMILES()
	_, _, err := newRealEnumerator().Enumerate(context.Background(), parent, newTable(t).Entries(), 200)
	require.NoError(t, err)
	assert.Equal(t, before, parent.CanonicalSMILES())
	assert.Equal(t, 7, parent.NumAtoms())
}

func TestEnumerate_InvalidArguments(t *testing.T) {
	t.Parallel()

	e := newRealEnumerator()
	_, _, err := e.Enumerate(context.Background(), chem.MustParseSMILES("C"), nil, 0)
	assert.True(t, errors.IsCode(err, errors.ErrCodeEnumerationLimitInvalid))

	_, _, err = e.Enumerate(context.Background(), nil, nil, 10)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))
}

func TestEnumerate_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := newRealEnumerator().Enumerate(ctx, chem.MustParseSMILES("CCO"), newTable(t).Entries(), 200)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCanceled))
	assert.ErrorIs(t, err, context.Canceled)
}

// ─────────────────────────────────────────────────────────────────────────────
// Against a mocked toolkit
// ─────────────────────────────────────────────────────────────────────────────

func TestEnumerate_DuplicateOverwritesButKeepsPosition(t *testing.T) {
	t.Parallel()

	parent := chem.MustParseSMILES("CC")
	fa := fragmentDef(t, "A", "*C")
	fb := fragmentDef(t, "B", "*O")
	m1, m2, m3, m4 := chem.MustParseSMILES("CCC"), chem.MustParseSMILES("CCO"), chem.MustParseSMILES("CCN"), chem.MustParseSMILES("CCF")

	tk := new(mockToolkit)
	tk.On("ReplaceHydrogen", parent, 0, fa.Fragment).Return([]*chem.Molecule{m1}, nil)
	tk.On("ReplaceHydrogen", parent, 0, fb.Fragment).Return([]*chem.Molecule{m2}, nil)
	tk.On("ReplaceHydrogen", parent, 1, fa.Fragment).Return([]*chem.Molecule{m3}, nil)
	tk.On("ReplaceHydrogen", parent, 1, fb.Fragment).Return([]*chem.Molecule{m4}, nil)
	tk.On("Sanitize", mock.Anything).Return(nil)
	tk.On("CanonicalSMILES", m1).Return("x", nil)
	tk.On("CanonicalSMILES", m2).Return("y", nil)
	tk.On("CanonicalSMILES", m3).Return("x", nil)
	tk.On("CanonicalSMILES", m4).Return("z", nil)

	set, st, err := NewEnumerator(tk, nil).Enumerate(context.Background(), parent, []*FragmentDefinition{fa, fb}, 200)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, set.Keys())
	got, _ := set.Get("x")
	assert.Same(t, m3, got)
	assert.Equal(t, 1, st.Duplicates)
	assert.Equal(t, 4, st.Candidates)
	tk.AssertExpectations(t)
}

func TestEnumerate_SanitizeFailuresAreSkipped(t *testing.T) {
	t.Parallel()

	parent := chem.MustParseSMILES("C")
	fa := fragmentDef(t, "A", "*C")
	good, bad := chem.MustParseSMILES("CC"), chem.MustParseSMILES("CO")

	tk := new(mockToolkit)
	tk.On("ReplaceHydrogen", parent, 0, fa.Fragment).Return([]*chem.Molecule{bad, good}, nil)
	tk.On("Sanitize", bad).Return(stderrors.New("valence"))
	tk.On("Sanitize", good).Return(nil)
	tk.On("CanonicalSMILES", good).Return("CC", nil)

	logger := testutil.NewMockLogger()
	set, st, err := NewEnumerator(tk, logger).Enumerate(context.Background(), parent, []*FragmentDefinition{fa}, 200)
	require.NoError(t, err)
	assert.Equal(t, []string{"CC"}, set.Keys())
	assert.Equal(t, 1, st.Rejected)
	tk.AssertNotCalled(t, "CanonicalSMILES", bad)

	msg, ok := logger.Find("debug", "candidate rejected")
	require.True(t, ok)
	v, _ := msg.Field("error")
	assert.Contains(t, v, string(errors.ErrCodeMoleculeSanitizeFailed))
	assert.Contains(t, v, "valence")
}

func TestEnumerate_LimitStopsWithinCandidates(t *testing.T) {
	t.Parallel()

	parent := chem.MustParseSMILES("C")
	fa := fragmentDef(t, "A", "*C")
	fb := fragmentDef(t, "B", "*O")
	m1, m2 := chem.MustParseSMILES("CC"), chem.MustParseSMILES("CO")

	tk := new(mockToolkit)
	tk.On("ReplaceHydrogen", parent, 0, fa.Fragment).Return([]*chem.Molecule{m1, m2}, nil)
	tk.On("Sanitize", mock.Anything).Return(nil)
	tk.On("CanonicalSMILES", m1).Return("a", nil)

	set, st, err := NewEnumerator(tk, nil).Enumerate(context.Background(), parent, []*FragmentDefinition{fa, fb}, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, set.Keys())
	assert.True(t, st.LimitReached)
	tk.AssertNotCalled(t, "ReplaceHydrogen", parent, 0, fb.Fragment)
	tk.AssertNotCalled(t, "CanonicalSMILES", m2)
}

func TestEnumerate_SubstitutionErrorPropagates(t *testing.T) {
	t.Parallel()

	parent := chem.MustParseSMILES("C")
	fa := fragmentDef(t, "A", "*C")

	tk := new(mockToolkit)
	tk.On("ReplaceHydrogen", parent, 0, fa.Fragment).Return(nil, stderrors.New("graft failed"))

	set, _, err := NewEnumerator(tk, nil).Enumerate(context.Background(), parent, []*FragmentDefinition{fa}, 200)
	require.Error(t, err)
	assert.Nil(t, set)
	assert.True(t, errors.IsCode(err, errors.ErrCodeSubstitutionFailed))
	assert.Contains(t, err.Error(), "group=A")
}

//Personal.AI order the ending
