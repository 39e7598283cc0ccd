package molecule

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
)

func TestRuleOfFiveViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mw    float64
		clogp float64
		hbd   int
		hba   int
		want  int
	}{
		{"none", 300, 2, 1, 3, 0},
		{"at the limits", 500, 5, 5, 10, 0},
		{"heavy", 500.01, 2, 1, 3, 1},
		{"greasy", 300, 5.2, 1, 3, 1},
		{"donors", 300, 2, 6, 3, 1},
		{"acceptors", 300, 2, 1, 11, 1},
		{"all four", 900, 8, 7, 14, 4},
		{"two", 650, 1, 2, 12, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RuleOfFiveViolations(tt.mw, tt.clogp, tt.hbd, tt.hba), tt.name)
	}
}

func TestDescriber_Describe(t *testing.T) {
	t.Parallel()

	d := NewDescriber(chem.NewToolkit())
	rec, err := d.Describe(chem.MustParseSMILES("CC(=O)Nc1ccc(O)cc1"))
	require.NoError(t, err)

	assert.Equal(t, chem.MustParseSMILES("c1cc(O)ccc1NC(C)=O").CanonicalSMILES(), rec.SMILES)
	assert.InDelta(t, 151.165, rec.MolWt, 0.01)
	assert.Equal(t, 2, rec.HBD)
	assert.Equal(t, 2, rec.HBA)
	assert.Equal(t, 0, rec.RO5)
	assert.Greater(t, rec.QED, 0.0)
	assert.LessOrEqual(t, rec.QED, 1.0)
}

func TestDescriber_Benzene(t *testing.T) {
	t.Parallel()

	rec, err := NewDescriber(chem.NewToolkit()).Describe(chem.MustParseSMILES("C1=CC=CC=C1"))
	require.NoError(t, err)
	assert.Equal(t, chem.MustParseSMILES("c1ccccc1").CanonicalSMILES(), rec.SMILES)
	assert.InDelta(t, 1.6866, rec.CLogP, 0.002)
	assert.InDelta(t, 78.114, rec.MolWt, 0.01)
}

func TestDescriber_PropagatesToolkitErrors(t *testing.T) {
	t.Parallel()

	m := chem.MustParseSMILES("C")

	tk := new(mockToolkit)
	tk.On("CanonicalSMILES", m).Return("", stderrors.New("boom")).Once()
	_, err := NewDescriber(tk).Describe(m)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMoleculeConversionFailed))

	tk2 := new(mockToolkit)
	tk2.On("CanonicalSMILES", m).Return("C", nil)
	tk2.On("Properties", m).Return(chem.Properties{}, stderrors.New("bad"))
	_, err = NewDescriber(tk2).Describe(m)
	assert.True(t, errors.IsCode(err, errors.ErrCodePropertyCalculation))

	tk.AssertExpectations(t)
	tk2.AssertExpectations(t)
}

//Personal.AI order the ending
