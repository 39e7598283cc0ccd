package chem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSMARTS_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
	}{
		{"empty", ""},
		{"unterminated bracket", "[CH2"},
		{"unclosed ring", "C1CC"},
		{"unbalanced branch", "C(C"},
		{"dangling bond", "CC="},
		{"empty bracket", "[]"},
		{"hash without number", "[#]"},
		{"unterminated recursion", "[$(CC]"},
		{"unknown primitive", "[Q]"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := CompileSMARTS(tt.pattern)
			assert.Error(t, err)
			assert.Nil(t, p)
		})
	}
}

func TestPattern_HasMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		smiles  string
		want    bool
	}{
		{"aliphatic carbon", "C", "CCO", true},
		{"aliphatic excludes aromatic", "C", "c1ccccc1", false},
		{"aromatic carbon", "c", "c1ccccc1", true},
		{"any atom", "*", "O", true},
		{"atomic number", "[#8]", "CCO", true},
		{"two letter element", "[Cl]", "CCl", true},
		{"calcium not aromatic carbon", "[Ca]", "c1ccccc1", false},
		{"hydrogen count", "[CH3]", "CCO", true},
		{"hydrogen count miss", "[CH4]", "CCO", false},
		{"degree", "[CD3]", "CC(C)C", true},
		{"connectivity", "[OX2]", "CCO", true},
		{"valence", "[NX1;v3]", "CC#N", true},
		{"ring membership", "[CR]", "C1CCCCC1", true},
		{"not in ring", "[C;!R]", "C1CCCCC1", false},
		{"ring count", "[cR2]", "c1ccc2ccccc2c1", true},
		{"ring size", "[C;r6]", "C1CCCCC1", true},
		{"ring size miss", "[C;r5]", "C1CCCCC1", false},
		{"charge", "[N+]", "C[NH3+]", true},
		{"neutral", "[N+0]", "C[NH3+]", false},
		{"negative", "[O-]", "CC(=O)[O-]", true},
		{"isotope", "[13C]", "[13CH4]", true},
		{"isotope miss", "[13C]", "C", false},
		{"or list", "[F,Cl,Br,I]", "CBr", true},
		{"low precedence and", "[C,N;H2]", "CCN", true},
		{"recursive", "[$(C=O)]", "CC=O", true},
		{"negated recursive", "[N;!$(NC=O)]", "CC(N)=O", false},
		{"double bond", "C=O", "CC=O", true},
		{"single excludes aromatic", "c-c", "c1ccccc1", false},
		{"default bond takes aromatic", "cc", "c1ccccc1", true},
		{"aromatic bond", "c:c", "c1ccccc1", true},
		{"any bond", "C~O", "CC=O", true},
		{"ring bond", "C@C", "C1CCCCC1", true},
		{"non ring bond", "C!@C", "C1CCCCC1", false},
		{"ring closure", "C1CCCCC1", "C1CCCCC1", true},
		{"smaller ring than pattern", "C1CCCCC1", "C1CCCC1", false},
		{"branch", "CC(=O)O", "CC(=O)OC", true},
		{"disconnected", "F.F", "FCCF", true},
		{"disconnected needs distinct atoms", "F.F", "CF", false},
		{"aromatic pyridine nitrogen", "[nH0;X2]", "c1ccncc1", true},
		{"pyrrole nitrogen has hydrogen", "[nH0;X2]", "c1cc[nH]c1", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := CompileSMARTS(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.HasMatch(MustParseSMILES(tt.smiles)))
		})
	}
}

func TestPattern_CountMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		smiles  string
		want    int
	}{
		{"[OX1]", "OC(=O)CC(=O)O", 2},
		{"C=O", "OC(=O)CC(=O)O", 2},
		{"c", "c1ccccc1", 6},
		{"cc", "c1ccccc1", 6},
		{"[#9]", "C", 0},
	}
	for _, tt := range tests {
		p := MustCompileSMARTS(tt.pattern)
		assert.Equal(t, tt.want, p.CountMatches(MustParseSMILES(tt.smiles)), "%s in %s", tt.pattern, tt.smiles)
	}
}

func TestPattern_MatchesAt(t *testing.T) {
	t.Parallel()

	p := MustCompileSMARTS("[$([N;+0;X3;v3]);!$(N[C,S]=O)]")
	amine := MustParseSMILES("NCC(N)=O")
	assert.True(t, p.MatchesAt(amine, 0))
	assert.False(t, p.MatchesAt(amine, 3))
	assert.Equal(t, "[$([N;+0;X3;v3]);!$(N[C,S]=O)]", p.String())
}

func TestSmartsValence_CountsKekuleForm(t *testing.T) {
	t.Parallel()

	pyrrole := MustParseSMILES("c1cc[nH]c1")
	assert.Equal(t, 3, pyrrole.smartsValence(3))
	assert.Equal(t, 4, pyrrole.smartsValence(0))

	pyridine := MustParseSMILES("n1ccccc1")
	assert.Equal(t, 3, pyridine.smartsValence(0))
}

//Personal.AI order the ending
