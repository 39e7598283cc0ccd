package molecule

import (
	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
)

// Rule-of-five thresholds.
const (
	ro5MaxMolWt = 500
	ro5MaxLogP  = 5
	ro5MaxHBD   = 5
	ro5MaxHBA   = 10
)

// DescriptorRecord is the fixed descriptor set reported for one product.
type DescriptorRecord struct {
	SMILES string
	MolWt  float64
	CLogP  float64
	HBD    int
	HBA    int
	QED    float64
	RO5    int
}

// RuleOfFiveViolations counts how many Lipinski limits are exceeded.
func RuleOfFiveViolations(mw, clogp float64, hbd, hba int) int {
	n := 0
	if mw > ro5MaxMolWt {
		n++
	}
	if clogp > ro5MaxLogP {
		n++
	}
	if hbd > ro5MaxHBD {
		n++
	}
	if hba > ro5MaxHBA {
		n++
	}
	return n
}

// Describer extracts descriptor records through a Toolkit.
type Describer struct {
	tk Toolkit
}

// NewDescriber returns a Describer backed by tk.
func NewDescriber(tk Toolkit) *Describer {
	return &Describer{tk: tk}
}

// Describe computes the record for m. It has no side effects.
func (d *Describer) Describe(m *chem.Molecule) (DescriptorRecord, error) {
	smi, err := d.tk.CanonicalSMILES(m)
	if err != nil {
		return DescriptorRecord{}, errors.Wrap(err, errors.ErrCodeMoleculeConversionFailed, "canonical SMILES failed")
	}
	p, err := d.tk.Properties(m)
	if err != nil {
		return DescriptorRecord{}, errors.Wrap(err, errors.ErrCodePropertyCalculation, "descriptor calculation failed").
			WithDetail(smi)
	}
	return DescriptorRecord{
		SMILES: smi,
		MolWt:  p.MolWt,
		CLogP:  p.LogP,
		HBD:    p.HBD,
		HBA:    p.HBA,
		QED:    p.QED,
		RO5:    RuleOfFiveViolations(p.MolWt, p.LogP, p.HBD, p.HBA),
	}, nil
}

//Personal.AI order the ending
