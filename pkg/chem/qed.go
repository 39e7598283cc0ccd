package chem

import "math"

// adsParams are the asymmetric double sigmoid coefficients of one QED
// property (Bickerton et al., Nature Chemistry 2012).
type adsParams struct {
	A, B, C, D, E, F, DMax float64
}

var (
	qedMW     = adsParams{2.817065973, 392.5754953, 290.7489764, 2.419764353, 49.22325677, 65.37051707, 104.9805561}
	qedALogP  = adsParams{3.172690585, 137.8624751, 2.534937431, 4.581497897, 0.822739154, 0.576295591, 131.3186604}
	qedHBA    = adsParams{2.948620388, 160.4605972, 3.615294657, 4.435986202, 0.290141953, 1.300669958, 148.7763046}
	qedHBD    = adsParams{1.618662227, 1010.051101, 0.985094388, 0.000000001, 0.713820843, 0.920922555, 258.1632616}
	qedPSA    = adsParams{1.876861559, 125.2232657, 62.90773554, 87.83366614, 12.01999824, 28.51324732, 104.5686167}
	qedROTB   = adsParams{0.010000000, 272.4121427, 2.558379970, 1.565547684, 1.271567166, 2.758063707, 105.4420403}
	qedAROM   = adsParams{3.217788970, 957.7374108, 2.274627939, 0.000000001, 1.317690384, 0.375760881, 312.3372610}
	qedALERTS = adsParams{0.010000000, 1199.094025, -0.09002883, 0.000000001, 0.185904477, 0.875193782, 417.7253140}
)

// QED mean weights in the order MW, ALOGP, HBA, HBD, PSA, ROTB, AROM, ALERTS.
var qedWeights = [8]float64{0.66, 0.46, 0.05, 0.61, 0.06, 0.65, 0.48, 0.95}

// ads evaluates the desirability of x, normalised to [0, 1].
func ads(x float64, p adsParams) float64 {
	exp1 := 1 + math.Exp(-1*(x-p.C+p.D/2)/p.E)
	exp2 := 1 + math.Exp(-1*(x-p.C-p.D/2)/p.F)
	dx := p.A + p.B/exp1*(1-1/exp2)
	return dx / p.DMax
}

// QED returns the weighted quantitative estimate of drug-likeness of m.
func QED(m *Molecule) float64 {
	return ComputeProperties(m).QED
}

func qedFromProperties(p Properties) float64 {
	d := [8]float64{
		ads(p.MolWt, qedMW),
		ads(p.LogP, qedALogP),
		ads(float64(p.QEDAcceptors), qedHBA),
		ads(float64(p.HBD), qedHBD),
		ads(p.TPSA, qedPSA),
		ads(float64(p.RotatableBonds), qedROTB),
		ads(float64(p.AromaticRings), qedAROM),
		ads(float64(p.Alerts), qedALERTS),
	}
	sumW, sum := 0.0, 0.0
	for k, w := range qedWeights {
		v := d[k]
		if v < 1e-9 {
			v = 1e-9
		}
		sum += w * math.Log(v)
		sumW += w
	}
	q := math.Exp(sum / sumW)
	switch {
	case q < 0:
		return 0
	case q > 1:
		return 1
	}
	return q
}

//Personal.AI order the ending
