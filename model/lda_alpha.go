package model

import "gonum.org/v1/gonum/mathext"

// UpdateAlpha performs one step of Minka's fixed-point update for an
// asymmetric document-topic Dirichlet prior (spec.md §4.3). Intended to
// be called once per sweep after burn-in, only when Asymmetric is set.
func (e *LdaEngine) UpdateAlpha() {
	sumAlpha := 0.0
	for _, a := range e.AlphaZ {
		sumAlpha += a
	}

	den := 0.0
	for m := 0; m < e.train.M; m++ {
		den += mathext.Digamma(float64(e.train.NM[m])+sumAlpha) - mathext.Digamma(sumAlpha)
	}

	for z := 0; z < e.K; z++ {
		numZ := 0.0
		for m := 0; m < e.train.M; m++ {
			numZ += mathext.Digamma(float64(e.NMZ[m][z])+e.AlphaZ[z]) - mathext.Digamma(e.AlphaZ[z])
		}
		if den != 0 {
			e.AlphaZ[z] = e.AlphaZ[z] * numZ / den
		}
	}
}
