package model

import "math"

// updateAlpha resamples alpha via the Escobar-West auxiliary-variable
// scheme, 20 inner iterations per outer sweep (spec.md §4.4.4).
func (e *HdpLdaEngine) updateAlpha() {
	for step := 0; step < 20; step++ {
		sumLogW := 0.0
		sumS := 0.0
		for j := 0; j < e.train.M; j++ {
			w := Beta(e.rng, e.Alpha+1, float64(e.train.NM[j]))
			sumLogW += math.Log(w)

			p := float64(e.train.NM[j]) / (float64(e.train.NM[j]) + e.Alpha)
			if e.rng.Float64() < p {
				sumS += 1
			}
		}
		shape := e.AlphaA + float64(e.liveTables) - sumS
		scale := 1.0 / (e.AlphaB - sumLogW)
		e.Alpha = Gamma(e.rng, shape, scale)
	}
}

// updateGamma resamples gamma via the Teh et al. auxiliary-variable
// scheme, one step per outer sweep (spec.md §4.4.4).
func (e *HdpLdaEngine) updateGamma() {
	eta := Beta(e.rng, e.Gamma+1, float64(e.liveTables))

	k := e.LiveTopicCount()
	m := float64(e.liveTables)
	logEta := math.Log(eta)
	pi := (e.GammaA + float64(k) - 1) / ((e.GammaA + float64(k) - 1) + m*(e.GammaB-logEta))

	scale := 1.0 / (e.GammaB - logEta)
	g1 := Gamma(e.rng, e.GammaA+float64(k), scale)
	g2 := Gamma(e.rng, e.GammaA+float64(k)-1, scale)
	e.Gamma = pi*g1 + (1-pi)*g2
}
