package model

import "math"

// samplingK resamples the dish served by a live table (spec.md §4.4.3),
// using the log-domain Pólya/Dirichlet-multinomial factorization with a
// max-subtract normalization before exponentiating.
func (e *HdpLdaEngine) samplingK(j, t int) {
	if !e.Tables[j][t] {
		panicInvariant("hdp: sampling_k called on dead table (%d,%d)", j, t)
	}

	oldK := e.KJT[j][t]
	njt := e.NJT[j][t]
	V := e.train.V
	vBeta := float64(V) * e.Beta

	e.NK[oldK] -= njt
	for v := 0; v < V; v++ {
		e.NKV[oldK][v] -= e.NJTV[j][t][v]
	}
	e.MK[oldK]--
	if e.MK[oldK] == 0 {
		e.removeDish(oldK)
	}

	fLog := make([]float64, e.K+1)
	haveMax := false
	maxVal := 0.0
	pushMax := func(x float64) {
		if !haveMax || x > maxVal {
			maxVal = x
			haveMax = true
		}
	}

	for k := 0; k < e.K; k++ {
		if e.MK[k] == 0 {
			fLog[k] = 1 // neutral placeholder; never exponentiated below
			continue
		}
		numer, denom := 0.0, 0.0
		for n := 0; n < njt; n++ {
			denom += math.Log(vBeta + float64(e.NK[k]) + float64(n))
		}
		for v := 0; v < V; v++ {
			for n := 0; n < e.NJTV[j][t][v]; n++ {
				numer += math.Log(e.Beta + float64(e.NKV[k][v]) + float64(n))
			}
		}
		fLog[k] = numer - denom
		pushMax(fLog[k])
	}

	numer, denom := 0.0, 0.0
	for n := 0; n < njt; n++ {
		denom += math.Log(vBeta + float64(n))
	}
	for v := 0; v < V; v++ {
		for n := 0; n < e.NJTV[j][t][v]; n++ {
			numer += math.Log(e.Beta + float64(n))
		}
	}
	fLog[e.K] = numer - denom
	pushMax(fLog[e.K])

	fK := make([]float64, e.K+1)
	for k := 0; k < e.K; k++ {
		if e.MK[k] != 0 {
			fK[k] = math.Exp(fLog[k] - maxVal)
		} else {
			fK[k] = 1
		}
	}
	fK[e.K] = math.Exp(fLog[e.K] - maxVal)

	pK := make([]float64, e.K+1)
	for k := 0; k < e.K; k++ {
		pK[k] = float64(e.MK[k]) * fK[k]
	}
	pK[e.K] = e.Gamma * fK[e.K]

	newK := discreteSample(e.rng, pK)
	if newK == e.K {
		newK = e.assignNewDish()
	}

	e.KJT[j][t] = newK
	e.MK[newK]++
	e.NK[newK] += njt
	for v := 0; v < V; v++ {
		e.NKV[newK][v] += e.NJTV[j][t][v]
	}
}
