package model

import "math"

// Evaluate recomputes the closed-form phi/theta point estimates
// (spec.md §4.4.5), including the extra "new dish" bucket at index K,
// and returns the perplexity of the engine's held-out test set.
func (e *HdpLdaEngine) Evaluate() float64 {
	V := e.train.V
	vBeta := float64(V) * e.Beta

	e.PhiKV = make([][]float64, e.K+1)
	for k := 0; k < e.K; k++ {
		if !e.Dishes[k] {
			continue
		}
		row := make([]float64, V)
		for v := 0; v < V; v++ {
			row[v] = (e.Beta + float64(e.NKV[k][v])) / (vBeta + float64(e.NK[k]))
		}
		e.PhiKV[k] = row
	}
	newDishRow := make([]float64, V)
	for v := range newDishRow {
		newDishRow[v] = 1.0 / float64(V)
	}
	e.PhiKV[e.K] = newDishRow

	for j := 0; j < e.train.M; j++ {
		theta := make([]float64, e.K+1)
		for t := 0; t < e.MJ[j]; t++ {
			if e.Tables[j][t] {
				k := e.KJT[j][t]
				theta[k] += float64(e.NJT[j][t])
			}
		}
		for k := 0; k < e.K; k++ {
			if e.Dishes[k] {
				theta[k] += e.Alpha * float64(e.MK[k]) / (e.Gamma + float64(e.liveTables))
				theta[k] /= float64(e.train.NM[j]) + e.Alpha
			}
		}
		theta[e.K] = e.Alpha * e.Gamma / (e.Gamma + float64(e.liveTables))
		theta[e.K] /= float64(e.train.NM[j]) + e.Alpha
		e.ThetaJK[j] = theta
	}

	logPer := 0.0
	test := e.test
	for j := 0; j < test.M; j++ {
		for i := 0; i < test.NM[j]; i++ {
			v := test.Docs[j][i]
			sum := 0.0
			for k := 0; k < e.K; k++ {
				if e.Dishes[k] {
					sum += e.ThetaJK[j][k] * e.PhiKV[k][v]
				}
			}
			sum += e.ThetaJK[j][e.K] * e.PhiKV[e.K][v]
			if sum <= 0 {
				panicInvariant("hdp: non-positive likelihood for test token (%d word %d); phi/theta invariants broken", j, v)
			}
			logPer -= math.Log(sum)
		}
	}
	return math.Exp(logPer / float64(test.N))
}

// TopicWords returns, for dish k, up to limit (word, phi, count) triples
// sorted by descending phi, ties broken by ascending vocabulary index.
// Returns nil for a dead dish slot.
func (e *HdpLdaEngine) TopicWords(k, limit int) []WordWeight {
	if !e.Dishes[k] {
		return nil
	}
	V := e.train.V
	words := make([]WordWeight, V)
	for v := 0; v < V; v++ {
		words[v] = WordWeight{Index: v, Phi: e.PhiKV[k][v], Count: e.NKV[k][v]}
	}
	return topWords(words, limit)
}
