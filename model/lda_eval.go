package model

import "math"

// Evaluate recomputes the closed-form phi/theta point estimates
// (spec.md §4.3) and returns the perplexity of the engine's held-out
// test set under them.
func (e *LdaEngine) Evaluate() float64 {
	vBeta := float64(e.train.V) * e.Beta
	for z := 0; z < e.K; z++ {
		for t := 0; t < e.train.V; t++ {
			e.PhiZT[z][t] = (e.Beta + float64(e.NZT[z][t])) / (float64(e.NZ[z]) + vBeta)
		}
	}

	for m := 0; m < e.train.M; m++ {
		for z := 0; z < e.K; z++ {
			denom := float64(e.train.NM[m]) + float64(e.K)*e.AlphaZ[z]
			e.ThetaMZ[m][z] = (e.AlphaZ[z] + float64(e.NMZ[m][z])) / denom
		}
	}

	logPer := 0.0
	test := e.test
	for m := 0; m < test.M; m++ {
		for n := 0; n < test.NM[m]; n++ {
			t := test.Docs[m][n]
			sum := 0.0
			for z := 0; z < e.K; z++ {
				sum += e.ThetaMZ[m][z] * e.PhiZT[z][t]
			}
			if sum <= 0 {
				panicInvariant("lda: non-positive likelihood for test token (%d word %d); phi/theta invariants broken", m, t)
			}
			logPer -= math.Log(sum)
		}
	}
	return math.Exp(logPer / float64(test.N))
}

// TopicWords returns, for topic z, up to limit (word, phi, count) triples
// sorted by descending phi, ties broken by ascending vocabulary index.
func (e *LdaEngine) TopicWords(z, limit int) []WordWeight {
	words := make([]WordWeight, e.train.V)
	for t := 0; t < e.train.V; t++ {
		words[t] = WordWeight{Index: t, Phi: e.PhiZT[z][t], Count: e.NZT[z][t]}
	}
	return topWords(words, limit)
}

// LiveTopicCount reports the number of topics for reporting purposes.
// For LDA every one of the K topic slots is always "live" (there is no
// dynamic arena); included for a uniform CLI report across both engines.
func (e *LdaEngine) LiveTopicCount() int { return e.K }

// TopicSize returns NZ[z], the token count assigned to topic z.
func (e *LdaEngine) TopicSize(z int) int { return e.NZ[z] }
