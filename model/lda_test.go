package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallCorpus() *DataSet {
	return &DataSet{
		M: 2, V: 3, N: 6,
		Docs: [][]int{
			{0, 0, 1, 2},
			{1, 2},
		},
		NM: []int{4, 2},
	}
}

func TestNewLdaEngine_CountsAreConsistentWithAssignment(t *testing.T) {
	// GIVEN a freshly initialized engine
	train := smallCorpus()
	e := NewLdaEngine(LdaConfig{K: 3, Alpha: 0.1, Beta: 0.01, Seed: 1, Train: train, Test: train})

	// WHEN no sampling has happened yet
	// THEN every token's initial topic is reflected in NMZ/NZT/NZ (invariant 1)
	for m := 0; m < train.M; m++ {
		sum := 0
		for z := 0; z < e.K; z++ {
			sum += e.NMZ[m][z]
		}
		assert.Equal(t, train.NM[m], sum)
	}
	totalNZ := 0
	for z := 0; z < e.K; z++ {
		totalNZ += e.NZ[z]
	}
	assert.Equal(t, train.N, totalNZ)

	for m := 0; m < train.M; m++ {
		for n := 0; n < train.NM[m]; n++ {
			z := e.ZMN[m][n]
			v := train.Docs[m][n]
			assert.Greater(t, e.NZT[z][v], 0)
		}
	}
}

func TestLdaEngine_Sweep_PreservesCountInvariants(t *testing.T) {
	// GIVEN an engine run for several sweeps
	train := smallCorpus()
	e := NewLdaEngine(LdaConfig{K: 2, Alpha: 0.5, Beta: 0.1, Seed: 7, Train: train, Test: train})

	// WHEN repeated full sweeps are performed
	for i := 0; i < 5; i++ {
		e.Sweep()
	}

	// THEN NZT and NMZ still sum to the per-token and per-doc totals
	totalNZ := 0
	for z := 0; z < e.K; z++ {
		rowSum := 0
		for t := 0; t < train.V; t++ {
			rowSum += e.NZT[z][t]
		}
		assert.Equal(t, e.NZ[z], rowSum)
		totalNZ += e.NZ[z]
	}
	assert.Equal(t, train.N, totalNZ)

	for m := 0; m < train.M; m++ {
		sum := 0
		for z := 0; z < e.K; z++ {
			sum += e.NMZ[m][z]
		}
		assert.Equal(t, train.NM[m], sum)
	}
}

func TestLdaEngine_Evaluate_ReturnsFinitePositivePerplexity(t *testing.T) {
	// GIVEN a trained engine
	train := smallCorpus()
	e := NewLdaEngine(LdaConfig{K: 2, Alpha: 0.5, Beta: 0.1, Seed: 3, Train: train, Test: train})
	e.Sweep()

	// WHEN evaluating perplexity against the (here, identical) test set
	perplexity := e.Evaluate()

	// THEN it is a finite positive number (invariant: phi/theta rows sum near 1 and are positive)
	require.False(t, math.IsNaN(perplexity) || math.IsInf(perplexity, 0))
	assert.Greater(t, perplexity, 0.0)

	for z := 0; z < e.K; z++ {
		sum := 0.0
		for t := 0; t < train.V; t++ {
			sum += e.PhiZT[z][t]
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestLdaEngine_Determinism_SameSeedSameTrajectory(t *testing.T) {
	// GIVEN two engines built from identical config and corpus
	train := smallCorpus()
	cfg := LdaConfig{K: 3, Alpha: 0.2, Beta: 0.05, Seed: 99, Train: train, Test: train}
	a := NewLdaEngine(cfg)
	b := NewLdaEngine(cfg)

	// WHEN run through several sweeps
	for i := 0; i < 4; i++ {
		a.Sweep()
		b.Sweep()
	}

	// THEN every topic assignment matches exactly (spec.md §8 law 6)
	for m := 0; m < train.M; m++ {
		assert.Equal(t, a.ZMN[m], b.ZMN[m])
	}
}

func TestUpdateAlpha_KeepsAlphaPositive(t *testing.T) {
	// GIVEN an asymmetric engine with some sweeps already run
	train := smallCorpus()
	e := NewLdaEngine(LdaConfig{K: 2, Alpha: 0.3, Beta: 0.1, Seed: 5, Asymmetric: true, Train: train, Test: train})
	e.Sweep()

	// WHEN the asymmetric prior is refit
	e.UpdateAlpha()

	// THEN every component stays positive (Minka's update is a multiplicative
	// fixed point on a ratio of digamma differences, both positive here)
	for _, a := range e.AlphaZ {
		assert.Greater(t, a, 0.0)
	}
}

func TestLdaEngine_TopicWords_SortedDescendingByPhi(t *testing.T) {
	// GIVEN an evaluated engine
	train := smallCorpus()
	e := NewLdaEngine(LdaConfig{K: 2, Alpha: 0.5, Beta: 0.1, Seed: 11, Train: train, Test: train})
	e.Sweep()
	e.Evaluate()

	// WHEN the top words for topic 0 are requested
	words := e.TopicWords(0, 10)

	// THEN phi is non-increasing across the returned slice
	for i := 1; i < len(words); i++ {
		assert.GreaterOrEqual(t, words[i-1].Phi, words[i].Phi)
	}
}
