package model

import mathrand "math/rand"

// LdaConfig holds the hyperparameters and corpus for a fixed-K LDA run.
type LdaConfig struct {
	K          int
	Alpha      float64 // initial prior mass, broadcast into every AlphaZ entry; Asymmetric lets UpdateAlpha refit them later
	Beta       float64
	Seed       int64
	Asymmetric bool
	Train      *DataSet
	Test       *DataSet // held out for perplexity; may equal Train
}

// LdaEngine is the fixed-K collapsed Gibbs sampler (spec.md §4.3).
type LdaEngine struct {
	train *DataSet
	test  *DataSet

	K          int
	AlphaZ     []float64
	Beta       float64
	Asymmetric bool

	NMZ  [][]int // NMZ[m][z]: tokens in doc m assigned to topic z
	NZT  [][]int // NZT[z][t]: tokens with word t assigned to topic z
	NZ   []int   // NZ[z]: total tokens assigned to topic z
	ZMN  [][]int // ZMN[m][n]: current topic of token n in doc m

	PhiZT   [][]float64 // point estimate, populated by Evaluate
	ThetaMZ [][]float64

	rng *mathrand.Rand
}

// NewLdaEngine allocates sufficient-statistic tables and draws an
// initial uniform-random topic for every token, in row-major (doc, then
// token) order — the first draws consumed from the engine's PRNG stream.
func NewLdaEngine(cfg LdaConfig) *LdaEngine {
	train := cfg.Train
	e := &LdaEngine{
		train:      train,
		test:       cfg.Test,
		K:          cfg.K,
		AlphaZ:     make([]float64, cfg.K),
		Beta:       cfg.Beta,
		Asymmetric: cfg.Asymmetric,
		NMZ:        make([][]int, train.M),
		NZT:        make([][]int, cfg.K),
		NZ:         make([]int, cfg.K),
		ZMN:        make([][]int, train.M),
		PhiZT:      make([][]float64, cfg.K),
		ThetaMZ:    make([][]float64, train.M),
		rng:        NewRNG(cfg.Seed),
	}
	for z := range e.AlphaZ {
		e.AlphaZ[z] = cfg.Alpha
	}
	for m := range e.NMZ {
		e.NMZ[m] = make([]int, cfg.K)
	}
	for z := range e.NZT {
		e.NZT[z] = make([]int, train.V)
	}
	for z := range e.PhiZT {
		e.PhiZT[z] = make([]float64, train.V)
	}
	for m := range e.ThetaMZ {
		e.ThetaMZ[m] = make([]float64, cfg.K)
	}

	for m := 0; m < train.M; m++ {
		e.ZMN[m] = make([]int, train.NM[m])
		for n := 0; n < train.NM[m]; n++ {
			z := e.rng.Intn(cfg.K)
			e.ZMN[m][n] = z
			e.NMZ[m][z]++
			e.NZT[z][train.Docs[m][n]]++
			e.NZ[z]++
		}
	}

	return e
}

// Sweep performs one full Gibbs sampling pass over every token, in
// row-major (doc, then token) order — spec.md §4.3 "Sweep (inference)".
func (e *LdaEngine) Sweep() {
	for m := 0; m < e.train.M; m++ {
		for n := 0; n < e.train.NM[m]; n++ {
			e.samplingZ(m, n)
		}
	}
}

// samplingZ resamples the topic of a single token, spec.md §4.3 steps 1-5.
func (e *LdaEngine) samplingZ(m, n int) {
	v := e.train.Docs[m][n]
	oldZ := e.ZMN[m][n]

	e.NMZ[m][oldZ]--
	e.NZT[oldZ][v]--
	e.NZ[oldZ]--
	if e.NMZ[m][oldZ] < 0 || e.NZT[oldZ][v] < 0 || e.NZ[oldZ] < 0 {
		panicInvariant("lda: negative count decrementing topic %d for token (%d,%d)", oldZ, m, n)
	}

	p := make([]float64, e.K)
	vBeta := float64(e.train.V) * e.Beta
	for z := 0; z < e.K; z++ {
		p[z] = (e.AlphaZ[z] + float64(e.NMZ[m][z])) * (e.Beta + float64(e.NZT[z][v])) / (float64(e.NZ[z]) + vBeta)
	}
	newZ := discreteSample(e.rng, p)

	e.ZMN[m][n] = newZ
	e.NMZ[m][newZ]++
	e.NZT[newZ][v]++
	e.NZ[newZ]++
}
