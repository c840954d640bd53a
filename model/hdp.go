package model

import mathrand "math/rand"

// HdpLdaConfig holds the hyperparameters and corpus for an HDP-LDA run.
type HdpLdaConfig struct {
	Alpha   float64
	AlphaA  float64 // Gamma hyperprior shape on alpha
	AlphaB  float64 // Gamma hyperprior scale on alpha
	Beta    float64
	Gamma   float64
	GammaA  float64 // Gamma hyperprior shape on gamma
	GammaB  float64 // Gamma hyperprior scale on gamma
	Seed    int64
	Train   *DataSet
	Test    *DataSet
}

// HdpLdaEngine is the two-level Chinese-Restaurant-Franchise sampler
// behind HDP-LDA (spec.md §4.4). Dish and table slots are allocated on
// demand and returned to a liveness-flagged dead pool rather than
// physically removed, so every parallel array keyed by slot index keeps
// stable indices (spec.md §3 "Lifecycle").
type HdpLdaEngine struct {
	train *DataSet
	test  *DataSet

	Alpha  float64
	AlphaA float64
	AlphaB float64
	Beta   float64
	Gamma  float64
	GammaA float64
	GammaB float64

	Dishes []bool // liveness of dish slot k
	K      int    // capacity of the dish arena, == len(Dishes)

	MJ     []int    // capacity of restaurant j's table arena
	Tables [][]bool // liveness of table slot t in restaurant j

	TJI [][]int // TJI[j][i]: table index of token i in doc j, or -1

	NJT  [][]int   // customers at table t in restaurant j
	NJTV [][][]int // customers at table t with word v

	NK  []int   // customers served dish k, across the franchise
	NKV [][]int // customers with word v served dish k

	KJT [][]int // dish served at table t in restaurant j

	liveTables int   // m: total live tables across the franchise
	MK         []int // tables serving dish k

	PhiKV   [][]float64 // point estimate, index K is the "new dish" bucket
	ThetaJK [][]float64

	rng *mathrand.Rand
}

// NewHdpLdaEngine allocates the cold-start arenas described in spec.md
// §4.4.1: one dead dish slot, one dead table slot per restaurant, every
// token unassigned. The first sampling_t call for each token creates the
// first live table and, through it, the first live dish.
func NewHdpLdaEngine(cfg HdpLdaConfig) *HdpLdaEngine {
	train := cfg.Train
	e := &HdpLdaEngine{
		train:  train,
		test:   cfg.Test,
		Alpha:  cfg.Alpha,
		AlphaA: cfg.AlphaA,
		AlphaB: cfg.AlphaB,
		Beta:   cfg.Beta,
		Gamma:  cfg.Gamma,
		GammaA: cfg.GammaA,
		GammaB: cfg.GammaB,

		Dishes: []bool{false},
		K:      1,

		MJ:     make([]int, train.M),
		Tables: make([][]bool, train.M),
		TJI:    make([][]int, train.M),
		NJT:    make([][]int, train.M),
		NJTV:   make([][][]int, train.M),
		KJT:    make([][]int, train.M),

		NK:  []int{0},
		NKV: [][]int{make([]int, train.V)},
		MK:  []int{0},

		ThetaJK: make([][]float64, train.M),

		rng: NewRNG(cfg.Seed),
	}

	for j := 0; j < train.M; j++ {
		e.MJ[j] = 1
		e.Tables[j] = []bool{false}
		e.KJT[j] = []int{0}
		e.NJT[j] = []int{0}
		e.NJTV[j] = [][]int{make([]int, train.V)}

		e.TJI[j] = make([]int, train.NM[j])
		for i := range e.TJI[j] {
			e.TJI[j][i] = -1
		}
	}

	return e
}

// Sweep performs one full pass: resample the table assignment of every
// token, then the dish of every live table, then resample gamma and
// alpha — the exact ordering of HdpLda::inference (spec.md §4.4.4).
func (e *HdpLdaEngine) Sweep() {
	for j := 0; j < e.train.M; j++ {
		for i := 0; i < e.train.NM[j]; i++ {
			e.samplingT(j, i)
		}
	}
	for j := 0; j < e.train.M; j++ {
		for t := 0; t < e.MJ[j]; t++ {
			if e.Tables[j][t] {
				e.samplingK(j, t)
			}
		}
	}
	e.updateGamma()
	e.updateAlpha()
}

// dishLikelihoods returns f_k[k] = (beta + n_k_v[k][v]) / (V*beta + n_k[k])
// for every dish slot k in [0, K), including dead ones (harmless: their
// counts are zero and they're multiplied by MK[k]==0 downstream).
func (e *HdpLdaEngine) dishLikelihoods(v int) []float64 {
	V := float64(e.train.V)
	f := make([]float64, e.K)
	for k := 0; k < e.K; k++ {
		f[k] = (e.Beta + float64(e.NKV[k][v])) / (V*e.Beta + float64(e.NK[k]))
	}
	return f
}

// samplingT resamples the table assignment of token i in restaurant j
// (spec.md §4.4.2).
func (e *HdpLdaEngine) samplingT(j, i int) {
	v := e.train.Docs[j][i]
	oldT := e.TJI[j][i]

	if oldT >= 0 {
		oldK := e.KJT[j][oldT]
		e.NK[oldK]--
		e.NKV[oldK][v]--
		e.NJT[j][oldT]--
		e.NJTV[j][oldT][v]--
		if e.NK[oldK] < 0 || e.NJT[j][oldT] < 0 {
			panicInvariant("hdp: negative count detaching token (%d,%d) from table %d", j, i, oldT)
		}
		if e.NJT[j][oldT] == 0 {
			e.removeTable(j, oldT)
		}
	}

	fK := e.dishLikelihoods(v)

	px := 0.0
	for k := 0; k < e.K; k++ {
		px += float64(e.MK[k]) * fK[k]
	}
	px = (px + e.Gamma/float64(e.train.V)) / (e.Gamma + float64(e.liveTables))

	pT := make([]float64, e.MJ[j]+1)
	for t := 0; t < e.MJ[j]; t++ {
		if e.Tables[j][t] {
			pT[t] = float64(e.NJT[j][t]) * fK[e.KJT[j][t]]
		}
	}
	pT[e.MJ[j]] = e.Alpha * px

	newT := discreteSample(e.rng, pT)

	if newT == e.MJ[j] {
		pK := make([]float64, e.K+1)
		for k := 0; k < e.K; k++ {
			pK[k] = float64(e.MK[k]) * fK[k]
		}
		pK[e.K] = e.Gamma / float64(e.train.V)

		newK := discreteSample(e.rng, pK)
		if newK == e.K {
			newK = e.assignNewDish()
		}
		newT = e.addNewTable(j, newK)
	}

	newK := e.KJT[j][newT]
	e.TJI[j][i] = newT
	e.NJT[j][newT]++
	e.NK[newK]++
	e.NKV[newK][v]++
	e.NJTV[j][newT][v]++
}

// removeTable marks table t in restaurant j dead once it has emptied,
// and removes its dish if that was the dish's last table.
func (e *HdpLdaEngine) removeTable(j, t int) {
	k := e.KJT[j][t]
	e.Tables[j][t] = false
	e.liveTables--
	e.MK[k]--
	if e.MK[k] == 0 {
		e.removeDish(k)
	}
}

// removeDish marks dish k dead.
func (e *HdpLdaEngine) removeDish(k int) {
	e.Dishes[k] = false
}

// assignNewDish returns the smallest dead dish slot, growing the arena
// by one only if none exists (spec.md §9 "Dynamic dish/table arenas";
// tie-breaking toward the smallest dead index is required by Scenario C).
func (e *HdpLdaEngine) assignNewDish() int {
	newK := e.getNewDish()
	if newK == e.K {
		e.Dishes = append(e.Dishes, false)
		e.K = len(e.Dishes)
		e.MK = append(e.MK, 0)
		e.NK = append(e.NK, 0)
		e.NKV = append(e.NKV, make([]int, e.train.V))
	}
	e.Dishes[newK] = true
	return newK
}

// addNewTable returns the smallest dead table slot in restaurant j,
// growing that restaurant's arena by one only if none exists.
func (e *HdpLdaEngine) addNewTable(j, k int) int {
	newT := e.getEmptyTable(j)
	if newT == e.MJ[j] {
		e.Tables[j] = append(e.Tables[j], false)
		e.MJ[j] = len(e.Tables[j])
		e.KJT[j] = append(e.KJT[j], 0)
		e.NJT[j] = append(e.NJT[j], 0)
		e.NJTV[j] = append(e.NJTV[j], make([]int, e.train.V))
	}
	e.Tables[j][newT] = true
	e.KJT[j][newT] = k
	e.liveTables++
	e.MK[k]++
	return newT
}

func (e *HdpLdaEngine) getNewDish() int {
	for k := 0; k < e.K; k++ {
		if !e.Dishes[k] {
			return k
		}
	}
	return e.K
}

func (e *HdpLdaEngine) getEmptyTable(j int) int {
	for t := 0; t < e.MJ[j]; t++ {
		if !e.Tables[j][t] {
			return t
		}
	}
	return e.MJ[j]
}

// LiveTopicCount returns the number of live dish slots.
func (e *HdpLdaEngine) LiveTopicCount() int {
	n := 0
	for _, live := range e.Dishes {
		if live {
			n++
		}
	}
	return n
}

// LiveTableCount returns m, the total number of live tables across the
// franchise.
func (e *HdpLdaEngine) LiveTableCount() int { return e.liveTables }

// TopicSize returns NK[k], the token count served by dish k.
func (e *HdpLdaEngine) TopicSize(k int) int { return e.NK[k] }
