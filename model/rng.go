package model

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mathrand "math/rand"
)

// NewRNG returns a single deterministic PRNG stream seeded by seed. Both
// engines own exactly one such stream for their entire lifetime: initial
// topic assignment consumes it first, then every sweep draw, in a fixed
// order, so that identical seed + corpus + hyperparameters reproduce a
// bit-identical trajectory (spec.md §5, §8 law 6).
func NewRNG(seed int64) *mathrand.Rand {
	return mathrand.New(mathrand.NewSource(seed))
}

// RandomSeed draws a seed from OS entropy, for CLI invocations that don't
// pin --seed explicitly (mirrors the original's std::random_device
// fallback in LdaMain.cpp/HdpLdaMain.cpp).
func RandomSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unheard of on any real
		// platform; fall back to a fixed but still-usable seed rather
		// than leaving the engine unseeded.
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// Gamma samples X ~ Gamma(shape, scale) using Marsaglia-Tsang's method
// for shape >= 1, with the Ahrens-Dieter shape<1 transform
// Gamma(a) = Gamma(a+1) * U^(1/a) otherwise.
func Gamma(rng *mathrand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return Gamma(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// Beta samples X ~ Beta(a, b) as the ratio X/(X+Y) of two independent
// Gamma(a,1), Gamma(b,1) draws (spec.md §4.2). The caller is responsible
// for clamping a, b away from the degenerate zero regime; this function
// has no special case for it.
func Beta(rng *mathrand.Rand, a, b float64) float64 {
	x := Gamma(rng, a, 1.0)
	y := Gamma(rng, b, 1.0)
	return x / (x + y)
}

// discreteSample draws an index in [0, len(weights)) with probability
// proportional to weights[i]. Negative weights are a caller bug and
// trigger an InvariantViolation; an all-zero weight vector is likewise
// an invariant violation (it indicates every candidate has zero
// posterior mass, which cannot happen while §3's count invariants hold).
//
// This is the tight inner loop of both engines' Gibbs kernels: it runs
// per token (LdaEngine.samplingZ, HdpLdaEngine.samplingT) and per live
// table (HdpLdaEngine.samplingK) in every sweep, so it is a plain
// cumulative-sum linear scan rather than a general-purpose distribution
// object — see DESIGN.md for why gonum's distuv.Categorical isn't used
// here despite gonum already being a direct dependency.
func discreteSample(rng *mathrand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panicInvariant("discreteSample: negative weight %g", w)
		}
		total += w
	}
	if !(total > 0) {
		panicInvariant("discreteSample: total weight %g is not positive", total)
	}

	target := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if target < cum {
			return i
		}
	}
	// Floating-point rounding can land target fractionally above the
	// last cumulative sum; the last bucket still owns that mass.
	return len(weights) - 1
}
