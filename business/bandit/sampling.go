package bandit

import (
	"math"
	"math/rand"
)

// sampleBeta draws theta ~ Beta(alpha, beta) as X/(X+Y) with
// X ~ Gamma(alpha), Y ~ Gamma(beta). All randomness comes from the
// injected rng so fixed seeds replay bit-for-bit.
func sampleBeta(rng *rand.Rand, alpha, beta float64) float64 {
	x := sampleGamma(rng, alpha)
	y := sampleGamma(rng, beta)
	sum := x + y
	if sum == 0 {
		// both shapes tiny and both draws underflowed
		return 0.5
	}
	return x / sum
}

// sampleGamma draws from Gamma(shape, 1) using Marsaglia-Tsang squeeze
// rejection. Shapes below 1 use the boost Gamma(a) = Gamma(a+1) * U^(1/a).
func sampleGamma(rng *rand.Rand, shape float64) float64 {
	if shape < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return sampleGamma(rng, shape+1) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
