package bench

import "math/rand"

// dualMagnitude bounds the synthetic dual values RandomDuals generates,
// matching src/test/LabelSettingTest.py's `100 * random()` convention.
const dualMagnitude = 100

// RandomDuals returns a dual vector of length nodeCount, each entry a
// uniform random value in [0, dualMagnitude), the same distribution
// src/test/LabelSettingTest.py uses to exercise a solve call against
// random column-generation duals. Pass a seeded *rand.Rand for
// reproducible runs.
func RandomDuals(nodeCount int, rng *rand.Rand) []float64 {
	dual := make([]float64, nodeCount)
	for i := range dual {
		dual[i] = dualMagnitude * rng.Float64()
	}
	return dual
}
