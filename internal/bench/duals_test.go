package bench

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandomDuals_LengthAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	dual := RandomDuals(6, rng)

	require.Len(t, dual, 6)
	for _, v := range dual {
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, float64(dualMagnitude))
	}
}

func TestRandomDuals_Deterministic(t *testing.T) {
	d1 := RandomDuals(5, rand.New(rand.NewSource(99)))
	d2 := RandomDuals(5, rand.New(rand.NewSource(99)))
	require.Equal(t, d1, d2)
}

func TestRandomDuals_Zero(t *testing.T) {
	dual := RandomDuals(0, rand.New(rand.NewSource(1)))
	require.Empty(t, dual)
}
