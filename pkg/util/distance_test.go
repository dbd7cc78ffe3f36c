package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Run("same point is zero", func(t *testing.T) {
		assert.Zero(t, Haversine(41.0082, 28.9784, 41.0082, 28.9784))
	})

	t.Run("istanbul to ankara", func(t *testing.T) {
		// roughly 350 km apart
		d := Haversine(41.0082, 28.9784, 39.9334, 32.8597)
		assert.InDelta(t, 350, d, 10)
	})

	t.Run("symmetry", func(t *testing.T) {
		a := Haversine(41.0082, 28.9784, 39.9334, 32.8597)
		b := Haversine(39.9334, 32.8597, 41.0082, 28.9784)
		assert.InDelta(t, a, b, 1e-9)
	})
}
