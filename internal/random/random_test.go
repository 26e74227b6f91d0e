package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducible(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestBetweenStaysInRange(t *testing.T) {
	src := New(7)
	for i := 0; i < 1000; i++ {
		v := Between(src, 90, 480)
		assert.GreaterOrEqual(t, v, 90)
		assert.LessOrEqual(t, v, 480)
	}
	assert.Equal(t, 5, Between(src, 5, 5))
}

func TestScriptReplaysAndClamps(t *testing.T) {
	s := &Script{Floats: []float64{0.1, 0.9}, Ints: []int{3, 50}}
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.9, s.Float64())

	assert.Equal(t, 3, s.Intn(10))
	assert.Equal(t, 9, s.Intn(10))
}

func TestChanceAndPick(t *testing.T) {
	s := &Script{Floats: []float64{0.79, 0.8}, Ints: []int{1}}
	assert.True(t, Chance(s, 0.8))
	assert.False(t, Chance(s, 0.8))
	assert.Equal(t, "b", Pick(s, []string{"a", "b", "c"}))
}


func TestSeedIsNeverZero(t *testing.T) {
	assert.Equal(t, int64(1), Seed(&Script{}))
	assert.Equal(t, int64(8), Seed(&Script{Ints: []int{7}}))
	assert.Equal(t, Seed(New(5)), Seed(New(5)))
}
