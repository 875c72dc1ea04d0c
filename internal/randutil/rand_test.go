package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Int64(), b.Int64())
	}
}

func TestResolve(t *testing.T) {
	seed := int64(1234)
	got, rng := Resolve(&seed)
	assert.Equal(t, seed, got)
	assert.Equal(t, New(seed).Int64(), rng.Int64())

	random, _ := Resolve(nil)
	assert.NotZero(t, random)
}

func TestDerive(t *testing.T) {
	seeds := Derive(New(5), 4)
	assert.Len(t, seeds, 4)
	assert.Equal(t, Derive(New(5), 4), seeds)
	assert.NotEqual(t, seeds[0], seeds[1])
}
