package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wta/internal/wta"
)

func TestCachedEvaluator(t *testing.T) {
	inst := wta.RandomInstance(5, rand.New(rand.NewSource(12)))
	eval, err := wta.NewEvaluator(inst)
	require.NoError(t, err)

	cached, err := NewCachedEvaluator(eval, 2)
	require.NoError(t, err)

	a := wta.Assignment{0, 1, 2, 3, 4}
	b := wta.Assignment{4, 3, 2, 1, 0}
	assert.Equal(t, eval.MustFitness(a), cached.MustFitness(a))
	assert.Equal(t, eval.MustFitness(a), cached.MustFitness(a))
	assert.Equal(t, eval.MustFitness(b), cached.MustFitness(b))

	hits, misses := cached.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(2), misses)
}

func TestCachedEvaluatorRejectsBadSize(t *testing.T) {
	eval, err := wta.NewEvaluator(wta.RandomInstance(3, rand.New(rand.NewSource(13))))
	require.NoError(t, err)

	_, err = NewCachedEvaluator(eval, 0)
	assert.Error(t, err)
	_, err = NewCachedEvaluator(nil, 10)
	assert.Error(t, err)
}
