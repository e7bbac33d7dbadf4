package ga

import (
	"encoding/binary"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"wta/internal/wta"
)

// CachedEvaluator memoizes fitness by assignment. Not safe for concurrent use.
type CachedEvaluator struct {
	eval   *wta.Evaluator
	cache  *lru.Cache[string, float64]
	key    []byte
	hits   uint64
	misses uint64
}

func NewCachedEvaluator(eval *wta.Evaluator, size int) (*CachedEvaluator, error) {
	if eval == nil {
		return nil, fmt.Errorf("nil evaluator")
	}
	cache, err := lru.New[string, float64](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create fitness cache: %w", err)
	}
	return &CachedEvaluator{eval: eval, cache: cache}, nil
}

func (c *CachedEvaluator) MustFitness(a wta.Assignment) float64 {
	c.key = c.key[:0]
	for _, w := range a {
		c.key = binary.AppendUvarint(c.key, uint64(w))
	}
	key := string(c.key)

	if f, ok := c.cache.Get(key); ok {
		c.hits++
		return f
	}
	c.misses++
	f := c.eval.MustFitness(a)
	c.cache.Add(key, f)
	return f
}

func (c *CachedEvaluator) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
