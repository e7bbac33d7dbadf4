package wta

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTargets(t *testing.T) *Instance {
	t.Helper()
	inst, err := NewInstance(2, []float64{1, 1}, [][]float64{{0.5, 0}, {0, 0.5}})
	require.NoError(t, err)
	return inst
}

func TestExpectedDamage(t *testing.T) {
	single, err := NewInstance(1, []float64{1}, [][]float64{{1}})
	require.NoError(t, err)
	pair := twoTargets(t)

	tests := []struct {
		name       string
		inst       *Instance
		assignment Assignment
		damage     float64
		fitness    float64
	}{
		{"single target", single, Assignment{0}, 1.0, 0.0},
		{"diagonal", pair, Assignment{0, 1}, 1.0, 0.0},
		{"anti diagonal", pair, Assignment{1, 0}, 0.0, -2.0},
		{"weapon 0 reused", pair, Assignment{0, 0}, 0.5, -1.5},
		{"weapon 1 reused", pair, Assignment{1, 1}, 0.0, -2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := NewEvaluator(tt.inst)
			require.NoError(t, err)

			damage, err := eval.ExpectedDamage(tt.assignment)
			require.NoError(t, err)
			assert.InDelta(t, tt.damage, damage, 1e-9)

			fit, err := eval.Fitness(tt.assignment)
			require.NoError(t, err)
			assert.InDelta(t, tt.fitness, fit, 1e-9)
		})
	}
}

func TestExpectedDamageDistinctWeaponsIsPlainSum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inst := RandomInstance(8, rng)
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		a := Assignment(rng.Perm(inst.N))
		want := 0.0
		for i, w := range a {
			want += inst.Probabilities[i][w] * inst.Values[i]
		}
		got, err := eval.ExpectedDamage(a)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)
	}
}

func TestExpectedDamageCountsFirstUseOnly(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	inst := RandomInstance(6, rng)
	eval, err := NewEvaluator(inst)
	require.NoError(t, err)

	for trial := 0; trial < 50; trial++ {
		a := make(Assignment, inst.N)
		for i := range a {
			a[i] = rng.Intn(3)
		}
		want := 0.0
		seen := map[int]bool{}
		for i, w := range a {
			if seen[w] {
				continue
			}
			seen[w] = true
			want += inst.Probabilities[i][w] * inst.Values[i]
		}
		got, err := eval.ExpectedDamage(a)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)

		fit := eval.MustFitness(a)
		assert.InDelta(t, -(inst.TotalValue() - want), fit, 1e-9)
		assert.LessOrEqual(t, fit, 0.0)
	}
}

func TestEvaluatorRejectsInvalidAssignment(t *testing.T) {
	eval, err := NewEvaluator(twoTargets(t))
	require.NoError(t, err)

	_, err = eval.ExpectedDamage(Assignment{0})
	assert.Error(t, err)
	_, err = eval.ExpectedDamage(Assignment{0, 2})
	assert.Error(t, err)
	_, err = eval.Fitness(Assignment{-1, 0})
	assert.Error(t, err)
	assert.Panics(t, func() { eval.MustFitness(Assignment{0, 0, 0}) })
}
