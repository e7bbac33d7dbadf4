package ga

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"wta/internal/wta"
)

var ErrTooFewParents = errors.New("crossover needs at least two parents")

// Fitness scores an assignment; higher is better.
type Fitness interface {
	MustFitness(a wta.Assignment) float64
}

// InitialPopulation draws every gene uniformly from [0, n).
func InitialPopulation(size, n int, rng *rand.Rand) []wta.Assignment {
	pop := make([]wta.Assignment, size)
	for i := range pop {
		a := make(wta.Assignment, n)
		for j := range a {
			a[j] = rng.Intn(n)
		}
		pop[i] = a
	}
	return pop
}

// SelectBest runs probabilistic tournaments until the selected count reaches
// selectionSize*len(pop). Each round samples ceil(tournamentSize*len(pop))
// distinct competitors, ranks them by fitness and accepts each in turn with
// probability selectionProb; a round where every draw fails adds nobody.
func SelectBest(
	pop []wta.Assignment,
	fit Fitness,
	tournamentSize, selectionProb, selectionSize float64,
	rng *rand.Rand,
) []wta.Assignment {
	n := len(pop)
	k := int(math.Ceil(tournamentSize * float64(n)))
	threshold := selectionSize * float64(n)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	competitors := make([]int, k)
	scores := make([]float64, k)

	var selected []wta.Assignment
	for float64(len(selected)) < threshold {
		// partial Fisher-Yates: idx[:k] becomes a uniform sample without replacement
		for i := 0; i < k; i++ {
			j := i + rng.Intn(n-i)
			idx[i], idx[j] = idx[j], idx[i]
		}
		copy(competitors, idx[:k])
		for i, c := range competitors {
			scores[i] = fit.MustFitness(pop[c])
		}
		sort.Stable(byFitnessDesc{competitors, scores})

		for _, c := range competitors {
			if rng.Float64() < selectionProb {
				selected = append(selected, pop[c].Clone())
				break
			}
		}
	}
	return selected
}

type byFitnessDesc struct {
	idx    []int
	scores []float64
}

func (b byFitnessDesc) Len() int           { return len(b.idx) }
func (b byFitnessDesc) Less(i, j int) bool { return b.scores[i] > b.scores[j] }
func (b byFitnessDesc) Swap(i, j int) {
	b.idx[i], b.idx[j] = b.idx[j], b.idx[i]
	b.scores[i], b.scores[j] = b.scores[j], b.scores[i]
}

// Crossover builds size children by single-point crossover of two distinct
// parents picked uniformly from parents.
func Crossover(parents []wta.Assignment, size int, rng *rand.Rand) ([]wta.Assignment, error) {
	m := len(parents)
	if m < 2 {
		return nil, ErrTooFewParents
	}

	children := make([]wta.Assignment, size)
	for c := range children {
		i := rng.Intn(m)
		j := rng.Intn(m - 1)
		if j >= i {
			j++
		}
		father, mother := parents[i], parents[j]

		n := len(father)
		point := rng.Intn(n)
		child := make(wta.Assignment, n)
		copy(child[:point], father[:point])
		copy(child[point:], mother[point:])
		children[c] = child
	}
	return children, nil
}

// Mutate draws u per individual and skips it when u > prob; otherwise a
// mutated copy replaces it. Individuals left alone are shared with pop.
func Mutate(pop []wta.Assignment, prob float64, method MutationMethod, rng *rand.Rand) []wta.Assignment {
	out := make([]wta.Assignment, len(pop))
	for i, ind := range pop {
		out[i] = ind
		if rng.Float64() > prob {
			continue
		}

		mutated := ind.Clone()
		switch method {
		case MutationRandom:
			mutateRandom(mutated, rng)
		case MutationSwap:
			mutateSwap(mutated, rng)
		}
		out[i] = mutated
	}
	return out
}

// mutateRandom resets one gene to a uniformly drawn weapon.
func mutateRandom(a wta.Assignment, rng *rand.Rand) {
	n := len(a)
	point := rng.Intn(n)
	a[point] = rng.Intn(n)
}

// mutateSwap exchanges two genes; both positions may coincide.
func mutateSwap(a wta.Assignment, rng *rand.Rand) {
	n := len(a)
	i := rng.Intn(n)
	j := rng.Intn(n)
	a[i], a[j] = a[j], a[i]
}
