package ga

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MutationMethod selects the mutation operator.
type MutationMethod string

const (
	// MutationRandom resets one gene to a random weapon.
	MutationRandom MutationMethod = "random"
	// MutationSwap exchanges two genes.
	MutationSwap MutationMethod = "swap"
)

func ParseMutationMethod(s string) (MutationMethod, error) {
	switch m := MutationMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case MutationRandom, MutationSwap:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mutation method %q (want random or swap)", s)
	}
}

func (m *MutationMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseMutationMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m MutationMethod) MarshalText() ([]byte, error) { return []byte(m), nil }

// Config holds the GA hyperparameters. TournamentSize and SelectionSize are
// fractions of the population size.
type Config struct {
	PopulationSize       int            `yaml:"population_size" env:"POPULATION_SIZE" validate:"gt=0"`
	MaxIterations        int            `yaml:"max_iterations" env:"MAX_ITERATIONS" validate:"gte=0"`
	TournamentSize       float64        `yaml:"tournament_size" env:"TOURNAMENT_SIZE" validate:"gte=0,lte=1"`
	SelectionProbability float64        `yaml:"selection_probability" env:"SELECTION_PROBABILITY" validate:"gte=0,lte=1"`
	SelectionSize        float64        `yaml:"selection_size" env:"SELECTION_SIZE" validate:"gte=0,lte=1"`
	MutationProbability  float64        `yaml:"mutation_probability" env:"MUTATION_PROBABILITY" validate:"gte=0,lte=1"`
	MutationMethod       MutationMethod `yaml:"mutation_method" env:"MUTATION_METHOD" validate:"oneof=random swap"`
	Seed                 int64          `yaml:"seed" env:"SEED"`

	// FitnessCacheSize bounds the fitness memo; 0 disables it.
	FitnessCacheSize int `yaml:"fitness_cache_size" env:"FITNESS_CACHE_SIZE" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			// first error only, keeps the message readable
			fe := verrs[0]
			return fmt.Errorf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
		}
		return err
	}

	// Values the range checks accept but the loop cannot finish with.
	if c.TournamentSize == 0 {
		return errors.New("tournament size must be > 0, an empty tournament never selects anyone")
	}
	if c.SelectionProbability == 0 {
		return errors.New("selection probability must be > 0, otherwise selection never terminates")
	}
	if c.SelectionSize*float64(c.PopulationSize) <= 1 {
		return fmt.Errorf(
			"selection size %g of population %d selects fewer than 2 parents",
			c.SelectionSize, c.PopulationSize,
		)
	}
	return nil
}

// Burst is the number of generations run between two reports.
func (c Config) Burst() int {
	burst := c.MaxIterations / 10
	if burst == 0 {
		// below 10 iterations the burst would be empty and the loop would never advance
		burst = 1
	}
	return burst
}

func DefaultConfig() Config {
	return Config{
		PopulationSize:       250,
		MaxIterations:        20,
		TournamentSize:       0.1,
		SelectionProbability: 0.8,
		SelectionSize:        0.5,
		MutationProbability:  0.5,
		MutationMethod:       MutationSwap,
		Seed:                 0,
	}
}
