package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"wta/internal/ga"
	"wta/internal/logging"
)

// EnvPrefix prefixes every environment override, e.g. WTA_POPULATION_SIZE.
const EnvPrefix = "WTA_"

type Config struct {
	GA ga.Config `yaml:",inline"`

	InstanceFile string `yaml:"instance_file" env:"INSTANCE_FILE" validate:"required_without=RandomN"`
	// RandomN > 0 replaces the instance file with a random instance of that size.
	RandomN      int    `yaml:"random_n" env:"RANDOM_N" validate:"gte=0"`
	InstanceSeed int64  `yaml:"instance_seed" env:"INSTANCE_SEED"`
	ResultsDir   string `yaml:"results_dir" env:"RESULTS_DIR"`
	MetricsFile  string `yaml:"metrics_file" env:"METRICS_FILE"`

	Log logging.Config `yaml:"log" envPrefix:"LOG_"`
}

func Default() *Config {
	return &Config{
		GA:           ga.DefaultConfig(),
		InstanceSeed: 777,
		ResultsDir:   "results",
		Log:          logging.DefaultConfig(),
	}
}

// Load starts from Default, applies the YAML file at path (if any) and then
// WTA_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok && len(aggErr.Errors) > 0 {
			// first error only, keeps the log readable
			return nil, aggErr.Errors[0]
		}
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s must satisfy %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
		}
		return err
	}
	return c.GA.Validate()
}
