package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"colonylife/src/pattern"
)

//Config holds the configuration for the simulation
type Config struct {
	Width               int               `json:"width"`
	Height              int               `json:"height"`
	Interval            Duration          `json:"interval"`
	MaxSteps            int               `json:"max_steps"`
	Pattern             string            `json:"pattern"`
	Random              bool              `json:"random"`
	RandomDensity       float64           `json:"random_density"`
	RandomSeed          uint64            `json:"random_seed"`
	StopWhenStagnant    bool              `json:"stop_when_stagnant"`
	StagnationThreshold int               `json:"stagnation_threshold"`
	Interactive         bool              `json:"interactive"`
	Patterns            []pattern.Pattern `json:"patterns"`
}

//Duration accepts either "150ms" style strings or nanoseconds in JSON
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrapf(err, "[Duration] invalid duration %q", s)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrapf(err, "[Duration] expected a string or an integer, got %s", data)
	}
	*d = Duration(n)
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

//DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               74,
		Height:              53,
		Interval:            Duration(100 * time.Millisecond),
		MaxSteps:            1000,
		Pattern:             pattern.DefaultPattern,
		RandomDensity:       0.15,
		RandomSeed:          1,
		StopWhenStagnant:    true,
		StagnationThreshold: 5,
	}
}

//LoadConfig loads configuration from JSON file on top of the defaults
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

//LoadOrDefault loads the file, a missing file yields the defaults
func LoadOrDefault(filename string) (Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	config, err := LoadConfig(filename)
	if err != nil && os.IsNotExist(errors.Cause(err)) {
		return DefaultConfig(), nil
	}
	return config, err
}

//Registry returns the built-in patterns extended with the configured ones
func (c Config) Registry() (*pattern.Registry, error) {
	r, err := pattern.Default().With(c.Patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "[Config] invalid patterns")
	}
	return r, nil
}

//Validate checks the values that would make the simulation meaningless
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("[Config] view size must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.Interval <= 0 {
		return errors.Errorf("[Config] interval must be positive, got %v", time.Duration(c.Interval))
	}
	if c.MaxSteps < 0 {
		return errors.Errorf("[Config] max steps must not be negative, got %v", c.MaxSteps)
	}
	if c.RandomDensity < 0 || c.RandomDensity > 1 {
		return errors.Errorf("[Config] random density must be within [0,1], got %v", c.RandomDensity)
	}
	if c.StagnationThreshold < 1 {
		return errors.Errorf("[Config] stagnation threshold must be at least 1, got %v", c.StagnationThreshold)
	}
	return nil
}
