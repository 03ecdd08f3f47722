// Package config loads selection runs from YAML and turns them into a configured selector.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sw965/featsel"
	"github.com/sw965/featsel/cv"
	"github.com/sw965/featsel/mathx/randx"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownEstimator = errors.New("config: unknown estimator")
	ErrUnknownMetric    = errors.New("config: unknown metric")
	ErrInvalid          = errors.New("config: invalid value")
)

// EstimatorConfig selects an estimator and its hyperparameters. Zero values keep the
// estimator's defaults. Alpha is the ridge or lasso penalty, or the L2 term of logistic.
type EstimatorConfig struct {
	Kind         string  `yaml:"kind" json:"kind"`
	Alpha        float64 `yaml:"alpha,omitempty" json:"alpha,omitempty"`
	MaxIter      int     `yaml:"max_iter,omitempty" json:"max_iter,omitempty"`
	Tol          float64 `yaml:"tol,omitempty" json:"tol,omitempty"`
	LearningRate float64 `yaml:"learning_rate,omitempty" json:"learning_rate,omitempty"`
	Momentum     float64 `yaml:"momentum,omitempty" json:"momentum,omitempty"`
	Epochs       int     `yaml:"epochs,omitempty" json:"epochs,omitempty"`
}

type Config struct {
	Estimator EstimatorConfig `yaml:"estimator" json:"estimator"`
	Metric    string          `yaml:"metric" json:"metric"`
	Direction Direction       `yaml:"direction" json:"direction"`
	CV        int             `yaml:"cv" json:"cv"`
	Seed      uint64          `yaml:"seed" json:"seed"`
	Shuffle   bool            `yaml:"shuffle" json:"shuffle"`
	// Target names the CSV column holding y. Empty means the last column.
	Target string `yaml:"target" json:"target"`
	Report bool   `yaml:"report" json:"report"`
}

func Default() Config {
	return Config{
		Estimator: EstimatorConfig{Kind: "ols"},
		Metric:    "r2",
		Direction: Auto,
		CV:        cv.DefaultFolds,
		Seed:      randx.DefaultSeed,
		Report:    true,
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

func (c Config) Validate() error {
	if _, ok := Estimators[c.Estimator.Kind]; !ok {
		return fmt.Errorf("%w: %q (supported: %v)", ErrUnknownEstimator, c.Estimator.Kind, SupportedEstimators())
	}
	if _, ok := Metrics[c.Metric]; !ok {
		return fmt.Errorf("%w: %q (supported: %v)", ErrUnknownMetric, c.Metric, SupportedMetrics())
	}
	if _, ok := directionIdentifiers[c.Direction]; !ok {
		return fmt.Errorf("%w: direction %d", ErrInvalid, int(c.Direction))
	}
	if c.CV < 1 {
		return fmt.Errorf("%w: cv must be at least 1, got %d", ErrInvalid, c.CV)
	}
	e := c.Estimator
	switch {
	case e.Alpha < 0:
		return fmt.Errorf("%w: negative alpha %v", ErrInvalid, e.Alpha)
	case e.MaxIter < 0:
		return fmt.Errorf("%w: negative max_iter %d", ErrInvalid, e.MaxIter)
	case e.Tol < 0:
		return fmt.Errorf("%w: negative tol %v", ErrInvalid, e.Tol)
	case e.LearningRate < 0:
		return fmt.Errorf("%w: negative learning_rate %v", ErrInvalid, e.LearningRate)
	case e.Momentum < 0 || e.Momentum >= 1:
		return fmt.Errorf("%w: momentum %v not in [0, 1)", ErrInvalid, e.Momentum)
	case e.Epochs < 0:
		return fmt.Errorf("%w: negative epochs %d", ErrInvalid, e.Epochs)
	}
	return nil
}

// Maximize resolves the configured direction against the metric's default.
func (c Config) Maximize() (bool, error) {
	m, err := LookupMetric(c.Metric)
	if err != nil {
		return false, err
	}
	return c.Direction.Resolve(m.GreaterIsBetter), nil
}

// Build returns a selector for c. report receives the textual progress report when
// c.Report is set; logger may be nil.
func (c Config) Build(report io.Writer, logger *slog.Logger) (*featsel.AddDel, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	est, err := NewEstimator(c.Estimator)
	if err != nil {
		return nil, err
	}
	m, err := LookupMetric(c.Metric)
	if err != nil {
		return nil, err
	}
	opts := []featsel.Option{
		featsel.WithMaximize(c.Direction.Resolve(m.GreaterIsBetter)),
		featsel.WithSeed(c.Seed),
		featsel.WithShuffle(c.Shuffle),
		featsel.WithLogger(logger),
	}
	if c.Report {
		opts = append(opts, featsel.WithReport(report))
	}
	return featsel.NewAddDel(est, m.Func, opts...), nil
}
