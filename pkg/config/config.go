// Package config loads the pipeline configuration from YAML and applies
// documented defaults for every field left unset.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level pipeline configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Simulation SimulationConfig `yaml:"simulation"`
	Country    CountryConfig    `yaml:"country"`
	Output     OutputConfig     `yaml:"output"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	S3         S3Config         `yaml:"s3"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Workers    int              `yaml:"workers" validate:"gte=0"`
}

// DataConfig names the input files.
type DataConfig struct {
	AirportsPath string `yaml:"airports_path" validate:"required"`
	RoutesPath   string `yaml:"routes_path" validate:"required"`
}

// AnalysisConfig tunes the structural statistics stage.
type AnalysisConfig struct {
	BetweennessSampleK int   `yaml:"betweenness_sample_k" validate:"gte=0"`
	EfficiencyPairs    int   `yaml:"efficiency_pairs" validate:"gte=0"`
	EigenMaxIterations int   `yaml:"eigen_max_iterations" validate:"gte=0"`
	TopHubs            int   `yaml:"top_hubs" validate:"gte=0"`
	Seed               int64 `yaml:"seed"`
}

// SimulationConfig tunes the removal simulation stage.
type SimulationConfig struct {
	Strategies         []string `yaml:"strategies" validate:"dive,oneof=random degree betweenness closeness eigenvector"`
	Adaptive           bool     `yaml:"adaptive"`
	Steps              int      `yaml:"steps" validate:"gte=0"`
	MaxRemovalFraction float64  `yaml:"max_removal_fraction" validate:"gte=0,lte=1"`
	Trials             int      `yaml:"trials" validate:"gte=0"`
}

// CountryConfig tunes the country aggregation stage.
type CountryConfig struct {
	Enabled     bool `yaml:"enabled"`
	MinAirports int  `yaml:"min_airports" validate:"gte=0"`
}

// OutputConfig names the artifact directory and optional exports.
type OutputConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	GMLPath     string `yaml:"gml_path"`
	CompressGML bool   `yaml:"compress_gml"`
	MapPath     string `yaml:"map_path"`
	// MapLayout places airports on the map: geographic projection by default,
	// force or circular when coordinates are not the point.
	MapLayout string `yaml:"map_layout" validate:"omitempty,oneof=geographic force circular"`
}

// PostgresConfig is the optional results sink; empty URL disables it.
type PostgresConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns" validate:"gte=0"`
}

// S3Config is the optional artifact upload target; empty bucket disables it.
type S3Config struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// MetricsConfig exposes Prometheus metrics during long runs.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// Default returns the configuration used when a field is left unset.
func Default() Config {
	return Config{
		Data: DataConfig{
			AirportsPath: "data/airports.dat",
			RoutesPath:   "data/routes.dat",
		},
		Analysis: AnalysisConfig{
			BetweennessSampleK: 200,
			EfficiencyPairs:    2000,
			EigenMaxIterations: 500,
			TopHubs:            10,
			Seed:               42,
		},
		Simulation: SimulationConfig{
			Strategies:         []string{"random", "degree", "betweenness"},
			Steps:              50,
			MaxRemovalFraction: 0.9,
			Trials:             20,
		},
		Country: CountryConfig{
			Enabled:     true,
			MinAirports: 1,
		},
		Output: OutputConfig{
			Dir:       "results",
			MapLayout: "geographic",
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
		Workers: runtime.NumCPU(),
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field consistency.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.S3.Bucket != "" && c.S3.Region == "" {
		return fmt.Errorf("invalid config: s3.region is required when s3.bucket is set")
	}
	return nil
}
