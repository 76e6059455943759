package utils

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed config.schema.json
var configSchema []byte

const configSchemaURL = "mem://schemas/config.schema.json"

// Config holds the configuration for the simulation
type Config struct {
	StepIntervalMS      int    `json:"step_interval_ms"`
	UseParallel         bool   `json:"use_parallel"`
	Workers             int    `json:"workers"`
	UseMemoryPool       bool   `json:"use_memory_pool"`
	MaxGenerations      int    `json:"max_generations"`
	StagnationThreshold int    `json:"stagnation_threshold"`
	PatternDir          string `json:"pattern_dir"`
	Pattern             string `json:"pattern"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		StepIntervalMS:      100,
		UseParallel:         true,
		Workers:             0, // 0 means one worker per CPU
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		StagnationThreshold: 5,
		PatternDir:          "./patterns",
		Pattern:             "",
	}
}

// StepInterval is how often the controller advances while running
func (c Config) StepInterval() time.Duration {
	return time.Duration(c.StepIntervalMS) * time.Millisecond
}

// WorkerCount resolves Workers, defaulting to the number of CPUs
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Bind attaches the overridable fields to the provided FlagSet
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.StepIntervalMS, "interval", c.StepIntervalMS, "milliseconds between generations while running")
	fs.IntVar(&c.MaxGenerations, "generations", c.MaxGenerations, "stop after this many generations (0 = unlimited)")
	fs.StringVar(&c.PatternDir, "patterns", c.PatternDir, "directory holding .cells and .rle files")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "pattern file to load from the pattern directory")
	fs.BoolVar(&c.UseParallel, "parallel", c.UseParallel, "count neighbors on multiple goroutines")
}

// LoadConfig loads configuration from JSON file, validating it against the embedded schema
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = ValidateConfig(data); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// ValidateConfig checks a raw JSON document against the config schema
func ValidateConfig(data []byte) error {
	schema, err := compileConfigSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err = json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, "[ValidateConfig] failed to decode document")
	}

	if err = schema.Validate(doc); err != nil {
		return errors.Wrap(err, "[ValidateConfig] schema violation")
	}
	return nil
}

func compileConfigSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(configSchemaURL, bytes.NewReader(configSchema)); err != nil {
		return nil, errors.Wrap(err, "[compileConfigSchema] failed to add schema resource")
	}

	schema, err := compiler.Compile(configSchemaURL)
	if err != nil {
		return nil, errors.Wrap(err, "[compileConfigSchema] failed to compile schema")
	}
	return schema, nil
}
