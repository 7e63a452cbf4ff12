package config

import (
	"math"
	"os"

	"github.com/noriah/diwasp"
	"github.com/noriah/diwasp/griddata"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Config holds the settings of an interpspec run.
type Config struct {
	// Method is the interpolation method (linear, nearest)
	Method string `yaml:"method"`
	// Tolerance is the relative Hs gain that triggers the coarse grid
	// warning. Zero warns on any gain.
	Tolerance float64 `yaml:"tolerance"`
	// ZeroEnergy is what to do with a source that has no energy (skip, fail)
	ZeroEnergy string    `yaml:"zero_energy"`
	Log        LogConfig `yaml:"log"`
	Output     OutConfig `yaml:"output"`
}

// LogConfig sets up logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // logrus level name
	Format string `yaml:"format"` // text or json
}

// OutConfig controls how results are written.
type OutConfig struct {
	Format    string `yaml:"format"`    // yaml or raw
	Precision int    `yaml:"precision"` // digits after the point for raw output
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Method:     string(griddata.DefaultMethod),
		Tolerance:  diwasp.DefaultTolerance,
		ZeroEnergy: string(diwasp.ZeroEnergySkip),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutConfig{
			Format:    FormatYAML,
			Precision: 6,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults, as do missing fields.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate checks the configuration for values nothing downstream accepts.
func (c *Config) Validate() error {
	if _, err := griddata.ParseMethod(c.Method); err != nil {
		return err
	}

	if _, err := diwasp.ParseZeroEnergyPolicy(c.ZeroEnergy); err != nil {
		return err
	}

	if c.Tolerance < 0 || math.IsNaN(c.Tolerance) {
		return errors.New("tolerance must not be negative")
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "log level")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", c.Log.Format)
	}

	switch c.Output.Format {
	case FormatYAML, FormatRaw:
	default:
		return errors.Errorf("unknown output format %q", c.Output.Format)
	}

	if c.Output.Precision < 0 || c.Output.Precision > 17 {
		return errors.New("precision out of range (0-17)")
	}

	return nil
}

// Remapper returns the remapper configuration for c.
func (c *Config) Remapper(log logrus.FieldLogger) diwasp.Config {
	return diwasp.Config{
		Method:     griddata.Method(c.Method),
		Tolerance:  diwasp.Float64(c.Tolerance),
		ZeroEnergy: diwasp.ZeroEnergyPolicy(c.ZeroEnergy),
		Logger:     log,
	}
}

// Logger builds a logrus logger from the log settings.
func (c *Config) Logger() (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	log := logrus.New()
	log.SetLevel(lvl)

	if c.Log.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}

	return log, nil
}

// ensureDefaults fills fields left empty in the file. Numbers keep the value
// from the file, so an explicit zero tolerance survives; an absent one keeps
// the default set before unmarshalling.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Method == "" {
		c.Method = def.Method
	}
	if c.ZeroEnergy == "" {
		c.ZeroEnergy = def.ZeroEnergy
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
}
