package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Taxonomy TaxonomyConfig `yaml:"taxonomy" mapstructure:"taxonomy"`
	Stitch   StitchConfig   `yaml:"stitch" mapstructure:"stitch"`
	Scale    ScaleConfig    `yaml:"scale" mapstructure:"scale"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// TaxonomyConfig locates the canonical concept reference data. An empty path
// means the built-in generic table only.
type TaxonomyConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// StitchConfig configures cross-filing stitching.
type StitchConfig struct {
	MaxPeriods int    `yaml:"max_periods" mapstructure:"max_periods"`
	TieBreak   string `yaml:"tie_break" mapstructure:"tie_break"` // same-day conflict ordering; "accession" is the only built-in
}

// ScaleConfig configures display-scale inference.
type ScaleConfig struct {
	MinAnchorFacts int `yaml:"min_anchor_facts" mapstructure:"min_anchor_facts"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STATEMENTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("stitch.max_periods", 5)
	v.SetDefault("stitch.tie_break", "accession")
	v.SetDefault("scale.min_anchor_facts", 2)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks configuration bounds before any command runs.
func (c *Config) Validate() error {
	var problems []string
	if c.Stitch.MaxPeriods < 0 {
		problems = append(problems, "stitch.max_periods must be >= 0")
	}
	if c.Stitch.TieBreak != "accession" {
		problems = append(problems, "stitch.tie_break must be \"accession\"")
	}
	if c.Scale.MinAnchorFacts < 1 {
		problems = append(problems, "scale.min_anchor_facts must be >= 1")
	}
	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
