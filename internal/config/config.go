package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Mode is the extraction mode: light or standard.
	Mode string `mapstructure:"mode" yaml:"mode"`
	// Output is the encoding of results: json or yaml.
	Output string `mapstructure:"output" yaml:"output"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
	// Charset applies to CSV inputs.
	Charset string `mapstructure:"charset" yaml:"charset"`
	// KeywordsFile points to a YAML keyword table overriding the built-in one.
	KeywordsFile string `mapstructure:"keywords_file" yaml:"keywords_file"`

	// Batch processing
	BatchConcurrency int `mapstructure:"batch_concurrency" yaml:"batch_concurrency"`
	ParseTimeoutSec  int `mapstructure:"parse_timeout_sec" yaml:"parse_timeout_sec"`

	// Uploader is recorded on ingest records produced by the CLI.
	Uploader string `mapstructure:"uploader" yaml:"uploader"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.labreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".labreport")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Command-line flags are applied
// by the caller on top of the result.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LABREPORT")
	v.AutomaticEnv()

	v.SetDefault("mode", "standard")
	v.SetDefault("output", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("charset", "")
	v.SetDefault("keywords_file", "")
	v.SetDefault("batch_concurrency", 4)
	v.SetDefault("parse_timeout_sec", 60)
	v.SetDefault("uploader", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".labreport"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.BatchConcurrency <= 0 {
		c.BatchConcurrency = 1
	}
	return &c, nil
}
