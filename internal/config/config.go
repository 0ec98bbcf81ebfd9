package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RABBET_LOG_LEVEL
const EnvPrefix = "RABBET"

type Config struct {
	Format    string `mapstructure:"format"`
	Delimiter string `mapstructure:"delimiter"`

	Log LogConfig `mapstructure:"log"`

	Table TableConfig `mapstructure:"table"`

	Join struct {
		LegacyProvenance bool `mapstructure:"legacy_provenance"`
	} `mapstructure:"join"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Source bool   `mapstructure:"source"`
	SeqURL string `mapstructure:"seq_url"`
}

// TableConfig overrides the detected table layout; zero means "detect"
type TableConfig struct {
	Width   int  `mapstructure:"width"`
	MaxRows int  `mapstructure:"max_rows"`
	StrLen  int  `mapstructure:"str_len"`
	MaxCols int  `mapstructure:"max_cols"`
	Force   bool `mapstructure:"force"`

	// Output mirrors RABBET_TABLE_OUTPUT; any non-empty value forces table output
	Output string `mapstructure:"output"`
}

// Forced reports whether auto format should always render a table
func (t TableConfig) Forced() bool {
	return t.Force || t.Output != ""
}

// Load reads defaults, then the config file, then RABBET_* environment variables.
// An empty path looks for <user config dir>/rabbet/config.yaml and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("table.output", "RABBET_TABLE_OUTPUT"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(dir, "rabbet"))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("format", "auto")
	v.SetDefault("delimiter", ",")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.source", false)
	v.SetDefault("log.seq_url", "")
	v.SetDefault("table.width", 0)
	v.SetDefault("table.max_rows", 0)
	v.SetDefault("table.str_len", 0)
	v.SetDefault("table.max_cols", 0)
	v.SetDefault("table.force", false)
	v.SetDefault("table.output", "")
	v.SetDefault("join.legacy_provenance", false)
}
