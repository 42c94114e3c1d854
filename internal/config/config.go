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
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Upload  UploadConfig  `yaml:"upload" mapstructure:"upload"`
	Geodesy GeodesyConfig `yaml:"geodesy" mapstructure:"geodesy"`
	Export  ExportConfig  `yaml:"export" mapstructure:"export"`
	Parse   ParseConfig   `yaml:"parse" mapstructure:"parse"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// UploadConfig bounds the datasets accepted for validation.
type UploadConfig struct {
	MaxFileSizeMB int `yaml:"max_file_size_mb" mapstructure:"max_file_size_mb"`
}

// MaxFileSize returns the per-file limit in bytes.
func (u UploadConfig) MaxFileSize() int64 {
	return int64(u.MaxFileSizeMB) * 1024 * 1024
}

// GeodesyConfig holds defaults for the geo subcommands.
type GeodesyConfig struct {
	BufferSegments int     `yaml:"buffer_segments" mapstructure:"buffer_segments"`
	ClusterRadiusM float64 `yaml:"cluster_radius_m" mapstructure:"cluster_radius_m"`
}

// ExportConfig configures convert output.
type ExportConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
	Minify bool   `yaml:"minify" mapstructure:"minify"`
}

// ParseConfig configures dataset parsing.
type ParseConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("geokit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("upload.max_file_size_mb", 50)
	v.SetDefault("geodesy.buffer_segments", 32)
	v.SetDefault("geodesy.cluster_radius_m", 100.0)
	v.SetDefault("export.format", "geojson")
	v.SetDefault("export.minify", false)
	v.SetDefault("parse.concurrency", 4)

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

// Validate checks value ranges. All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	if c.Upload.MaxFileSizeMB <= 0 {
		problems = append(problems, "upload.max_file_size_mb must be > 0")
	}
	if c.Geodesy.BufferSegments < 3 {
		problems = append(problems, "geodesy.buffer_segments must be >= 3")
	}
	if c.Geodesy.ClusterRadiusM < 0 {
		problems = append(problems, "geodesy.cluster_radius_m must be >= 0")
	}
	switch strings.ToLower(c.Export.Format) {
	case "geojson", "csv", "kml", "shp":
	default:
		problems = append(problems, "export.format must be one of geojson, csv, kml, shp")
	}
	if c.Parse.Concurrency < 1 || c.Parse.Concurrency > 64 {
		problems = append(problems, "parse.concurrency must be between 1 and 64")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger replaces the global zap logger. Format is "json" (the default)
// or "console"; every entry carries app=geokit.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	case "json", "":
		zapCfg = zap.NewProductionConfig()
	default:
		return eris.Errorf("config: unknown log format %q (want json or console)", cfg.Format)
	}
	zapCfg.InitialFields = map[string]any{"app": "geokit"}

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
