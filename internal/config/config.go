package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	EDF    EDFConfig    `yaml:"edf" mapstructure:"edf"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// EDFConfig configures the EDF inventory store connection and query pacing.
type EDFConfig struct {
	Driver             string  `yaml:"driver" mapstructure:"driver"`
	DatabaseURL        string  `yaml:"database_url" mapstructure:"database_url"`
	PageSize           int     `yaml:"page_size" mapstructure:"page_size"`
	MaxConcurrentPages int     `yaml:"max_concurrent_pages" mapstructure:"max_concurrent_pages"`
	RemotePageWorkers  int     `yaml:"remote_page_workers" mapstructure:"remote_page_workers"`
	MaxQPS             float64 `yaml:"max_qps" mapstructure:"max_qps"`
	MaxConns           int32   `yaml:"max_conns" mapstructure:"max_conns"`
}

// ReportConfig configures the TN range report build.
type ReportConfig struct {
	AccountWorkers int    `yaml:"account_workers" mapstructure:"account_workers"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	LayoutPath     string `yaml:"layout_path" mapstructure:"layout_path"`
}

// Timeout returns the per-request build deadline.
func (c ReportConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// ServerConfig configures the report server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("TNRANGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("edf.driver", "postgres")
	v.SetDefault("edf.page_size", 5000)
	v.SetDefault("edf.max_concurrent_pages", 10)
	v.SetDefault("edf.remote_page_workers", 20)
	v.SetDefault("edf.max_qps", 0)
	v.SetDefault("edf.max_conns", 20)
	v.SetDefault("report.account_workers", 8)
	v.SetDefault("report.timeout_secs", 300)
	v.SetDefault("server.port", 8080)
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
