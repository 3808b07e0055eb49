package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	HighUsageThresholdBytes uint64   `mapstructure:"high_usage_threshold_bytes"`
	ExtraSuspiciousNames    []string `mapstructure:"extra_suspicious_names"`
	SignatureFile           string   `mapstructure:"signature_file"`
	OutputPath              string   `mapstructure:"output_path"`
	JSONOutput              bool     `mapstructure:"json_output"`
	MaxConnsPerProcess      int      `mapstructure:"max_conns_per_process"`
	LogLevel                string   `mapstructure:"log_level"`
	LogFormat               string   `mapstructure:"log_format"`
}

func Default() *Config {
	return &Config{
		HighUsageThresholdBytes: 10_000_000,
		MaxConnsPerProcess:      5,
		LogLevel:                "warn",
		LogFormat:               "text",
	}
}

func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("hostscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("HOSTSCAN")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "Breeze")
	case "darwin":
		return "/Library/Application Support/Breeze"
	default:
		return "/etc/breeze"
	}
}
