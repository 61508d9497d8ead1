package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API          *APIConfig          `mapstructure:"api"`
	Gin          *GinConfig          `mapstructure:"gin"`
	Postgres     *PostgresConfig     `mapstructure:"postgres"`
	Redis        *RedisConfig        `mapstructure:"redis"`
	Mailer       *MailerConfig       `mapstructure:"mailer"`
	Registration *RegistrationConfig `mapstructure:"registration"`
	CheckIn      *CheckInConfig      `mapstructure:"checkin"`
}

type APIConfig struct {
	Environment        string `mapstructure:"environment"`
	BaseURL            string `mapstructure:"base_url"`
	Port               string `mapstructure:"port"`
	JWTSigningKey      string `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MailerConfig struct {
	QueueKey       string        `mapstructure:"queue_key"`
	EnqueueTimeout time.Duration `mapstructure:"enqueue_timeout"`
}

type RegistrationConfig struct {
	RequireConfirmation bool          `mapstructure:"require_confirmation"`
	TokenTTL            time.Duration `mapstructure:"token_ttl"`
	RateLimitPerMinute  int           `mapstructure:"rate_limit_per_minute"`
}

type CheckInConfig struct {
	EnforceWindow bool          `mapstructure:"enforce_window"`
	WindowGrace   time.Duration `mapstructure:"window_grace"`
}

// Load reads the YAML config file and merges environment overrides
// (e.g. API_PORT, POSTGRES_PASSWORD). The file is watched afterwards so
// config edits are visible in the logs without a restart.
func Load(configFile string) (*AppConfig, error) {
	viper.SetConfigFile(configFile)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed", zap.String("file", e.Name))

		if err := viper.Unmarshal(conf); err != nil {
			zap.L().Error("failed to reload config", zap.Error(err))
		}
	})
	viper.WatchConfig()

	return conf, nil
}
