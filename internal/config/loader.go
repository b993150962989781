package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads the configuration from file and environment variables.
// Environment variables use the KYC_ prefix with underscores for nesting,
// e.g. KYC_DATABASE_HOST overrides database.host.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/kyc/")
	v.AddConfigPath(".")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults plus environment cover it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("KYC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("server.enable_pprof", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "kyc")
	// Empty defaults register the key with viper so environment-only values
	// survive Unmarshal.
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "kyc")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", 3600)
	v.SetDefault("database.max_conn_idle_time", 600)
	v.SetDefault("database.conn_timeout", 10)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.topic", "kyc.audit")

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "kyc-service")
	v.SetDefault("jwt.session_ttl", 28800) // 8 hours

	v.SetDefault("auth.max_login_attempts", 3)
	v.SetDefault("auth.lockout_window", 900)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output_path", "stdout")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", "kyc-service")
	v.SetDefault("tracing.sample_ratio", 0.1)
}
