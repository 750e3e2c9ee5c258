package config

import (
	"os"

	"github.com/PozdnyakovE/foodgram/logger"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// Config holds the application configuration loaded from YAML with
// environment variable overrides on top.
type Config struct {
	Server         ServerConfig   `yaml:"server"`
	PostgresConfig PostgresConfig `yaml:"database"`
	RedisConfig    RedisConfig    `yaml:"redis"`
	JWTSecretKey   string         `yaml:"jwt_secret"`
	MediaRoot      string         `yaml:"media_root"`
}

type ServerConfig struct {
	Port    string `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Port     string `yaml:"port"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig configures the optional catalog cache. An empty Addr disables
// caching entirely.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GetEnv returns the value of the environment variable key, falling back to
// def when it is unset or empty.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ReadConfig reads the configuration from the YAML file and applies
// environment overrides.
func ReadConfig(filePath string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Error("unable to read config file", zap.Error(err))
		return nil, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		logger.Error("unable to unmarshal YAML", zap.Error(err))
		return nil, err
	}

	config.applyEnv()
	return &config, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = GetEnv("PORT", c.Server.Port)
	c.Server.BaseURL = GetEnv("BASE_URL", c.Server.BaseURL)
	c.PostgresConfig.Host = GetEnv("DB_HOST", c.PostgresConfig.Host)
	c.PostgresConfig.User = GetEnv("DB_USER", c.PostgresConfig.User)
	c.PostgresConfig.Password = GetEnv("DB_PASSWORD", c.PostgresConfig.Password)
	c.PostgresConfig.DBName = GetEnv("DB_NAME", c.PostgresConfig.DBName)
	c.PostgresConfig.Port = GetEnv("DB_PORT", c.PostgresConfig.Port)
	c.PostgresConfig.SSLMode = GetEnv("DB_SSLMODE", c.PostgresConfig.SSLMode)
	c.RedisConfig.Addr = GetEnv("REDIS_ADDR", c.RedisConfig.Addr)
	c.RedisConfig.Password = GetEnv("REDIS_PASSWORD", c.RedisConfig.Password)
	c.JWTSecretKey = GetEnv("JWT_SECRET", c.JWTSecretKey)
	c.MediaRoot = GetEnv("MEDIA_ROOT", c.MediaRoot)
}
