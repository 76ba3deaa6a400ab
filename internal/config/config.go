package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/omerorhan/currency-converter/internal/service"
)

const (
	envRatesURL      = "CONVERTER_RATES_URL"
	envRatesAuth     = "CONVERTER_RATES_AUTH"
	envCountriesPath = "CONVERTER_COUNTRIES_PATH"
	envRedisAddr     = "CONVERTER_REDIS_ADDR"
	envLogging       = "CONVERTER_LOGGING"
	envLoadTimeout   = "CONVERTER_LOAD_TIMEOUT"
	envWriteTimeout  = "CONVERTER_WRITE_TIMEOUT"
)

// Config is the converter configuration read from the environment.
type Config struct {
	RatesURL      string
	RatesAuth     string
	CountriesPath string
	RedisAddr     string
	Logging       bool
	LoadTimeout   time.Duration
	WriteTimeout  time.Duration
}

// Load reads the given .env files (".env" when none) into the process
// environment, without overriding variables already set, then parses the
// configuration. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv parses the configuration from the process environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		RatesURL:      os.Getenv(envRatesURL),
		RatesAuth:     os.Getenv(envRatesAuth),
		CountriesPath: os.Getenv(envCountriesPath),
		RedisAddr:     os.Getenv(envRedisAddr),
		Logging:       true,
	}
	if cfg.RatesURL == "" {
		return nil, fmt.Errorf("%s is required", envRatesURL)
	}

	if v := os.Getenv(envLogging); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", envLogging, err)
		}
		cfg.Logging = b
	}

	var err error
	if cfg.LoadTimeout, err = duration(envLoadTimeout); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = duration(envWriteTimeout); err != nil {
		return nil, err
	}
	return cfg, nil
}

func duration(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// Options turns the configuration into service options. Zero values keep the service defaults.
func (c *Config) Options() []service.ServiceOption {
	opts := []service.ServiceOption{
		service.WithRatesURL(c.RatesURL, c.RatesAuth),
		service.WithLogging(c.Logging),
	}
	if c.CountriesPath != "" {
		opts = append(opts, service.WithCountriesPath(c.CountriesPath))
	}
	if c.RedisAddr != "" {
		opts = append(opts, service.WithRedisConfig(c.RedisAddr))
	}
	if c.LoadTimeout > 0 {
		opts = append(opts, service.WithInitialLoadTimeout(c.LoadTimeout))
	}
	if c.WriteTimeout > 0 {
		opts = append(opts, service.WithWriteTimeout(c.WriteTimeout))
	}
	return opts
}
