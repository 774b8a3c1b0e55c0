package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendResty = "resty"
	BackendFiber = "fiber"
)

type Config struct {
	BaseURL               string
	AuthToken             string
	Backend               string
	Size                  int
	RequestTimeout        time.Duration
	DialTimeout           time.Duration
	TlsTimeout            time.Duration
	IdleConnTimeout       time.Duration
	MaxConnsPerHost       int
	InsecureSkipVerify    bool
	ResponseHeaderTimeout time.Duration

	// RateLimit is requests per second across the whole pool, 0 disables it.
	RateLimit float64
	RateBurst int

	LogLevel  string
	LogFormat string

	TaskPollInterval time.Duration
	TaskPollTimeout  time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:               "http://localhost:5678/api/v1",
		Backend:               BackendResty,
		Size:                  4,
		RequestTimeout:        30 * time.Second,
		DialTimeout:           5 * time.Second,
		TlsTimeout:            5 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		MaxConnsPerHost:       4,
		InsecureSkipVerify:    false,
		ResponseHeaderTimeout: 0,
		RateBurst:             1,
		LogLevel:              "info",
		LogFormat:             "text",
		TaskPollInterval:      2 * time.Second,
		TaskPollTimeout:       2 * time.Minute,
	}
}

// Load starts from DefaultConfig and applies an optional .env file and POSE_* variables.
func Load() (Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	d := DefaultConfig()
	cfg := Config{
		BaseURL:               getEnv("POSE_API_BASE_URL", d.BaseURL),
		AuthToken:             getEnv("POSE_API_TOKEN", d.AuthToken),
		Backend:               strings.ToLower(getEnv("POSE_HTTP_BACKEND", d.Backend)),
		Size:                  getEnvInt("POSE_POOL_SIZE", d.Size),
		RequestTimeout:        getEnvDuration("POSE_REQUEST_TIMEOUT", d.RequestTimeout),
		DialTimeout:           getEnvDuration("POSE_DIAL_TIMEOUT", d.DialTimeout),
		TlsTimeout:            getEnvDuration("POSE_TLS_TIMEOUT", d.TlsTimeout),
		IdleConnTimeout:       getEnvDuration("POSE_IDLE_CONN_TIMEOUT", d.IdleConnTimeout),
		MaxConnsPerHost:       getEnvInt("POSE_MAX_CONNS_PER_HOST", d.MaxConnsPerHost),
		InsecureSkipVerify:    getEnvBool("POSE_INSECURE_SKIP_VERIFY", d.InsecureSkipVerify),
		ResponseHeaderTimeout: getEnvDuration("POSE_RESPONSE_HEADER_TIMEOUT", d.ResponseHeaderTimeout),
		RateLimit:             getEnvFloat("POSE_RATE_LIMIT", d.RateLimit),
		RateBurst:             getEnvInt("POSE_RATE_BURST", d.RateBurst),
		LogLevel:              getEnv("LOG_LEVEL", d.LogLevel),
		LogFormat:             getEnv("LOG_FORMAT", d.LogFormat),
		TaskPollInterval:      getEnvDuration("POSE_TASK_POLL_INTERVAL", d.TaskPollInterval),
		TaskPollTimeout:       getEnvDuration("POSE_TASK_POLL_TIMEOUT", d.TaskPollTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base URL is required")
	}
	switch c.Backend {
	case BackendResty, BackendFiber:
	default:
		return fmt.Errorf("config: unsupported backend %q", c.Backend)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rate limit must not be negative, got %v", c.RateLimit)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return f
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return def
}
