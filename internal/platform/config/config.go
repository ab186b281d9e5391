package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures process level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	DefaultChainID uint64
	ChainsDir      string

	CacheTTL      time.Duration
	CacheCapacity int

	SourceTimeout  time.Duration
	ResolveTimeout time.Duration

	IPFSGateway          string
	EASRequestsPerSecond float64

	Redis RedisConfig
}

// RedisConfig configures the optional shared cache tier. An empty URL disables it.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Defaults applied when the environment leaves a value unset.
const (
	DefaultAddr                 = ":8080"
	DefaultChainID              = 1
	DefaultCacheTTL             = 5 * time.Minute
	DefaultCacheCapacity        = 10_000
	DefaultSourceTimeout        = 5 * time.Second
	DefaultResolveTimeout       = 10 * time.Second
	DefaultIPFSGateway          = "https://ipfs.io/ipfs/"
	DefaultEASRequestsPerSecond = 10
)

// LoadDotEnv primes the environment from a .env file when one exists in the
// working directory. Variables already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	cfg := Server{
		Addr:        envOr("NAMEPLATE_ADDR", DefaultAddr),
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "json"),
		ChainsDir:   os.Getenv("CHAINS_DIR"),
		IPFSGateway: envOr("IPFS_GATEWAY", DefaultIPFSGateway),
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
	}

	var err error
	if cfg.DefaultChainID, err = uintEnv("DEFAULT_CHAIN_ID", DefaultChainID); err != nil {
		return Server{}, err
	}
	if cfg.DefaultChainID == 0 {
		return Server{}, fmt.Errorf("DEFAULT_CHAIN_ID must be positive")
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", DefaultCacheTTL); err != nil {
		return Server{}, err
	}
	if cfg.CacheCapacity, err = intEnv("CACHE_CAPACITY", DefaultCacheCapacity); err != nil {
		return Server{}, err
	}
	if cfg.SourceTimeout, err = durationEnv("SOURCE_TIMEOUT", DefaultSourceTimeout); err != nil {
		return Server{}, err
	}
	if cfg.ResolveTimeout, err = durationEnv("RESOLVE_TIMEOUT", DefaultResolveTimeout); err != nil {
		return Server{}, err
	}
	if cfg.EASRequestsPerSecond, err = floatEnv("EAS_REQUESTS_PER_SECOND", DefaultEASRequestsPerSecond); err != nil {
		return Server{}, err
	}

	if cfg.Redis.PoolSize, err = intEnv("REDIS_POOL_SIZE", 10); err != nil {
		return Server{}, err
	}
	if cfg.Redis.MinIdleConns, err = intEnv("REDIS_MIN_IDLE_CONNS", 2); err != nil {
		return Server{}, err
	}
	if cfg.Redis.DialTimeout, err = durationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.ReadTimeout, err = durationEnv("REDIS_READ_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}
	if cfg.Redis.WriteTimeout, err = durationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second); err != nil {
		return Server{}, err
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: invalid duration %q", key, raw)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func uintEnv(key string, fallback uint64) (uint64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return n, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s: invalid rate %q", key, raw)
	}
	return f, nil
}
