package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/restdoc/assembler"
	"github.com/erraggy/restdoc/generator"
	"github.com/erraggy/restdoc/synthesizer"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Model cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Generation defaults.
	CollisionStrategy string
	NamingStrategy    string
	Concurrency       int
	Validate          bool

	// Inspect tool defaults.
	InspectLimit int
	MaxLimit     int

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from RESTDOC_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("RESTDOC_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("RESTDOC_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("RESTDOC_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("RESTDOC_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("RESTDOC_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("RESTDOC_CACHE_SWEEP_INTERVAL", 60*time.Second),
		CollisionStrategy:  envCollisionStrategy("RESTDOC_COLLISION_STRATEGY"),
		NamingStrategy:     envNamingStrategy("RESTDOC_NAMING_STRATEGY"),
		Concurrency:        envInt("RESTDOC_CONCURRENCY", generator.DefaultConcurrency),
		Validate:           envBool("RESTDOC_VALIDATE", true),
		InspectLimit:       envInt("RESTDOC_INSPECT_LIMIT", 100),
		MaxLimit:           envInt("RESTDOC_MAX_LIMIT", 1000),
		MaxInlineSize:      int64(envInt("RESTDOC_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("RESTDOC_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return n
}

func envCollisionStrategy(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if !assembler.IsValidStrategy(v) {
		slog.Warn("invalid strategy env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}

func envNamingStrategy(key string) string {
	v := os.Getenv(key)
	if v == "" {
		return ""
	}
	if _, err := synthesizer.ParseSchemaNaming(v); err != nil {
		slog.Warn("invalid naming strategy env var, ignoring", "key", key, "value", v)
		return ""
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback)
		return fallback
	}
	return d
}
