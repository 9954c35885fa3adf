package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	Store      string // "sqlite" | "redis"
	SQLitePath string // ex: ~/.config/myshortcuts/bookmarks.db

	SeedFile          string        // optional YAML seed (empty = seeding disabled)
	FallbackSearchURL string        // web search used when nothing matches, must contain %s
	ReloadInterval    time.Duration // snapshot refresh interval (default: 1m)
	PublicURL         string        // external base URL, used in opensearch.xml

	// Redis (only read when Store == "redis")
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // dial timeout
	RedisRT               time.Duration // read timeout
	RedisWT               time.Duration // write timeout
	RedisMaxWait          time.Duration // max wait between retries
	RedisPingTimeout      time.Duration // timeout for each ping attempt
	RedisPoolSize         int           // connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting
	RedisRetryInterval    time.Duration // initial wait between retries, grows exponentially
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	RateLimitBurst  int // write endpoints: bucket size per client IP
	RateLimitPerMin int // write endpoints: refill per minute per client IP
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MYSHORTCUTS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MYSHORTCUTS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MYSHORTCUTS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MYSHORTCUTS_PRETTY_LOG", true),

		// Storage
		Store:      strings.ToLower(getenv("MYSHORTCUTS_STORE", StoreSQLite)),
		SQLitePath: getenv("MYSHORTCUTS_SQLITE_PATH", defaultSQLitePath()),

		// Sources
		SeedFile:          getenv("MYSHORTCUTS_SEED_FILE", ""),
		FallbackSearchURL: getenv("MYSHORTCUTS_FALLBACK_SEARCH_URL", "https://www.google.com/search?q=%s"),
		ReloadInterval:    mustDuration("MYSHORTCUTS_RELOAD_INTERVAL", time.Minute),
		PublicURL:         strings.TrimRight(getenv("MYSHORTCUTS_PUBLIC_URL", ""), "/"),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("MYSHORTCUTS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: splitAndTrim(getenv("MYSHORTCUTS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("MYSHORTCUTS_TRUST_PROXY", false),

		RateLimitBurst:  getenvInt("MYSHORTCUTS_RATE_LIMIT_BURST", 10),
		RateLimitPerMin: getenvInt("MYSHORTCUTS_RATE_LIMIT_PER_MIN", 30),
	}

	switch cfg.Store {
	case StoreSQLite:
	case StoreRedis:
		loadRedis(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: MYSHORTCUTS_STORE must be %q or %q, got %q", StoreSQLite, StoreRedis, cfg.Store))
	}

	if !strings.Contains(cfg.FallbackSearchURL, "%s") {
		panic("❌ FATAL: MYSHORTCUTS_FALLBACK_SEARCH_URL must contain the %s placeholder")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadRedis(cfg *Config) {
	cfg.RedisAddr = requireEnv("MYSHORTCUTS_REDIS_ADDR")
	cfg.RedisUser = getenv("MYSHORTCUTS_REDIS_USERNAME", "")
	cfg.RedisPasswordRequired = mustBool("MYSHORTCUTS_REDIS_PASSWORD_REQUIRED", false)
	cfg.RedisPassword = getenv("MYSHORTCUTS_REDIS_PASSWORD", "")
	cfg.RedisDB = getenvInt("MYSHORTCUTS_REDIS_DB", 0)
	cfg.RedisDT = mustDuration("MYSHORTCUTS_REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("MYSHORTCUTS_REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("MYSHORTCUTS_REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("MYSHORTCUTS_REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("MYSHORTCUTS_REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("MYSHORTCUTS_REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("MYSHORTCUTS_REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("MYSHORTCUTS_REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("MYSHORTCUTS_REDIS_WARN_THRESHOLD", 3)

	if cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("❌ FATAL: MYSHORTCUTS_REDIS_PASSWORD is required when MYSHORTCUTS_REDIS_PASSWORD_REQUIRED=true")
	}
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookmarks.db"
	}
	return filepath.Join(home, ".config", "myshortcuts", "bookmarks.db")
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
