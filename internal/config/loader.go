package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Defaults returns the built-in default configuration.
func Defaults() Config {
	return Config{
		Postgres: PostgresConfig{
			Port:         5432,
			SSLMode:      "disable",
			PoolMaxConns: 8,
			PoolMinConns: 2,
		},
		Redis: RedisConfig{
			Addr:            "localhost:6379",
			PoolSize:        10,
			CacheTTLMinutes: 5,
		},
		Assist: AssistConfig{
			BaseURL:   "https://api.omnidimension.ai/v1",
			ChatModel: "gpt-4",
			TTSModel:  "tts-1",
			Voice:     "nova",
		},
		Server: ServerConfig{
			Port:            8080,
			RateLimitPerMin: 120,
		},
		Mode:     "serve",
		LogLevel: "info",
	}
}

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies SNEAKDEAL_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known SNEAKDEAL_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "SNEAKDEAL_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "SNEAKDEAL_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "SNEAKDEAL_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "SNEAKDEAL_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "SNEAKDEAL_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "SNEAKDEAL_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "SNEAKDEAL_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "SNEAKDEAL_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "SNEAKDEAL_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "SNEAKDEAL_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "SNEAKDEAL_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "SNEAKDEAL_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "SNEAKDEAL_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "SNEAKDEAL_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "SNEAKDEAL_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "SNEAKDEAL_REDIS_TLS_ENABLED")
	setInt(&cfg.Redis.CacheTTLMinutes, "SNEAKDEAL_REDIS_CACHE_TTL_MINUTES")

	// ── S3 ──
	setStr(&cfg.S3.Endpoint, "SNEAKDEAL_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "SNEAKDEAL_S3_REGION")
	setStr(&cfg.S3.Bucket, "SNEAKDEAL_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "SNEAKDEAL_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "SNEAKDEAL_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "SNEAKDEAL_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "SNEAKDEAL_S3_FORCE_PATH_STYLE")

	// ── Assist ──
	setStr(&cfg.Assist.BaseURL, "SNEAKDEAL_ASSIST_BASE_URL")
	setStr(&cfg.Assist.APIKey, "SNEAKDEAL_ASSIST_API_KEY")
	setStr(&cfg.Assist.APIKey, "OMNIDIMENSION_API_KEY") // compatibility alias
	setStr(&cfg.Assist.ChatModel, "SNEAKDEAL_ASSIST_CHAT_MODEL")
	setStr(&cfg.Assist.TTSModel, "SNEAKDEAL_ASSIST_TTS_MODEL")
	setStr(&cfg.Assist.Voice, "SNEAKDEAL_ASSIST_VOICE")

	// ── Server ──
	setInt(&cfg.Server.Port, "SNEAKDEAL_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "SNEAKDEAL_SERVER_CORS_ORIGINS")
	setStr(&cfg.Server.APIKey, "SNEAKDEAL_SERVER_API_KEY")
	setInt(&cfg.Server.RateLimitPerMin, "SNEAKDEAL_SERVER_RATE_LIMIT_PER_MIN")

	// ── Top-level ──
	setStr(&cfg.Mode, "SNEAKDEAL_MODE")
	setStr(&cfg.LogLevel, "SNEAKDEAL_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
