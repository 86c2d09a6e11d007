package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/forest"
	"github.com/abhisek/mindcheck/internal/rules"
)

// Config holds process-wide settings shared by every shell.
type Config struct {
	// Strategy selects the decision strategy: "rules" or "forest".
	Strategy string

	// ContentSet selects the recommendation wording.
	ContentSet string

	// ModelDir holds the forest artifacts. Required for the forest strategy.
	ModelDir string

	// DB is the history database path or DSN. Empty means the default path.
	DB string

	// Addr is the HTTP listen address for the network shell.
	Addr string

	LogLevel  string
	LogFormat string // json | console
	LogFile   string

	Redis RedisConfig

	// Coach enables LLM-written notes alongside the canned recommendation.
	Coach    bool
	CoachTTL time.Duration
}

// RedisConfig points at the optional note cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Strategy:   rules.StrategyName,
		ContentSet: advice.SetClinical,
		ModelDir:   "model",
		Addr:       ":5000",
		LogLevel:   "info",
		LogFormat:  "json",
		CoachTTL:   24 * time.Hour,
	}
}

// Load applies, in increasing priority: defaults, the env file (when it
// exists), and MINDCHECK_* environment variables. A missing env file is only
// an error when one was named explicitly.
func Load(envFile string) (Config, error) {
	path := envFile
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if envFile != "" || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Strategy, "MINDCHECK_STRATEGY")
	setString(&c.ContentSet, "MINDCHECK_CONTENT")
	setString(&c.ModelDir, "MINDCHECK_MODEL_DIR")
	setString(&c.DB, "MINDCHECK_DB")
	setString(&c.Addr, "MINDCHECK_ADDR")
	setString(&c.LogLevel, "MINDCHECK_LOG_LEVEL")
	setString(&c.LogFormat, "MINDCHECK_LOG_FORMAT")
	setString(&c.LogFile, "MINDCHECK_LOG_FILE")
	setString(&c.Redis.Addr, "MINDCHECK_REDIS_ADDR")
	setString(&c.Redis.Password, "MINDCHECK_REDIS_PASSWORD")

	// PORT is what most hosting platforms inject.
	if p := os.Getenv("PORT"); p != "" && os.Getenv("MINDCHECK_ADDR") == "" {
		c.Addr = ":" + p
	}

	if v := os.Getenv("MINDCHECK_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MINDCHECK_REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	if v := os.Getenv("MINDCHECK_COACH"); v != "" {
		on, err := parseSwitch(v)
		if err != nil {
			return fmt.Errorf("MINDCHECK_COACH: %w", err)
		}
		c.Coach = on
	}
	if v := os.Getenv("MINDCHECK_COACH_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MINDCHECK_COACH_TTL: %w", err)
		}
		c.CoachTTL = d
	}
	return nil
}

// Validate rejects unknown strategy and content set names.
func (c Config) Validate() error {
	switch c.Strategy {
	case rules.StrategyName:
	case forest.StrategyName:
		if c.ModelDir == "" {
			return fmt.Errorf("the %s strategy needs a model directory", forest.StrategyName)
		}
	default:
		return fmt.Errorf("unknown strategy %q (want %s or %s)", c.Strategy, rules.StrategyName, forest.StrategyName)
	}
	if _, err := advice.Lookup(c.ContentSet); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseSwitch(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "on", "true", "yes":
		return true, nil
	case "0", "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid switch %q", v)
}
