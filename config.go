package mergen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/poiesic/mergen/ai"
	"github.com/poiesic/mergen/cache"
	"github.com/poiesic/mergen/location"
)

// Interpreter kinds accepted by Config.Interpreter.
const (
	InterpreterKeyword = "keyword"
	InterpreterLLM     = "llm"
)

const groqHost = "https://api.groq.com/openai/v1"

// Config holds the settings needed to build a TravelCore.
type Config struct {
	// DataDir holds the catalog files and, by default, the hotel index.
	DataDir string

	// IndexPath is the badger directory of the hotel index.
	// Default: <DataDir>/index
	IndexPath string

	HotelsPath    string
	FlightsPath   string
	TransfersPath string

	// HomeAirport is the origin used when a query names none.
	HomeAirport string

	// Interpreter selects how queries are read: "keyword" or "llm".
	Interpreter string

	// PoolSize bounds the per-hotel selection workers.
	PoolSize int

	// RedisAddr enables the plan cache when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	AI *ai.Config
}

// DefaultConfig returns a Config reading catalogs from ./data with the
// keyword interpreter and no plan cache.
func DefaultConfig() *Config {
	cfg := &Config{
		HomeAirport: location.HomeAirport,
		Interpreter: InterpreterKeyword,
		PoolSize:    4,
		CacheTTL:    cache.DefaultTTL,
		AI:          ai.DefaultConfig(),
	}
	cfg.SetDataDir("data")
	return cfg
}

// SetDataDir points the index and the three catalogs at files under dir.
func (c *Config) SetDataDir(dir string) {
	c.DataDir = dir
	c.IndexPath = filepath.Join(dir, "index")
	c.HotelsPath = filepath.Join(dir, "hotels.json")
	c.FlightsPath = filepath.Join(dir, "flights.json")
	c.TransfersPath = filepath.Join(dir, "transfers.json")
}

// ConfigFromEnv loads a .env file when present and overlays MERGEN_*
// variables on DefaultConfig. GROQ_API_KEY switches completions to Groq;
// OPENAI_API_KEY is used as the key otherwise.
func ConfigFromEnv() (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if dir := os.Getenv("MERGEN_DATA_DIR"); dir != "" {
		cfg.SetDataDir(dir)
	}
	cfg.IndexPath = getEnv("MERGEN_INDEX_PATH", cfg.IndexPath)
	cfg.HotelsPath = getEnv("MERGEN_HOTELS", cfg.HotelsPath)
	cfg.FlightsPath = getEnv("MERGEN_FLIGHTS", cfg.FlightsPath)
	cfg.TransfersPath = getEnv("MERGEN_TRANSFERS", cfg.TransfersPath)
	cfg.HomeAirport = getEnv("MERGEN_HOME_AIRPORT", cfg.HomeAirport)
	cfg.Interpreter = getEnv("MERGEN_INTERPRETER", cfg.Interpreter)
	cfg.RedisAddr = getEnv("MERGEN_REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("MERGEN_REDIS_PASSWORD", "")

	var err error
	if cfg.PoolSize, err = getInt("MERGEN_POOL_SIZE", cfg.PoolSize); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("MERGEN_REDIS_DB", 0); err != nil {
		return nil, err
	}
	if v := os.Getenv("MERGEN_CACHE_TTL"); v != "" {
		if cfg.CacheTTL, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("MERGEN_CACHE_TTL: %w", err)
		}
	}

	cfg.AI.EmbeddingHost = getEnv("MERGEN_EMBEDDING_HOST", cfg.AI.EmbeddingHost)
	cfg.AI.EmbeddingModel = getEnv("MERGEN_EMBEDDING_MODEL", cfg.AI.EmbeddingModel)
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		cfg.AI.APIKey = key
		cfg.AI.CompletionHost = groqHost
		cfg.AI.CompletionModel = "llama-3.3-70b-versatile"
	} else {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	cfg.AI.CompletionHost = getEnv("MERGEN_COMPLETION_HOST", cfg.AI.CompletionHost)
	cfg.AI.CompletionModel = getEnv("MERGEN_COMPLETION_MODEL", cfg.AI.CompletionModel)

	return cfg, cfg.Validate()
}

// Validate checks the planner settings. AI settings are validated when the
// provider is created.
func (c *Config) Validate() error {
	if c.HotelsPath == "" {
		return errors.New("config: HotelsPath is required")
	}
	if c.IndexPath == "" {
		return errors.New("config: IndexPath is required")
	}
	if c.Interpreter != InterpreterKeyword && c.Interpreter != InterpreterLLM {
		return fmt.Errorf("%w: %q", ErrUnknownInterpreter, c.Interpreter)
	}
	if !location.IsKnownAirport(c.HomeAirport) {
		return fmt.Errorf("config: unknown home airport %q", c.HomeAirport)
	}
	if c.PoolSize < 1 {
		return errors.New("config: PoolSize must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
