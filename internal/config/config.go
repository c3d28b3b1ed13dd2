package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	LogConfig     logger.LogConfig `json:"log_config"`
	Database      DatabaseConfig   `json:"database"`
	AI            AIConfig         `json:"ai"`
	Vector        VectorConfig     `json:"vector"`
	Jobs          JobsConfig       `json:"jobs"`
	SeedStore     SeedStoreConfig  `json:"seed_store"`
}

type DatabaseConfig struct {
	DSN          string `json:"dsn"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	User         string `json:"user"`
	Password     string `json:"password"`
	DBName       string `json:"db_name"`
	SSLMode      string `json:"ssl_mode"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type AIConfig struct {
	Provider      string      `json:"provider"`
	Model         string      `json:"model"`
	EmbedModel    string      `json:"embed_model"`
	EmbedDim      int         `json:"embed_dim"`
	Timeout       int         `json:"timeout"`
	MaxInputChars int         `json:"max_input_chars"`
	Data          interface{} `json:"data"`
	// Fallbacks are tried in order when the primary embedder fails. Their
	// embed dimension must match the primary's; unset values inherit it.
	Fallbacks []AIConfig `json:"fallbacks"`
}

type VectorConfig struct {
	ChunkSize        int     `json:"chunk_size"`
	ChunkOverlap     int     `json:"chunk_overlap"`
	DefaultLimit     int     `json:"default_limit"`
	DefaultThreshold float64 `json:"default_threshold"`
	CacheSize        int     `json:"cache_size"`
	CacheTTL         int     `json:"cache_ttl"`
}

type JobsConfig struct {
	VectorSyncSpec   string `json:"vector_sync_spec"`
	VectorSyncBatch  int    `json:"vector_sync_batch"`
	DraftRateLimitMs int    `json:"draft_rate_limit_ms"`
}

type SeedStoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Provider == "" {
		return nil, fmt.Errorf("ai.provider is required")
	}
	if cfg.AI.EmbedModel == "" {
		return nil, fmt.Errorf("ai.embed_model is required")
	}
	if cfg.AI.EmbedDim == 0 {
		cfg.AI.EmbedDim = 384
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 30
	}
	if cfg.Vector.ChunkSize == 0 {
		cfg.Vector.ChunkSize = 250
	}
	if cfg.Vector.ChunkOverlap == 0 {
		cfg.Vector.ChunkOverlap = 50
	}
	if cfg.Vector.ChunkSize <= cfg.Vector.ChunkOverlap {
		return nil, fmt.Errorf("vector.chunk_size must be greater than vector.chunk_overlap")
	}
	if cfg.Vector.DefaultLimit == 0 {
		cfg.Vector.DefaultLimit = 5
	}
	if cfg.Vector.DefaultThreshold == 0 {
		cfg.Vector.DefaultThreshold = 0.5
	}
	if cfg.Vector.CacheSize == 0 {
		cfg.Vector.CacheSize = 1024
	}
	if cfg.Vector.CacheTTL == 0 {
		cfg.Vector.CacheTTL = 3600
	}
	if cfg.Jobs.VectorSyncBatch == 0 {
		cfg.Jobs.VectorSyncBatch = 20
	}
	if cfg.SeedStore.Type == "" {
		cfg.SeedStore.Type = "local"
	}
	return &cfg, nil
}
