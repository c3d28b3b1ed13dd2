package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost", "port": 5432, "user": "crm", "password": "crm", "db_name": "crm"},
		"ai": {"provider": "gemini", "model": "gemini-2.0-flash", "embed_model": "text-embedding-004"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 384, cfg.AI.EmbedDim)
	require.Equal(t, 30, cfg.AI.Timeout)
	require.Equal(t, 250, cfg.Vector.ChunkSize)
	require.Equal(t, 50, cfg.Vector.ChunkOverlap)
	require.Equal(t, 5, cfg.Vector.DefaultLimit)
	require.Equal(t, 0.5, cfg.Vector.DefaultThreshold)
	require.Equal(t, 1024, cfg.Vector.CacheSize)
	require.Equal(t, 10, cfg.Database.MaxOpenConns)
	require.Equal(t, "local", cfg.SeedStore.Type)
	require.Equal(t, "info", cfg.LogConfig.Level)
}

func TestLoadRejectsMissingPort(t *testing.T) {
	path := writeConfig(t, `{
		"database": {"host": "localhost"},
		"ai": {"provider": "gemini", "embed_model": "text-embedding-004"}
	}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingDatabase(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"ai": {"provider": "gemini", "embed_model": "text-embedding-004"}
	}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadChunkWindow(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost"},
		"ai": {"provider": "gemini", "embed_model": "text-embedding-004"},
		"vector": {"chunk_size": 50, "chunk_overlap": 50}
	}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingEmbedModel(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"database": {"host": "localhost"},
		"ai": {"provider": "gemini"}
	}`)
	_, err := Load(path)
	require.Error(t, err)
}
