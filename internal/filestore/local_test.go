package filestore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prospectry/salescrm/internal/config"
)

func testSeedStoreConfig(dir string) config.SeedStoreConfig {
	return config.SeedStoreConfig{
		Type: "local",
		Data: map[string]interface{}{"dir": dir},
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	store, err := New(testSeedStoreConfig(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, "local", store.Type())

	payload := []byte(`{"industries":[{"name":"fintech"}]}`)
	require.NoError(t, store.Save(context.Background(), "seed.json", bytes.NewReader(payload), int64(len(payload))))

	reader, err := store.Open(context.Background(), "seed.json")
	require.NoError(t, err)
	defer reader.Close()
	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestLocalStoreRejectsPathTraversal(t *testing.T) {
	store, err := New(testSeedStoreConfig(t.TempDir()))
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "../etc/passwd")
	require.Error(t, err)
	err = store.Save(context.Background(), "a/b", bytes.NewReader(nil), 0)
	require.Error(t, err)
}

func TestUnknownStoreType(t *testing.T) {
	cfg := testSeedStoreConfig(t.TempDir())
	cfg.Type = "ftp"
	_, err := New(cfg)
	require.Error(t, err)
}
