package system

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/julianstephens/hourlog/internal/cli"
	"github.com/julianstephens/hourlog/internal/config"
	"github.com/julianstephens/hourlog/internal/storage"
)

// setupTestContext returns a context over an uninitialized store at dbName in a temp dir.
func setupTestContext(t *testing.T, dbName string) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), dbName)

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{
		Store:  store,
		Config: config.Default(),
		Out:    out,
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	return ctx, dbPath, out
}

// setupInitializedContext is setupTestContext followed by init.
func setupInitializedContext(t *testing.T, dbName string) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	ctx, dbPath, out := setupTestContext(t, dbName)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	out.Reset()
	return ctx, dbPath, out
}
