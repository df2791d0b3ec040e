package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestStartWatcherSendsOnCatalogWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("brands: [A]\n"), 0644))

	msgs := make(chan tea.Msg, 10)
	stop, err := StartWatcher(path, func(msg tea.Msg) { msgs <- msg }, zap.NewNop())
	require.NoError(t, err)
	defer stop()

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brandpilot.log"), []byte("x"), 0644))
	select {
	case msg := <-msgs:
		t.Fatalf("unexpected message %T for unrelated file", msg)
	case <-time.After(2 * watchDebounce):
	}

	// A burst of writes produces one message
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("brands: [A, B]\n"), 0644))
	}
	select {
	case msg := <-msgs:
		require.IsType(t, CatalogChangedMsg{}, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("no CatalogChangedMsg after writing the catalog")
	}
	select {
	case <-msgs:
		t.Fatal("burst was not debounced")
	case <-time.After(2 * watchDebounce):
	}
}

func TestStartWatcherMissingDirectory(t *testing.T) {
	_, err := StartWatcher(filepath.Join(t.TempDir(), "nope", "catalog.yaml"), func(tea.Msg) {}, zap.NewNop())
	require.Error(t, err)
}
