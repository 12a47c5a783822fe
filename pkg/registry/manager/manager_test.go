package manager

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chkup/spec-tools/pkg/sel/ast"
)

const goodSchemas = `
schemas:
  ":user/email": "sel.core/string?"
  ":user/id": "sel.core/int?"
`

const badSchemas = `
schemas:
  ":user/email": ["sel.core/or", ".ok"]
`

func writeSchemaFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestManager_InitialLoad(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.yaml", goodSchemas)

	m, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	if got := m.Registry().Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if _, ok := m.Registry().Lookup(ast.ParseQName("user/email")); !ok {
		t.Error("user/email not registered")
	}

	reloadID, loadErr := m.LastLoad()
	if reloadID == "" {
		t.Error("LastLoad() reload ID is empty")
	}
	if loadErr != nil {
		t.Errorf("LastLoad() error = %v, want nil", loadErr)
	}
}

func TestManager_InitialLoadFails(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "broken.yaml", badSchemas)

	m, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Start(context.Background()); err == nil {
		t.Error("Start() error = nil, want error for broken schemas")
	}
}

func TestManager_RejectsBadReload(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "users.yaml", goodSchemas)

	m, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	firstID, _ := m.LastLoad()

	// break the file, then reload: the previous set must stay live
	if err := os.WriteFile(path, []byte(badSchemas), 0o644); err != nil {
		t.Fatalf("failed to break schema file: %v", err)
	}
	if err := m.Reload(); err == nil {
		t.Fatal("Reload() error = nil, want error")
	}

	if got := m.Registry().Len(); got != 2 {
		t.Errorf("Len() after rejected reload = %d, want 2", got)
	}
	if _, ok := m.Registry().Lookup(ast.ParseQName("user/id")); !ok {
		t.Error("user/id lost after rejected reload")
	}

	secondID, loadErr := m.LastLoad()
	if secondID == firstID {
		t.Error("reload ID unchanged after second attempt")
	}
	if loadErr == nil {
		t.Error("LastLoad() error = nil, want error")
	}
}

func TestManager_Events(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.yaml", goodSchemas)

	m, err := New(Config{Path: dir})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	select {
	case event := <-m.Events():
		if event.ID == "" {
			t.Error("event ID is empty")
		}
		if event.Schemas != 2 {
			t.Errorf("event Schemas = %d, want 2", event.Schemas)
		}
		if event.Err != nil {
			t.Errorf("event Err = %v, want nil", event.Err)
		}
	default:
		t.Fatal("no reload event published")
	}
}

func TestManager_WatchReload(t *testing.T) {
	dir := t.TempDir()
	path := writeSchemaFile(t, dir, "users.yaml", goodSchemas)

	m, err := New(Config{
		Path:             dir,
		Watch:            true,
		DebounceInterval: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer m.Stop()

	// drain the initial load event
	select {
	case <-m.Events():
	default:
	}

	time.Sleep(100 * time.Millisecond)

	updated := goodSchemas + `  ":user/name": "sel.core/string?"` + "\n"
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("failed to update schema file: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case event := <-m.Events():
			if event.Err != nil {
				t.Fatalf("reload failed: %v", event.Err)
			}
			if event.Schemas == 3 {
				return
			}
		case <-deadline:
			t.Fatalf("new schema never appeared, have %d definitions", m.Registry().Len())
		}
	}
}

func TestManager_StopClosesWatcher(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.yaml", goodSchemas)

	m, err := New(Config{
		Path:             dir,
		Watch:            true,
		DebounceInterval: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := m.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := m.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := m.watcher.watcher.Add(dir); err == nil {
		t.Error("fsnotify watcher still accepts paths after Stop, want closed")
	}
}

func TestManager_Validation(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.yaml", goodSchemas)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"empty path", Config{}},
		{"missing path", Config{Path: filepath.Join(dir, "nope")}},
		{"bad resync schedule", Config{Path: dir, ResyncSchedule: "not a cron expr"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); err == nil {
				t.Error("New() error = nil, want error")
			}
		})
	}
}
