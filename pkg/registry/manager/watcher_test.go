package manager

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestDebouncer_Trigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not fire")
	}
}

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("callback fired %d times, want 1", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(150 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("callback fired %d times after Stop, want 0", got)
	}
}

func TestFileWatcher_DetectsChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schemas.yaml")
	if err := os.WriteFile(path, []byte("schemas: {}\n"), 0o644); err != nil {
		t.Fatalf("failed to write schema file: %v", err)
	}

	fw, err := NewFileWatcher(&FileWatcherConfig{
		Path:             dir,
		DebounceInterval: 20 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	reloaded := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- fw.Watch(ctx, func() error {
			select {
			case reloaded <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("schemas:\n  \":user/id\": \"sel.core/int?\"\n"), 0o644); err != nil {
		t.Fatalf("failed to rewrite schema file: %v", err)
	}

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("reload not triggered by file change")
	}

	if err := fw.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := <-watchErr; err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
}

func TestFileWatcher_StopAfterContextCancel(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWatcher(&FileWatcherConfig{
		Path:             dir,
		DebounceInterval: 20 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("NewFileWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	watchErr := make(chan error, 1)
	go func() {
		watchErr <- fw.Watch(ctx, func() error { return nil })
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	if err := <-watchErr; err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Stop after the loop already exited must still release the
	// fsnotify descriptor.
	if err := fw.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := fw.watcher.Add(dir); err == nil {
		t.Error("fsnotify watcher still accepts paths after Stop, want closed")
	}

	// and a second Stop is a no-op
	if err := fw.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestFileWatcher_ShouldProcessEvent(t *testing.T) {
	fw := &FileWatcher{config: DefaultFileWatcherConfig()}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{
			name:  "yaml write",
			event: fsnotify.Event{Name: "/schemas/users.yaml", Op: fsnotify.Write},
			want:  true,
		},
		{
			name:  "yml create",
			event: fsnotify.Event{Name: "/schemas/users.yml", Op: fsnotify.Create},
			want:  true,
		},
		{
			name:  "chmod only",
			event: fsnotify.Event{Name: "/schemas/users.yaml", Op: fsnotify.Chmod},
			want:  false,
		},
		{
			name:  "wrong extension",
			event: fsnotify.Event{Name: "/schemas/notes.txt", Op: fsnotify.Write},
			want:  false,
		},
		{
			name:  "hidden file",
			event: fsnotify.Event{Name: "/schemas/.users.yaml.swp", Op: fsnotify.Write},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fw.shouldProcessEvent(tt.event); got != tt.want {
				t.Errorf("shouldProcessEvent() = %v, want %v", got, tt.want)
			}
		})
	}
}
