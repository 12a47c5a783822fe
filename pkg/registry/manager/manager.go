package manager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/chkup/spec-tools/pkg/registry"
	"github.com/chkup/spec-tools/pkg/sel/ast"
	"github.com/chkup/spec-tools/pkg/telemetry/metrics"
)

// ReloadEvent describes one completed reload attempt.
type ReloadEvent struct {
	// ID uniquely identifies the reload attempt.
	ID string

	// Time is when the reload finished.
	Time time.Time

	// Schemas is the definition count after the reload. On a failed
	// reload it reports the surviving (previous) set.
	Schemas int

	// Err is non-nil when the reload was rejected.
	Err error
}

// Config configures the schema manager.
type Config struct {
	// Path is the schema definition file or directory to serve.
	Path string

	// Watch enables hot reload on file changes.
	Watch bool

	// DebounceInterval is the watcher quiet period. Default: 100ms
	DebounceInterval time.Duration

	// ResyncSchedule is an optional cron expression for periodic full
	// reloads, catching changes the watcher missed (network mounts,
	// missed inotify events). Empty disables resync.
	ResyncSchedule string

	// Metrics records reload outcomes. Optional.
	Metrics *metrics.RegistryMetrics

	// Logger for reload diagnostics. Default: slog.Default()
	Logger *slog.Logger
}

// Manager serves a live, hot-reloadable definition set from schema
// files on disk. Reloads are staged: the files are loaded into a fresh
// set, and only a clean load replaces the one walkers resolve against.
// A bad edit therefore never takes down the last good set.
type Manager struct {
	config   Config
	registry *registry.Memory
	logger   *slog.Logger

	mu            sync.RWMutex
	lastReloadID  string
	lastLoadError error

	watcher *FileWatcher
	cron    *cron.Cron
	events  chan ReloadEvent

	watchCancel context.CancelFunc
	watchDone   chan struct{}
}

// New creates a schema manager. The definition set is empty until
// Start performs the initial load.
func New(cfg Config) (*Manager, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("schema path cannot be empty")
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		return nil, fmt.Errorf("schema path: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.ResyncSchedule != "" {
		if _, err := cron.ParseStandard(cfg.ResyncSchedule); err != nil {
			return nil, fmt.Errorf("invalid resync schedule %q: %w", cfg.ResyncSchedule, err)
		}
	}

	return &Manager{
		config:   cfg,
		registry: registry.NewMemory(),
		logger:   cfg.Logger.With("component", "registry.manager"),
		events:   make(chan ReloadEvent, 16),
	}, nil
}

// Registry returns the live definition set. The same value stays valid
// across reloads; its contents are swapped atomically.
func (m *Manager) Registry() *registry.Memory {
	return m.registry
}

// Events returns reload notifications. The channel is buffered; events
// are dropped, not blocked on, when no one is receiving.
func (m *Manager) Events() <-chan ReloadEvent {
	return m.events
}

// Start performs the initial load and, if configured, starts the file
// watcher and the resync schedule. The initial load must be clean.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.Reload(); err != nil {
		return fmt.Errorf("initial schema load failed: %w", err)
	}

	if m.config.Watch {
		if err := m.startWatcher(ctx); err != nil {
			return err
		}
	}
	if m.config.ResyncSchedule != "" {
		m.startResync()
	}

	m.logger.Info("schema manager started",
		"path", m.config.Path,
		"schemas", m.registry.Len(),
		"watch", m.config.Watch,
		"resync", m.config.ResyncSchedule,
	)
	return nil
}

// Stop stops the watcher and the resync schedule.
func (m *Manager) Stop() error {
	if m.watchCancel != nil {
		m.watchCancel()
		<-m.watchDone
		if err := m.watcher.Stop(); err != nil {
			return err
		}
	}
	if m.cron != nil {
		<-m.cron.Stop().Done()
	}
	m.logger.Info("schema manager stopped")
	return nil
}

// Reload loads the schema files into a staging set and, if every entry
// decodes, atomically swaps it in. On any error the previous set stays
// live and the error is returned.
func (m *Manager) Reload() error {
	reloadID := uuid.NewString()
	start := time.Now()

	staging := registry.NewMemory()
	err := m.load(staging)
	if err == nil {
		m.registry.ReplaceAll(snapshot(staging))
	}

	m.mu.Lock()
	m.lastReloadID = reloadID
	m.lastLoadError = err
	m.mu.Unlock()

	if m.config.Metrics != nil {
		m.config.Metrics.ObserveReload(m.registry.Len(), err)
	}

	event := ReloadEvent{
		ID:      reloadID,
		Time:    time.Now(),
		Schemas: m.registry.Len(),
		Err:     err,
	}
	select {
	case m.events <- event:
	default:
	}

	if err != nil {
		m.logger.Error("schema reload rejected, previous set stays live",
			"reload_id", reloadID,
			"error", err,
		)
		return err
	}

	m.logger.Info("schemas reloaded",
		"reload_id", reloadID,
		"schemas", m.registry.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// LastLoad reports the most recent reload attempt.
func (m *Manager) LastLoad() (reloadID string, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastReloadID, m.lastLoadError
}

func (m *Manager) load(reg registry.Registry) error {
	info, err := os.Stat(m.config.Path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return registry.LoadDir(reg, m.config.Path)
	}
	return registry.LoadFile(reg, m.config.Path)
}

func (m *Manager) startWatcher(ctx context.Context) error {
	watcher, err := NewFileWatcher(&FileWatcherConfig{
		Path:             m.config.Path,
		DebounceInterval: m.config.DebounceInterval,
	}, m.config.Logger)
	if err != nil {
		return err
	}
	m.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	m.watchCancel = cancel
	m.watchDone = make(chan struct{})

	go func() {
		defer close(m.watchDone)
		if err := watcher.Watch(watchCtx, m.Reload); err != nil {
			m.logger.Error("schema watcher exited", "error", err)
		}
	}()
	return nil
}

func (m *Manager) startResync() {
	m.cron = cron.New()
	// schedule already validated in New
	m.cron.AddFunc(m.config.ResyncSchedule, func() {
		m.logger.Debug("scheduled schema resync")
		m.Reload() // errors are logged and reported via Events
	})
	m.cron.Start()
}

// snapshot copies a staging registry's contents for the atomic swap.
func snapshot(staging *registry.Memory) map[ast.QName]ast.Node {
	defs := make(map[ast.QName]ast.Node, staging.Len())
	for _, name := range staging.Names() {
		if def, ok := staging.Lookup(name); ok {
			defs[name] = def
		}
	}
	return defs
}
