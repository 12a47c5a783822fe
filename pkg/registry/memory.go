package registry

import (
	"crypto/sha256"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chkup/spec-tools/pkg/sel/ast"
)

// Memory is a thread-safe in-memory registry. It keeps a content
// version derived from the registered names so managers can detect and
// log definition-set changes across reloads.
type Memory struct {
	mu       sync.RWMutex
	defs     map[ast.QName]ast.Node
	version  string
	loadTime time.Time
}

// NewMemory creates a new empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{
		defs:     make(map[ast.QName]ast.Node),
		loadTime: time.Now(),
	}
}

// Register stores a definition under name, replacing any previous one.
func (m *Memory) Register(name ast.QName, def ast.Node) error {
	if name.Local == "" {
		return fmt.Errorf("schema name cannot be empty")
	}
	if def == nil {
		return fmt.Errorf("schema %s: definition cannot be nil", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.defs[name] = def
	m.updateVersion()

	return nil
}

// Lookup returns the stored definition for name.
func (m *Memory) Lookup(name ast.QName) (ast.Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, ok := m.defs[name]
	return def, ok
}

// Names returns every registered name in sorted order.
func (m *Memory) Names() []ast.QName {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return sortedNames(m.defs)
}

// Len returns the number of registered definitions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.defs)
}

// ReplaceAll atomically swaps the full definition set. Reloads stage
// into a plain map and swap here so that readers never observe a
// half-loaded registry.
func (m *Memory) ReplaceAll(defs map[ast.QName]ast.Node) {
	next := make(map[ast.QName]ast.Node, len(defs))
	for name, def := range defs {
		next[name] = def
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.defs = next
	m.loadTime = time.Now()
	m.updateVersion()
}

// Version returns the registry's content version: a digest over the
// sorted registered names.
func (m *Memory) Version() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.version
}

// LoadTime returns when the definition set was last replaced.
func (m *Memory) LoadTime() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.loadTime
}

// updateVersion recomputes the content version. Callers hold the write
// lock.
func (m *Memory) updateVersion() {
	h := sha256.New()
	for _, name := range sortedNames(m.defs) {
		fmt.Fprintln(h, name.String())
	}
	m.version = fmt.Sprintf("%x", h.Sum(nil)[:8])
}

func sortedNames(defs map[ast.QName]ast.Node) []ast.QName {
	names := make([]ast.QName, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if names[i].Space != names[j].Space {
			return names[i].Space < names[j].Space
		}
		return names[i].Local < names[j].Local
	})
	return names
}
