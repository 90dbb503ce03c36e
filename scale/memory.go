package scale

import (
	"context"
	"fmt"
	"sync"
)

// =============================================================================
// MEMORY SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is a Source backed by tables held in memory. Tests use it to
// substitute fixture tables without touching files.
type Memory struct {
	mu     sync.RWMutex
	tables map[Edition]Table
}

// NewMemory returns a Memory source holding current and previous.
func NewMemory(current, previous Table) *Memory {
	return &Memory{tables: map[Edition]Table{
		EditionCurrent:  current,
		EditionPrevious: previous,
	}}
}

// Load implements Source.
func (m *Memory) Load(_ context.Context, edition Edition) (Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[edition]
	if !ok {
		return Table{}, &ConfigurationError{Source: "memory", Edition: edition, Err: fmt.Errorf("edition not present")}
	}
	return t, nil
}

// Set replaces one edition. Only meant for test setup.
func (m *Memory) Set(edition Edition, t Table) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[edition] = t
}
