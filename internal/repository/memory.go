package repository

import (
	"errors"
	"fmt"
	"sync"

	"base-resolver/internal/common"
	"base-resolver/internal/schema"
)

// Repository resolves a definition id to its Definition.
type Repository interface {
	Resolve(id string) (*schema.Definition, bool)
}

// Lister is implemented by repositories that can enumerate their ids.
type Lister interface {
	IDs() []string
}

// Memory is an in-memory Repository. It is safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	defs map[string]*schema.Definition
}

var (
	_ Repository = (*Memory)(nil)
	_ Lister     = (*Memory)(nil)
)

// NewMemory creates an empty repository.
func NewMemory() *Memory {
	return &Memory{defs: make(map[string]*schema.Definition)}
}

// Register adds a definition. The repository keeps the pointer; resolving
// provenance later mutates the definition's fields in place.
func (m *Memory) Register(def *schema.Definition) error {
	if def == nil {
		return errors.New("definition is nil")
	}

	if def.ID == "" {
		return errors.New("definition has no id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.defs[def.ID]; exists {
		return fmt.Errorf("definition %s is already registered", def.ID)
	}

	m.defs[def.ID] = def

	return nil
}

// Resolve returns the definition registered under id.
func (m *Memory) Resolve(id string) (*schema.Definition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	def, ok := m.defs[id]

	return def, ok
}

// IDs returns all registered ids in ascending order.
func (m *Memory) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return common.SortedKeys(m.defs)
}

// All returns all definitions ordered by id.
func (m *Memory) All() []*schema.Definition {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := common.SortedKeys(m.defs)

	defs := make([]*schema.Definition, 0, len(ids))
	for _, id := range ids {
		defs = append(defs, m.defs[id])
	}

	return defs
}

// Len returns the number of registered definitions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.defs)
}

// Bundle returns all definitions as a YAML bundle, ordered by id.
func (m *Memory) Bundle() *schema.Bundle {
	b := &schema.Bundle{Version: "1"}
	for _, def := range m.All() {
		b.Definitions = append(b.Definitions, *def)
	}

	return b
}
