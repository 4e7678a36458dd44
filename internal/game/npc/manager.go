package npc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cory-johannsen/rogue/internal/game/world"
)

// Manager tracks all live enemy instances by ID and by position.
// All methods are safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	instances map[string]*Instance      // instanceID → Instance
	cells     map[world.Position]string // position → instanceID
}

// NewManager creates an empty enemy Manager.
func NewManager() *Manager {
	return &Manager{
		instances: make(map[string]*Instance),
		cells:     make(map[world.Position]string),
	}
}

// Spawn creates a new Instance from kind and registers it at pos.
//
// Precondition: kind must be non-nil.
// Postcondition: Returns a new Instance with a unique UUID, or an error if pos is taken.
func (m *Manager) Spawn(kind *Kind, pos world.Position) (*Instance, error) {
	if kind == nil {
		return nil, fmt.Errorf("npc.Manager.Spawn: kind must not be nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if other, ok := m.cells[pos]; ok {
		return nil, fmt.Errorf("npc.Manager.Spawn: %s already holds %q", pos, other)
	}
	inst := NewInstance(uuid.NewString(), kind, pos)
	m.instances[inst.ID()] = inst
	m.cells[pos] = inst.ID()
	return inst, nil
}

// Remove deletes an instance by ID.
//
// Postcondition: Returns an error if the instance is not found.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	inst, ok := m.instances[id]
	if !ok {
		return fmt.Errorf("npc instance %q not found", id)
	}
	if m.cells[inst.Position] == id {
		delete(m.cells, inst.Position)
	}
	delete(m.instances, id)
	return nil
}

// Get returns the instance with the given ID.
//
// Postcondition: Returns (inst, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[id]
	return inst, ok
}

// At returns the instance standing on pos.
//
// Postcondition: Returns (inst, true) if one is there, or (nil, false) otherwise.
func (m *Manager) At(pos world.Position) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.cells[pos]
	if !ok {
		return nil, false
	}
	inst, ok := m.instances[id]
	return inst, ok
}

// All returns a snapshot of every live instance ordered by position, row-major.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (m *Manager) All() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// Count returns the number of live instances.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.instances)
}
