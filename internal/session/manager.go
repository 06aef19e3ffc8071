// Package session tracks live inspection wizard sessions in memory.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/autocheck-dev/autocheck/internal/checklist"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrNotOwner = errors.New("session belongs to another mechanic")
)

// Wizard is one mechanic's in-flight walkthrough. Callers must hold
// the mutex around any access to Sess.
type Wizard struct {
	ID          string
	MechanicID  string
	ChecklistID string
	CreatedAt   time.Time

	Mu   sync.Mutex
	Sess *checklist.Session

	// Report is cached on first packaging so a failed submit can be
	// retried without re-walking the session.
	Report *checklist.Report
}

// Manager keeps at most one live wizard per mechanic. Starting a new
// wizard cancels the previous one.
type Manager struct {
	mu         sync.RWMutex
	byID       map[string]*Wizard
	byMechanic map[string]string
}

func NewManager() *Manager {
	return &Manager{
		byID:       map[string]*Wizard{},
		byMechanic: map[string]string{},
	}
}

func (m *Manager) Start(cl *checklist.Checklist, mechanicID string) *Wizard {
	m.mu.Lock()
	defer m.mu.Unlock()

	if oldID, ok := m.byMechanic[mechanicID]; ok {
		if old, ok := m.byID[oldID]; ok {
			old.Mu.Lock()
			old.Sess.Cancel()
			old.Mu.Unlock()
			delete(m.byID, oldID)
		}
	}

	w := &Wizard{
		ID:          uuid.NewString(),
		MechanicID:  mechanicID,
		ChecklistID: cl.ID,
		CreatedAt:   time.Now(),
		Sess:        checklist.NewSession(cl),
	}
	m.byID[w.ID] = w
	m.byMechanic[mechanicID] = w.ID
	return w
}

// Get returns the wizard if it exists and belongs to mechanicID.
func (m *Manager) Get(id, mechanicID string) (*Wizard, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if w.MechanicID != mechanicID {
		return nil, ErrNotOwner
	}
	return w, nil
}

// Remove drops a finished wizard from the index.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.byID[id]
	if !ok {
		return
	}
	delete(m.byID, id)
	if m.byMechanic[w.MechanicID] == id {
		delete(m.byMechanic, w.MechanicID)
	}
}

// IDs lists the ids of every tracked wizard. Storage cleanup uses this
// to keep photos of inspections still being walked.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	return ids
}

// Active reports how many wizards are currently tracked.
func (m *Manager) Active() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}
