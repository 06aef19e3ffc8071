package checklist

import (
	"fmt"
	"sync"
)

// Summary is the listing shape for a registered checklist.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Sections  int    `json:"sections"`
	Questions int    `json:"questions"`
}

// Registry holds validated checklist definitions, in registration
// order. Definitions are static once registered; the registry itself
// may grow at runtime (admin upload), hence the lock.
type Registry struct {
	mu    sync.RWMutex
	m     map[string]*Checklist
	order []string
}

func NewRegistry() *Registry {
	return &Registry{m: map[string]*Checklist{}}
}

// Register validates and adds a definition. Duplicate ids are rejected.
func (r *Registry) Register(c *Checklist) error {
	if c.Policy == "" {
		c.Policy = ActivateUnconditional
	}
	if err := Validate(c); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.m[c.ID]; exists {
		return fmt.Errorf("checklist %s already registered", c.ID)
	}
	r.m[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *Registry) MustRegister(c *Checklist) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(id string) (*Checklist, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.m[id]
	return c, ok
}

func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Summary, 0, len(r.order))
	for _, id := range r.order {
		c := r.m[id]
		out = append(out, Summary{
			ID:        c.ID,
			Title:     c.Title,
			Sections:  len(c.Sections),
			Questions: c.QuestionCount(),
		})
	}
	return out
}
