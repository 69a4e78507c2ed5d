// Package session keeps the live editor and sale sessions of operators in
// memory.  Each session belongs to the operator that opened it and is
// dropped after a period of inactivity.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ruta593/fleet-console/internal/model"
	"github.com/ruta593/fleet-console/internal/seatmap"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session not found")
	// ErrNotOwner is returned when an operator touches another operator's
	// session.
	ErrNotOwner = errors.New("session belongs to another operator")
)

type entry struct {
	owner    model.Identity
	lastUsed time.Time
	editor   *Editor
	sale     *Sale
}

// Registry indexes sessions by id.  It is safe for concurrent use; the
// sessions themselves carry their own locks.
type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

// NewRegistry returns a registry whose sessions expire after ttl without
// use.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, now: time.Now, entries: make(map[string]*entry)}
}

func (r *Registry) put(e *entry) string {
	id := uuid.NewString()
	r.mu.Lock()
	defer r.mu.Unlock()
	e.lastUsed = r.now()
	r.entries[id] = e
	return id
}

// get resolves id for owner and refreshes its expiry.
func (r *Registry) get(owner model.Identity, id string) (*entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	now := r.now()
	if now.Sub(e.lastUsed) > r.ttl {
		delete(r.entries, id)
		return nil, ErrNotFound
	}
	if e.owner.UserID != owner.UserID || e.owner.CooperativeID != owner.CooperativeID {
		return nil, ErrNotOwner
	}
	e.lastUsed = now
	return e, nil
}

func (r *Registry) remove(owner model.Identity, id string) error {
	if _, err := r.get(owner, id); err != nil {
		return err
	}
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
	return nil
}

// OpenEditor registers a new editor session for owner.
func (r *Registry) OpenEditor(owner model.Identity, ed *Editor) *Editor {
	ed.ID = r.put(&entry{owner: owner, editor: ed})
	return ed
}

// Editor returns the editor session registered under id for owner.
func (r *Registry) Editor(owner model.Identity, id string) (*Editor, error) {
	e, err := r.get(owner, id)
	if err != nil {
		return nil, err
	}
	if e.editor == nil {
		return nil, ErrNotFound
	}
	return e.editor, nil
}

// CloseEditor discards an editor session without saving.
func (r *Registry) CloseEditor(owner model.Identity, id string) error {
	if _, err := r.Editor(owner, id); err != nil {
		return err
	}
	return r.remove(owner, id)
}

// Sale is a sale session registered for an operator.
type Sale struct {
	ID string
	*seatmap.Session
}

// OpenSale registers s for owner.
func (r *Registry) OpenSale(owner model.Identity, s *seatmap.Session) *Sale {
	sale := &Sale{Session: s}
	sale.ID = r.put(&entry{owner: owner, sale: sale})
	return sale
}

// Sale returns the sale session registered under id for owner.
func (r *Registry) Sale(owner model.Identity, id string) (*Sale, error) {
	e, err := r.get(owner, id)
	if err != nil {
		return nil, err
	}
	if e.sale == nil {
		return nil, ErrNotFound
	}
	return e.sale, nil
}

// CloseSale cancels and discards a sale session.  A ticket lookup still in
// flight for it is discarded.
func (r *Registry) CloseSale(owner model.Identity, id string) error {
	s, err := r.Sale(owner, id)
	if err != nil {
		return err
	}
	s.Cancel()
	return r.remove(owner, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	n := 0
	for id, e := range r.entries {
		if now.Sub(e.lastUsed) > r.ttl {
			if e.sale != nil {
				e.sale.Cancel()
			}
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is cancelled.  onSweep, when not
// nil, receives the number of sessions dropped by each non-empty sweep.
func (r *Registry) Run(ctx context.Context, interval time.Duration, onSweep func(int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
