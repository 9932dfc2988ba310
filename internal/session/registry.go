package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/catalog"
)

const defaultSweepInterval = time.Minute

// ViewFactory builds the empty view handed to a new session
type ViewFactory func() *catalog.View

type entry struct {
	view     *catalog.View
	lastSeen time.Time
}

// Registry maps session ids to catalog views and evicts idle ones
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	newView  ViewFactory
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewRegistry(newView ViewFactory, ttl time.Duration, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		sessions: make(map[string]*entry),
		newView:  newView,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the view for id and marks the session as seen
func (r *Registry) Get(id string) (*catalog.View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.view, true
}

// GetOrCreate returns the session for id, creating a fresh one under a new
// id when id is unknown. created reports whether a new session was made.
func (r *Registry) GetOrCreate(id string) (sessionID string, view *catalog.View, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok && id != "" {
		e.lastSeen = r.now()
		return id, e.view, false
	}
	sessionID = uuid.New().String()
	view = r.newView()
	r.sessions[sessionID] = &entry{view: view, lastSeen: r.now()}
	r.logger.Debug("Session created", zap.String("session_id", sessionID))
	return sessionID, view, true
}

// Remove discards a session
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many
// were removed. A non-positive TTL keeps sessions forever.
func (r *Registry) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweepLoop sweeps every interval until ctx is done. Call from a goroutine.
func (r *Registry) RunSweepLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("Evicted idle sessions", zap.Int("evicted", n), zap.Int("remaining", r.Len()))
			}
		}
	}
}
