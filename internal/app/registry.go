package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"livegate/internal/domain"
)

// Registry enforces at most one live credential per identity at any
// instant. Entries expire together with the credential they guard, so a
// participant whose token has lapsed can request a new one; Release
// frees an identity early when the transport reports a disconnect.
type Registry struct {
	mu      sync.Mutex
	entries map[domain.Identity]time.Time // identity -> reservation expiry
	ttl     time.Duration

	now func() time.Time // injectable for tests
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[domain.Identity]time.Time),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Reserve claims identity for one credential lifetime. Returns true if
// newly reserved, false if a live reservation already exists. The
// check-and-set runs under one lock: of any concurrent attempts for the
// same identity exactly one succeeds.
func (r *Registry) Reserve(identity domain.Identity) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	if exp, ok := r.entries[identity]; ok && exp.After(now) {
		return false
	}
	r.entries[identity] = now.Add(r.ttl)
	log.Debug().Str("module", "app.registry").Str("identity", string(identity)).Msg("reserved identity")
	return true
}

// Release frees a reservation before its expiry. Safe to call for
// unknown identities.
func (r *Registry) Release(identity domain.Identity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, identity)
	log.Debug().Str("module", "app.registry").Str("identity", string(identity)).Msg("released identity")
}

// Active reports the number of live reservations, dropping lapsed
// entries on the way.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for id, exp := range r.entries {
		if !exp.After(now) {
			delete(r.entries, id)
		}
	}
	return len(r.entries)
}
