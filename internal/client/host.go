package client

import (
	"sync"

	"livegate/internal/client/events"
	"livegate/internal/domain"
)

// Resolver determines which participant is the session's authoritative
// publisher ("host") from participant snapshots delivered by the
// transport. Resolution is a best-effort heuristic over join order: once
// a host is identified it stays fixed for the session, and resolving
// again over the same inputs yields the same answer. Safe against
// concurrent teardown.
type Resolver struct {
	role domain.Role
	sink *events.Sink

	mu         sync.Mutex
	host       *domain.Participant
	lastRemote int
	seen       map[domain.Identity]struct{}
}

func NewResolver(role domain.Role, sink *events.Sink) *Resolver {
	return &Resolver{
		role: role,
		sink: sink,
		seen: make(map[domain.Identity]struct{}),
	}
}

// Observe feeds one participant snapshot, in the order the transport
// delivered it. It reports the resolved host, or ok=false while there is
// no host yet (the renderer shows a waiting indication, not an error).
func (r *Resolver) Observe(participants []domain.Participant) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.role.CanPublish() {
		r.notifyJoins(participants)
	}

	if r.host != nil {
		return *r.host, true
	}

	var resolved *domain.Participant
	if r.role.CanPublish() {
		resolved = earliestParticipant(participants)
	} else {
		resolved = firstRemote(participants)
	}
	if resolved == nil {
		return domain.Participant{}, false
	}

	r.host = resolved
	r.sink.Info("host resolved: %s", resolved.Identity)
	return *r.host, true
}

// Host returns the resolved host without feeding a new snapshot.
func (r *Resolver) Host() (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.host == nil {
		return domain.Participant{}, false
	}
	return *r.host, true
}

// AllowStream is the filtering predicate for incoming media: a viewer
// attaches only the resolved host's streams, a publisher renders all.
func (r *Resolver) AllowStream(identity domain.Identity) bool {
	if r.role.CanPublish() {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.host != nil && r.host.Identity == identity
}

// notifyJoins reports remote-count growth beyond the previous
// observation as join events. This is a delta comparison against the
// last observed count, not a transport subscription. Caller holds r.mu.
func (r *Resolver) notifyJoins(participants []domain.Participant) {
	remote := 0
	for _, p := range participants {
		if !p.IsLocal {
			remote++
		}
	}
	if remote > r.lastRemote {
		for _, p := range participants {
			if p.IsLocal {
				continue
			}
			if _, ok := r.seen[p.Identity]; !ok {
				r.seen[p.Identity] = struct{}{}
				r.sink.Info("participant joined: %s", p.Identity)
			}
		}
		r.lastRemote = remote
	}
}

// firstRemote picks the first non-local participant in delivered order.
func firstRemote(participants []domain.Participant) *domain.Participant {
	for i := range participants {
		if !participants[i].IsLocal {
			return &participants[i]
		}
	}
	return nil
}

// earliestParticipant picks the earliest join timestamp across all
// participants, self included, so an already-connected publisher
// self-identifies even when scheduling races reorder arrival. Ties break
// on the lexicographically smaller identity.
func earliestParticipant(participants []domain.Participant) *domain.Participant {
	var best *domain.Participant
	for i := range participants {
		p := &participants[i]
		if best == nil {
			best = p
			continue
		}
		if p.JoinedAt.Before(best.JoinedAt) ||
			(p.JoinedAt.Equal(best.JoinedAt) && p.Identity < best.Identity) {
			best = p
		}
	}
	return best
}
