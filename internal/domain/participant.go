package domain

import "time"

// Participant is the transport's view of one session member, reduced to
// what host resolution needs. JoinedAt is best-effort: it comes from the
// transport where available and from local observation time otherwise.
type Participant struct {
	Identity Identity
	JoinedAt time.Time
	IsLocal  bool
}
