package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"livegate/internal/domain"
)

// RoomRecord and ParticipantRecord are the raw occupancy records the
// external Room Service returns, already decoupled from its wire types.
type RoomRecord struct {
	SID             string
	Name            string
	NumParticipants int
	CreationTime    time.Time
}

type ParticipantRecord struct {
	Identity string
	JoinedAt time.Time
}

// RoomLister is the read-only port onto the external Room Service.
type RoomLister interface {
	ListRooms(ctx context.Context) ([]RoomRecord, error)
	ListParticipants(ctx context.Context, room string) ([]ParticipantRecord, error)
}

// Directory projects Room Service occupancy into room listings. It never
// mutates anything and keeps no state between queries.
type Directory struct {
	Lister RoomLister
}

func NewDirectory(lister RoomLister) *Directory {
	return &Directory{Lister: lister}
}

// List returns the active rooms in the order the Room Service delivered
// them. The host name per room is best-effort: a failed participant
// query leaves it empty without failing the listing.
func (d *Directory) List(ctx context.Context) ([]domain.RoomListing, error) {
	rooms, err := d.Lister.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.RoomListing, 0, len(rooms))
	for _, room := range rooms {
		entry := domain.RoomListing{
			RoomID:           room.SID,
			RoomName:         domain.RoomName(room.Name),
			ParticipantCount: room.NumParticipants,
			CreatedAt:        room.CreationTime,
		}
		if parts, err := d.Lister.ListParticipants(ctx, room.Name); err == nil {
			entry.HostName = earliestJoined(parts)
		} else {
			log.Warn().Err(err).Str("module", "app.directory").
				Str("room", room.Name).
				Msg("participant query failed, omitting host name")
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListBestEffort absorbs Room Service failures into an empty listing.
// Room browsing is not critical-path; callers that need to distinguish a
// real outage use List.
func (d *Directory) ListBestEffort(ctx context.Context) []domain.RoomListing {
	listings, err := d.List(ctx)
	if err != nil {
		log.Warn().Err(err).Str("module", "app.directory").Msg("room service query failed")
		return []domain.RoomListing{}
	}
	return listings
}

// earliestJoined applies the same earliest-join heuristic host
// resolution uses, with identity as the tie-break.
func earliestJoined(parts []ParticipantRecord) string {
	best := ""
	var bestAt time.Time
	for _, p := range parts {
		if best == "" || p.JoinedAt.Before(bestAt) ||
			(p.JoinedAt.Equal(bestAt) && p.Identity < best) {
			best = p.Identity
			bestAt = p.JoinedAt
		}
	}
	return best
}
