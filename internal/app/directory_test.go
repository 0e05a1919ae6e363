package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livegate/internal/domain"
)

type stubLister struct {
	rooms        []RoomRecord
	roomsErr     error
	participants map[string][]ParticipantRecord
	partsErr     error
}

func (s *stubLister) ListRooms(ctx context.Context) ([]RoomRecord, error) {
	return s.rooms, s.roomsErr
}

func (s *stubLister) ListParticipants(ctx context.Context, room string) ([]ParticipantRecord, error) {
	if s.partsErr != nil {
		return nil, s.partsErr
	}
	return s.participants[room], nil
}

func TestListPreservesRoomServiceOrder(t *testing.T) {
	created := time.Unix(1700000000, 0)
	lister := &stubLister{
		rooms: []RoomRecord{
			{SID: "RM_2", Name: "beta", NumParticipants: 3, CreationTime: created},
			{SID: "RM_1", Name: "alpha", NumParticipants: 1, CreationTime: created.Add(-time.Hour)},
		},
		participants: map[string][]ParticipantRecord{
			"beta": {
				{Identity: "late", JoinedAt: created.Add(time.Minute)},
				{Identity: "early", JoinedAt: created},
			},
		},
	}
	dir := NewDirectory(lister)

	listings, err := dir.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, domain.RoomName("beta"), listings[0].RoomName)
	assert.Equal(t, "RM_2", listings[0].RoomID)
	assert.Equal(t, 3, listings[0].ParticipantCount)
	assert.Equal(t, "early", listings[0].HostName)

	assert.Equal(t, domain.RoomName("alpha"), listings[1].RoomName)
	assert.Empty(t, listings[1].HostName)
}

func TestListSurfacesRoomServiceError(t *testing.T) {
	dir := NewDirectory(&stubLister{roomsErr: errors.New("room service unreachable")})

	_, err := dir.List(context.Background())
	assert.Error(t, err)
}

func TestListBestEffortDegradesToEmpty(t *testing.T) {
	dir := NewDirectory(&stubLister{roomsErr: errors.New("room service unreachable")})

	listings := dir.ListBestEffort(context.Background())
	assert.NotNil(t, listings)
	assert.Empty(t, listings)
}

func TestListToleratesParticipantQueryFailure(t *testing.T) {
	lister := &stubLister{
		rooms:    []RoomRecord{{SID: "RM_1", Name: "alpha", NumParticipants: 2}},
		partsErr: errors.New("timeout"),
	}
	dir := NewDirectory(lister)

	listings, err := dir.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Empty(t, listings[0].HostName)
	assert.Equal(t, 2, listings[0].ParticipantCount)
}
