// Package roomsvc adapts the LiveKit room management API onto the
// broker's RoomLister port.
package roomsvc

import (
	"context"
	"time"

	"github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"

	"livegate/internal/app"
)

// Client wraps a LiveKit RoomServiceClient. The websocket URL doubles as
// the API endpoint; key and secret are the same pair the grant encoder
// signs with.
type Client struct {
	svc *lksdk.RoomServiceClient
}

func New(url, apiKey, apiSecret string) *Client {
	return &Client{svc: lksdk.NewRoomServiceClient(url, apiKey, apiSecret)}
}

func (c *Client) ListRooms(ctx context.Context) ([]app.RoomRecord, error) {
	resp, err := c.svc.ListRooms(ctx, &livekit.ListRoomsRequest{})
	if err != nil {
		return nil, err
	}

	records := make([]app.RoomRecord, 0, len(resp.Rooms))
	for _, room := range resp.Rooms {
		records = append(records, app.RoomRecord{
			SID:             room.Sid,
			Name:            room.Name,
			NumParticipants: int(room.NumParticipants),
			CreationTime:    time.Unix(room.CreationTime, 0),
		})
	}
	return records, nil
}

func (c *Client) ListParticipants(ctx context.Context, room string) ([]app.ParticipantRecord, error) {
	resp, err := c.svc.ListParticipants(ctx, &livekit.ListParticipantsRequest{
		Room: room,
	})
	if err != nil {
		return nil, err
	}

	records := make([]app.ParticipantRecord, 0, len(resp.Participants))
	for _, p := range resp.Participants {
		records = append(records, app.ParticipantRecord{
			Identity: p.Identity,
			JoinedAt: time.Unix(p.JoinedAt, 0),
		})
	}
	return records, nil
}
