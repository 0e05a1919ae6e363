package client

import (
	"sync"
	"time"

	lksdk "github.com/livekit/server-sdk-go/v2"
	"github.com/pion/webrtc/v4"

	"livegate/internal/client/events"
	"livegate/internal/domain"
)

// RoomConnection attaches a bootstrap credential to a LiveKit room and
// feeds participant churn into the host resolver. Join timestamps are
// local observation times; the resolver's heuristic tolerates the skew.
type RoomConnection struct {
	resolver *Resolver
	sink     *events.Sink

	mu     sync.Mutex
	room   *lksdk.Room
	seen   map[domain.Identity]time.Time
	closed bool
}

// Connect hands the credential to the transport and registers the
// participant and track callbacks. The consumed token authenticates
// exactly this connection.
func Connect(url, token string, resolver *Resolver, sink *events.Sink) (*RoomConnection, error) {
	c := &RoomConnection{
		resolver: resolver,
		sink:     sink,
		seen:     make(map[domain.Identity]time.Time),
	}

	cb := &lksdk.RoomCallback{
		OnParticipantConnected: func(rp *lksdk.RemoteParticipant) {
			c.observe()
		},
		OnParticipantDisconnected: func(rp *lksdk.RemoteParticipant) {
			c.sink.Info("participant left: %s", rp.Identity())
		},
		OnDisconnected: func() {
			c.sink.Warn("transport disconnected")
		},
		ParticipantCallback: lksdk.ParticipantCallback{
			OnTrackSubscribed: func(track *webrtc.TrackRemote, pub *lksdk.RemoteTrackPublication, rp *lksdk.RemoteParticipant) {
				if !c.resolver.AllowStream(domain.Identity(rp.Identity())) {
					c.sink.Info("ignoring stream from non-host %s", rp.Identity())
					return
				}
				c.sink.Info("attached %s stream from %s", track.Kind(), rp.Identity())
			},
		},
	}

	room, err := lksdk.ConnectToRoomWithToken(url, token, cb)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.room = room
	c.seen[domain.Identity(room.LocalParticipant.Identity())] = time.Now()
	c.mu.Unlock()

	c.observe()
	return c, nil
}

// observe snapshots the current participant set and runs resolution.
func (c *RoomConnection) observe() {
	c.mu.Lock()
	if c.closed || c.room == nil {
		c.mu.Unlock()
		return
	}
	now := time.Now()
	local := domain.Identity(c.room.LocalParticipant.Identity())

	participants := []domain.Participant{{
		Identity: local,
		JoinedAt: c.stamp(local, now),
		IsLocal:  true,
	}}
	for _, rp := range c.room.GetRemoteParticipants() {
		id := domain.Identity(rp.Identity())
		participants = append(participants, domain.Participant{
			Identity: id,
			JoinedAt: c.stamp(id, now),
		})
	}
	c.mu.Unlock()

	c.resolver.Observe(participants)
}

// stamp records first observation time per identity. Caller holds c.mu.
func (c *RoomConnection) stamp(id domain.Identity, now time.Time) time.Time {
	if t, ok := c.seen[id]; ok {
		return t
	}
	c.seen[id] = now
	return now
}

// Disconnect is safe to call at any state, any number of times, and
// concurrently with participant callbacks.
func (c *RoomConnection) Disconnect() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	room := c.room
	c.mu.Unlock()

	if room != nil {
		room.Disconnect()
	}
	c.sink.Info("disconnected from room")
}
