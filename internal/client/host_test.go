package client

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"livegate/internal/client/events"
	"livegate/internal/domain"
)

func newResolver(role domain.Role) (*Resolver, *events.Sink) {
	sink := events.NewSink(zerolog.Nop())
	return NewResolver(role, sink), sink
}

func at(sec int64) time.Time { return time.Unix(1700000000+sec, 0) }

func TestViewerAloneHasNoHostYet(t *testing.T) {
	r, _ := newResolver(domain.RoleViewer)

	_, ok := r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
	})
	assert.False(t, ok, "no remote participant means no host yet, not an error")

	_, ok = r.Host()
	assert.False(t, ok)
}

func TestViewerResolvesFirstRemote(t *testing.T) {
	r, _ := newResolver(domain.RoleViewer)

	host, ok := r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "A", JoinedAt: at(5)},
		{Identity: "B", JoinedAt: at(1)},
	})
	require.True(t, ok)
	assert.Equal(t, domain.Identity("A"), host.Identity,
		"viewer takes remote-origin order as delivered, no re-sorting")
}

func TestPublisherResolvesEarliestJoin(t *testing.T) {
	r, _ := newResolver(domain.RolePublisher)

	host, ok := r.Observe([]domain.Participant{
		{Identity: "B", JoinedAt: at(10)},
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
	})
	require.True(t, ok)
	assert.Equal(t, domain.Identity("self"), host.Identity,
		"earliest join wins regardless of iteration order")
}

func TestPublisherTieBreaksOnIdentity(t *testing.T) {
	r, _ := newResolver(domain.RolePublisher)

	host, ok := r.Observe([]domain.Participant{
		{Identity: "zeta", JoinedAt: at(0)},
		{Identity: "alpha", JoinedAt: at(0)},
	})
	require.True(t, ok)
	assert.Equal(t, domain.Identity("alpha"), host.Identity)
}

func TestResolutionIsIdempotent(t *testing.T) {
	r, _ := newResolver(domain.RolePublisher)
	parts := []domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "B", JoinedAt: at(3)},
	}

	first, ok := r.Observe(parts)
	require.True(t, ok)
	second, ok := r.Observe(parts)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestHostStaysFixedThroughChurn(t *testing.T) {
	r, _ := newResolver(domain.RoleViewer)

	host, ok := r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "A", JoinedAt: at(1)},
	})
	require.True(t, ok)
	require.Equal(t, domain.Identity("A"), host.Identity)

	// A leaves, C arrives: resolution does not re-run mid-session.
	host, ok = r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "C", JoinedAt: at(9)},
	})
	require.True(t, ok)
	assert.Equal(t, domain.Identity("A"), host.Identity)
}

func TestViewerStreamFilter(t *testing.T) {
	r, _ := newResolver(domain.RoleViewer)

	assert.False(t, r.AllowStream("A"), "nothing attaches before a host is resolved")

	_, ok := r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "A", JoinedAt: at(1)},
		{Identity: "B", JoinedAt: at(2)},
	})
	require.True(t, ok)

	assert.True(t, r.AllowStream("A"))
	assert.False(t, r.AllowStream("B"))
	assert.False(t, r.AllowStream("self"))
}

func TestPublisherRendersAllStreams(t *testing.T) {
	r, _ := newResolver(domain.RolePublisher)
	assert.True(t, r.AllowStream("anyone"))
}

func TestPublisherJoinNotifications(t *testing.T) {
	r, sink := newResolver(domain.RolePublisher)
	ch, cancel := sink.Subscribe()
	defer cancel()

	r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
	})
	r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "A", JoinedAt: at(1)},
	})

	var joinMsgs []string
drain:
	for {
		select {
		case ev := <-ch:
			joinMsgs = append(joinMsgs, ev.Message)
		default:
			break drain
		}
	}
	assert.Contains(t, joinMsgs, "participant joined: A")
}

func TestNoJoinNotificationWithoutGrowth(t *testing.T) {
	r, sink := newResolver(domain.RolePublisher)

	r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "A", JoinedAt: at(1)},
	})
	// A leaves, B arrives: count did not grow past the high-water mark.
	r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "B", JoinedAt: at(5)},
	})

	for _, ev := range sink.Recent(0) {
		assert.NotEqual(t, "participant joined: B", ev.Message)
	}
}

func TestViewerGetsNoJoinNotifications(t *testing.T) {
	r, sink := newResolver(domain.RoleViewer)

	r.Observe([]domain.Participant{
		{Identity: "self", IsLocal: true, JoinedAt: at(0)},
		{Identity: "A", JoinedAt: at(1)},
	})

	for _, ev := range sink.Recent(0) {
		assert.NotContains(t, ev.Message, "participant joined")
	}
}
