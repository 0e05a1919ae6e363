package events

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentReturnsLatestOldestFirst(t *testing.T) {
	s := NewSink(zerolog.Nop())

	s.Info("one")
	s.Warn("two")
	s.Error("three")

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Message)
	assert.Equal(t, LevelWarn, recent[0].Level)
	assert.Equal(t, "three", recent[1].Message)
	assert.Equal(t, LevelError, recent[1].Level)

	assert.Len(t, s.Recent(0), 3)
	assert.Len(t, s.Recent(100), 3)
}

func TestBufferIsBounded(t *testing.T) {
	s := NewSink(zerolog.Nop())

	for i := 0; i < defaultCapacity+10; i++ {
		s.Info("event %d", i)
	}

	all := s.Recent(0)
	require.Len(t, all, defaultCapacity)
	assert.Equal(t, fmt.Sprintf("event %d", 10), all[0].Message)
}

func TestSubscribeDeliversEvents(t *testing.T) {
	s := NewSink(zerolog.Nop())
	ch, cancel := s.Subscribe()
	defer cancel()

	s.Info("hello")

	ev := <-ch
	assert.Equal(t, "hello", ev.Message)
	assert.Equal(t, LevelInfo, ev.Level)
	assert.False(t, ev.Time.IsZero())
}

func TestSlowSubscriberNeverBlocksPublisher(t *testing.T) {
	s := NewSink(zerolog.Nop())
	ch, cancel := s.Subscribe()
	defer cancel()

	// Overflow the subscriber buffer; publishing must not block.
	for i := 0; i < 100; i++ {
		s.Info("burst %d", i)
	}

	// The subscriber still sees the earliest events it had room for.
	ev := <-ch
	assert.Equal(t, "burst 0", ev.Message)
}

func TestCancelledSubscriberStopsReceiving(t *testing.T) {
	s := NewSink(zerolog.Nop())
	ch, cancel := s.Subscribe()
	cancel()

	s.Info("after cancel")

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event after cancel: %q", ev.Message)
	default:
	}
}
