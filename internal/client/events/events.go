// Package events is the client's diagnostic surface: a bounded buffer of
// structured entries that the bootstrap sequence and host resolution
// publish to, and that a rendering collaborator can subscribe to. It
// replaces any global log interception with an explicit, injected sink.
package events

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type Event struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
}

const defaultCapacity = 64

// Sink retains the most recent events and fans them out to subscribers.
// Publishing never blocks: a subscriber that falls behind loses events.
type Sink struct {
	logger zerolog.Logger

	mu   sync.Mutex
	buf  []Event
	cap  int
	subs map[chan Event]struct{}
}

func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{
		logger: logger,
		cap:    defaultCapacity,
		subs:   make(map[chan Event]struct{}),
	}
}

func (s *Sink) Info(format string, args ...any)  { s.publish(LevelInfo, format, args...) }
func (s *Sink) Warn(format string, args ...any)  { s.publish(LevelWarn, format, args...) }
func (s *Sink) Error(format string, args ...any) { s.publish(LevelError, format, args...) }

func (s *Sink) publish(level Level, format string, args ...any) {
	ev := Event{
		Time:    time.Now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	}

	switch level {
	case LevelError:
		s.logger.Error().Msg(ev.Message)
	case LevelWarn:
		s.logger.Warn().Msg(ev.Message)
	default:
		s.logger.Info().Msg(ev.Message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, ev)
	if len(s.buf) > s.cap {
		s.buf = s.buf[len(s.buf)-s.cap:]
	}
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Recent returns up to n of the latest events, oldest first.
func (s *Sink) Recent(n int) []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.buf) {
		n = len(s.buf)
	}
	out := make([]Event, n)
	copy(out, s.buf[len(s.buf)-n:])
	return out
}

// Subscribe registers a listener. The returned cancel function must be
// called to release it.
func (s *Sink) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}
