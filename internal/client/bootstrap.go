// Package client implements the device-side connection establishment:
// media acquisition, bounded-retry credential fetch and, once connected,
// host resolution over the live participant set.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"livegate/internal/client/events"
)

// State of the bootstrap sequence.
type State int

const (
	StateIdle State = iota
	StateAcquiringMedia
	StateFetching
	StateConnected
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiringMedia:
		return "acquiring_media"
	case StateFetching:
		return "fetching_credential"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// DefaultRetries and DefaultRetryDelay are the behavioral baseline:
	// three attempts, a fixed two seconds apart, no backoff growth.
	DefaultRetries    = 3
	DefaultRetryDelay = 2 * time.Second

	// minTokenLength is a sanity check against empty or truncated token
	// bodies, not a format validation.
	minTokenLength = 10
)

// Bootstrap drives Idle -> AcquiringMedia -> Fetching(n) -> Connected or
// Failed. Each attempt fully completes before the next is scheduled and
// the inter-attempt delay is cancellable; the acquired media session is
// released on every exit path except success, where ownership moves to
// the returned Result.
type Bootstrap struct {
	Media   MediaProvider
	Fetcher TokenFetcher
	Sink    *events.Sink
	Retries int
	Delay   time.Duration

	sleep func(ctx context.Context, d time.Duration) error

	mu      sync.Mutex
	state   State
	attempt int
}

func NewBootstrap(media MediaProvider, fetcher TokenFetcher, sink *events.Sink) *Bootstrap {
	return &Bootstrap{
		Media:   media,
		Fetcher: fetcher,
		Sink:    sink,
		Retries: DefaultRetries,
		Delay:   DefaultRetryDelay,
		sleep:   sleepContext,
	}
}

// Result is a successful bootstrap: the credential plus the media
// session the caller now owns. Close releases the media session.
type Result struct {
	Token string
	media MediaSession
	once  sync.Once
}

func (r *Result) Close() {
	r.once.Do(r.media.Release)
}

// State returns the current machine state; Attempt the current fetch
// attempt number, starting at 1.
func (b *Bootstrap) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Bootstrap) Attempt() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempt
}

func (b *Bootstrap) setState(s State) {
	b.mu.Lock()
	b.state = s
	b.mu.Unlock()
}

// Run executes the bootstrap sequence. It returns on the first valid
// credential, after the retry budget is exhausted, or when ctx is
// cancelled mid-sequence.
func (b *Bootstrap) Run(ctx context.Context) (*Result, error) {
	b.setState(StateAcquiringMedia)
	b.Sink.Info("acquiring media session")

	media, err := b.Media.Acquire(ctx)
	if err != nil {
		b.setState(StateFailed)
		b.Sink.Error("media acquisition failed: %v", err)
		return nil, fmt.Errorf("acquire media: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= b.Retries; attempt++ {
		b.mu.Lock()
		b.state = StateFetching
		b.attempt = attempt
		b.mu.Unlock()
		b.Sink.Info("fetching credential, attempt %d/%d", attempt, b.Retries)

		token, err := b.fetchOnce(ctx)
		if err == nil {
			b.setState(StateConnected)
			b.Sink.Info("credential acquired on attempt %d", attempt)
			return &Result{Token: token, media: media}, nil
		}
		lastErr = err
		b.Sink.Warn("attempt %d failed: %v", attempt, err)

		if attempt == b.Retries {
			break
		}
		if err := b.sleep(ctx, b.Delay); err != nil {
			media.Release()
			b.setState(StateFailed)
			b.Sink.Error("bootstrap cancelled during retry wait")
			return nil, err
		}
	}

	media.Release()
	b.setState(StateFailed)
	b.Sink.Error("credential fetch failed after %d attempts: %v", b.Retries, lastErr)
	return nil, fmt.Errorf("credential fetch failed after %d attempts: %w", b.Retries, lastErr)
}

func (b *Bootstrap) fetchOnce(ctx context.Context) (string, error) {
	token, err := b.Fetcher.FetchToken(ctx)
	if err != nil {
		return "", err
	}
	if len(token) < minTokenLength {
		return "", fmt.Errorf("token body too short (%d bytes)", len(token))
	}
	return token, nil
}

// sleepContext is a scheduled suspension, not a blocking wait: it
// returns early with the context error on cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
