package client

import (
	"context"

	"livegate/internal/client/events"
)

// MediaSession is a scoped resource: whoever acquires it must release it
// on teardown regardless of how the bootstrap sequence exits.
type MediaSession interface {
	Release()
}

// MediaProvider acquires the local audio/media session before the
// credential fetch begins. Acquisition failure is terminal for
// bootstrap; it is not part of the retry loop.
type MediaProvider interface {
	Acquire(ctx context.Context) (MediaSession, error)
}

// DeviceAudio is the default provider. Actual device capture is owned by
// the transport SDK once connected; this session only scopes the local
// audio claim so teardown has one thing to release.
type DeviceAudio struct {
	Sink *events.Sink
}

type deviceAudioSession struct {
	sink     *events.Sink
	released bool
}

func (d *DeviceAudio) Acquire(ctx context.Context) (MediaSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.Sink.Info("audio session acquired")
	return &deviceAudioSession{sink: d.Sink}, nil
}

func (s *deviceAudioSession) Release() {
	if s.released {
		return
	}
	s.released = true
	s.sink.Info("audio session released")
}
