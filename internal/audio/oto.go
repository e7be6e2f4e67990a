package audio

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const pollInterval = 20 * time.Millisecond

// OtoSink plays PCM on the default output device. The device is opened on
// first use because oto allows a single context per process.
type OtoSink struct {
	sampleRate int
	once       sync.Once
	context    *oto.Context
	initErr    error
}

// NewOtoSink creates a sink for mono 16-bit audio at sampleRate.
func NewOtoSink(sampleRate int) *OtoSink {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &OtoSink{sampleRate: sampleRate}
}

// Play writes pcm to the device and waits for it to drain.
func (sink *OtoSink) Play(ctx context.Context, pcm []byte) error {
	otoContext, err := sink.open(ctx)
	if err != nil {
		return err
	}

	player := otoContext.NewPlayer(bytes.NewReader(pcm))
	defer func() {
		_ = player.Close()
	}()

	player.Play()
	for player.IsPlaying() {
		if !sleepWithContext(ctx, pollInterval) {
			player.Pause()
			return ctx.Err()
		}
	}
	if err := player.Err(); err != nil {
		return fmt.Errorf("oto playback: %w", err)
	}
	return nil
}

func (sink *OtoSink) open(ctx context.Context) (*oto.Context, error) {
	sink.once.Do(func() {
		otoContext, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sink.sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			sink.initErr = fmt.Errorf("%w: %v", ErrNoAudioDevice, err)
			return
		}
		select {
		case <-ready:
		case <-ctx.Done():
			sink.initErr = fmt.Errorf("%w: device not ready: %v", ErrNoAudioDevice, ctx.Err())
			return
		}
		sink.context = otoContext
	})
	return sink.context, sink.initErr
}
