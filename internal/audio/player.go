package audio

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrNoAudioDevice indicates audio output could not be opened.
var ErrNoAudioDevice = errors.New("no audio device")

// Sink plays raw PCM produced by Synthesize and returns when playback ends.
type Sink interface {
	Play(ctx context.Context, pcm []byte) error
}

// Config contains playback options.
type Config struct {
	SampleRate int
	Volume     float64
	// Slack is added to the melody length to bound a single playback.
	Slack time.Duration
}

// DefaultConfig returns the playback defaults.
func DefaultConfig() Config {
	return Config{
		SampleRate: DefaultSampleRate,
		Volume:     0.6,
		Slack:      2 * time.Second,
	}
}

// Player renders a melody and sends it to a sink, falling back to a second
// sink when the first fails. It satisfies countdown.Chime.
type Player struct {
	mu       sync.Mutex
	config   Config
	notes    []Note
	sink     Sink
	fallback Sink
	logger   *slog.Logger
	cancel   context.CancelFunc
}

// NewPlayer creates a player for the completion melody.
func NewPlayer(sink Sink, fallback Sink, config Config, logger *slog.Logger) *Player {
	if config.SampleRate <= 0 {
		config.SampleRate = DefaultSampleRate
	}
	if config.Slack <= 0 {
		config.Slack = DefaultConfig().Slack
	}
	config.Volume = clampVolume(config.Volume)
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		config:   config,
		notes:    CompletionMelody(),
		sink:     sink,
		fallback: fallback,
		logger:   logger.With("component", "audio"),
	}
}

// SetVolume changes the volume for subsequent plays.
func (player *Player) SetVolume(volume float64) {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.config.Volume = clampVolume(volume)
}

// Volume returns the configured volume.
func (player *Player) Volume() float64 {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.config.Volume
}

// Play renders and plays the melody, blocking until it ends. Failures are
// logged; Play never reports them to the caller.
func (player *Player) Play() {
	player.mu.Lock()
	if player.cancel != nil {
		player.cancel()
	}
	config := player.config
	timeout := TotalDuration(player.notes) + config.Slack
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	player.cancel = cancel
	player.mu.Unlock()
	defer cancel()

	pcm := Synthesize(player.notes, config.SampleRate, config.Volume)
	err := player.playOn(ctx, player.sink, pcm)
	if err == nil {
		return
	}
	player.logger.Warn("play chime", "error", err)
	if player.fallback == nil || errors.Is(err, context.Canceled) {
		return
	}
	if err := player.playOn(ctx, player.fallback, pcm); err != nil {
		player.logger.Warn("play chime fallback", "error", err)
	}
}

// Stop interrupts a melody in progress.
func (player *Player) Stop() {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.cancel != nil {
		player.cancel()
		player.cancel = nil
	}
}

func (player *Player) playOn(ctx context.Context, sink Sink, pcm []byte) error {
	if sink == nil {
		return ErrNoAudioDevice
	}
	return sink.Play(ctx, pcm)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
