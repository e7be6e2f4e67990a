package audio

import (
	"encoding/binary"
	"math"
	"time"
)

const (
	// DefaultSampleRate is used when Config leaves it unset.
	DefaultSampleRate = 44100
	bytesPerSample    = 2
	fadeDuration      = 5 * time.Millisecond
)

// Synthesize renders notes as mono signed 16-bit little-endian PCM. Each note
// fades in and out to avoid clicks between tones.
func Synthesize(notes []Note, sampleRate int, volume float64) []byte {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	volume = clampVolume(volume)

	total := 0
	for _, note := range notes {
		total += sampleCount(note.Duration, sampleRate)
	}
	pcm := make([]byte, 0, total*bytesPerSample)

	amplitude := volume * math.MaxInt16
	fadeSamples := sampleCount(fadeDuration, sampleRate)
	for _, note := range notes {
		samples := sampleCount(note.Duration, sampleRate)
		for i := 0; i < samples; i++ {
			envelope := 1.0
			if fadeSamples > 0 {
				if i < fadeSamples {
					envelope = float64(i) / float64(fadeSamples)
				} else if remaining := samples - 1 - i; remaining < fadeSamples {
					envelope = float64(remaining) / float64(fadeSamples)
				}
			}
			phase := 2 * math.Pi * note.Frequency * float64(i) / float64(sampleRate)
			sample := int16(math.Round(amplitude * envelope * math.Sin(phase)))
			pcm = binary.LittleEndian.AppendUint16(pcm, uint16(sample))
		}
	}
	return pcm
}

func sampleCount(duration time.Duration, sampleRate int) int {
	if duration <= 0 {
		return 0
	}
	return int(duration.Seconds() * float64(sampleRate))
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}
