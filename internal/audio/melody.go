package audio

import "time"

// Tone frequencies in Hz.
const (
	ToneC = 262
	ToneE = 330
	ToneG = 392
)

// NoteDuration is the length of every note in the completion melody.
const NoteDuration = 500 * time.Millisecond

// Note is a single sine tone.
type Note struct {
	Frequency float64
	Duration  time.Duration
}

// CompletionMelody returns the C-E-G-E-C sequence played when a countdown ends.
func CompletionMelody() []Note {
	return []Note{
		{Frequency: ToneC, Duration: NoteDuration},
		{Frequency: ToneE, Duration: NoteDuration},
		{Frequency: ToneG, Duration: NoteDuration},
		{Frequency: ToneE, Duration: NoteDuration},
		{Frequency: ToneC, Duration: NoteDuration},
	}
}

// TotalDuration sums the note lengths.
func TotalDuration(notes []Note) time.Duration {
	var total time.Duration
	for _, note := range notes {
		if note.Duration > 0 {
			total += note.Duration
		}
	}
	return total
}
