package audio

import (
	"context"
	"fmt"
	"io"
)

// BellSink rings the terminal bell once per note instead of playing PCM.
type BellSink struct {
	writer io.Writer
	notes  []Note
}

// NewBellSink creates a bell sink writing to writer.
func NewBellSink(writer io.Writer) *BellSink {
	return &BellSink{writer: writer, notes: CompletionMelody()}
}

// Play rings the bell with the melody's rhythm.
func (sink *BellSink) Play(ctx context.Context, _ []byte) error {
	for index, note := range sink.notes {
		if _, err := io.WriteString(sink.writer, "\a"); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
		if index == len(sink.notes)-1 {
			break
		}
		if !sleepWithContext(ctx, note.Duration) {
			return ctx.Err()
		}
	}
	return nil
}
