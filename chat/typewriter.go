package chat

import (
	"context"
	"time"
)

// DefaultTypingDelay is the pause between revealed characters.
const DefaultTypingDelay = 10 * time.Millisecond

// Typewriter reveals text one rune at a time.
type Typewriter struct {
	Delay time.Duration
}

// Type calls emit with each rune of text in order, pausing Delay before each
// one. It stops early when ctx is done or emit fails.
func (tw Typewriter) Type(ctx context.Context, text string, emit func(string) error) error {
	var timer *time.Timer
	if tw.Delay > 0 {
		timer = time.NewTimer(tw.Delay)
		defer timer.Stop()
	}

	first := true
	for _, r := range text {
		if timer != nil {
			if !first {
				timer.Reset(tw.Delay)
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		first = false

		if err := emit(string(r)); err != nil {
			return err
		}
	}
	return nil
}

// Pause waits for d or until ctx is done.
func Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
