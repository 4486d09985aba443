package github

import (
	"context"
	"time"
)

// Pacer decides how long Fetch waits before requesting the next page.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedPacer waits the same delay before every page after the first.
type FixedPacer struct {
	Delay time.Duration
}

func (p FixedPacer) Wait(ctx context.Context) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	var timer = time.NewTimer(p.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoPacer does not wait.
type NoPacer struct{}

func (NoPacer) Wait(context.Context) error {
	return nil
}
