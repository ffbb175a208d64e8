package battle

import (
	"context"
	"time"
)

// Timing holds the cosmetic pauses between steps of an encounter.
// Zero values skip the pause.
type Timing struct {
	BattleDelay    time.Duration // after START and before the reset
	AnimationDelay time.Duration // after an enemy hit lands
	HurtDelay      time.Duration // after a player hit lands
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
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

// await blocks until done is closed or ctx is done. A nil channel counts as
// already finished.
func await(ctx context.Context, done <-chan struct{}) error {
	if done == nil {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
