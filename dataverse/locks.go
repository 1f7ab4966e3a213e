package dataverse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// GetLocks lists the locks currently held on a dataset
func (c *Client) GetLocks(ctx context.Context, pid string) ([]Lock, error) {
	data, err := c.doRequest(ctx, http.MethodGet, pidParams(pid), nil, "datasets", persistentIDSegment, "locks")
	if err != nil {
		return nil, fmt.Errorf("failed to get locks of %s: %w", pid, err)
	}

	var locks []Lock
	if err := decodeData(data, &locks); err != nil {
		return nil, err
	}
	return locks, nil
}

// AwaitUnlock polls the dataset locks until none remain. It gives up after
// AwaitLockStateMaxRetries polls, waiting AwaitLockStateInterval between them.
func (c *Client) AwaitUnlock(ctx context.Context, pid string) error {
	maxRetries := c.cfg.AwaitLockStateMaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	var locks []Lock
	for attempt := 1; attempt <= maxRetries; attempt++ {
		var err error
		locks, err = c.GetLocks(ctx, pid)
		if err != nil {
			return err
		}
		if len(locks) == 0 {
			c.logger.Debug().Str("pid", pid).Int("attempt", attempt).Msg("Dataset is unlocked")
			return nil
		}

		c.logger.Debug().
			Str("pid", pid).
			Int("attempt", attempt).
			Str("locks", lockTypes(locks)).
			Msg("Dataset is locked, waiting")

		if attempt == maxRetries {
			break
		}

		timer := time.NewTimer(c.cfg.AwaitLockStateInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return fmt.Errorf("%w: %s after %d attempts (%s)", ErrLockTimeout, pid, maxRetries, lockTypes(locks))
}

func lockTypes(locks []Lock) string {
	types := make([]string, 0, len(locks))
	for _, l := range locks {
		types = append(types, l.LockType)
	}
	return strings.Join(types, ",")
}
