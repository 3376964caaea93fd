package lifecycle

import (
	"context"
	"fmt"
	"os"
	"time"
)

const (
	defaultPollInterval  = 200 * time.Millisecond
	defaultStableTimeout = 10 * time.Second
)

// WaitForStable blocks until the file at path has a non-zero size that is
// unchanged across two consecutive polls. Files appearing in the inbox may
// still be mid-copy; acting on them before the writer finishes would move a
// truncated document.
func WaitForStable(ctx context.Context, path string, interval, timeout time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if timeout <= 0 {
		timeout = defaultStableTimeout
	}

	deadline := time.Now().Add(timeout)
	var lastSize int64 = -1
	for {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		size := info.Size()
		if size > 0 && size == lastSize {
			return nil
		}
		lastSize = size

		if time.Now().After(deadline) {
			return fmt.Errorf("file %s did not stabilize within %s", path, timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}
