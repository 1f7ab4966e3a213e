package dataverse

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of requests in flight for batch calls
const DefaultConcurrency = 5

// BatchResult holds the outcome of a batch fetch, keyed by persistent ID
type BatchResult struct {
	Versions map[string]*DatasetVersion
	Failed   map[string]error
}

// GetDatasets fetches several datasets concurrently. A failure for one PID
// does not stop the others; it is recorded in Failed.
func (c *Client) GetDatasets(ctx context.Context, pids []string, version string) BatchResult {
	result := BatchResult{
		Versions: make(map[string]*DatasetVersion, len(pids)),
		Failed:   make(map[string]error),
	}
	if len(pids) == 0 {
		return result
	}

	var g errgroup.Group
	g.SetLimit(DefaultConcurrency)

	var mu sync.Mutex

	for _, pid := range pids {
		pid := pid // per-iteration copy; go directive is below 1.22
		g.Go(func() error {
			v, err := c.GetDataset(ctx, pid, version)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Warn().Err(err).Str("pid", pid).Msg("Failed to get dataset")
				result.Failed[pid] = err
				return nil
			}
			result.Versions[pid] = v
			return nil
		})
	}

	// Per-PID errors go to result.Failed, so Wait has nothing to report
	g.Wait()
	return result
}
