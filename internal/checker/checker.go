package checker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ProbeResult pairs a probed path with its response.
type ProbeResult struct {
	Index    int
	Path     string
	Response *Response
}

// ProbeFunc is a callback invoked after each probe completes. It may run
// concurrently when Runner.Concurrency > 1.
type ProbeFunc func(result ProbeResult)

// Runner orchestrates probe execution with concurrency and rate limiting
type Runner struct {
	Concurrency int           // Maximum number of concurrent probes
	RateLimit   int           // Requests per second (global); <= 0 disables limiting
	Timeout     time.Duration // Timeout for each probe
}

// RunProbes probes every path on host and returns the results in the order of paths,
// whatever order the probes finished in. Paths not started before ctx is cancelled
// come back as empty responses carrying ctx.Err().
func (r *Runner) RunProbes(ctx context.Context, host string, paths []string, prober Prober, fn ProbeFunc) []ProbeResult {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	// Rate limiter
	var limiter *rate.Limiter
	if r.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(r.RateLimit), r.RateLimit)
	}

	// Worker pool
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	results := make([]ProbeResult, len(paths))

	for i, path := range paths {
		// Acquire the slot before starting the goroutine so dispatch follows path order.
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := ProbeResult{Index: idx, Path: p}

			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					result.Response = cancelledResponse(host, p, err)
					results[idx] = result
					if fn != nil {
						fn(result)
					}
					return
				}
			}
			if err := ctx.Err(); err != nil {
				result.Response = cancelledResponse(host, p, err)
				results[idx] = result
				if fn != nil {
					fn(result)
				}
				return
			}

			probeCtx := ctx
			if r.Timeout > 0 {
				var cancel context.CancelFunc
				probeCtx, cancel = context.WithTimeout(ctx, r.Timeout)
				defer cancel()
			}

			result.Response = prober.Probe(probeCtx, host, p)
			results[idx] = result

			if fn != nil {
				fn(result)
			}
		}(i, path)
	}

	wg.Wait()
	return results
}

func cancelledResponse(host, path string, err error) *Response {
	resp := ParseResponse("")
	resp.Host, resp.Path = host, path
	resp.Err = err
	return resp
}
