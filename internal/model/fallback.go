package model

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"cargodocs/internal/port"
)

// circuitState tracks rate-limit backoff for a single caller.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// FallbackCaller tries callers in order, skipping those with open circuits.
// It implements port.ModelCaller.
type FallbackCaller struct {
	callers  []port.ModelCaller
	circuits []*circuitState
	names    []string
}

// NewFallbackCaller creates a FallbackCaller from an ordered list of callers and their names.
func NewFallbackCaller(callers []port.ModelCaller, names []string) *FallbackCaller {
	circuits := make([]*circuitState, len(callers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackCaller{
		callers:  callers,
		circuits: circuits,
		names:    names,
	}
}

func (f *FallbackCaller) Complete(ctx context.Context, images []port.PageImage, prompt string) (string, error) {
	now := time.Now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, caller := range f.callers {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			log.Printf("model.FallbackCaller: skipping %s (circuit open until %s)", f.names[i], resetAt.Format(time.RFC3339))
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		completion, err := caller.Complete(ctx, images, prompt)
		if err == nil {
			return completion, nil
		}

		log.Printf("model.FallbackCaller: %s failed: %v", f.names[i], err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		// Every caller was rate limited or skipped on an open circuit.
		retryAfter := time.Until(earliestReset)
		if retryAfter < 0 {
			retryAfter = time.Second
		}
		return "", NewRateLimitError("all", fmt.Errorf("all model providers rate limited"), int(retryAfter.Seconds()))
	}

	return "", fmt.Errorf("all model providers failed: %w", lastErr)
}
