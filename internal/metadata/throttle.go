// file: internal/metadata/throttle.go
// version: 1.0.0
// guid: 829af8d8-bf82-4ec1-808a-8640627cf3b1

package metadata

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled spaces lookups out with a token bucket. It waits; it never retries.
type Throttled struct {
	source  MetadataSource
	limiter *rate.Limiter
}

// NewThrottled wraps source with a limit of requestsPerMinute. A limit below
// one returns source unchanged.
func NewThrottled(source MetadataSource, requestsPerMinute int) MetadataSource {
	if requestsPerMinute < 1 {
		return source
	}
	perSecond := float64(requestsPerMinute) / 60.0
	return &Throttled{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Name returns the wrapped source's name
func (t *Throttled) Name() string {
	return t.source.Name()
}

// LookupISBN waits for a token, then delegates
func (t *Throttled) LookupISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for lookup slot: %w", err)
	}
	return t.source.LookupISBN(ctx, isbn)
}
