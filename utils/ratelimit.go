package utils

import (
	"sync"

	"golang.org/x/time/rate"
)

// DownloadLimiter applies per-requester rate limiting to download requests.
// Each requester key gets its own token bucket; an empty key is grouped
// under "anonymous".
type DownloadLimiter struct {
	limit  rate.Limit
	burst  int
	mu     sync.Mutex
	bucket map[string]*rate.Limiter
}

// NewDownloadLimiter creates a limiter allowing the given number of requests
// per minute for each requester. A burst less than 1 is coerced to 1.
func NewDownloadLimiter(perMinute int, burst int) *DownloadLimiter {
	if burst < 1 {
		burst = 1
	}
	return &DownloadLimiter{
		limit:  rate.Limit(float64(perMinute) / 60.0),
		burst:  burst,
		bucket: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether the requester may make another download attempt now
func (l *DownloadLimiter) Allow(requesterID string) bool {
	return l.limiterFor(requesterID).Allow()
}

func (l *DownloadLimiter) limiterFor(requesterID string) *rate.Limiter {
	key := requesterID
	if key == "" {
		key = "anonymous"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.bucket[key]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.bucket[key] = limiter
	}

	return limiter
}
