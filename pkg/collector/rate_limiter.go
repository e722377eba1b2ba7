package collector

import "context"

// RateLimiter limita cuántas fuentes se consultan al mismo tiempo
type RateLimiter struct {
	maxConcurrent int
	semaphore     chan struct{}
}

// NewRateLimiter crea un nuevo rate limiter
func NewRateLimiter(maxConcurrent int) *RateLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &RateLimiter{
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}
}

// Acquire espera un slot o la cancelación del contexto
func (rl *RateLimiter) Acquire(ctx context.Context) error {
	select {
	case rl.semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release libera un slot
func (rl *RateLimiter) Release() {
	<-rl.semaphore
}
