package alerting

import (
	"sync"
	"time"
)

// cleanupThreshold — число ключей, после которого устаревшие записи удаляются.
const cleanupThreshold = 100

// RateLimiter пропускает не более одного алерта с данным ключом за window.
// Состояние живёт только в памяти процесса.
type RateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	sent   map[string]time.Time
	now    func() time.Time
}

// NewRateLimiter создаёт RateLimiter. now == nil означает time.Now.
func NewRateLimiter(window time.Duration, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{window: window, sent: make(map[string]time.Time), now: now}
}

// Allow сообщает, можно ли отправить алерт с key, и при true
// запоминает время отправки.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if len(r.sent) > cleanupThreshold {
		for k, at := range r.sent {
			if now.Sub(at) >= r.window {
				delete(r.sent, k)
			}
		}
	}

	if last, ok := r.sent[key]; ok && now.Sub(last) < r.window {
		return false
	}
	r.sent[key] = now
	return true
}
