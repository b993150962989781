// Package ratelimit provides the in-process token bucket rate limiter.
package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a thread-safe token bucket with time-based refill.
type TokenBucket struct {
	mu         sync.Mutex
	capacity   float64
	tokens     float64
	rate       float64 // tokens per second
	lastRefill time.Time
}

// NewTokenBucket creates a bucket that starts full.
func NewTokenBucket(capacity, rate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		rate:       rate,
		lastRefill: time.Now(),
	}
}

// Allow attempts to consume one token.
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// Available returns the current token count.
func (tb *TokenBucket) Available() float64 {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	return tb.tokens
}

// TimeUntilAvailable returns how long until one token will be available.
func (tb *TokenBucket) TimeUntilAvailable() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refill()
	if tb.tokens >= 1 {
		return 0
	}
	seconds := (1 - tb.tokens) / tb.rate
	return time.Duration(seconds * float64(time.Second))
}

// refill must be called with the lock held.
func (tb *TokenBucket) refill() {
	now := time.Now()
	tb.tokens += now.Sub(tb.lastRefill).Seconds() * tb.rate
	if tb.tokens > tb.capacity {
		tb.tokens = tb.capacity
	}
	tb.lastRefill = now
}

// bucketPool keeps one bucket per key with idle cleanup.
type bucketPool struct {
	mu       sync.Mutex
	buckets  map[string]*bucketEntry
	capacity float64
	rate     float64
}

type bucketEntry struct {
	bucket   *TokenBucket
	lastUsed time.Time
}

func newBucketPool(capacity, rate float64) *bucketPool {
	return &bucketPool{
		buckets:  make(map[string]*bucketEntry),
		capacity: capacity,
		rate:     rate,
	}
}

func (p *bucketPool) getOrCreate(key string) *TokenBucket {
	p.mu.Lock()
	defer p.mu.Unlock()

	if entry, ok := p.buckets[key]; ok {
		entry.lastUsed = time.Now()
		return entry.bucket
	}
	bucket := NewTokenBucket(p.capacity, p.rate)
	p.buckets[key] = &bucketEntry{bucket: bucket, lastUsed: time.Now()}
	return bucket
}

func (p *bucketPool) cleanup(maxIdle time.Duration) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range p.buckets {
		if now.Sub(entry.lastUsed) > maxIdle {
			delete(p.buckets, key)
			removed++
		}
	}
	return removed
}
