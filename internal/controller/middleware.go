package controller

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/HackingCorp/ltcgroup-sub001/pkg/utils"
)

const (
	limiterIdleTTL       = 30 * time.Minute
	limiterSweepInterval = 5 * time.Minute
)

type ipLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
	last    time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	rps      rate.Limit
	burst    int
	limiters sync.Map // map[string]*ipLimiter
	now      func() time.Time
	interval time.Duration

	once      sync.Once
	closeOnce sync.Once
	stop      chan struct{}
	done      chan struct{}
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:      rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
		interval: limiterSweepInterval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	now := rl.now()
	v, _ := rl.limiters.LoadOrStore(ip, &ipLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)})
	il := v.(*ipLimiter)

	il.mu.Lock()
	il.last = now
	il.mu.Unlock()
	return il.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (rl *RateLimiter) sweep(ttl time.Duration) {
	now := rl.now()
	rl.limiters.Range(func(key, val any) bool {
		il := val.(*ipLimiter)
		il.mu.Lock()
		idle := now.Sub(il.last) > ttl
		il.mu.Unlock()
		if idle {
			rl.limiters.Delete(key)
		}
		return true
	})
}

func (rl *RateLimiter) startSweeper() {
	go func() {
		defer close(rl.done)
		t := time.NewTicker(rl.interval)
		defer t.Stop()
		for {
			select {
			case <-rl.stop:
				return
			case <-t.C:
				rl.sweep(limiterIdleTTL)
			}
		}
	}()
}

// Close stops the idle-client sweeper and waits for it to exit. It is safe
// to call more than once, and before the middleware was ever mounted.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() {
		rl.once.Do(func() { close(rl.done) })
		close(rl.stop)
		<-rl.done
	})
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	rl.once.Do(rl.startSweeper)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(utils.ClientIP(r)) {
			w.Header().Set("Retry-After", "1")
			utils.RespondWithError(w, http.StatusTooManyRequests, "Too many requests, please retry shortly")
			return
		}
		next.ServeHTTP(w, r)
	})
}
