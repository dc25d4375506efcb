package middlewares

import (
	"net"
	"net/http"
	"sync"
	"time"

	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const limiterPruneThreshold = 1024

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is a per-IP token bucket. A client that exhausts its bucket is
// blocked for blockTime.
type RateLimiter struct {
	log       *zap.Logger
	visitors  map[string]*visitor
	blocked   map[string]time.Time
	mu        sync.Mutex
	requests  int
	per       time.Duration
	blockTime time.Duration
	now       func() time.Time
}

func NewRateLimiter(log *zap.Logger, requests int, per, blockTime time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &RateLimiter{
		log:       log,
		visitors:  make(map[string]*visitor),
		blocked:   make(map[string]time.Time),
		requests:  requests,
		per:       per,
		blockTime: blockTime,
		now:       time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !r.allow(clientIP(req)) {
			utils.BuildErrorResponse(r.log, w, exceptions.ErrTooManyRequests(nil))
			return
		}
		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(r.blocked, ip)
	}

	v, exists := r.visitors[ip]
	if !exists {
		if len(r.visitors) >= limiterPruneThreshold {
			r.prune(now)
		}
		v = &visitor{limiter: rate.NewLimiter(rate.Every(r.per/time.Duration(r.requests)), r.requests)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	if !v.limiter.AllowN(now, 1) {
		r.blocked[ip] = now.Add(r.blockTime)
		return false
	}
	return true
}

// prune drops visitors idle for longer than a full refill period.
func (r *RateLimiter) prune(now time.Time) {
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.per {
			delete(r.visitors, ip)
		}
	}
}

func clientIP(req *http.Request) string {
	ip, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return ip
}
