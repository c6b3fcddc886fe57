package middlewares

import (
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per-IP token bucket that blocks a client for blockTime
// once its bucket runs dry. It guards the evaluation endpoint, which is more
// expensive than plain reads.
//
// Clients whose bucket has fully refilled and whose block has expired are
// dropped on a periodic sweep, so the maps only hold recently active IPs.
type RateLimiter struct {
	Log        *zap.Logger
	visitors   map[string]*visitor
	blocked    map[string]time.Time
	mu         sync.Mutex
	burst      int
	per        time.Duration
	blockTime  time.Duration
	idleAfter  time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	now        func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const minSweepInterval = time.Minute

func NewRateLimiter(logger *zap.Logger, burst int, per, blockTime time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	// An idle bucket is full again after burst refills.
	idleAfter := time.Duration(burst) * per
	sweepEvery := idleAfter
	if sweepEvery < minSweepInterval {
		sweepEvery = minSweepInterval
	}
	return &RateLimiter{
		Log:        logger,
		visitors:   make(map[string]*visitor),
		blocked:    make(map[string]time.Time),
		burst:      burst,
		per:        per,
		blockTime:  blockTime,
		idleAfter:  idleAfter,
		sweepEvery: sweepEvery,
		now:        time.Now,
	}
}

func (r *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ip, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			ip = req.RemoteAddr
		}

		if !r.allow(ip) {
			utils.BuildErrorResponse(r.Log, w, exceptions.ErrTooManyRequests(ip))
			return
		}

		next.ServeHTTP(w, req)
	})
}

func (r *RateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if r.lastSweep.IsZero() {
		r.lastSweep = now
	} else if now.Sub(r.lastSweep) >= r.sweepEvery {
		r.sweep(now)
	}

	if blockedUntil, found := r.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return false
		}
		delete(r.blocked, ip)
	}

	v, exists := r.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(r.per), r.burst)}
		r.visitors[ip] = v
	}
	v.lastSeen = now

	if !v.limiter.AllowN(now, 1) {
		r.blocked[ip] = now.Add(r.blockTime)
		return false
	}
	return true
}

// sweep must be called with mu held.
func (r *RateLimiter) sweep(now time.Time) {
	for ip, v := range r.visitors {
		if now.Sub(v.lastSeen) >= r.idleAfter {
			delete(r.visitors, ip)
		}
	}
	for ip, blockedUntil := range r.blocked {
		if !now.Before(blockedUntil) {
			delete(r.blocked, ip)
		}
	}
	r.lastSweep = now
	r.Log.Debug("RateLimiter.sweep completed",
		zap.Int(constvars.LoggingTrackedClientsKey, len(r.visitors)),
		zap.Int(constvars.LoggingBlockedClientsKey, len(r.blocked)),
	)
}

// NewEvaluationRateLimiter builds the evaluation endpoint limiter from the
// application config.
func (m *Middlewares) NewEvaluationRateLimiter() *RateLimiter {
	app := m.InternalConfig.App
	return NewRateLimiter(
		m.Log,
		app.EvaluationBurst,
		time.Duration(app.EvaluationRefillInSeconds)*time.Second,
		time.Duration(app.EvaluationBlockTimeInSeconds)*time.Second,
	)
}
