package httpapi

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"golang.org/x/time/rate"
)

// PassphraseHeader carries the admin passphrase on gated requests.
const PassphraseHeader = "X-Admin-Passphrase"

// GateLimitConfig throttles failed passphrase attempts per client address.
type GateLimitConfig struct {
	Rate            rate.Limit
	Burst           int
	CleanupInterval time.Duration
}

func DefaultGateLimitConfig() GateLimitConfig {
	return GateLimitConfig{
		Rate:            rate.Limit(5.0 / 60.0),
		Burst:           5,
		CleanupInterval: 5 * time.Minute,
	}
}

type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// GateDeniedRecorder is told about every rejected passphrase.
type GateDeniedRecorder interface {
	RecordGateDenied()
}

// gateGuard checks the passphrase on destructive routes. Only failures
// spend tokens, so a client that keeps guessing is locked out while honest
// callers are never throttled.
type gateGuard struct {
	gate    auth.Gate
	config  GateLimitConfig
	logger  *slog.Logger
	metrics GateDeniedRecorder

	mu      sync.Mutex
	clients map[string]*clientLimiter
}

func newGateGuard(gate auth.Gate, config GateLimitConfig, logger *slog.Logger, metrics GateDeniedRecorder) *gateGuard {
	if gate == nil {
		gate = auth.DenyAll{}
	}
	if config.Rate <= 0 || config.Burst <= 0 {
		config = DefaultGateLimitConfig()
	}
	return &gateGuard{
		gate:    gate,
		config:  config,
		logger:  logger,
		metrics: metrics,
		clients: make(map[string]*clientLimiter),
	}
}

func (g *gateGuard) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddr(r)
		limiter := g.limiterFor(client)

		if limiter.Tokens() < 1 {
			writeRateLimitResponse(w, g.config.Rate)
			g.logger.Warn("gate rate limit exceeded", slog.String("client", client))
			return
		}
		if !g.gate.Authorize(r.Header.Get(PassphraseHeader)) {
			limiter.Allow()
			if g.metrics != nil {
				g.metrics.RecordGateDenied()
			}
			writeError(w, http.StatusForbidden, "unauthorized", "incorrect admin passphrase")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *gateGuard) limiterFor(client string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if cl, ok := g.clients[client]; ok {
		cl.lastAccess = now
		return cl.limiter
	}
	g.cleanupLocked(now)
	cl := &clientLimiter{limiter: rate.NewLimiter(g.config.Rate, g.config.Burst), lastAccess: now}
	g.clients[client] = cl
	return cl.limiter
}

// cleanupLocked drops clients idle for twice the cleanup interval.
func (g *gateGuard) cleanupLocked(now time.Time) {
	if g.config.CleanupInterval <= 0 {
		return
	}
	ttl := g.config.CleanupInterval * 2
	for client, cl := range g.clients {
		if now.Sub(cl.lastAccess) > ttl {
			delete(g.clients, client)
		}
	}
}

func (g *gateGuard) clientCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse writes a 429 with Retry-After set to the time one
// token takes to refill.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	writeError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "too many failed passphrase attempts")
}
