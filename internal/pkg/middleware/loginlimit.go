package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"petstock/internal/api/respond"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// LoginLimiter aplica um token bucket por IP às tentativas de login.
type LoginLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      rate.Limit
	burst    int
	log      logger.Logger
	now      func() time.Time
}

// NewLoginLimiter cria o limitador: rps tentativas por segundo com rajada burst.
func NewLoginLimiter(rps float64, burst int, log logger.Logger) *LoginLimiter {
	return &LoginLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		log:      log,
		now:      time.Now,
	}
}

func (l *LoginLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, exists := l.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = l.now()
	return v.limiter
}

// Middleware recusa com 429 quem esgotou o bucket.
func (l *LoginLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.get(ip).Allow() {
			l.log.Warn("🚫 Tentativas de login excedidas", map[string]interface{}{"ip": ip})
			w.Header().Set("Retry-After", strconv.Itoa(1))
			respond.Error(w, r, l.log, apperror.NewTooManyRequestsError("muitas tentativas de login, tente novamente em instantes"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Cleanup remove visitantes sem atividade há mais de idle.
func (l *LoginLimiter) Cleanup(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for ip, v := range l.visitors {
		if l.now().Sub(v.lastSeen) > idle {
			delete(l.visitors, ip)
			removed++
		}
	}
	return removed
}

// StartCleanupLoop roda Cleanup a cada interval até o contexto ser cancelado.
func (l *LoginLimiter) StartCleanupLoop(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Cleanup(idle); n > 0 {
				l.log.Debug("Visitantes inativos removidos do limitador de login", map[string]interface{}{"removed": n})
			}
		}
	}
}
