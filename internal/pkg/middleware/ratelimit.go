package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"petstock/internal/api/respond"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/cache"
	"petstock/internal/pkg/logger"
)

// RateLimiter limita requisições por IP numa janela fixa usando um contador no Redis.
// O incremento e a expiração da janela são atômicos (cache.Client.IncrWindow).
// Falhas do cache deixam a requisição passar.
func RateLimiter(client cache.Client, limit int, window time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate-limit:" + clientIP(r)

			count, err := client.IncrWindow(r.Context(), key, window)
			if err != nil {
				log.Warn("⚠️ Rate limiter indisponível, requisição liberada", map[string]interface{}{"error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				respond.Error(w, r, log, apperror.NewTooManyRequestsError(
					fmt.Sprintf("máximo de %d requisições a cada %s", limit, window)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP usa RemoteAddr, já reescrito pelo middleware RealIP do chi quando há proxy.
func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
