package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/middleware"
)

// --- Fakes ---

type fakeAuthenticator struct {
	user domain.User
	err  error
	got  string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, tok string) (domain.User, error) {
	f.got = tok
	return f.user, f.err
}

// fakeCache imita o contador com janela do Redis: a chave expira em now+window
// e uma chave sem TTL recebe a janela no próximo incremento.
type fakeCache struct {
	mu       sync.Mutex
	now      time.Time
	counters map[string]int64
	expires  map[string]time.Time
	windows  []time.Duration
	incrErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		now:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		counters: map[string]int64{},
		expires:  map[string]time.Time{},
	}
}

func (c *fakeCache) Get(context.Context, string) (string, error) { return "", errors.New("not used") }
func (c *fakeCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (c *fakeCache) Delete(context.Context, string) error       { return nil }
func (c *fakeCache) DeletePrefix(context.Context, string) error { return nil }
func (c *fakeCache) IncrWindow(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.incrErr != nil {
		return 0, c.incrErr
	}
	if exp, ok := c.expires[key]; ok && !c.now.Before(exp) {
		delete(c.counters, key)
		delete(c.expires, key)
	}
	c.windows = append(c.windows, window)
	c.counters[key]++
	if _, ok := c.expires[key]; !ok {
		c.expires[key] = c.now.Add(window)
	}
	return c.counters[key], nil
}

func (c *fakeCache) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func category(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body domain.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Category
}

// --- Guarda de acesso ---

func TestAuthMiddleware_MissingCredential(t *testing.T) {
	auth := &fakeAuthenticator{}
	mw := middleware.NewAuthMiddleware(auth, logger.NewNop())

	for _, header := range []string{"", "Basic abc", "Bearer ", "Bearer    "} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			mw(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, apperror.CategoryMissingCredential, category(t, rec))
		})
	}
}

func TestAuthMiddleware_PropagatesGuardCategory(t *testing.T) {
	auth := &fakeAuthenticator{err: apperror.NewUnauthorizedError(apperror.CategoryExpiredCredential, "Token expirado.")}
	mw := middleware.NewAuthMiddleware(auth, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer abc.def.ghi")
	rec := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "abc.def.ghi", auth.got)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperror.CategoryExpiredCredential, category(t, rec))
}

func TestAuthMiddleware_AttachesUser(t *testing.T) {
	user := domain.User{ID: "u-1", Name: "Admin", IsActive: true}
	mw := middleware.NewAuthMiddleware(&fakeAuthenticator{user: user}, logger.NewNop())

	var seen domain.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := middleware.GetUserFromContext(r.Context())
		require.True(t, ok)
		seen = u
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "bearer token-x")
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", seen.ID)
}

// --- Rate limit ---

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	c := newFakeCache()
	mw := middleware.RateLimiter(c, 2, time.Minute, logger.NewNop())(okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/productos", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if i == 2 {
			assert.Equal(t, apperror.CategoryTooManyRequests, category(t, rec))
			assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		}
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.Equal(t, []time.Duration{time.Minute, time.Minute, time.Minute}, c.windows)
}

func TestRateLimiter_ReleasesAfterWindow(t *testing.T) {
	c := newFakeCache()
	// contador antigo sem expiração, acima do limite
	c.counters["rate-limit:10.0.0.1"] = 50
	mw := middleware.RateLimiter(c, 2, time.Minute, logger.NewNop())(okHandler())

	hit := func() int {
		req := httptest.NewRequest(http.MethodGet, "/productos", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, hit())
	require.Contains(t, c.expires, "rate-limit:10.0.0.1", "a chave deve ganhar TTL")

	c.advance(time.Minute)
	assert.Equal(t, http.StatusOK, hit())
	assert.Equal(t, http.StatusOK, hit())
	assert.Equal(t, http.StatusTooManyRequests, hit())
}

func TestRateLimiter_FailsOpen(t *testing.T) {
	c := newFakeCache()
	c.incrErr = errors.New("redis fora do ar")
	mw := middleware.RateLimiter(c, 1, time.Minute, logger.NewNop())(okHandler())

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		mw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

// --- Login limiter ---

func TestLoginLimiter_PerIP(t *testing.T) {
	l := middleware.NewLoginLimiter(0.001, 2, logger.NewNop())
	h := l.Middleware(okHandler())

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("1.1.1.1:1"))
	assert.Equal(t, http.StatusOK, hit("1.1.1.1:2"))
	assert.Equal(t, http.StatusTooManyRequests, hit("1.1.1.1:3"))
	assert.Equal(t, http.StatusOK, hit("2.2.2.2:1"), "outro IP tem seu próprio bucket")
}

func TestLoginLimiter_Cleanup(t *testing.T) {
	l := middleware.NewLoginLimiter(1, 1, logger.NewNop())
	h := l.Middleware(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 0, l.Cleanup(time.Hour))
	assert.Equal(t, 1, l.Cleanup(-time.Second))
}

// --- Request log ---

func TestRequestLogger_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "test", Level: "info", Out: &buf})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	rec := httptest.NewRecorder()
	middleware.RequestLogger(log)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	out := buf.String()
	assert.True(t, strings.Contains(out, `"status":418`), out)
	assert.Contains(t, out, `"path":"/ping"`)
}
