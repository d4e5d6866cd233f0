package user_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petstock/internal/api/user"
	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/middleware"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.LoginResult), args.Error(1)
}

func TestLoginUserHandler_Success(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Login", mock.Anything, "admin@mascotas.com", "admin123").Return(domain.LoginResult{
		User:      domain.UserProfile{ID: "u-1", Name: "Admin Sistema", Email: "admin@mascotas.com", IsActive: true},
		Token:     "tok",
		ExpiresIn: "24h",
	}, nil)

	rec := httptest.NewRecorder()
	body := `{"email":"admin@mascotas.com","password":"admin123"}`
	user.NewHandler(svc, logger.NewNop()).LoginUserHandler(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"usuario":{"id":"u-1","name":"Admin Sistema","email":"admin@mascotas.com","isActive":true},"token":"tok","expiresIn":"24h"}`, rec.Body.String())
}

func TestLoginUserHandler_InvalidCredentials(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Login", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.LoginResult{}, apperror.NewUnauthorizedError(apperror.CategoryInvalidCredentials, "Credenciais inválidas."))

	rec := httptest.NewRecorder()
	body := `{"email":"admin@mascotas.com","password":"errada"}`
	user.NewHandler(svc, logger.NewNop()).LoginUserHandler(rec, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apperror.CategoryInvalidCredentials)
}

func TestProfileHandler(t *testing.T) {
	h := user.NewHandler(new(MockUserService), logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), domain.User{ID: "u-1", Name: "Admin", PasswordHash: "segredo"}))
	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"usuario":{"id":"u-1"`)
	assert.NotContains(t, rec.Body.String(), "segredo")
}

func TestProfileHandler_WithoutGuard(t *testing.T) {
	h := user.NewHandler(new(MockUserService), logger.NewNop())

	rec := httptest.NewRecorder()
	h.ProfileHandler(rec, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
