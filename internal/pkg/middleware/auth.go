package middleware

import (
	"context"
	"net/http"
	"strings"

	"petstock/internal/api/respond"
	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
)

// ContextKey é o tipo das chaves que este pacote grava no contexto.
// Context Keys devem ser não-exportadas e de um tipo único para evitar colisões.
type ContextKey int

const (
	userKey ContextKey = iota
)

// Authenticator resolve uma credencial bearer para um usuário ativo.
// Os erros devem ser *apperror.UnauthorizedError com a categoria da falha.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// NewAuthMiddleware cria o guarda de acesso: extrai o token do header
// Authorization: Bearer <token>, resolve o usuário e o anexa ao contexto.
func NewAuthMiddleware(auth Authenticator, log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, r, log, apperror.NewUnauthorizedError(
					apperror.CategoryMissingCredential, "Acesso negado. Token não fornecido."))
				return
			}

			user, err := auth.Authenticate(r.Context(), tokenString)
			if err != nil {
				respond.Error(w, r, log, err)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extrai o token de "Bearer <token>". Esquema sem token conta como ausente.
func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	if tok == "" {
		return "", false
	}
	return tok, true
}

// GetUserFromContext devolve o usuário anexado pelo guarda de acesso.
func GetUserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey).(domain.User)
	return user, ok
}

// WithUser anexa um usuário ao contexto (usado em testes de handlers).
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
