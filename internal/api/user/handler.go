package user

import (
	"context"
	"encoding/json"
	"net/http"

	"petstock/internal/api/respond"
	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/middleware"
)

// UserService define o contrato para a operação de login.
type UserService interface {
	Login(ctx context.Context, email string, password string) (domain.LoginResult, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" example:"admin@mascotas.com"`
	Password string `json:"password" example:"admin123"`
}

// ProfileResponse é a resposta de GET /auth/profile.
type ProfileResponse struct {
	User domain.User `json:"usuario"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// LoginUserHandler lida com a requisição POST /auth/login.
// @Summary Autentica um usuário e retorna um JWT
// @Description Recebe email/senha, verifica a validade e emite um JSON Web Token válido por 24h.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.LoginResult "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos ausentes"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas ou usuário inativo"
// @Failure 429 {object} domain.ErrorResponse "Muitas tentativas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /auth/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("Payload JSON inválido."))
		return
	}

	result, err := h.Service.Login(r.Context(), loginReq.Email, loginReq.Password)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, h.Logger, http.StatusOK, result)
}

// ProfileHandler lida com a requisição GET /auth/profile.
// @Summary Perfil do usuário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} domain.ErrorResponse
// @Router /auth/profile [get]
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewUnauthorizedError(apperror.CategoryMissingCredential, "Autenticação necessária."))
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, ProfileResponse{User: user})
}
