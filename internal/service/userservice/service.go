package userservice

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
	"petstock/internal/pkg/token"
)

const (
	minPasswordLen = 6
	maxNameLen     = 50
)

// UserRepository define o contrato de persistência de usuários.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id string) (domain.User, error)
}

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
	ExpiresIn() string
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	UserRepo UserRepository
	TokenSvc TokenService
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService.
func NewService(repo UserRepository, tokenSvc TokenService, log logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		TokenSvc: tokenSvc,
		logger:   log,
	}
}

// CreateUser valida os dados, gera o hash bcrypt da senha e persiste o usuário.
func (s *UserService) CreateUser(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	name := strings.TrimSpace(registration.Name)
	email := strings.ToLower(strings.TrimSpace(registration.Email))

	switch {
	case name == "":
		return domain.User{}, apperror.NewValidationError("O nome é obrigatório.")
	case utf8.RuneCountInString(name) > maxNameLen:
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("O nome não pode exceder %d caracteres.", maxNameLen))
	case !validEmail(email):
		return domain.User{}, apperror.NewValidationError("Informe um email válido.")
	case len(registration.Password) < minPasswordLen:
		return domain.User{}, apperror.NewValidationError(fmt.Sprintf("A senha deve ter pelo menos %d caracteres.", minPasswordLen))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.UserRepo.Save(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsActive:     registration.IsActive,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário criado.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}

// Login autentica um usuário, verifica a senha e gera um JWT.
// A senha é conferida antes do estado da conta, para não revelar contas inativas
// a quem não conhece a senha.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.LoginResult{}, apperror.NewValidationErrorWithCode(apperror.CategoryMissingFields,
			"Email e senha são obrigatórios.")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.LoginResult{}, invalidCredentials()
		}
		return domain.LoginResult{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Senha incorreta no login.", map[string]interface{}{"user_id": user.ID})
		return domain.LoginResult{}, invalidCredentials()
	}

	if !user.IsActive {
		return domain.LoginResult{}, apperror.NewUnauthorizedError(apperror.CategoryInactiveUser, "Usuário inativo.")
	}

	tokenString, err := s.TokenSvc.GenerateToken(user.ID)
	if err != nil {
		return domain.LoginResult{}, apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	s.logger.Info("🔑 Login realizado.", map[string]interface{}{"user_id": user.ID})
	return domain.LoginResult{
		User:      user.Profile(),
		Token:     tokenString,
		ExpiresIn: s.TokenSvc.ExpiresIn(),
	}, nil
}

func invalidCredentials() error {
	return apperror.NewUnauthorizedError(apperror.CategoryInvalidCredentials, "Credenciais inválidas.")
}

// Authenticate é o guarda de acesso: resolve um token para um usuário ativo.
// Cada falha tem sua categoria (ausente, inválido, expirado, usuário desconhecido, inativo).
func (s *UserService) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	if strings.TrimSpace(tokenString) == "" {
		return domain.User{}, apperror.NewUnauthorizedError(apperror.CategoryMissingCredential, "Token de acesso requerido.")
	}

	claims, err := s.TokenSvc.ValidateToken(tokenString)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return domain.User{}, apperror.NewUnauthorizedError(apperror.CategoryExpiredCredential,
				"Token expirado, faça login novamente.")
		}
		return domain.User{}, apperror.NewUnauthorizedError(apperror.CategoryInvalidCredential, "Token inválido.")
	}

	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.User{}, apperror.NewUnauthorizedError(apperror.CategoryUnknownUser,
				"O token referencia um usuário inexistente.")
		}
		return domain.User{}, err
	}

	if !user.IsActive {
		return domain.User{}, apperror.NewUnauthorizedError(apperror.CategoryInactiveUser, "Usuário inativo.")
	}
	return user, nil
}
