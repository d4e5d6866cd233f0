package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"petstock/internal/domain"
)

// AppError é a interface central para todos os erros customizados do petstock.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// DataCarrier é implementado por erros que carregam dados extras para o cliente.
type DataCarrier interface {
	Data() interface{}
}

// Categorias usadas pelas regras de movimentação e pelo guarda de acesso.
const (
	CategoryValidation        = "VALIDATION_ERROR"
	CategoryMissingFields     = "MISSING_FIELDS"
	CategoryInvalidKind       = "INVALID_KIND"
	CategoryInvalidQuantity   = "INVALID_QUANTITY"
	CategoryProductInactive   = "PRODUCT_INACTIVE"
	CategoryInsufficientStock = "INSUFFICIENT_STOCK"
	CategoryNotFound          = "NOT_FOUND"
	CategoryProductNotFound   = "PRODUCT_NOT_FOUND"
	CategoryConflict          = "CONFLICT"
	CategoryPersistence       = "PERSISTENCE_FAILED"
	CategoryInternal          = "INTERNAL_ERROR"

	CategoryMissingCredential  = "MISSING_CREDENTIAL"
	CategoryInvalidCredential  = "INVALID_CREDENTIAL"
	CategoryExpiredCredential  = "EXPIRED_CREDENTIAL"
	CategoryUnknownUser        = "UNKNOWN_USER"
	CategoryInactiveUser       = "INACTIVE_USER"
	CategoryInvalidCredentials = "INVALID_CREDENTIALS"
	CategoryTooManyRequests    = "TOO_MANY_REQUESTS"
)

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
// Code refina a categoria (e.g., INVALID_QUANTITY); vazio significa VALIDATION_ERROR.
type ValidationError struct {
	Msg  string
	Code string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string {
	if e.Code == "" {
		return CategoryValidation
	}
	return e.Code
}
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error   { return nil }                   // Não encapsula erro subjacente

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// NewValidationErrorWithCode cria um erro de validação com categoria específica.
func NewValidationErrorWithCode(code, msg string) AppError {
	return &ValidationError{Msg: msg, Code: code}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg  string
	Code string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string {
	if e.Code == "" {
		return CategoryNotFound
	}
	return e.Code
}
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error   { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// NewProductNotFoundError é o atalho usado quando o produto da movimentação não existe.
func NewProductNotFoundError(id string) AppError {
	return &NotFoundError{Msg: fmt.Sprintf("Produto %s não existe.", id), Code: CategoryProductNotFound}
}

// ConflictError representa um conflito na regra de negócio (e.g., OCC, recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Category() string { return CategoryConflict }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito (usado em OCC).
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// InsufficientStockError é a recusa de uma saída que violaria o estoque mínimo.
// Carrega os dados necessários para o cliente explicar a recusa sem nova consulta.
type InsufficientStockError struct {
	Shortfall domain.Shortfall
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Estoque insuficiente: estoque atual %d, estoque mínimo %d, quantidade solicitada %d",
		e.Shortfall.CurrentStock, e.Shortfall.StockMinimum, e.Shortfall.RequestedQuantity)
}
func (e *InsufficientStockError) Category() string  { return CategoryInsufficientStock }
func (e *InsufficientStockError) HTTPStatus() int   { return http.StatusBadRequest } // 400
func (e *InsufficientStockError) Unwrap() error     { return nil }
func (e *InsufficientStockError) Data() interface{} { return e.Shortfall }

// NewInsufficientStockError cria o erro a partir do Shortfall calculado pelo motor.
func NewInsufficientStockError(s domain.Shortfall) AppError {
	return &InsufficientStockError{Shortfall: s}
}

// UnauthorizedError representa falhas de autenticação. Code é a categoria do guarda
// (MISSING_CREDENTIAL, EXPIRED_CREDENTIAL, ...).
type UnauthorizedError struct {
	Msg  string
	Code string
}

func (e *UnauthorizedError) Error() string { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string {
	if e.Code == "" {
		return "UNAUTHORIZED"
	}
	return e.Code
}
func (e *UnauthorizedError) HTTPStatus() int { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error   { return nil }

// NewUnauthorizedError cria um novo erro de autenticação.
func NewUnauthorizedError(code, msg string) AppError {
	return &UnauthorizedError{Msg: msg, Code: code}
}

// TooManyRequestsError sinaliza que o limite de requisições foi atingido.
type TooManyRequestsError struct {
	Msg string
}

func (e *TooManyRequestsError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *TooManyRequestsError) Category() string { return CategoryTooManyRequests }
func (e *TooManyRequestsError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *TooManyRequestsError) Unwrap() error    { return nil }

// NewTooManyRequestsError cria um erro de limite de requisições.
func NewTooManyRequestsError(msg string) AppError {
	return &TooManyRequestsError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return CategoryInternal }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB): %s", msg, err.Error()), err)
}

// PersistenceError indica que a movimentação foi considerada admissível mas não foi
// gravada. Nunca deve ser confundida com uma recusa de validação.
type PersistenceError struct {
	Msg string
	Err error
}

func (e *PersistenceError) Error() string    { return fmt.Sprintf("Falha de persistência: %s", e.Msg) }
func (e *PersistenceError) Category() string { return CategoryPersistence }
func (e *PersistenceError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *PersistenceError) Unwrap() error    { return e.Err }

// NewPersistenceError cria um erro de persistência encapsulando a causa.
func NewPersistenceError(msg string, err error) AppError {
	return &PersistenceError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP e corpo de resposta.
// Erros encapsulados com %w também são reconhecidos.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Error()
	}

	// Erro não tipado: tratar como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}

// DataOf devolve os dados extras carregados pelo erro, se houver.
func DataOf(err error) interface{} {
	var carrier DataCarrier
	if stderrors.As(err, &carrier) {
		return carrier.Data()
	}
	return nil
}
