package stockservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/moby/locker"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/ledger"
	"petstock/internal/pkg/logger"
)

// CatalogStore define o contrato que o Serviço de Estoque espera da camada de Persistência.
type CatalogStore interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdateStock(ctx context.Context, product *domain.Product, expectedVersion int) error
}

// Service orquestra as movimentações: busca, decide (internal/ledger) e persiste.
type Service struct {
	store  CatalogStore
	locks  *locker.Locker
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(store CatalogStore, log logger.Logger) *Service {
	return &Service{
		store:  store,
		locks:  locker.New(),
		logger: log,
		now:    time.Now,
	}
}

// RegisterMovement registra uma entrada ou saída. A requisição é validada antes de
// qualquer leitura; o ciclo leitura-decisão-escrita é serializado por produto e a
// escrita usa a versão lida (OCC).
func (s *Service) RegisterMovement(ctx context.Context, req domain.MovementRequest) (domain.MovementReceipt, error) {
	kind, quantity, err := s.validateRequest(req)
	if err != nil {
		return domain.MovementReceipt{}, err
	}
	// Forma canônica do UUID, para que a trava por produto não dependa da grafia.
	productID := uuid.MustParse(strings.TrimSpace(req.ProductID)).String()

	s.logger.Debug("Iniciando movimentação de estoque.", map[string]interface{}{
		"product_id": productID,
		"kind":       kind,
		"quantity":   quantity,
	})

	// Serializa leitura-decisão-escrita por produto dentro do processo.
	s.locks.Lock(productID)
	defer s.locks.Unlock(productID)

	product, err := s.store.FindByID(ctx, productID)
	if err != nil {
		return domain.MovementReceipt{}, err
	}

	readVersion := product.Version
	decision := ledger.Apply(&product, kind, quantity)
	if !decision.Admissible() {
		s.logger.Info("Movimentação recusada.", map[string]interface{}{
			"product_id": productID,
			"outcome":    decision.Outcome,
			"stock":      decision.PreviousStock,
			"minimum":    decision.StockMinimum,
			"quantity":   quantity,
		})
		return domain.MovementReceipt{}, decisionError(decision, product)
	}

	if err := s.store.UpdateStock(ctx, &product, readVersion); err != nil {
		var conflict *apperror.ConflictError
		var persistence *apperror.PersistenceError
		if !errors.As(err, &conflict) && !errors.As(err, &persistence) {
			err = apperror.NewPersistenceError("falha ao gravar a movimentação", err)
		}
		s.logger.Error("Falha ao persistir movimentação de estoque.", err)
		return domain.MovementReceipt{}, err
	}

	receipt := domain.MovementReceipt{
		Product: domain.StockChange{
			ProductID:     product.ID,
			Name:          product.Name,
			PreviousStock: decision.PreviousStock,
			NewStock:      decision.NewStock,
			StockMinimum:  decision.StockMinimum,
		},
		Movement: domain.Movement{
			Kind:       kind,
			Quantity:   quantity,
			Note:       strings.TrimSpace(req.Note),
			OccurredAt: s.now().UTC(),
		},
	}

	s.logger.Info("✅ Movimentação registrada.", map[string]interface{}{
		"product_id":     product.ID,
		"kind":           kind,
		"quantity":       quantity,
		"previous_stock": decision.PreviousStock,
		"new_stock":      decision.NewStock,
		"version":        product.Version,
	})
	return receipt, nil
}

// validateRequest confere presença e formato dos campos na ordem: tipo, quantidade.
func (s *Service) validateRequest(req domain.MovementRequest) (domain.MovementKind, int, error) {
	if strings.TrimSpace(req.ProductID) == "" || strings.TrimSpace(req.Kind) == "" || req.Quantity == nil {
		return "", 0, apperror.NewValidationErrorWithCode(apperror.CategoryMissingFields,
			"productoId, tipoMovimiento e cantidad são obrigatórios.")
	}

	kind := domain.NormalizeMovementKind(req.Kind)
	if !kind.Valid() {
		return "", 0, invalidKind()
	}

	quantity, ok := ledger.ParseQuantity(req.Quantity)
	if !ok {
		return "", 0, invalidQuantity()
	}
	if rejected, ok := ledger.CheckRequest(kind, quantity); !ok {
		return "", 0, decisionError(rejected, domain.Product{})
	}

	if _, err := uuid.Parse(strings.TrimSpace(req.ProductID)); err != nil {
		return "", 0, apperror.NewValidationError(fmt.Sprintf("productoId inválido: %q", req.ProductID))
	}
	return kind, quantity, nil
}

// decisionError traduz uma decisão não admissível para o erro tipado correspondente.
func decisionError(d domain.Decision, product domain.Product) error {
	switch d.Outcome {
	case domain.OutcomeInvalidKind:
		return invalidKind()
	case domain.OutcomeInvalidQuantity:
		return invalidQuantity()
	case domain.OutcomeProductInactive:
		return apperror.NewValidationErrorWithCode(apperror.CategoryProductInactive,
			fmt.Sprintf("O produto %s está inativo.", product.Name))
	case domain.OutcomeInsufficientStock:
		return apperror.NewInsufficientStockError(*d.Shortfall)
	}
	return apperror.NewInternalError(fmt.Sprintf("resultado inesperado do motor: %s", d.Outcome), nil)
}

func invalidKind() error {
	return apperror.NewValidationErrorWithCode(apperror.CategoryInvalidKind,
		"tipoMovimiento deve ser 'entrada' ou 'salida'.")
}

func invalidQuantity() error {
	return apperror.NewValidationErrorWithCode(apperror.CategoryInvalidQuantity,
		"A quantidade deve ser um número inteiro maior que 0.")
}

// LowStockReport lista os produtos ativos no piso ou abaixo dele.
func (s *Service) LowStockReport(ctx context.Context) (domain.StockReport, error) {
	products, err := s.store.FindAll(ctx, domain.ProductFilter{ActiveOnly: true})
	if err != nil {
		return domain.StockReport{}, err
	}
	return ledger.LowStock(products), nil
}

// StockReport classifica todos os produtos ativos pela margem em relação ao piso.
func (s *Service) StockReport(ctx context.Context) (domain.StockReport, error) {
	products, err := s.store.FindAll(ctx, domain.ProductFilter{ActiveOnly: true})
	if err != nil {
		return domain.StockReport{}, err
	}
	return ledger.Classify(products), nil
}
