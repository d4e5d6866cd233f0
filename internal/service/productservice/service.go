package productservice

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
)

// Limites de tamanho dos campos textuais do catálogo.
const (
	maxNameLen        = 100
	maxDescriptionLen = 500
	maxCategoryLen    = 50
)

// ProductRepository define o contrato que este Serviço espera da camada de Persistência.
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindCachedByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

// Service implementa as leituras do catálogo e o cadastro de produtos.
type Service struct {
	repo   ProductRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateProduct valida e persiste um novo produto. O estoque inicial é definido aqui;
// depois disso ele só muda por movimentações.
func (s *Service) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	product.Description = strings.TrimSpace(product.Description)
	product.Category = strings.TrimSpace(product.Category)

	if err := validateProduct(product); err != nil {
		return domain.Product{}, err
	}

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now
	product.Version = 1

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("falha ao salvar produto no repositório: %w", err)
	}

	s.logger.Info("Produto criado.", map[string]interface{}{"product_id": created.ID, "name": created.Name})
	return created, nil
}

func validateProduct(p domain.Product) error {
	switch {
	case p.Name == "":
		return apperror.NewValidationError("O nome do produto é obrigatório.")
	case utf8.RuneCountInString(p.Name) > maxNameLen:
		return apperror.NewValidationError(fmt.Sprintf("O nome não pode exceder %d caracteres.", maxNameLen))
	case utf8.RuneCountInString(p.Description) > maxDescriptionLen:
		return apperror.NewValidationError(fmt.Sprintf("A descrição não pode exceder %d caracteres.", maxDescriptionLen))
	case p.Category == "":
		return apperror.NewValidationError("A categoria é obrigatória.")
	case utf8.RuneCountInString(p.Category) > maxCategoryLen:
		return apperror.NewValidationError(fmt.Sprintf("A categoria não pode exceder %d caracteres.", maxCategoryLen))
	case p.Price.IsNegative():
		return apperror.NewValidationError("O preço não pode ser negativo.")
	case p.Stock < 0:
		return apperror.NewValidationError("O estoque não pode ser negativo.")
	case p.StockMinimum < 0:
		return apperror.NewValidationError("O estoque mínimo não pode ser negativo.")
	}
	return nil
}

// ListProducts devolve os produtos ativos ordenados por nome.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx, domain.ProductFilter{ActiveOnly: true})
}

// GetProductByID busca um produto ativo. Produtos inativos são tratados como inexistentes.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}

	product, err := s.repo.FindCachedByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	if !product.IsActive {
		return domain.Product{}, apperror.NewProductNotFoundError(id)
	}
	return product, nil
}
