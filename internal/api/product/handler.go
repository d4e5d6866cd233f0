package product

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petstock/internal/api/respond"
	"petstock/internal/domain"
	"petstock/internal/pkg/logger"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
}

// ProductList é a resposta de GET /productos.
type ProductList struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// ListProductsHandler lida com a requisição GET /productos.
// @Summary Lista os produtos ativos
// @Description Produtos ativos ordenados por nome.
// @Tags produtos
// @Produce json
// @Success 200 {object} ProductList
// @Failure 500 {object} domain.ErrorResponse
// @Router /productos [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.ListProducts(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, ProductList{Products: products, Total: len(products)})
}

// GetProductByIDHandler lida com a requisição GET /productos/{id}.
// @Summary Busca um produto ativo pelo ID
// @Tags produtos
// @Produce json
// @Param id path string true "ID do produto (UUID)"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 500 {object} domain.ErrorResponse
// @Router /productos/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := h.Service.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, product)
}
