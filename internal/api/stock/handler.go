package stock

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

// StockService define o contrato que o Handler espera da camada de Serviço.
type StockService interface {
	RegisterMovement(ctx context.Context, req domain.MovementRequest) (domain.MovementReceipt, error)
	LowStockReport(ctx context.Context) (domain.StockReport, error)
	StockReport(ctx context.Context) (domain.StockReport, error)
}

// Handler agrupa todos os métodos de Handler de estoque.
type Handler struct {
	Service StockService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc StockService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterMovementHandler lida com a requisição POST /productos/movimiento.
// @Summary Registra uma movimentação de estoque
// @Description Entrada soma ao estoque; saída só é aceita se o estoque resultante não ficar abaixo do estoque mínimo.
// @Tags estoque
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movimiento body domain.MovementRequest true "Movimentação (tipoMovimiento: entrada|salida)"
// @Success 200 {object} domain.MovementReceipt "Movimentação aplicada"
// @Failure 400 {object} domain.ErrorResponse "Requisição inválida, produto inativo ou estoque insuficiente"
// @Failure 401 {object} domain.ErrorResponse "Credencial ausente, inválida ou expirada"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Failure 409 {object} domain.ErrorResponse "Produto alterado concorrentemente"
// @Failure 500 {object} domain.ErrorResponse "Falha de persistência"
// @Router /productos/movimiento [post]
func (h *Handler) RegisterMovementHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.MovementRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		respond.Error(w, r, h.Logger, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."))
		return
	}

	receipt, err := h.Service.RegisterMovement(r.Context(), req)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	fields := map[string]interface{}{
		"product_id": receipt.Product.ProductID,
		"kind":       receipt.Movement.Kind,
		"quantity":   receipt.Movement.Quantity,
	}
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		fields["user_id"] = user.ID
	}
	h.Logger.Info("Movimentação registrada via API.", fields)

	respond.JSON(w, h.Logger, http.StatusOK, receipt)
}

// LowStockHandler lida com a requisição GET /productos/stock-bajo.
// @Summary Lista produtos com estoque no mínimo ou abaixo dele
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.StockReport
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /productos/stock-bajo [get]
func (h *Handler) LowStockHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.LowStockReport(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, report)
}

// StockReportHandler lida com a requisição GET /productos/reporte.
// @Summary Classifica todos os produtos ativos pela margem sobre o estoque mínimo
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.StockReport
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Router /productos/reporte [get]
func (h *Handler) StockReportHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.Service.StockReport(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, report)
}
