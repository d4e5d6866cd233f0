package stock_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"petstock/internal/api/stock"
	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
)

type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) RegisterMovement(ctx context.Context, req domain.MovementRequest) (domain.MovementReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.MovementReceipt), args.Error(1)
}

func (m *MockStockService) LowStockReport(ctx context.Context) (domain.StockReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StockReport), args.Error(1)
}

func (m *MockStockService) StockReport(ctx context.Context) (domain.StockReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.StockReport), args.Error(1)
}

func TestRegisterMovementHandler_Success(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	receipt := domain.MovementReceipt{
		Product:  domain.StockChange{ProductID: "p-1", Name: "Ração", PreviousStock: 10, NewStock: 5, StockMinimum: 5},
		Movement: domain.Movement{Kind: domain.MovementOutbound, Quantity: 5},
	}
	svc.On("RegisterMovement", mock.Anything, mock.MatchedBy(func(req domain.MovementRequest) bool {
		return req.ProductID == "p-1" && req.Kind == "salida" && req.Quantity == json.Number("5") && req.Note == "venda"
	})).Return(receipt, nil)

	body := `{"productoId":"p-1","tipoMovimiento":"salida","cantidad":5,"observacion":"venda"}`
	rec := httptest.NewRecorder()
	h.RegisterMovementHandler(rec, httptest.NewRequest(http.MethodPost, "/productos/movimiento", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.MovementReceipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 10, got.Product.PreviousStock)
	assert.Equal(t, 5, got.Product.NewStock)
	assert.Equal(t, 5, got.Product.StockMinimum)
	svc.AssertExpectations(t)
}

func TestRegisterMovementHandler_InsufficientStock(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	svc.On("RegisterMovement", mock.Anything, mock.Anything).Return(domain.MovementReceipt{},
		apperror.NewInsufficientStockError(domain.Shortfall{CurrentStock: 10, StockMinimum: 5, RequestedQuantity: 6, MaxWithdrawable: 5}))

	body := `{"productoId":"p-1","tipoMovimiento":"salida","cantidad":6}`
	rec := httptest.NewRecorder()
	h.RegisterMovementHandler(rec, httptest.NewRequest(http.MethodPost, "/productos/movimiento", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"currentStock":10,"stockMinimum":5,"requestedQuantity":6,"maxWithdrawable":5}`,
		string(extract(t, rec.Body.Bytes(), "data")))
}

func TestRegisterMovementHandler_MalformedJSON(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.RegisterMovementHandler(rec, httptest.NewRequest(http.MethodPost, "/productos/movimiento", strings.NewReader(`{"productoId":`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "RegisterMovement", mock.Anything, mock.Anything)
}

func TestLowStockHandler(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	report := domain.StockReport{
		Products: []domain.StockStatus{{Product: domain.Product{ID: "p-9", Stock: 2, StockMinimum: 5}, Margin: -3, NeedsReplenishment: true}},
		Total:    1,
		Summary:  domain.StockSummary{Critical: 1},
	}
	svc.On("LowStockReport", mock.Anything).Return(report, nil)

	rec := httptest.NewRecorder()
	h.LowStockHandler(rec, httptest.NewRequest(http.MethodGet, "/productos/stock-bajo", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.StockReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, -3, got.Products[0].Margin)
	assert.True(t, got.Products[0].NeedsReplenishment)
}

func TestStockReportHandler_Error(t *testing.T) {
	svc := new(MockStockService)
	h := stock.NewHandler(svc, logger.NewNop())

	svc.On("StockReport", mock.Anything).Return(domain.StockReport{}, apperror.NewInternalError("falhou", nil))

	rec := httptest.NewRecorder()
	h.StockReportHandler(rec, httptest.NewRequest(http.MethodGet, "/productos/reporte", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func extract(t *testing.T, raw []byte, key string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[key]
}
