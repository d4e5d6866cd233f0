package domain

import (
	"strings"
	"time"
)

// MovementKind identifica a direção de uma movimentação de estoque.
type MovementKind string

const (
	MovementInbound  MovementKind = "inbound"
	MovementOutbound MovementKind = "outbound"
)

// NormalizeMovementKind aceita os nomes usados pelos clientes legados ("entrada"/"salida")
// além dos canônicos. Valores desconhecidos são devolvidos como vieram, para que o motor
// os rejeite com OutcomeInvalidKind.
func NormalizeMovementKind(raw string) MovementKind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "inbound", "entrada":
		return MovementInbound
	case "outbound", "salida", "saida":
		return MovementOutbound
	}
	return MovementKind(raw)
}

// Valid informa se o tipo é um dos dois tipos suportados.
func (k MovementKind) Valid() bool {
	return k == MovementInbound || k == MovementOutbound
}

// Outcome é o resultado de uma decisão do motor de movimentações.
type Outcome string

const (
	OutcomeApplied           Outcome = "APPLIED"
	OutcomeInvalidKind       Outcome = "INVALID_KIND"
	OutcomeInvalidQuantity   Outcome = "INVALID_QUANTITY"
	OutcomeProductInactive   Outcome = "PRODUCT_INACTIVE"
	OutcomeInsufficientStock Outcome = "INSUFFICIENT_STOCK"
)

// Shortfall descreve uma saída recusada por falta de estoque acima do piso.
type Shortfall struct {
	CurrentStock      int `json:"currentStock"`
	StockMinimum      int `json:"stockMinimum"`
	RequestedQuantity int `json:"requestedQuantity"`
	MaxWithdrawable   int `json:"maxWithdrawable"`
}

// Decision é o resultado explícito de Apply. Shortfall só é preenchido
// quando Outcome == OutcomeInsufficientStock.
type Decision struct {
	Outcome       Outcome
	PreviousStock int
	NewStock      int
	StockMinimum  int
	Shortfall     *Shortfall
}

// Admissible informa se a movimentação foi aplicada.
func (d Decision) Admissible() bool {
	return d.Outcome == OutcomeApplied
}

// Movement é a movimentação efêmera; só o efeito sobre o estoque é persistido.
type Movement struct {
	Kind       MovementKind `json:"kind"`
	Quantity   int          `json:"quantity"`
	Note       string       `json:"note"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// MovementRequest é o payload esperado em POST /productos/movimiento.
// Quantity fica como interface{} para que valores não numéricos cheguem
// até a validação e sejam reportados como quantidade inválida.
type MovementRequest struct {
	ProductID string      `json:"productoId"`
	Kind      string      `json:"tipoMovimiento"`
	Quantity  interface{} `json:"cantidad"`
	Note      string      `json:"observacion"`
}

// StockChange é o instantâneo antes/depois devolvido ao cliente.
type StockChange struct {
	ProductID     string `json:"id"`
	Name          string `json:"name"`
	PreviousStock int    `json:"previousStock"`
	NewStock      int    `json:"newStock"`
	StockMinimum  int    `json:"stockMinimum"`
}

// MovementReceipt é a resposta de uma movimentação aplicada.
type MovementReceipt struct {
	Product  StockChange `json:"product"`
	Movement Movement    `json:"movement"`
}
