// Package ledger contém o motor de movimentações de estoque e o classificador de
// estoque baixo. Nada aqui faz I/O: o chamador busca o produto, chama Apply e
// persiste o resultado somente se a decisão for admissível.
package ledger

import (
	"encoding/json"
	"math"

	"petstock/internal/domain"
)

// MaxQuantity é o maior valor aceito em uma movimentação (coluna INTEGER no Postgres).
const MaxQuantity = math.MaxInt32

// CheckRequest valida tipo e quantidade sem olhar para o produto.
// Devolve ok=false e a decisão de recusa quando a requisição é malformada.
func CheckRequest(kind domain.MovementKind, quantity int) (domain.Decision, bool) {
	if !kind.Valid() {
		return domain.Decision{Outcome: domain.OutcomeInvalidKind}, false
	}
	if quantity <= 0 || quantity > MaxQuantity {
		return domain.Decision{Outcome: domain.OutcomeInvalidQuantity}, false
	}
	return domain.Decision{}, true
}

// Apply decide se a movimentação é admissível e, em caso positivo, atualiza
// product.Stock. A ordem das verificações é: tipo, quantidade, produto ativo, piso.
func Apply(product *domain.Product, kind domain.MovementKind, quantity int) domain.Decision {
	if rejected, ok := CheckRequest(kind, quantity); !ok {
		return withSnapshot(rejected, product)
	}
	if !product.IsActive {
		return withSnapshot(domain.Decision{Outcome: domain.OutcomeProductInactive}, product)
	}

	previous := product.Stock
	var next int

	switch kind {
	case domain.MovementInbound:
		next = previous + quantity
	case domain.MovementOutbound:
		if !CanWithdraw(*product, quantity) {
			d := withSnapshot(domain.Decision{Outcome: domain.OutcomeInsufficientStock}, product)
			d.Shortfall = &domain.Shortfall{
				CurrentStock:      previous,
				StockMinimum:      product.StockMinimum,
				RequestedQuantity: quantity,
				MaxWithdrawable:   MaxWithdrawable(*product),
			}
			return d
		}
		next = previous - quantity
	}

	product.Stock = next
	return domain.Decision{
		Outcome:       domain.OutcomeApplied,
		PreviousStock: previous,
		NewStock:      next,
		StockMinimum:  product.StockMinimum,
	}
}

// CanWithdraw informa se uma saída de quantity mantém o estoque no piso ou acima.
func CanWithdraw(product domain.Product, quantity int) bool {
	return product.Stock-quantity >= product.StockMinimum
}

// MaxWithdrawable é a maior saída possível agora: max(0, stock - stockMinimum).
func MaxWithdrawable(product domain.Product) int {
	if avail := product.Stock - product.StockMinimum; avail > 0 {
		return avail
	}
	return 0
}

// withSnapshot preenche uma decisão de recusa com o estoque inalterado.
func withSnapshot(d domain.Decision, product *domain.Product) domain.Decision {
	d.PreviousStock = product.Stock
	d.NewStock = product.Stock
	d.StockMinimum = product.StockMinimum
	return d
}

// ParseQuantity converte a quantidade vinda do JSON. Aceita apenas números inteiros;
// strings, booleanos, frações e valores fora do intervalo de int32 resultam em ok=false.
func ParseQuantity(raw interface{}) (int, bool) {
	var f float64
	switch v := raw.(type) {
	case int:
		return ParseQuantity(int64(v))
	case int64:
		if v < math.MinInt32 || v > MaxQuantity {
			return 0, false
		}
		return int(v), true
	case float64:
		f = v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return ParseQuantity(n)
		}
		// "10.0" e "1e1" são inteiros escritos em outra notação
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt32 || f > MaxQuantity {
		return 0, false
	}
	return int(f), true
}
