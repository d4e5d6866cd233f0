package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa o item do catálogo (a Entidade).
// O campo Stock só é alterado através do motor de movimentações (internal/ledger).
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Stock        int             `json:"stock"`
	StockMinimum int             `json:"stockMinimum"` // Piso abaixo do qual saídas são recusadas
	IsActive     bool            `json:"isActive"`
	Version      int             `json:"-"` // Para Controle de Concorrência Otimista (OCC)
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductFilter define os parâmetros de busca do catálogo.
type ProductFilter struct {
	ActiveOnly bool
}
