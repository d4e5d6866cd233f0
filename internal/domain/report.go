package domain

// StockStatus é a classificação de um produto em relação ao seu piso.
type StockStatus struct {
	Product            Product `json:"product"`
	Margin             int     `json:"margin"` // stock - stockMinimum
	NeedsReplenishment bool    `json:"needsReplenishment"`
}

// StockSummary agrega as contagens do relatório.
type StockSummary struct {
	Critical int `json:"critical"` // stock < stockMinimum
	Low      int `json:"low"`      // stock == stockMinimum
}

// StockReport é o resultado do classificador de estoque baixo.
type StockReport struct {
	Products []StockStatus `json:"products"`
	Total    int           `json:"total"`
	Summary  StockSummary  `json:"summary"`
}
