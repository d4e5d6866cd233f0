package ledger

import "petstock/internal/domain"

// Classify classifica cada produto ativo pela margem em relação ao piso.
// Produtos inativos são ignorados. A ordem de saída segue a ordem de entrada.
func Classify(products []domain.Product) domain.StockReport {
	report := domain.StockReport{Products: make([]domain.StockStatus, 0, len(products))}

	for _, p := range products {
		if !p.IsActive {
			continue
		}
		report.Products = append(report.Products, classifyOne(p))
	}

	report.Total = len(report.Products)
	report.Summary = summarize(report.Products)
	return report
}

// LowStock devolve apenas os produtos ativos com estoque no piso ou abaixo dele.
func LowStock(products []domain.Product) domain.StockReport {
	full := Classify(products)

	low := domain.StockReport{Products: make([]domain.StockStatus, 0, len(full.Products))}
	for _, s := range full.Products {
		if s.Margin <= 0 {
			low.Products = append(low.Products, s)
		}
	}
	low.Total = len(low.Products)
	low.Summary = summarize(low.Products)
	return low
}

func classifyOne(p domain.Product) domain.StockStatus {
	return domain.StockStatus{
		Product:            p,
		Margin:             p.Stock - p.StockMinimum,
		NeedsReplenishment: p.Stock < p.StockMinimum,
	}
}

func summarize(statuses []domain.StockStatus) domain.StockSummary {
	var s domain.StockSummary
	for _, st := range statuses {
		switch {
		case st.Margin < 0:
			s.Critical++
		case st.Margin == 0:
			s.Low++
		}
	}
	return s
}
