// Package respond centraliza a escrita das respostas JSON da API, de sucesso e de erro.
package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"petstock/internal/domain"
	apperror "petstock/internal/errors"
	"petstock/internal/pkg/logger"
)

// JSON escreve data com o status informado. data nil gera corpo vazio.
func JSON(w http.ResponseWriter, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz err para o envelope padronizado {state, code, category, message, data?}.
// Erros 5xx são registrados com a causa; os demais apenas em debug.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s %s [%s]", r.Method, r.URL.Path, category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	}

	JSON(w, log, status, domain.ErrorResponse{
		State:    false,
		Code:     status,
		Category: category,
		Message:  message,
		Data:     apperror.DataOf(err),
	})
}
