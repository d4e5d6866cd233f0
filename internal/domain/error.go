package domain

// ErrorResponse é a estrutura padronizada para respostas da API.
// @Description Estrutura padronizada para respostas da API.
type ErrorResponse struct {
	State    bool        `json:"state" example:"false"`
	Code     int         `json:"code" example:"400"`
	Category string      `json:"category" example:"INVALID_QUANTITY"`
	Message  string      `json:"message" example:"A quantidade deve ser maior que 0."`
	Data     interface{} `json:"data,omitempty"`
}
