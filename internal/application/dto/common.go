package dto

import "github.com/shopspring/decimal"

// ErrorResponse resposta de erro padrão da API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse metadados de paginação.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// DecimalOuNulo converte um NullDecimal em ponteiro para serialização JSON:
// nulo no banco vira null no JSON, nunca zero.
func DecimalOuNulo(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
