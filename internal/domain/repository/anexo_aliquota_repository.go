package repository

import (
	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// AnexoAliquotaRepository define o porto de consulta da tabela de partilha do
// Simples Nacional.
type AnexoAliquotaRepository interface {
	Create(faixa *entity.AnexoAliquota) error
	ListByAnexo(anexo string) ([]*entity.AnexoAliquota, error)
	// FaixaPara devolve a primeira faixa do anexo cujo intervalo
	// [receita_bruta_min, receita_bruta_max] contenha a receita acumulada em
	// 12 meses. Devolve (nil, nil) quando não há faixa configurada.
	FaixaPara(anexo string, receita12m decimal.Decimal) (*entity.AnexoAliquota, error)
}
