package repository

import (
	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// CompetenciaPGDASRepository define o porto de persistência para CompetenciaPGDAS.
type CompetenciaPGDASRepository interface {
	// Upsert cria ou atualiza a competência pela chave (empresa, ano_mes),
	// sobrescrevendo os campos financeiros declarados.
	Upsert(competencia *entity.CompetenciaPGDAS) error
	GetByID(id string) (*entity.CompetenciaPGDAS, error)
	// GetByEmpresaAnoMes devolve (nil, nil) quando a competência não existe:
	// ausência de declaração é condição normal, não erro.
	GetByEmpresaAnoMes(empresaID, anoMes string) (*entity.CompetenciaPGDAS, error)
	// ListByEmpresaIntervalo filtra por intervalo de tokens AAAA-MM (inclusive
	// nos extremos); a comparação de strings equivale à cronológica.
	ListByEmpresaIntervalo(empresaID, anoMesInicial, anoMesFinal string) ([]*entity.CompetenciaPGDAS, error)
	// AtualizarAliquotaEfetiva memoiza a alíquota efetiva calculada.
	AtualizarAliquotaEfetiva(id string, aliquota decimal.Decimal) error
}
