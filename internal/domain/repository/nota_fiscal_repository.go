package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// NotaFiscalRepository define o porto de persistência para NotaFiscal e itens.
type NotaFiscalRepository interface {
	Create(nota *entity.NotaFiscal) error
	CreateItem(item *entity.ItemNota) error
	GetByChave(chave string) (*entity.NotaFiscal, error)
	// ListByEmpresaPeriodo devolve as notas da empresa com emissão dentro do
	// intervalo semiaberto [inicio, fim).
	ListByEmpresaPeriodo(empresaID string, inicio, fim time.Time) ([]*entity.NotaFiscal, error)
	ListItens(notaID string) ([]*entity.ItemNota, error)
	// AtualizarFlagsItem regrava apenas eh_monofasico e eh_inconsistente.
	AtualizarFlagsItem(item *entity.ItemNota) error
	// SomaMonofasica soma o valor_total dos itens com eh_monofasico = true nas
	// notas da empresa emitidas em [inicio, fim). Sem itens devolve zero.
	SomaMonofasica(empresaID string, inicio, fim time.Time) (decimal.Decimal, error)
}
