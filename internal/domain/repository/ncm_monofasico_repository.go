package repository

import (
	"time"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// NCMMonofasicoRepository define o porto de consulta da tabela de NCMs monofásicos.
type NCMMonofasicoRepository interface {
	Create(ncm *entity.NCMMonofasico) error
	List(limit, offset int) ([]*entity.NCMMonofasico, error)
	// VigenteEm informa se existe alguma linha ativa para o NCM cuja janela de
	// vigência contenha a data (início <= data e fim nulo ou fim >= data).
	// Janelas sobrepostas são permitidas; qualquer linha que case conta.
	VigenteEm(ncm string, data time.Time) (bool, error)
}
