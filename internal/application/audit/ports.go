package audit

import (
	"context"

	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação com os repositórios da
// auditoria atados à mesma tx. Cada etapa da auditoria (classificação,
// cruzamento, cálculo de indevidos) abre e confirma a sua própria transação;
// não há transação abrangendo mais de uma etapa.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		notaRepo repository.NotaFiscalRepository,
		ncmRepo repository.NCMMonofasicoRepository,
		competenciaRepo repository.CompetenciaPGDASRepository,
		resultadoRepo repository.ResultadoAuditoriaRepository,
		anexoRepo repository.AnexoAliquotaRepository,
	) error) error
}
