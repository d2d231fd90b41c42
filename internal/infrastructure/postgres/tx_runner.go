package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// Garante que TxRunner implementa o porto da aplicação.
var _ appaudit.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com os repositórios da auditoria atados
// à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	notaRepo repository.NotaFiscalRepository,
	ncmRepo repository.NCMMonofasicoRepository,
	competenciaRepo repository.CompetenciaPGDASRepository,
	resultadoRepo repository.ResultadoAuditoriaRepository,
	anexoRepo repository.AnexoAliquotaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	notaRepo := NewNotaFiscalRepository(tx)
	ncmRepo := NewNCMMonofasicoRepository(tx)
	competenciaRepo := NewCompetenciaPGDASRepository(tx)
	resultadoRepo := NewResultadoAuditoriaRepository(tx)
	anexoRepo := NewAnexoAliquotaRepository(tx)

	if err := fn(notaRepo, ncmRepo, competenciaRepo, resultadoRepo, anexoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
