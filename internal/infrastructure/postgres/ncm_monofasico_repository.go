package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

var _ repository.NCMMonofasicoRepository = (*NCMMonofasicoRepo)(nil)

// NCMMonofasicoRepo implementação de NCMMonofasicoRepository.
type NCMMonofasicoRepo struct {
	q Querier
}

// NewNCMMonofasicoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNCMMonofasicoRepository(q Querier) *NCMMonofasicoRepo {
	return &NCMMonofasicoRepo{q: q}
}

// Create persiste uma linha da tabela de NCMs monofásicos.
func (r *NCMMonofasicoRepo) Create(ncm *entity.NCMMonofasico) error {
	if ncm.ID == "" {
		ncm.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ncm_monofasicos (id, ncm, descricao, setor, data_inicio_vigencia, data_fim_vigencia, flag_monofasico)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ncm.ID, ncm.NCM, ncm.Descricao, ncm.Setor,
		ncm.DataInicioVigencia, ncm.DataFimVigencia, ncm.FlagMonofasico,
	)
	if err != nil {
		return fmt.Errorf("insert ncm monofásico: %w", err)
	}
	return nil
}

// List lista a tabela de NCMs ordenada por código.
func (r *NCMMonofasicoRepo) List(limit, offset int) ([]*entity.NCMMonofasico, error) {
	query := `
		SELECT id, ncm, descricao, setor, data_inicio_vigencia, data_fim_vigencia, flag_monofasico
		FROM ncm_monofasicos ORDER BY ncm LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ncm monofásicos: %w", err)
	}
	defer rows.Close()
	var list []*entity.NCMMonofasico
	for rows.Next() {
		var n entity.NCMMonofasico
		if err := rows.Scan(&n.ID, &n.NCM, &n.Descricao, &n.Setor, &n.DataInicioVigencia, &n.DataFimVigencia, &n.FlagMonofasico); err != nil {
			return nil, fmt.Errorf("scan ncm: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// VigenteEm informa se há alguma linha ativa para o NCM cuja vigência contenha
// a data. Janelas sobrepostas são permitidas; basta uma linha casar. O
// predicado espelha entity.NCMMonofasico.VigenteEm.
func (r *NCMMonofasicoRepo) VigenteEm(ncm string, data time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ncm_monofasicos
			WHERE ncm = $1
			  AND flag_monofasico = TRUE
			  AND data_inicio_vigencia <= $2::date
			  AND (data_fim_vigencia IS NULL OR data_fim_vigencia >= $2::date)
		)`
	var vigente bool
	if err := r.q.QueryRow(context.Background(), query, ncm, data).Scan(&vigente); err != nil {
		return false, fmt.Errorf("consulta vigência ncm: %w", err)
	}
	return vigente, nil
}
