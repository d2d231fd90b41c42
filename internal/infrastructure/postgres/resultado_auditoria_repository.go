package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

var _ repository.ResultadoAuditoriaRepository = (*ResultadoAuditoriaRepo)(nil)

// ResultadoAuditoriaRepo implementação de ResultadoAuditoriaRepository.
type ResultadoAuditoriaRepo struct {
	q Querier
}

// NewResultadoAuditoriaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewResultadoAuditoriaRepository(q Querier) *ResultadoAuditoriaRepo {
	return &ResultadoAuditoriaRepo{q: q}
}

// Create persiste um resultado com bases zeradas e indevidos nulos.
func (r *ResultadoAuditoriaRepo) Create(res *entity.ResultadoAuditoria) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	query := `
		INSERT INTO resultados_auditoria (id, empresa_id, competencia_id, base_monofasica_xml, base_monofasica_pgdas,
		                                  diferenca_base, pis_indevido, cofins_indevido, total_indevido)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.EmpresaID, res.CompetenciaID,
		res.BaseMonofasicaXML, res.BaseMonofasicaPGDAS, res.DiferencaBase,
		res.PISIndevido, res.COFINSIndevido, res.TotalIndevido,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("resultado já existe para a competência: %w", err)
		}
		return fmt.Errorf("insert resultado auditoria: %w", err)
	}
	return nil
}

// GetByEmpresaCompetencia busca o resultado da empresa + competência.
// Devolve (nil, nil) quando ainda não existe.
func (r *ResultadoAuditoriaRepo) GetByEmpresaCompetencia(empresaID, competenciaID string) (*entity.ResultadoAuditoria, error) {
	query := `
		SELECT id, empresa_id, competencia_id, base_monofasica_xml, base_monofasica_pgdas,
		       diferenca_base, pis_indevido, cofins_indevido, total_indevido
		FROM resultados_auditoria
		WHERE empresa_id = $1 AND competencia_id = $2`
	var res entity.ResultadoAuditoria
	err := r.q.QueryRow(context.Background(), query, empresaID, competenciaID).Scan(
		&res.ID, &res.EmpresaID, &res.CompetenciaID,
		&res.BaseMonofasicaXML, &res.BaseMonofasicaPGDAS, &res.DiferencaBase,
		&res.PISIndevido, &res.COFINSIndevido, &res.TotalIndevido,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resultado auditoria: %w", err)
	}
	return &res, nil
}

// AtualizarBases sobrescreve as bases comparadas e a diferença. Os campos de
// indevido pertencem à etapa de cálculo e não são tocados aqui.
func (r *ResultadoAuditoriaRepo) AtualizarBases(res *entity.ResultadoAuditoria) error {
	query := `
		UPDATE resultados_auditoria
		SET base_monofasica_xml = $2, base_monofasica_pgdas = $3, diferenca_base = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.BaseMonofasicaXML, res.BaseMonofasicaPGDAS, res.DiferencaBase,
	)
	if err != nil {
		return fmt.Errorf("update bases resultado: %w", err)
	}
	return nil
}

// AtualizarIndevidos sobrescreve apenas os três campos de impacto, inclusive
// gravando NULL quando falta parametrização de faixa.
func (r *ResultadoAuditoriaRepo) AtualizarIndevidos(res *entity.ResultadoAuditoria) error {
	query := `
		UPDATE resultados_auditoria
		SET pis_indevido = $2, cofins_indevido = $3, total_indevido = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.PISIndevido, res.COFINSIndevido, res.TotalIndevido,
	)
	if err != nil {
		return fmt.Errorf("update indevidos resultado: %w", err)
	}
	return nil
}

// ResumoCompetencias devolve o resumo consolidado (resultado × competência)
// da empresa no intervalo de tokens AAAA-MM, ordenado por ano_mes.
func (r *ResultadoAuditoriaRepo) ResumoCompetencias(ctx context.Context, empresaID, anoMesInicial, anoMesFinal string) ([]repository.ResumoCompetencia, error) {
	query := `
		SELECT c.ano_mes, c.anexo, c.receita_bruta_total,
		       ra.base_monofasica_xml, ra.base_monofasica_pgdas, ra.diferenca_base,
		       ra.pis_indevido, ra.cofins_indevido, ra.total_indevido
		FROM resultados_auditoria ra
		JOIN competencias_pgdas c ON ra.competencia_id = c.id
		WHERE ra.empresa_id = $1 AND c.ano_mes >= $2 AND c.ano_mes <= $3
		ORDER BY c.ano_mes`
	rows, err := r.q.Query(ctx, query, empresaID, anoMesInicial, anoMesFinal)
	if err != nil {
		return nil, fmt.Errorf("resumo competências: %w", err)
	}
	defer rows.Close()
	var list []repository.ResumoCompetencia
	for rows.Next() {
		var l repository.ResumoCompetencia
		if err := rows.Scan(
			&l.AnoMes, &l.Anexo, &l.ReceitaBrutaTotal,
			&l.BaseMonofasicaXML, &l.BaseMonofasicaPGDAS, &l.DiferencaBase,
			&l.PISIndevido, &l.COFINSIndevido, &l.TotalIndevido,
		); err != nil {
			return nil, fmt.Errorf("scan resumo: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
