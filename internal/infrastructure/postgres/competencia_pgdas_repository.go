package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

var _ repository.CompetenciaPGDASRepository = (*CompetenciaPGDASRepo)(nil)

// CompetenciaPGDASRepo implementação de CompetenciaPGDASRepository.
type CompetenciaPGDASRepo struct {
	q Querier
}

// NewCompetenciaPGDASRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCompetenciaPGDASRepository(q Querier) *CompetenciaPGDASRepo {
	return &CompetenciaPGDASRepo{q: q}
}

// Upsert cria ou atualiza a competência pela chave (empresa, ano_mes),
// sobrescrevendo os campos declarados.
func (r *CompetenciaPGDASRepo) Upsert(c *entity.CompetenciaPGDAS) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO competencias_pgdas (id, empresa_id, ano_mes, anexo, receita_bruta_total, receita_monofasica_declarada,
		                                receita_substituicao_tributaria, receita_outras_exclusoes, receita_bruta_12m,
		                                aliquota_nominal, parcela_a_deduzir, aliquota_efetiva)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (empresa_id, ano_mes) DO UPDATE SET
			anexo                           = EXCLUDED.anexo,
			receita_bruta_total             = EXCLUDED.receita_bruta_total,
			receita_monofasica_declarada    = EXCLUDED.receita_monofasica_declarada,
			receita_substituicao_tributaria = EXCLUDED.receita_substituicao_tributaria,
			receita_outras_exclusoes        = EXCLUDED.receita_outras_exclusoes,
			receita_bruta_12m               = EXCLUDED.receita_bruta_12m,
			aliquota_nominal                = EXCLUDED.aliquota_nominal,
			parcela_a_deduzir               = EXCLUDED.parcela_a_deduzir,
			aliquota_efetiva                = EXCLUDED.aliquota_efetiva`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.EmpresaID, c.AnoMes, c.Anexo,
		c.ReceitaBrutaTotal, c.ReceitaMonofasicaDeclarada,
		c.ReceitaSubstituicaoTributaria, c.ReceitaOutrasExclusoes, c.ReceitaBruta12m,
		c.AliquotaNominal, c.ParcelaADeduzir, c.AliquotaEfetiva,
	)
	if err != nil {
		return fmt.Errorf("upsert competência pgdas: %w", err)
	}
	return nil
}

// GetByID busca uma competência por ID. Devolve (nil, nil) se não existe.
func (r *CompetenciaPGDASRepo) GetByID(id string) (*entity.CompetenciaPGDAS, error) {
	return r.getWhere("id = $1", id)
}

// GetByEmpresaAnoMes busca a competência da empresa para o token AAAA-MM.
// Devolve (nil, nil) quando não há declaração: é condição normal, não erro.
func (r *CompetenciaPGDASRepo) GetByEmpresaAnoMes(empresaID, anoMes string) (*entity.CompetenciaPGDAS, error) {
	query := competenciaSelect + ` WHERE empresa_id = $1 AND ano_mes = $2`
	row := r.q.QueryRow(context.Background(), query, empresaID, anoMes)
	c, err := scanCompetencia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get competência pgdas: %w", err)
	}
	return c, nil
}

func (r *CompetenciaPGDASRepo) getWhere(cond string, arg any) (*entity.CompetenciaPGDAS, error) {
	query := competenciaSelect + ` WHERE ` + cond
	row := r.q.QueryRow(context.Background(), query, arg)
	c, err := scanCompetencia(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get competência pgdas: %w", err)
	}
	return c, nil
}

// ListByEmpresaIntervalo lista competências no intervalo de tokens AAAA-MM
// (inclusive nos extremos). A comparação de strings equivale à cronológica.
func (r *CompetenciaPGDASRepo) ListByEmpresaIntervalo(empresaID, anoMesInicial, anoMesFinal string) ([]*entity.CompetenciaPGDAS, error) {
	query := competenciaSelect + `
		WHERE empresa_id = $1 AND ano_mes >= $2 AND ano_mes <= $3
		ORDER BY ano_mes`
	rows, err := r.q.Query(context.Background(), query, empresaID, anoMesInicial, anoMesFinal)
	if err != nil {
		return nil, fmt.Errorf("list competências: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompetenciaPGDAS
	for rows.Next() {
		c, err := scanCompetencia(rows)
		if err != nil {
			return nil, fmt.Errorf("scan competência: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// AtualizarAliquotaEfetiva memoiza a alíquota efetiva calculada.
func (r *CompetenciaPGDASRepo) AtualizarAliquotaEfetiva(id string, aliquota decimal.Decimal) error {
	query := `UPDATE competencias_pgdas SET aliquota_efetiva = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, aliquota)
	if err != nil {
		return fmt.Errorf("update alíquota efetiva: %w", err)
	}
	return nil
}

const competenciaSelect = `
	SELECT id, empresa_id, ano_mes, anexo, receita_bruta_total, COALESCE(receita_monofasica_declarada, 0),
	       receita_substituicao_tributaria, receita_outras_exclusoes, receita_bruta_12m,
	       aliquota_nominal, parcela_a_deduzir, aliquota_efetiva
	FROM competencias_pgdas`

func scanCompetencia(row pgx.Row) (*entity.CompetenciaPGDAS, error) {
	var c entity.CompetenciaPGDAS
	if err := row.Scan(
		&c.ID, &c.EmpresaID, &c.AnoMes, &c.Anexo,
		&c.ReceitaBrutaTotal, &c.ReceitaMonofasicaDeclarada,
		&c.ReceitaSubstituicaoTributaria, &c.ReceitaOutrasExclusoes, &c.ReceitaBruta12m,
		&c.AliquotaNominal, &c.ParcelaADeduzir, &c.AliquotaEfetiva,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
