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

var _ repository.AnexoAliquotaRepository = (*AnexoAliquotaRepo)(nil)

// AnexoAliquotaRepo implementação de AnexoAliquotaRepository.
type AnexoAliquotaRepo struct {
	q Querier
}

// NewAnexoAliquotaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewAnexoAliquotaRepository(q Querier) *AnexoAliquotaRepo {
	return &AnexoAliquotaRepo{q: q}
}

// Create persiste uma faixa da tabela de partilha.
func (r *AnexoAliquotaRepo) Create(faixa *entity.AnexoAliquota) error {
	if faixa.ID == "" {
		faixa.ID = uuid.New().String()
	}
	query := `
		INSERT INTO anexos_aliquotas (id, anexo, faixa, receita_bruta_min, receita_bruta_max,
		                              aliquota_nominal, parcela_a_deduzir, percentual_pis, percentual_cofins)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		faixa.ID, faixa.Anexo, faixa.Faixa, faixa.ReceitaBrutaMin, faixa.ReceitaBrutaMax,
		faixa.AliquotaNominal, faixa.ParcelaADeduzir, faixa.PercentualPIS, faixa.PercentualCOFINS,
	)
	if err != nil {
		return fmt.Errorf("insert anexo alíquota: %w", err)
	}
	return nil
}

// ListByAnexo lista as faixas de um anexo ordenadas por faixa.
func (r *AnexoAliquotaRepo) ListByAnexo(anexo string) ([]*entity.AnexoAliquota, error) {
	query := anexoSelect + ` WHERE anexo = $1 ORDER BY faixa`
	rows, err := r.q.Query(context.Background(), query, anexo)
	if err != nil {
		return nil, fmt.Errorf("list anexo alíquotas: %w", err)
	}
	defer rows.Close()
	var list []*entity.AnexoAliquota
	for rows.Next() {
		f, err := scanAnexoAliquota(rows)
		if err != nil {
			return nil, fmt.Errorf("scan anexo alíquota: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

// FaixaPara devolve a primeira faixa do anexo cujo intervalo fechado
// [receita_bruta_min, receita_bruta_max] contenha a receita de 12 meses.
// Devolve (nil, nil) quando não há faixa configurada: falta de parametrização
// é condição reportável, não erro.
func (r *AnexoAliquotaRepo) FaixaPara(anexo string, receita12m decimal.Decimal) (*entity.AnexoAliquota, error) {
	query := anexoSelect + `
		WHERE anexo = $1 AND receita_bruta_min <= $2 AND receita_bruta_max >= $2
		ORDER BY faixa LIMIT 1`
	row := r.q.QueryRow(context.Background(), query, anexo, receita12m)
	f, err := scanAnexoAliquota(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("busca faixa do anexo: %w", err)
	}
	return f, nil
}

const anexoSelect = `
	SELECT id, anexo, faixa, receita_bruta_min, receita_bruta_max,
	       aliquota_nominal, parcela_a_deduzir, percentual_pis, percentual_cofins
	FROM anexos_aliquotas`

func scanAnexoAliquota(row pgx.Row) (*entity.AnexoAliquota, error) {
	var f entity.AnexoAliquota
	if err := row.Scan(
		&f.ID, &f.Anexo, &f.Faixa, &f.ReceitaBrutaMin, &f.ReceitaBrutaMax,
		&f.AliquotaNominal, &f.ParcelaADeduzir, &f.PercentualPIS, &f.PercentualCOFINS,
	); err != nil {
		return nil, err
	}
	return &f, nil
}
