package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementação de EmpresaRepository (usável com pool ou tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste uma empresa.
func (r *EmpresaRepo) Create(empresa *entity.Empresa) error {
	if empresa.ID == "" {
		empresa.ID = uuid.New().String()
	}
	query := `
		INSERT INTO empresas (id, cnpj, razao_social, nome_fantasia, cnae_principal, data_inicio_simples, data_fim_simples, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		empresa.ID, empresa.CNPJ, empresa.RazaoSocial,
		nullIfEmpty(empresa.NomeFantasia), nullIfEmpty(empresa.CNAEPrincipal),
		empresa.DataInicioSimples, empresa.DataFimSimples,
		empresa.CreatedAt, empresa.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID busca uma empresa por ID. Devolve (nil, nil) se não existe.
func (r *EmpresaRepo) GetByID(id string) (*entity.Empresa, error) {
	return r.getWhere("id = $1", id)
}

// GetByCNPJ busca uma empresa pelo CNPJ. Devolve (nil, nil) se não existe.
func (r *EmpresaRepo) GetByCNPJ(cnpj string) (*entity.Empresa, error) {
	return r.getWhere("cnpj = $1", cnpj)
}

func (r *EmpresaRepo) getWhere(cond string, arg any) (*entity.Empresa, error) {
	query := `
		SELECT id, cnpj, razao_social, COALESCE(nome_fantasia, ''), COALESCE(cnae_principal, ''),
		       data_inicio_simples, data_fim_simples, created_at, updated_at
		FROM empresas WHERE ` + cond
	var e entity.Empresa
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&e.ID, &e.CNPJ, &e.RazaoSocial, &e.NomeFantasia, &e.CNAEPrincipal,
		&e.DataInicioSimples, &e.DataFimSimples, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// Update atualiza os campos cadastrais da empresa.
func (r *EmpresaRepo) Update(empresa *entity.Empresa) error {
	query := `
		UPDATE empresas
		SET razao_social = $2, nome_fantasia = $3, cnae_principal = $4,
		    data_inicio_simples = $5, data_fim_simples = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		empresa.ID, empresa.RazaoSocial,
		nullIfEmpty(empresa.NomeFantasia), nullIfEmpty(empresa.CNAEPrincipal),
		empresa.DataInicioSimples, empresa.DataFimSimples, empresa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return nil
}

// List lista empresas ordenadas por razão social.
func (r *EmpresaRepo) List(limit, offset int) ([]*entity.Empresa, error) {
	query := `
		SELECT id, cnpj, razao_social, COALESCE(nome_fantasia, ''), COALESCE(cnae_principal, ''),
		       data_inicio_simples, data_fim_simples, created_at, updated_at
		FROM empresas ORDER BY razao_social LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(
			&e.ID, &e.CNPJ, &e.RazaoSocial, &e.NomeFantasia, &e.CNAEPrincipal,
			&e.DataInicioSimples, &e.DataFimSimples, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
