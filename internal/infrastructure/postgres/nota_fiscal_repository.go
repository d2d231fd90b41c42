package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

var _ repository.NotaFiscalRepository = (*NotaFiscalRepo)(nil)

// NotaFiscalRepo implementação de NotaFiscalRepository (usável com pool ou tx).
type NotaFiscalRepo struct {
	q Querier
}

// NewNotaFiscalRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotaFiscalRepository(q Querier) *NotaFiscalRepo {
	return &NotaFiscalRepo{q: q}
}

// Create persiste o cabeçalho da nota.
func (r *NotaFiscalRepo) Create(nota *entity.NotaFiscal) error {
	if nota.ID == "" {
		nota.ID = uuid.New().String()
	}
	query := `
		INSERT INTO notas_fiscais (id, empresa_id, chave, numero, serie, cnpj_emitente, cnpj_destinatario,
		                           data_emissao, data_saida, modelo, tipo_operacao, valor_total, uf_destino, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		nota.ID, nota.EmpresaID, nota.Chave, nota.Numero, nota.Serie,
		nota.CNPJEmitente, nullIfEmpty(nota.CNPJDestinatario),
		nota.DataEmissao, nota.DataSaida, nota.Modelo, nota.TipoOperacao,
		nota.ValorTotal, nullIfEmpty(nota.UFDestino), nota.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota fiscal: %w", err)
	}
	return nil
}

// CreateItem persiste uma linha de item da nota.
func (r *NotaFiscalRepo) CreateItem(item *entity.ItemNota) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO itens_nota (id, nota_id, ncm, cest, descricao_produto, cfop, quantidade, valor_unitario, valor_total,
		                        cst_pis, cst_cofins, base_pis, valor_pis, base_cofins, valor_cofins, eh_monofasico, eh_inconsistente)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.NotaID, item.NCM, nullIfEmpty(item.CEST), item.DescricaoProduto, item.CFOP,
		item.Quantidade, item.ValorUnitario, item.ValorTotal,
		item.CSTPIS, item.CSTCOFINS,
		item.BasePIS, item.ValorPIS, item.BaseCOFINS, item.ValorCOFINS,
		item.EhMonofasico, item.EhInconsistente,
	)
	if err != nil {
		return fmt.Errorf("insert item nota: %w", err)
	}
	return nil
}

// GetByChave busca uma nota pela chave de acesso. Devolve (nil, nil) se não existe.
func (r *NotaFiscalRepo) GetByChave(chave string) (*entity.NotaFiscal, error) {
	query := notaSelect + ` WHERE chave = $1`
	row := r.q.QueryRow(context.Background(), query, chave)
	nota, err := scanNota(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota por chave: %w", err)
	}
	return nota, nil
}

// ListByEmpresaPeriodo lista as notas da empresa emitidas em [inicio, fim).
func (r *NotaFiscalRepo) ListByEmpresaPeriodo(empresaID string, inicio, fim time.Time) ([]*entity.NotaFiscal, error) {
	query := notaSelect + `
		WHERE empresa_id = $1 AND data_emissao >= $2 AND data_emissao < $3
		ORDER BY data_emissao, chave`
	rows, err := r.q.Query(context.Background(), query, empresaID, inicio, fim)
	if err != nil {
		return nil, fmt.Errorf("list notas por período: %w", err)
	}
	defer rows.Close()
	var list []*entity.NotaFiscal
	for rows.Next() {
		nota, err := scanNota(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, nota)
	}
	return list, rows.Err()
}

// ListItens lista os itens de uma nota na ordem de inserção.
func (r *NotaFiscalRepo) ListItens(notaID string) ([]*entity.ItemNota, error) {
	query := `
		SELECT id, nota_id, ncm, COALESCE(cest, ''), descricao_produto, cfop, quantidade, valor_unitario, valor_total,
		       cst_pis, cst_cofins, base_pis, valor_pis, base_cofins, valor_cofins, eh_monofasico, eh_inconsistente
		FROM itens_nota WHERE nota_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list itens nota: %w", err)
	}
	defer rows.Close()
	var list []*entity.ItemNota
	for rows.Next() {
		var i entity.ItemNota
		if err := rows.Scan(
			&i.ID, &i.NotaID, &i.NCM, &i.CEST, &i.DescricaoProduto, &i.CFOP,
			&i.Quantidade, &i.ValorUnitario, &i.ValorTotal,
			&i.CSTPIS, &i.CSTCOFINS,
			&i.BasePIS, &i.ValorPIS, &i.BaseCOFINS, &i.ValorCOFINS,
			&i.EhMonofasico, &i.EhInconsistente,
		); err != nil {
			return nil, fmt.Errorf("scan item nota: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// AtualizarFlagsItem regrava apenas os flags de classificação do item.
func (r *NotaFiscalRepo) AtualizarFlagsItem(item *entity.ItemNota) error {
	query := `UPDATE itens_nota SET eh_monofasico = $2, eh_inconsistente = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.EhMonofasico, item.EhInconsistente)
	if err != nil {
		return fmt.Errorf("update flags item: %w", err)
	}
	return nil
}

// SomaMonofasica soma o valor_total dos itens monofásicos nas notas da empresa
// emitidas em [inicio, fim). Sem itens devolve zero, nunca NULL.
func (r *NotaFiscalRepo) SomaMonofasica(empresaID string, inicio, fim time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(i.valor_total), 0)
		FROM itens_nota i
		JOIN notas_fiscais n ON i.nota_id = n.id
		WHERE n.empresa_id = $1 AND n.data_emissao >= $2 AND n.data_emissao < $3
		  AND i.eh_monofasico = TRUE`
	var soma decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, empresaID, inicio, fim).Scan(&soma); err != nil {
		return decimal.Decimal{}, fmt.Errorf("soma monofásica: %w", err)
	}
	return soma, nil
}

const notaSelect = `
	SELECT id, empresa_id, chave, numero, serie, cnpj_emitente, cnpj_destinatario,
	       data_emissao, data_saida, modelo, tipo_operacao, valor_total, uf_destino, created_at
	FROM notas_fiscais`

func scanNota(row pgx.Row) (*entity.NotaFiscal, error) {
	var n entity.NotaFiscal
	var cnpjDest, ufDestino *string
	if err := row.Scan(
		&n.ID, &n.EmpresaID, &n.Chave, &n.Numero, &n.Serie,
		&n.CNPJEmitente, &cnpjDest,
		&n.DataEmissao, &n.DataSaida, &n.Modelo, &n.TipoOperacao,
		&n.ValorTotal, &ufDestino, &n.CreatedAt,
	); err != nil {
		return nil, err
	}
	n.CNPJDestinatario = derefStr(cnpjDest)
	n.UFDestino = derefStr(ufDestino)
	return &n, nil
}
