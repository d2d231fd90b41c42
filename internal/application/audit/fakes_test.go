package audit_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória dos portos de persistência
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	notas        *fakeNotaRepo
	ncms         *fakeNCMRepo
	competencias *fakeCompetenciaRepo
	resultados   *fakeResultadoRepo
	anexos       *fakeAnexoRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		notas:        &fakeNotaRepo{itens: map[string][]*entity.ItemNota{}},
		ncms:         &fakeNCMRepo{},
		competencias: &fakeCompetenciaRepo{porChave: map[string]*entity.CompetenciaPGDAS{}},
		resultados:   &fakeResultadoRepo{porChave: map[string]*entity.ResultadoAuditoria{}},
		anexos:       &fakeAnexoRepo{},
	}
}

// Run entrega os fakes direto ao callback; não há transação real.
func (s *fakeStore) Run(_ context.Context, fn func(
	repository.NotaFiscalRepository,
	repository.NCMMonofasicoRepository,
	repository.CompetenciaPGDASRepository,
	repository.ResultadoAuditoriaRepository,
	repository.AnexoAliquotaRepository,
) error) error {
	return fn(s.notas, s.ncms, s.competencias, s.resultados, s.anexos)
}

var _ appaudit.TxRunner = (*fakeStore)(nil)

// ── notas ─────────────────────────────────────────────────────────────────────

type fakeNotaRepo struct {
	notas []*entity.NotaFiscal
	itens map[string][]*entity.ItemNota
}

func (r *fakeNotaRepo) Create(nota *entity.NotaFiscal) error {
	r.notas = append(r.notas, nota)
	return nil
}

func (r *fakeNotaRepo) CreateItem(item *entity.ItemNota) error {
	r.itens[item.NotaID] = append(r.itens[item.NotaID], item)
	return nil
}

func (r *fakeNotaRepo) GetByChave(chave string) (*entity.NotaFiscal, error) {
	for _, n := range r.notas {
		if n.Chave == chave {
			return n, nil
		}
	}
	return nil, nil
}

func (r *fakeNotaRepo) ListByEmpresaPeriodo(empresaID string, inicio, fim time.Time) ([]*entity.NotaFiscal, error) {
	var out []*entity.NotaFiscal
	for _, n := range r.notas {
		if n.EmpresaID == empresaID && !n.DataEmissao.Before(inicio) && n.DataEmissao.Before(fim) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotaRepo) ListItens(notaID string) ([]*entity.ItemNota, error) {
	return r.itens[notaID], nil
}

func (r *fakeNotaRepo) AtualizarFlagsItem(*entity.ItemNota) error { return nil }

func (r *fakeNotaRepo) SomaMonofasica(empresaID string, inicio, fim time.Time) (decimal.Decimal, error) {
	soma := decimal.Zero
	for _, n := range r.notas {
		if n.EmpresaID != empresaID || n.DataEmissao.Before(inicio) || !n.DataEmissao.Before(fim) {
			continue
		}
		for _, item := range r.itens[n.ID] {
			if item.EhMonofasico {
				soma = soma.Add(item.ValorTotal)
			}
		}
	}
	return soma, nil
}

// ── ncms ──────────────────────────────────────────────────────────────────────

type fakeNCMRepo struct {
	linhas []*entity.NCMMonofasico
}

func (r *fakeNCMRepo) Create(ncm *entity.NCMMonofasico) error {
	r.linhas = append(r.linhas, ncm)
	return nil
}

func (r *fakeNCMRepo) List(int, int) ([]*entity.NCMMonofasico, error) { return r.linhas, nil }

func (r *fakeNCMRepo) VigenteEm(ncm string, data time.Time) (bool, error) {
	for _, linha := range r.linhas {
		if linha.NCM == ncm && linha.VigenteEm(data) {
			return true, nil
		}
	}
	return false, nil
}

// ── competências ──────────────────────────────────────────────────────────────

type fakeCompetenciaRepo struct {
	porChave map[string]*entity.CompetenciaPGDAS // empresaID|anoMes
}

func chaveCompetencia(empresaID, anoMes string) string { return empresaID + "|" + anoMes }

func (r *fakeCompetenciaRepo) Upsert(c *entity.CompetenciaPGDAS) error {
	if existente, _ := r.GetByEmpresaAnoMes(c.EmpresaID, c.AnoMes); existente != nil {
		c.ID = existente.ID
	}
	r.porChave[chaveCompetencia(c.EmpresaID, c.AnoMes)] = c
	return nil
}

func (r *fakeCompetenciaRepo) GetByID(id string) (*entity.CompetenciaPGDAS, error) {
	for _, c := range r.porChave {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCompetenciaRepo) GetByEmpresaAnoMes(empresaID, anoMes string) (*entity.CompetenciaPGDAS, error) {
	return r.porChave[chaveCompetencia(empresaID, anoMes)], nil
}

func (r *fakeCompetenciaRepo) ListByEmpresaIntervalo(empresaID, ini, fim string) ([]*entity.CompetenciaPGDAS, error) {
	var out []*entity.CompetenciaPGDAS
	for _, c := range r.porChave {
		if c.EmpresaID == empresaID && c.AnoMes >= ini && c.AnoMes <= fim {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompetenciaRepo) AtualizarAliquotaEfetiva(id string, aliquota decimal.Decimal) error {
	c, _ := r.GetByID(id)
	if c != nil {
		c.AliquotaEfetiva = decimal.NewNullDecimal(aliquota)
	}
	return nil
}

// ── resultados ────────────────────────────────────────────────────────────────

type fakeResultadoRepo struct {
	porChave map[string]*entity.ResultadoAuditoria // empresaID|competenciaID
	criados  int
}

func (r *fakeResultadoRepo) Create(res *entity.ResultadoAuditoria) error {
	r.porChave[res.EmpresaID+"|"+res.CompetenciaID] = res
	r.criados++
	return nil
}

func (r *fakeResultadoRepo) GetByEmpresaCompetencia(empresaID, competenciaID string) (*entity.ResultadoAuditoria, error) {
	return r.porChave[empresaID+"|"+competenciaID], nil
}

func (r *fakeResultadoRepo) AtualizarBases(*entity.ResultadoAuditoria) error     { return nil }
func (r *fakeResultadoRepo) AtualizarIndevidos(*entity.ResultadoAuditoria) error { return nil }

func (r *fakeResultadoRepo) ResumoCompetencias(context.Context, string, string, string) ([]repository.ResumoCompetencia, error) {
	return nil, nil
}

// ── anexos ────────────────────────────────────────────────────────────────────

type fakeAnexoRepo struct {
	faixas []*entity.AnexoAliquota
}

func (r *fakeAnexoRepo) Create(f *entity.AnexoAliquota) error {
	r.faixas = append(r.faixas, f)
	return nil
}

func (r *fakeAnexoRepo) ListByAnexo(anexo string) ([]*entity.AnexoAliquota, error) {
	var out []*entity.AnexoAliquota
	for _, f := range r.faixas {
		if f.Anexo == anexo {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeAnexoRepo) FaixaPara(anexo string, receita12m decimal.Decimal) (*entity.AnexoAliquota, error) {
	for _, f := range r.faixas {
		if f.Anexo == anexo &&
			receita12m.GreaterThanOrEqual(f.ReceitaBrutaMin) &&
			receita12m.LessThanOrEqual(f.ReceitaBrutaMax) {
			return f, nil
		}
	}
	return nil, nil
}

// ── helpers de montagem ───────────────────────────────────────────────────────

func novaNota(empresaID string, emissao time.Time) *entity.NotaFiscal {
	return &entity.NotaFiscal{
		ID:           uuid.New().String(),
		EmpresaID:    empresaID,
		Chave:        uuid.New().String(),
		DataEmissao:  emissao,
		Modelo:       "55",
		TipoOperacao: entity.TipoOperacaoSaida,
	}
}

// ncmVigenteDesde cadastra uma linha ativa de vigência em aberto.
func ncmVigenteDesde(ncm string, inicio time.Time) *entity.NCMMonofasico {
	return &entity.NCMMonofasico{
		ID:                 uuid.New().String(),
		NCM:                ncm,
		DataInicioVigencia: inicio,
		FlagMonofasico:     true,
	}
}

func ncmVigente(ncm string) *entity.NCMMonofasico {
	return ncmVigenteDesde(ncm, time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC))
}

func novoItem(notaID, ncm, cstPIS string, valorTotal string) *entity.ItemNota {
	return &entity.ItemNota{
		ID:         uuid.New().String(),
		NotaID:     notaID,
		NCM:        ncm,
		CSTPIS:     cstPIS,
		CSTCOFINS:  cstPIS,
		ValorTotal: decimal.RequireFromString(valorTotal),
	}
}
