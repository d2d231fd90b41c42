package ingest_test

import (
	"context"
	"io"
	"time"

	"github.com/shopspring/decimal"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória para os testes de importação
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	empresas     *fakeEmpresaRepo
	notas        *fakeNotaRepo
	competencias *fakeCompetenciaRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		empresas:     &fakeEmpresaRepo{},
		notas:        &fakeNotaRepo{itens: map[string][]*entity.ItemNota{}},
		competencias: &fakeCompetenciaRepo{porChave: map[string]*entity.CompetenciaPGDAS{}},
	}
}

func (s *fakeStore) Run(_ context.Context, fn func(
	repository.NotaFiscalRepository,
	repository.NCMMonofasicoRepository,
	repository.CompetenciaPGDASRepository,
	repository.ResultadoAuditoriaRepository,
	repository.AnexoAliquotaRepository,
) error) error {
	return fn(s.notas, nil, s.competencias, nil, nil)
}

var _ appaudit.TxRunner = (*fakeStore)(nil)

type fakeEmpresaRepo struct {
	empresas []*entity.Empresa
	updates  int
}

func (r *fakeEmpresaRepo) Create(e *entity.Empresa) error {
	r.empresas = append(r.empresas, e)
	return nil
}

func (r *fakeEmpresaRepo) GetByID(id string) (*entity.Empresa, error) {
	for _, e := range r.empresas {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmpresaRepo) GetByCNPJ(cnpj string) (*entity.Empresa, error) {
	for _, e := range r.empresas {
		if e.CNPJ == cnpj {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeEmpresaRepo) Update(*entity.Empresa) error {
	r.updates++
	return nil
}

func (r *fakeEmpresaRepo) List(int, int) ([]*entity.Empresa, error) {
	return r.empresas, nil
}

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

func (r *fakeNotaRepo) ListByEmpresaPeriodo(string, time.Time, time.Time) ([]*entity.NotaFiscal, error) {
	return nil, nil
}

func (r *fakeNotaRepo) ListItens(notaID string) ([]*entity.ItemNota, error) {
	return r.itens[notaID], nil
}

func (r *fakeNotaRepo) AtualizarFlagsItem(*entity.ItemNota) error { return nil }

func (r *fakeNotaRepo) SomaMonofasica(string, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeCompetenciaRepo struct {
	porChave map[string]*entity.CompetenciaPGDAS
	upserts  int
}

func (r *fakeCompetenciaRepo) Upsert(c *entity.CompetenciaPGDAS) error {
	r.porChave[c.EmpresaID+"|"+c.AnoMes] = c
	r.upserts++
	return nil
}

func (r *fakeCompetenciaRepo) GetByID(string) (*entity.CompetenciaPGDAS, error) { return nil, nil }

func (r *fakeCompetenciaRepo) GetByEmpresaAnoMes(empresaID, anoMes string) (*entity.CompetenciaPGDAS, error) {
	return r.porChave[empresaID+"|"+anoMes], nil
}

func (r *fakeCompetenciaRepo) ListByEmpresaIntervalo(string, string, string) ([]*entity.CompetenciaPGDAS, error) {
	return nil, nil
}

func (r *fakeCompetenciaRepo) AtualizarAliquotaEfetiva(string, decimal.Decimal) error { return nil }

// fakeParser devolve sempre a mesma nota, sem olhar o conteúdo.
type fakeParser struct {
	nota  entity.NotaFiscal
	itens []entity.ItemNota
	err   error
}

func (p *fakeParser) Parse([]byte) (*ingest.NotaImportada, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &ingest.NotaImportada{Nota: p.nota, Itens: p.itens}, nil
}

// fakeReader devolve registros fixos.
type fakeReader struct {
	registros []ingest.RegistroPGDAS
}

func (r *fakeReader) Ler(io.Reader) ([]ingest.RegistroPGDAS, error) {
	return r.registros, nil
}
