package ingest_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

const (
	cnpjTeste  = "12345678000195"
	chaveTeste = "35230712345678000195550010000001231000001234"
)

func notaDeTeste() entity.NotaFiscal {
	return entity.NotaFiscal{
		Chave:        chaveTeste,
		Numero:       "123",
		Serie:        "1",
		CNPJEmitente: cnpjTeste,
		DataEmissao:  time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC),
		Modelo:       "55",
		TipoOperacao: entity.TipoOperacaoSaida,
		ValorTotal:   decimal.RequireFromString("25.30"),
	}
}

func TestImportarNota_CriaEmpresaENota(t *testing.T) {
	store := newFakeStore()
	parser := &fakeParser{
		nota:  notaDeTeste(),
		itens: []entity.ItemNota{{NCM: "30049099", CSTPIS: "04"}, {NCM: "30051010", CSTPIS: "01"}},
	}

	uc := ingest.NewImportarNotaUseCase(store.empresas, store, parser)
	nota, err := uc.Executar(context.Background(), cnpjTeste, "Farmacia Exemplo LTDA", []byte("<xml/>"))
	require.NoError(t, err)

	// Empresa criada no primeiro uso, vinculada à nota.
	empresa, err := store.empresas.GetByCNPJ(cnpjTeste)
	require.NoError(t, err)
	require.NotNil(t, empresa)
	assert.Equal(t, "Farmacia Exemplo LTDA", empresa.RazaoSocial)
	assert.Equal(t, empresa.ID, nota.EmpresaID)
	assert.NotEmpty(t, nota.ID)

	itens, err := store.notas.ListItens(nota.ID)
	require.NoError(t, err)
	require.Len(t, itens, 2)
	for _, item := range itens {
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, nota.ID, item.NotaID)
	}
}

func TestImportarNota_ChaveDuplicada(t *testing.T) {
	store := newFakeStore()
	parser := &fakeParser{nota: notaDeTeste()}

	uc := ingest.NewImportarNotaUseCase(store.empresas, store, parser)
	_, err := uc.Executar(context.Background(), cnpjTeste, "", []byte("<xml/>"))
	require.NoError(t, err)

	_, err = uc.Executar(context.Background(), cnpjTeste, "", []byte("<xml/>"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, store.notas.notas, 1)
}

func TestImportarNota_CNPJObrigatorio(t *testing.T) {
	store := newFakeStore()
	uc := ingest.NewImportarNotaUseCase(store.empresas, store, &fakeParser{nota: notaDeTeste()})
	_, err := uc.Executar(context.Background(), "", "", []byte("<xml/>"))
	assert.ErrorIs(t, err, domain.ErrCampoObrigatorioAusente)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "a especialização preserva o erro genérico")
}

func TestImportarNota_CompletaRazaoSocial(t *testing.T) {
	store := newFakeStore()
	store.empresas.Create(&entity.Empresa{ID: "e1", CNPJ: cnpjTeste})

	uc := ingest.NewImportarNotaUseCase(store.empresas, store, &fakeParser{nota: notaDeTeste()})
	_, err := uc.Executar(context.Background(), cnpjTeste, "Razão Nova", []byte("<xml/>"))
	require.NoError(t, err)

	empresa, _ := store.empresas.GetByCNPJ(cnpjTeste)
	assert.Equal(t, "Razão Nova", empresa.RazaoSocial)
	assert.Equal(t, 1, store.empresas.updates)
	assert.Len(t, store.empresas.empresas, 1, "não deve criar segunda empresa")
}

func TestImportarPGDAS(t *testing.T) {
	store := newFakeStore()
	reader := &fakeReader{registros: []ingest.RegistroPGDAS{
		{AnoMes: "2023-07", Anexo: "I", ReceitaBrutaTotal: decimal.RequireFromString("50000.00")},
		{AnoMes: "", Anexo: "I"}, // sem ano_mes: rejeitado individualmente
		{AnoMes: "2023-08", Anexo: "I", ReceitaBrutaTotal: decimal.RequireFromString("48000.00")},
	}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	uc := ingest.NewImportarPGDASUseCase(store.empresas, store, reader, log)
	res, err := uc.Executar(context.Background(), cnpjTeste, "Farmacia Exemplo LTDA", strings.NewReader("arquivo"))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Importadas)
	assert.Equal(t, 1, res.Rejeitadas)
	assert.Equal(t, 2, store.competencias.upserts)

	empresa, _ := store.empresas.GetByCNPJ(cnpjTeste)
	require.NotNil(t, empresa)
	julho, _ := store.competencias.GetByEmpresaAnoMes(empresa.ID, "2023-07")
	require.NotNil(t, julho)
	assert.True(t, julho.ReceitaBrutaTotal.Equal(decimal.RequireFromString("50000.00")))
}
