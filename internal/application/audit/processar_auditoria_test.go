package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

func novoProcessador(store *fakeStore) *appaudit.ProcessarAuditoriaUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return appaudit.NewProcessarAuditoriaUseCase(
		appaudit.NewClassificarCompetenciaUseCase(store),
		appaudit.NewCruzarCompetenciaUseCase(store),
		appaudit.NewCalcularIndevidosUseCase(store),
		log,
	)
}

func TestProcessarAuditoria_IntervaloComMesSemDeclaracao(t *testing.T) {
	store := newFakeStore()
	store.ncms.Create(ncmVigente("30049099"))
	store.anexos.Create(faixa3AnexoI())

	// Julho e setembro declarados; agosto sem declaração PGDAS.
	for _, anoMes := range []string{"2023-07", "2023-09"} {
		comp := competenciaDeTeste(anoMes, "0.00")
		comp.ReceitaBruta12m = decimal.RequireFromString("600000.00")
		comp.AliquotaNominal = decimal.NewNullDecimal(decimal.RequireFromString("0.0950"))
		comp.ParcelaADeduzir = decimal.NewNullDecimal(decimal.RequireFromString("13860.00"))
		require.NoError(t, store.competencias.Upsert(comp))
	}

	// Uma venda monofásica em julho.
	nota := novaNota(empresaID, time.Date(2023, time.July, 20, 0, 0, 0, 0, time.UTC))
	store.notas.Create(nota)
	store.notas.CreateItem(novoItem(nota.ID, "30049099", "04", "10000.00"))

	uc := novoProcessador(store)
	processadas, err := uc.Executar(context.Background(), empresaID, "2023-07", "2023-09")
	require.NoError(t, err)
	require.Len(t, processadas, 3)

	julho := processadas[0]
	assert.Equal(t, "2023-07", julho.AnoMes)
	assert.False(t, julho.Pulada)
	assert.Equal(t, 1, julho.ItensClassificados)
	require.NotNil(t, julho.Resultado)
	assert.True(t, julho.Resultado.DiferencaBase.Equal(decimal.RequireFromString("10000.00")))
	require.True(t, julho.Resultado.TotalIndevido.Valid)
	assert.True(t, julho.Resultado.TotalIndevido.Decimal.Equal(decimal.RequireFromString("111.45")))

	// Agosto não tem declaração: é pulado sem abortar setembro.
	agosto := processadas[1]
	assert.Equal(t, "2023-08", agosto.AnoMes)
	assert.True(t, agosto.Pulada)
	assert.Nil(t, agosto.Resultado)

	setembro := processadas[2]
	assert.Equal(t, "2023-09", setembro.AnoMes)
	assert.False(t, setembro.Pulada)
	require.NotNil(t, setembro.Resultado)
	assert.True(t, setembro.Resultado.DiferencaBase.IsZero())
}

func TestProcessarAuditoria_IntervaloInvalido(t *testing.T) {
	uc := novoProcessador(newFakeStore())
	_, err := uc.Executar(context.Background(), empresaID, "2023-09", "2023-07")
	assert.ErrorIs(t, err, domain.ErrCompetenciaInvalida)
}

func TestProcessarAuditoria_Reexecucao(t *testing.T) {
	store := newFakeStore()
	store.anexos.Create(faixa3AnexoI())
	comp := competenciaDeTeste("2023-07", "0.00")
	comp.ReceitaBruta12m = decimal.RequireFromString("600000.00")
	comp.AliquotaNominal = decimal.NewNullDecimal(decimal.RequireFromString("0.0950"))
	comp.ParcelaADeduzir = decimal.NewNullDecimal(decimal.RequireFromString("13860.00"))
	require.NoError(t, store.competencias.Upsert(comp))

	uc := novoProcessador(store)
	primeira, err := uc.Executar(context.Background(), empresaID, "2023-07", "2023-07")
	require.NoError(t, err)
	segunda, err := uc.Executar(context.Background(), empresaID, "2023-07", "2023-07")
	require.NoError(t, err)

	// Cada etapa é idempotente: reexecutar o intervalo produz o mesmo resultado
	// sem duplicar registros.
	assert.Equal(t, 1, store.resultados.criados)
	require.Len(t, primeira, 1)
	require.Len(t, segunda, 1)
	assert.Equal(t, primeira[0].Resultado.ID, segunda[0].Resultado.ID)
}
