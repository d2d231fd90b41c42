package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

func competenciaDeTeste(anoMes, receitaMonofasica string) *entity.CompetenciaPGDAS {
	return &entity.CompetenciaPGDAS{
		ID:                         uuid.New().String(),
		EmpresaID:                  empresaID,
		AnoMes:                     anoMes,
		Anexo:                      "I",
		ReceitaMonofasicaDeclarada: decimal.RequireFromString(receitaMonofasica),
	}
}

func TestCruzarCompetencia(t *testing.T) {
	store := newFakeStore()
	store.competencias.Upsert(competenciaDeTeste("2023-07", "1000.00"))

	nota := novaNota(empresaID, time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC))
	store.notas.Create(nota)
	mono := novoItem(nota.ID, "30049099", "04", "1500.00")
	mono.EhMonofasico = true
	store.notas.CreateItem(mono)
	comum := novoItem(nota.ID, "99999999", "01", "800.00")
	store.notas.CreateItem(comum)

	uc := appaudit.NewCruzarCompetenciaUseCase(store)
	res, err := uc.Executar(context.Background(), empresaID, "2023-07")
	require.NoError(t, err)

	assert.True(t, res.BaseMonofasicaXML.Equal(decimal.RequireFromString("1500.00")))
	assert.True(t, res.BaseMonofasicaPGDAS.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, res.DiferencaBase.Equal(decimal.RequireFromString("500.00")))

	// Os campos de indevido pertencem à etapa de cálculo: seguem nulos.
	assert.False(t, res.PISIndevido.Valid)
	assert.False(t, res.COFINSIndevido.Valid)
	assert.False(t, res.TotalIndevido.Valid)
}

func TestCruzarCompetencia_SemDeclaracao(t *testing.T) {
	uc := appaudit.NewCruzarCompetenciaUseCase(newFakeStore())
	_, err := uc.Executar(context.Background(), empresaID, "2023-07")
	assert.ErrorIs(t, err, domain.ErrCompetenciaNaoEncontrada)
}

func TestCruzarCompetencia_SemNotas(t *testing.T) {
	store := newFakeStore()
	store.competencias.Upsert(competenciaDeTeste("2023-07", "1000.00"))

	uc := appaudit.NewCruzarCompetenciaUseCase(store)
	res, err := uc.Executar(context.Background(), empresaID, "2023-07")
	require.NoError(t, err)

	// Sem itens monofásicos a base XML é zero e a diferença fica negativa.
	assert.True(t, res.BaseMonofasicaXML.IsZero())
	assert.True(t, res.DiferencaBase.Equal(decimal.RequireFromString("-1000.00")))
}

func TestCruzarCompetencia_Idempotente(t *testing.T) {
	store := newFakeStore()
	store.competencias.Upsert(competenciaDeTeste("2023-07", "1000.00"))

	nota := novaNota(empresaID, time.Date(2023, time.July, 15, 0, 0, 0, 0, time.UTC))
	store.notas.Create(nota)
	mono := novoItem(nota.ID, "30049099", "04", "1500.00")
	mono.EhMonofasico = true
	store.notas.CreateItem(mono)

	uc := appaudit.NewCruzarCompetenciaUseCase(store)
	primeiro, err := uc.Executar(context.Background(), empresaID, "2023-07")
	require.NoError(t, err)
	segundo, err := uc.Executar(context.Background(), empresaID, "2023-07")
	require.NoError(t, err)

	// Reexecutar reaproveita o mesmo resultado e regrava valores idênticos.
	assert.Equal(t, 1, store.resultados.criados)
	assert.Equal(t, primeiro.ID, segundo.ID)
	assert.True(t, primeiro.DiferencaBase.Equal(segundo.DiferencaBase))
}
