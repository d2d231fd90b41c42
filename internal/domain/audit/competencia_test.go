package audit_test

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
)

func TestParseCompetencia(t *testing.T) {
	c, err := audit.ParseCompetencia("2023-07")
	require.NoError(t, err)
	assert.Equal(t, 2023, c.Ano)
	assert.Equal(t, time.July, c.Mes)
	assert.Equal(t, "2023-07", c.String())
}

func TestParseCompetencia_Invalida(t *testing.T) {
	for _, token := range []string{"", "2023", "2023-13", "07-2023", "2023/07", "2023-7"} {
		_, err := audit.ParseCompetencia(token)
		assert.ErrorIs(t, err, domain.ErrCompetenciaInvalida, "token %q", token)
	}
}

func TestCompetencia_Intervalo(t *testing.T) {
	c, err := audit.ParseCompetencia("2023-01")
	require.NoError(t, err)

	inicio, fim := c.Intervalo()
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), inicio)
	assert.Equal(t, time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC), fim)

	// Intervalo semiaberto: o último instante do mês pertence, o primeiro do
	// mês seguinte não.
	ultimoInstante := time.Date(2023, time.January, 31, 23, 59, 59, 999999999, time.UTC)
	assert.True(t, !ultimoInstante.Before(inicio) && ultimoInstante.Before(fim))
	assert.False(t, fim.Before(fim))
}

func TestCompetencia_Proxima_ViradaDeAno(t *testing.T) {
	c := audit.Competencia{Ano: 2022, Mes: time.December}
	assert.Equal(t, "2023-01", c.Proxima().String())
}

func TestIntervaloCompetencias(t *testing.T) {
	competencias, err := audit.IntervaloCompetencias("2022-11", "2023-02")
	require.NoError(t, err)

	tokens := make([]string, 0, len(competencias))
	for _, c := range competencias {
		tokens = append(tokens, c.String())
	}
	assert.Equal(t, []string{"2022-11", "2022-12", "2023-01", "2023-02"}, tokens)
}

func TestIntervaloCompetencias_MesUnico(t *testing.T) {
	competencias, err := audit.IntervaloCompetencias("2023-05", "2023-05")
	require.NoError(t, err)
	require.Len(t, competencias, 1)
	assert.Equal(t, "2023-05", competencias[0].String())
}

func TestIntervaloCompetencias_FinalAnterior(t *testing.T) {
	_, err := audit.IntervaloCompetencias("2023-05", "2023-04")
	assert.ErrorIs(t, err, domain.ErrCompetenciaInvalida)
}

func TestCompetencia_OrdemLexicograficaEhCronologica(t *testing.T) {
	// A comparação de strings dos tokens precisa equivaler à comparação
	// cronológica; os filtros de intervalo no banco dependem disso.
	competencias, err := audit.IntervaloCompetencias("2019-10", "2021-03")
	require.NoError(t, err)

	tokens := make([]string, 0, len(competencias))
	for _, c := range competencias {
		tokens = append(tokens, c.String())
	}
	assert.True(t, sort.StringsAreSorted(tokens))

	for i := 1; i < len(competencias); i++ {
		assert.True(t, competencias[i-1].Antes(competencias[i]))
		assert.Less(t, tokens[i-1], tokens[i])
	}
}

func TestCompetenciaDe(t *testing.T) {
	data := time.Date(2023, time.August, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "2023-08", audit.CompetenciaDe(data).String())
}
