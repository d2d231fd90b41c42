package audit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

func TestClassificar_TabelaDeDecisao(t *testing.T) {
	cases := []struct {
		nome       string
		cstPIS     string
		cstCOFINS  string
		ncmVigente bool
		esperado   audit.Classificacao
	}{
		{"ncm vigente e cst 04 em ambos", "04", "04", true, audit.Monofasico},
		{"ncm vigente e cst 04 só no pis", "04", "01", true, audit.Monofasico},
		{"ncm vigente e cst 04 só no cofins", "01", "04", true, audit.Monofasico},
		{"ncm vigente sem cst 04", "01", "01", true, audit.Inconsistente},
		{"ncm vigente com cst vazio", "", "", true, audit.Inconsistente},
		{"ncm fora da tabela com cst 04", "04", "04", false, audit.Inconsistente},
		{"ncm fora da tabela sem cst 04", "01", "01", false, audit.NaoMonofasico},
		{"ncm fora da tabela com cst vazio", "", "", false, audit.NaoMonofasico},
		{"cst com espaços em volta", " 04 ", "01", true, audit.Monofasico},
	}

	for _, tc := range cases {
		t.Run(tc.nome, func(t *testing.T) {
			item := &entity.ItemNota{CSTPIS: tc.cstPIS, CSTCOFINS: tc.cstCOFINS}
			got := audit.Classificar(item, tc.ncmVigente)
			assert.Equal(t, tc.esperado, got)

			// Os flags espelham a classificação e nunca ficam ambos true.
			assert.Equal(t, tc.esperado == audit.Monofasico, item.EhMonofasico)
			assert.Equal(t, tc.esperado == audit.Inconsistente, item.EhInconsistente)
			assert.False(t, item.EhMonofasico && item.EhInconsistente)
		})
	}
}

func TestClassificar_RegravaFlagsAnteriores(t *testing.T) {
	// Reclassificar um item já marcado deve regravar os flags do zero, não
	// acumular estado de execuções anteriores.
	item := &entity.ItemNota{CSTPIS: "04", EhMonofasico: true}
	got := audit.Classificar(item, false)

	assert.Equal(t, audit.Inconsistente, got)
	assert.False(t, item.EhMonofasico)
	assert.True(t, item.EhInconsistente)
}

func TestClassificacao_String(t *testing.T) {
	assert.Equal(t, "monofasico", audit.Monofasico.String())
	assert.Equal(t, "inconsistente", audit.Inconsistente.String())
	assert.Equal(t, "nao_monofasico", audit.NaoMonofasico.String())
}
