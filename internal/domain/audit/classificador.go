// Package audit contém a lógica pura da auditoria do regime monofásico:
// classificação de itens de NF-e e manipulação de competências (AAAA-MM).
package audit

import (
	"strings"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// CSTMonofasico é o código de situação tributária que indica operação
// monofásica de revenda (PIS/COFINS).
const CSTMonofasico = "04"

// Classificacao resultado da classificação de um item.
type Classificacao int

const (
	// NaoMonofasico item comum: nem a tabela de NCM nem os CST indicam monofásico.
	NaoMonofasico Classificacao = iota
	// Monofasico NCM vigente na tabela e CST 04 presente: item isento confirmado.
	Monofasico
	// Inconsistente NCM e CST discordam entre si (um indica monofásico, o outro não).
	Inconsistente
)

// String devolve o nome da classificação para logs e relatórios.
func (c Classificacao) String() string {
	switch c {
	case Monofasico:
		return "monofasico"
	case Inconsistente:
		return "inconsistente"
	default:
		return "nao_monofasico"
	}
}

// Classificar decide a classificação de um item dado se o NCM está vigente
// como monofásico na data da nota, e ajusta os flags do item.
//
// Regras (a primeira que casar vence):
//   - NCM vigente + CST 04 em PIS ou COFINS -> Monofasico.
//   - NCM vigente + CST diferente de 04      -> Inconsistente.
//   - NCM não vigente + CST 04               -> Inconsistente.
//   - caso contrário                         -> NaoMonofasico.
//
// CST vazio ou ausente nunca indica monofásico. Os flags do item são sempre
// regravados: no máximo um deles fica true.
func Classificar(item *entity.ItemNota, ncmVigente bool) Classificacao {
	cstPIS := strings.TrimSpace(item.CSTPIS)
	cstCOFINS := strings.TrimSpace(item.CSTCOFINS)
	possuiCST04 := cstPIS == CSTMonofasico || cstCOFINS == CSTMonofasico

	item.EhMonofasico = false
	item.EhInconsistente = false

	switch {
	case ncmVigente && possuiCST04:
		item.EhMonofasico = true
		return Monofasico
	case ncmVigente && !possuiCST04:
		item.EhInconsistente = true
		return Inconsistente
	case !ncmVigente && possuiCST04:
		item.EhInconsistente = true
		return Inconsistente
	}
	return NaoMonofasico
}
