package entity

import "github.com/shopspring/decimal"

// ItemNota representa uma linha de produto dentro de uma NF-e.
// Os flags EhMonofasico e EhInconsistente são mutuamente exclusivos e gravados
// apenas pelo classificador; ambos false é o estado padrão (item comum).
type ItemNota struct {
	ID               string
	NotaID           string
	NCM              string
	CEST             string
	DescricaoProduto string
	CFOP             string
	Quantidade       decimal.Decimal
	ValorUnitario    decimal.Decimal
	ValorTotal       decimal.Decimal
	CSTPIS           string
	CSTCOFINS        string
	BasePIS          decimal.NullDecimal
	ValorPIS         decimal.NullDecimal
	BaseCOFINS       decimal.NullDecimal
	ValorCOFINS      decimal.NullDecimal
	EhMonofasico     bool
	EhInconsistente  bool
}
