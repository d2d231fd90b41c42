package entity

import "github.com/shopspring/decimal"

// AnexoAliquota é uma faixa da tabela de partilha do Simples Nacional:
// por anexo e intervalo de receita bruta acumulada em 12 meses (inclusive nos
// dois extremos) define alíquota nominal, parcela a deduzir e os percentuais
// de repartição de PIS e COFINS.
//
// A consulta usa a primeira faixa que contenha a receita; a tabela não é
// validada contra sobreposição nem os percentuais contra soma 1.0.
type AnexoAliquota struct {
	ID               string
	Anexo            string
	Faixa            int
	ReceitaBrutaMin  decimal.Decimal
	ReceitaBrutaMax  decimal.Decimal
	AliquotaNominal  decimal.Decimal
	ParcelaADeduzir  decimal.Decimal
	PercentualPIS    decimal.Decimal
	PercentualCOFINS decimal.Decimal
}
