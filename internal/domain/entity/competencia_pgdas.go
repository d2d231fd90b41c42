package entity

import "github.com/shopspring/decimal"

// CompetenciaPGDAS guarda os dados declarados no PGDAS-D para um mês (AAAA-MM)
// de uma empresa. Única por (empresa, ano_mes).
//
// AliquotaEfetiva é memoizada: calculada sob demanda uma única vez e nunca
// recalculada, mesmo que alíquota nominal ou parcela a deduzir mudem depois.
type CompetenciaPGDAS struct {
	ID                            string
	EmpresaID                     string
	AnoMes                        string // formato AAAA-MM
	Anexo                         string
	ReceitaBrutaTotal             decimal.Decimal
	ReceitaMonofasicaDeclarada    decimal.Decimal
	ReceitaSubstituicaoTributaria decimal.NullDecimal
	ReceitaOutrasExclusoes        decimal.NullDecimal
	ReceitaBruta12m               decimal.Decimal
	AliquotaNominal               decimal.NullDecimal
	ParcelaADeduzir               decimal.NullDecimal
	AliquotaEfetiva               decimal.NullDecimal
}
