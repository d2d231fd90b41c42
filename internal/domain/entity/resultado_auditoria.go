package entity

import "github.com/shopspring/decimal"

// ResultadoAuditoria resume a auditoria de uma competência: bases comparadas e
// valores estimados de PIS/COFINS pagos indevidamente. Único por
// (empresa, competência), garantido por lookup-or-create.
//
// Os três campos de indevido distinguem nulo de zero: nulo significa "não
// calculável, falta configurar a faixa do anexo"; zero significa "calculado,
// sem impacto". O cruzamento grava apenas as bases e a diferença; o cálculo de
// indevidos grava apenas os três campos de impacto. As duas gravações são
// independentes e idempotentes.
type ResultadoAuditoria struct {
	ID                  string
	EmpresaID           string
	CompetenciaID       string
	BaseMonofasicaXML   decimal.Decimal
	BaseMonofasicaPGDAS decimal.Decimal
	DiferencaBase       decimal.Decimal // XML menos PGDAS; positiva indica provável pagamento a maior
	PISIndevido         decimal.NullDecimal
	COFINSIndevido      decimal.NullDecimal
	TotalIndevido       decimal.NullDecimal
}
