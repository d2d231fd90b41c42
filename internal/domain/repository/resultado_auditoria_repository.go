package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// ResumoCompetencia é o resultado cru da consulta de relatório: resultado de
// auditoria unido à competência PGDAS. A DB o produz; o use case converte em DTO.
type ResumoCompetencia struct {
	AnoMes              string
	Anexo               string
	ReceitaBrutaTotal   decimal.Decimal
	BaseMonofasicaXML   decimal.Decimal
	BaseMonofasicaPGDAS decimal.Decimal
	DiferencaBase       decimal.Decimal
	PISIndevido         decimal.NullDecimal
	COFINSIndevido      decimal.NullDecimal
	TotalIndevido       decimal.NullDecimal
}

// ResultadoAuditoriaRepository define o porto de persistência para ResultadoAuditoria.
type ResultadoAuditoriaRepository interface {
	Create(resultado *entity.ResultadoAuditoria) error
	// GetByEmpresaCompetencia devolve (nil, nil) quando ainda não há resultado.
	GetByEmpresaCompetencia(empresaID, competenciaID string) (*entity.ResultadoAuditoria, error)
	// AtualizarBases sobrescreve base_monofasica_xml, base_monofasica_pgdas e
	// diferenca_base; não toca nos campos de indevido.
	AtualizarBases(resultado *entity.ResultadoAuditoria) error
	// AtualizarIndevidos sobrescreve apenas pis_indevido, cofins_indevido e
	// total_indevido (incluindo gravar nulo quando falta parametrização).
	AtualizarIndevidos(resultado *entity.ResultadoAuditoria) error
	// ResumoCompetencias devolve o resumo por competência auditada da empresa
	// no intervalo de tokens AAAA-MM (inclusive), ordenado por ano_mes.
	ResumoCompetencias(ctx context.Context, empresaID, anoMesInicial, anoMesFinal string) ([]ResumoCompetencia, error)
}
