package dto

import "github.com/shopspring/decimal"

// ProcessarAuditoriaRequest parâmetros para rodar a auditoria de um intervalo.
type ProcessarAuditoriaRequest struct {
	CNPJ               string `json:"cnpj"`
	CompetenciaInicial string `json:"competencia_inicial"` // AAAA-MM
	CompetenciaFinal   string `json:"competencia_final"`   // AAAA-MM
}

// CompetenciaProcessadaResponse resultado de um mês processado.
type CompetenciaProcessadaResponse struct {
	AnoMes              string           `json:"ano_mes"`
	ItensClassificados  int              `json:"itens_classificados"`
	Pulada              bool             `json:"pulada"`
	BaseMonofasicaXML   *decimal.Decimal `json:"base_monofasica_xml,omitempty"`
	BaseMonofasicaPGDAS *decimal.Decimal `json:"base_monofasica_pgdas,omitempty"`
	DiferencaBase       *decimal.Decimal `json:"diferenca_base,omitempty"`
	PISIndevido         *decimal.Decimal `json:"pis_indevido"`
	COFINSIndevido      *decimal.Decimal `json:"cofins_indevido"`
	TotalIndevido       *decimal.Decimal `json:"total_indevido"`
}

// ProcessarAuditoriaResponse resumo da execução completa.
type ProcessarAuditoriaResponse struct {
	CNPJ         string                          `json:"cnpj"`
	Competencias []CompetenciaProcessadaResponse `json:"competencias"`
}

// CompetenciaResumo linha do relatório consolidado (resultado × competência).
type CompetenciaResumo struct {
	AnoMes              string           `json:"ano_mes"`
	Anexo               string           `json:"anexo"`
	ReceitaBrutaTotal   decimal.Decimal  `json:"receita_bruta_total"`
	BaseMonofasicaXML   decimal.Decimal  `json:"base_monofasica_xml"`
	BaseMonofasicaPGDAS decimal.Decimal  `json:"base_monofasica_pgdas"`
	DiferencaBase       decimal.Decimal  `json:"diferenca_base"`
	PISIndevido         *decimal.Decimal `json:"pis_indevido"`
	COFINSIndevido      *decimal.Decimal `json:"cofins_indevido"`
	TotalIndevido       *decimal.Decimal `json:"total_indevido"`
}

// ResumoAuditoriaResponse relatório consolidado de um intervalo.
type ResumoAuditoriaResponse struct {
	CNPJ        string              `json:"cnpj"`
	RazaoSocial string              `json:"razao_social"`
	Inicial     string              `json:"competencia_inicial"`
	Final       string              `json:"competencia_final"`
	Items       []CompetenciaResumo `json:"items"`
}

// ImportacaoResponse resume uma importação de arquivos (XML de NF-e ou PGDAS).
type ImportacaoResponse struct {
	Arquivos   int `json:"arquivos"`
	Importados int `json:"importados"`
	Rejeitados int `json:"rejeitados"`
}
