package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operação da NF-e (tpNF).
const (
	TipoOperacaoSaida   = "saida"
	TipoOperacaoEntrada = "entrada"
)

// NotaFiscal representa o cabeçalho de uma NF-e (modelo 55) de saída.
// DataEmissao é a referência oficial para derivar a competência; imutável após a importação.
type NotaFiscal struct {
	ID               string
	EmpresaID        string
	Chave            string // chave de acesso de 44 dígitos, única
	Numero           string
	Serie            string
	CNPJEmitente     string
	CNPJDestinatario string
	DataEmissao      time.Time
	DataSaida        *time.Time
	Modelo           string
	TipoOperacao     string
	ValorTotal       decimal.Decimal
	UFDestino        string
	CreatedAt        time.Time
}
