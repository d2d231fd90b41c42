package ingest

import (
	"io"

	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

// NotaImportada é o resultado do parsing de um XML de NF-e: cabeçalho e itens
// ainda sem IDs nem vínculo com empresa (o caso de uso completa e persiste).
type NotaImportada struct {
	Nota  entity.NotaFiscal
	Itens []entity.ItemNota
}

// NotaFiscalParser extrai os campos relevantes de um XML de NF-e (modelo 55).
// A implementação vive em infrastructure/nfe.
type NotaFiscalParser interface {
	Parse(conteudo []byte) (*NotaImportada, error)
}

// RegistroPGDAS é uma linha do arquivo PGDAS-D já convertida em valores
// tipados. AnoMes vazio marca registro inválido (campo obrigatório ausente).
type RegistroPGDAS struct {
	AnoMes                        string
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

// PGDASReader lê um arquivo exportado do PGDAS-D (CSV com cabeçalho) e devolve
// os registros linha a linha. A implementação vive em infrastructure/pgdas.
type PGDASReader interface {
	Ler(r io.Reader) ([]RegistroPGDAS, error)
}
