// Package pgdas lê o extrato do PGDAS-D exportado em CSV com cabeçalho.
// Exportações antigas do portal vêm em ISO-8859-1; o leitor detecta o
// encoding pelo conteúdo e transcodifica para UTF-8 antes do parsing.
package pgdas

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
)

var _ ingest.PGDASReader = (*CSVReader)(nil)

// CSVReader implementação de ingest.PGDASReader.
type CSVReader struct{}

// NewCSVReader constrói o leitor.
func NewCSVReader() *CSVReader { return &CSVReader{} }

// Ler devolve uma entrada por linha do arquivo. Campos numéricos em branco
// viram NullDecimal inválido; ano_mes ausente fica vazio e é rejeitado pelo
// caso de uso, não aqui.
func (r *CSVReader) Ler(src io.Reader) ([]ingest.RegistroPGDAS, error) {
	conteudo, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("ler arquivo pgdas: %w", err)
	}
	conteudo = bytes.TrimPrefix(conteudo, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(conteudo) {
		conteudo, err = io.ReadAll(transform.NewReader(bytes.NewReader(conteudo), charmap.ISO8859_1.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("transcodificar ISO-8859-1: %w", err)
		}
	}

	leitor := csv.NewReader(bytes.NewReader(conteudo))
	leitor.TrimLeadingSpace = true

	cabecalho, err := leitor.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ler cabeçalho pgdas: %w", err)
	}
	colunas := make(map[string]int, len(cabecalho))
	for i, nome := range cabecalho {
		colunas[strings.ToLower(strings.TrimSpace(nome))] = i
	}

	var registros []ingest.RegistroPGDAS
	for {
		linha, err := leitor.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ler linha pgdas: %w", err)
		}
		campo := func(nome string) string {
			i, ok := colunas[nome]
			if !ok || i >= len(linha) {
				return ""
			}
			return strings.TrimSpace(linha[i])
		}
		registros = append(registros, ingest.RegistroPGDAS{
			AnoMes:                        campo("ano_mes"),
			Anexo:                         campo("anexo"),
			ReceitaBrutaTotal:             decimalOuZero(campo("receita_bruta_total")),
			ReceitaMonofasicaDeclarada:    decimalOuZero(campo("receita_monofasica_declarada")),
			ReceitaSubstituicaoTributaria: decimalOuNulo(campo("receita_substituicao_tributaria")),
			ReceitaOutrasExclusoes:        decimalOuNulo(campo("receita_outras_exclusoes")),
			ReceitaBruta12m:               decimalOuZero(campo("receita_bruta_12m")),
			AliquotaNominal:               decimalOuNulo(campo("aliquota_nominal")),
			ParcelaADeduzir:               decimalOuNulo(campo("parcela_a_deduzir")),
			AliquotaEfetiva:               decimalOuNulo(campo("aliquota_efetiva")),
		})
	}
	return registros, nil
}

func decimalOuZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func decimalOuNulo(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}
