// Package nfe extrai os campos relevantes de um XML de NF-e (modelo 55).
// O documento pode vir embrulhado em <nfeProc> ou começar direto em <NFe>;
// o parser trabalha pelo nome local das tags, então tolera XMLs com e sem
// declaração de namespace.
package nfe

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
)

var _ ingest.NotaFiscalParser = (*Parser)(nil)

// Parser implementação de ingest.NotaFiscalParser sobre etree.
type Parser struct{}

// NewParser constrói o parser.
func NewParser() *Parser { return &Parser{} }

// Parse extrai cabeçalho e itens da NF-e. Campos numéricos ausentes viram
// zero; CSTs ausentes viram string vazia (não indicam monofásico).
func (p *Parser) Parse(conteudo []byte) (*ingest.NotaImportada, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(conteudo); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrXMLInvalido, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: documento vazio", domain.ErrXMLInvalido)
	}

	nfe := root
	if root.Tag != "NFe" {
		nfe = root.FindElement("//NFe")
		if nfe == nil {
			return nil, fmt.Errorf("%w: tag NFe não encontrada", domain.ErrXMLInvalido)
		}
	}
	infNFe := nfe.SelectElement("infNFe")
	if infNFe == nil {
		return nil, fmt.Errorf("%w: tag infNFe não encontrada", domain.ErrXMLInvalido)
	}

	// A chave de acesso vem no atributo Id, normalmente com o prefixo "NFe".
	chave := strings.TrimPrefix(infNFe.SelectAttrValue("Id", ""), "NFe")

	nota := entity.NotaFiscal{
		Chave:  chave,
		Modelo: "55",
	}

	if ide := infNFe.SelectElement("ide"); ide != nil {
		nota.Numero = texto(ide, "nNF")
		nota.Serie = texto(ide, "serie")
		if modelo := texto(ide, "mod"); modelo != "" {
			nota.Modelo = modelo
		}
		if dt := parseDataHora(textoDe(ide, "dhEmi", "dEmi")); dt != nil {
			nota.DataEmissao = *dt
		}
		nota.DataSaida = parseDataHora(textoDe(ide, "dhSaiEnt", "dSaiEnt"))
		if texto(ide, "tpNF") == "1" {
			nota.TipoOperacao = entity.TipoOperacaoSaida
		} else {
			nota.TipoOperacao = entity.TipoOperacaoEntrada
		}
	}
	if nota.DataEmissao.IsZero() {
		nota.DataEmissao = time.Now().UTC()
	}

	if emit := infNFe.SelectElement("emit"); emit != nil {
		nota.CNPJEmitente = texto(emit, "CNPJ")
	}
	if dest := infNFe.SelectElement("dest"); dest != nil {
		nota.CNPJDestinatario = textoDe(dest, "CNPJ", "CPF")
		if ender := dest.SelectElement("enderDest"); ender != nil {
			nota.UFDestino = texto(ender, "UF")
		}
	}
	if total := infNFe.SelectElement("total"); total != nil {
		if icmsTot := total.SelectElement("ICMSTot"); icmsTot != nil {
			nota.ValorTotal = valorDecimal(texto(icmsTot, "vNF"))
		}
	}

	var itens []entity.ItemNota
	for _, det := range infNFe.SelectElements("det") {
		prod := det.SelectElement("prod")
		if prod == nil {
			continue
		}
		item := entity.ItemNota{
			NCM:              texto(prod, "NCM"),
			CEST:             texto(prod, "CEST"),
			DescricaoProduto: texto(prod, "xProd"),
			CFOP:             texto(prod, "CFOP"),
			Quantidade:       valorDecimal(texto(prod, "qCom")),
			ValorUnitario:    valorDecimal(texto(prod, "vUnCom")),
			ValorTotal:       valorDecimal(texto(prod, "vProd")),
		}
		if imposto := det.SelectElement("imposto"); imposto != nil {
			// Os grupos variam (PISAliq, PISNT, PISOutr...); os campos comuns
			// ficam no primeiro filho do grupo.
			if grupo := primeiroFilho(imposto.SelectElement("PIS")); grupo != nil {
				item.CSTPIS = texto(grupo, "CST")
				item.BasePIS = valorNulo(texto(grupo, "vBC"))
				item.ValorPIS = valorNulo(texto(grupo, "vPIS"))
			}
			if grupo := primeiroFilho(imposto.SelectElement("COFINS")); grupo != nil {
				item.CSTCOFINS = texto(grupo, "CST")
				item.BaseCOFINS = valorNulo(texto(grupo, "vBC"))
				item.ValorCOFINS = valorNulo(texto(grupo, "vCOFINS"))
			}
		}
		itens = append(itens, item)
	}

	return &ingest.NotaImportada{Nota: nota, Itens: itens}, nil
}

func texto(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// textoDe devolve o texto da primeira tag existente dentre as informadas.
func textoDe(el *etree.Element, tags ...string) string {
	for _, tag := range tags {
		if s := texto(el, tag); s != "" {
			return s
		}
	}
	return ""
}

func primeiroFilho(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	filhos := el.ChildElements()
	if len(filhos) == 0 {
		return nil
	}
	return filhos[0]
}

func valorDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func valorNulo(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// parseDataHora aceita o formato completo com fuso (2006-01-02T15:04:05-03:00)
// ou apenas a data.
func parseDataHora(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
