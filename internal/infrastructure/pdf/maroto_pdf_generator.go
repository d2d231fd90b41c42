// Package pdf gera o relatório da auditoria monofásica em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razão Social + CNPJ  │  Intervalo auditado          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Competência | Anexo | Base XML | Base PGDAS |       │
//	│          Diferença | PIS | COFINS | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL GERAL + legenda sobre valores N/A                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/contaudit/auditoria-monofasico/internal/application/relatorio"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 11, Green: 83, Blue: 69}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ relatorio.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa relatorio.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GerarResumoPDF gera o PDF do resumo e devolve seus bytes. Indevidos nulos
// (competência sem faixa parametrizada) são impressos como "N/A".
func (g *MarotoPDFGenerator) GerarResumoPDF(empresa *entity.Empresa, linhas []repository.ResumoCompetencia) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Auditoria Monofásico PIS/COFINS", true).
		WithAuthor(empresa.RazaoSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(empresa, linhas))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, l := range linhas {
		m.AddRows(detailRow(l))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(linhas))
	m.AddRows(legendaRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: razão social + CNPJ (esq) e intervalo auditado (dir).
func headerRow(empresa *entity.Empresa, linhas []repository.ResumoCompetencia) core.Row {
	intervalo := "-"
	if len(linhas) > 0 {
		intervalo = linhas[0].AnoMes + " a " + linhas[len(linhas)-1].AnoMes
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa.RazaoSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+empresa.CNPJ, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("AUDITORIA MONOFÁSICO PIS/COFINS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(intervalo, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 8,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Competência", 2, align.Left),
		h("Anexo", 1, align.Center),
		h("Base XML", 2, align.Right),
		h("Base PGDAS", 2, align.Right),
		h("Diferença", 2, align.Right),
		h("PIS", 1, align.Right),
		h("COFINS", 1, align.Right),
		h("Total", 1, align.Right),
	)
}

func detailRow(l repository.ResumoCompetencia) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		cell(l.AnoMes, 2, align.Left),
		cell(l.Anexo, 1, align.Center),
		cell(formatValor(l.BaseMonofasicaXML), 2, align.Right),
		cell(formatValor(l.BaseMonofasicaPGDAS), 2, align.Right),
		cell(formatValor(l.DiferencaBase), 2, align.Right),
		cell(formatIndevido(l.PISIndevido), 1, align.Right),
		cell(formatIndevido(l.COFINSIndevido), 1, align.Right),
		cell(formatIndevido(l.TotalIndevido), 1, align.Right),
	)
}

// totalRow: soma dos indevidos calculáveis. Competências sem faixa entram
// como N/A na tabela e ficam fora da soma.
func totalRow(linhas []repository.ResumoCompetencia) core.Row {
	total := decimal.Zero
	incompletas := 0
	for _, l := range linhas {
		if l.TotalIndevido.Valid {
			total = total.Add(l.TotalIndevido.Decimal)
		} else {
			incompletas++
		}
	}
	label := "TOTAL RECOLHIDO INDEVIDAMENTE:"
	if incompletas > 0 {
		label = fmt.Sprintf("TOTAL (exceto %d competência(s) sem faixa):", incompletas)
	}
	return row.New(10).Add(
		col.New(8).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(4).Add(text.New("R$ "+formatValor(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2,
		})),
	)
}

func legendaRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Valores em reais. \"N/A\" indica competência sem faixa de alíquota "+
				"parametrizada para a receita bruta acumulada; cadastre a faixa do "+
				"anexo e reprocesse a auditoria.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

func formatValor(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func formatIndevido(d decimal.NullDecimal) string {
	if !d.Valid {
		return "N/A"
	}
	return d.Decimal.StringFixed(2)
}
