// Package relatorio expõe a leitura consolidada da auditoria (resultado ×
// competência) para renderização em JSON e PDF. O renderizador precisa tolerar
// campos de indevido nulos: eles sinalizam falta de parametrização de faixa,
// não zero.
package relatorio

import (
	"context"

	"github.com/contaudit/auditoria-monofasico/internal/application/dto"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/audit"
	"github.com/contaudit/auditoria-monofasico/internal/domain/entity"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
)

// PDFGenerator renderiza o resumo da auditoria em PDF.
// A implementação vive em infrastructure/pdf.
type PDFGenerator interface {
	GerarResumoPDF(empresa *entity.Empresa, linhas []repository.ResumoCompetencia) ([]byte, error)
}

// UseCase monta o resumo por competência de uma empresa auditada.
type UseCase struct {
	empresaRepo   repository.EmpresaRepository
	resultadoRepo repository.ResultadoAuditoriaRepository
	pdf           PDFGenerator
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	empresaRepo repository.EmpresaRepository,
	resultadoRepo repository.ResultadoAuditoriaRepository,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{empresaRepo: empresaRepo, resultadoRepo: resultadoRepo, pdf: pdf}
}

// Resumo devolve o resumo por competência no intervalo (inclusive).
func (uc *UseCase) Resumo(ctx context.Context, cnpj, anoMesInicial, anoMesFinal string) (*dto.ResumoAuditoriaResponse, error) {
	empresa, linhas, err := uc.carregar(ctx, cnpj, anoMesInicial, anoMesFinal)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CompetenciaResumo, 0, len(linhas))
	for _, l := range linhas {
		items = append(items, dto.CompetenciaResumo{
			AnoMes:              l.AnoMes,
			Anexo:               l.Anexo,
			ReceitaBrutaTotal:   l.ReceitaBrutaTotal,
			BaseMonofasicaXML:   l.BaseMonofasicaXML,
			BaseMonofasicaPGDAS: l.BaseMonofasicaPGDAS,
			DiferencaBase:       l.DiferencaBase,
			PISIndevido:         dto.DecimalOuNulo(l.PISIndevido),
			COFINSIndevido:      dto.DecimalOuNulo(l.COFINSIndevido),
			TotalIndevido:       dto.DecimalOuNulo(l.TotalIndevido),
		})
	}
	return &dto.ResumoAuditoriaResponse{
		CNPJ:        empresa.CNPJ,
		RazaoSocial: empresa.RazaoSocial,
		Inicial:     anoMesInicial,
		Final:       anoMesFinal,
		Items:       items,
	}, nil
}

// ResumoPDF devolve o mesmo resumo renderizado em PDF.
func (uc *UseCase) ResumoPDF(ctx context.Context, cnpj, anoMesInicial, anoMesFinal string) ([]byte, error) {
	empresa, linhas, err := uc.carregar(ctx, cnpj, anoMesInicial, anoMesFinal)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GerarResumoPDF(empresa, linhas)
}

func (uc *UseCase) carregar(ctx context.Context, cnpj, anoMesInicial, anoMesFinal string) (*entity.Empresa, []repository.ResumoCompetencia, error) {
	if _, err := audit.ParseCompetencia(anoMesInicial); err != nil {
		return nil, nil, err
	}
	if _, err := audit.ParseCompetencia(anoMesFinal); err != nil {
		return nil, nil, err
	}

	empresa, err := uc.empresaRepo.GetByCNPJ(cnpj)
	if err != nil {
		return nil, nil, err
	}
	if empresa == nil {
		return nil, nil, domain.ErrEmpresaNaoEncontrada
	}

	linhas, err := uc.resultadoRepo.ResumoCompetencias(ctx, empresa.ID, anoMesInicial, anoMesFinal)
	if err != nil {
		return nil, nil, err
	}
	return empresa, linhas, nil
}
