package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/application/dto"
	"github.com/contaudit/auditoria-monofasico/internal/application/relatorio"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/arquivo"
)

// AuditoriaHandler expõe a execução da auditoria e a leitura dos resultados.
// Os PDFs gerados ganham uma cópia na pasta de relatórios.
type AuditoriaHandler struct {
	empresaRepo repository.EmpresaRepository
	processar   *appaudit.ProcessarAuditoriaUseCase
	relatorio   *relatorio.UseCase
	relatorios  *arquivo.Armazenamento
}

// NewAuditoriaHandler constrói o handler.
func NewAuditoriaHandler(
	empresaRepo repository.EmpresaRepository,
	processar *appaudit.ProcessarAuditoriaUseCase,
	rel *relatorio.UseCase,
	relatorios *arquivo.Armazenamento,
) *AuditoriaHandler {
	return &AuditoriaHandler{empresaRepo: empresaRepo, processar: processar, relatorio: rel, relatorios: relatorios}
}

// Processar roda a auditoria da empresa no intervalo de competências.
// POST /api/auditorias
func (h *AuditoriaHandler) Processar(c *fiber.Ctx) error {
	var in dto.ProcessarAuditoriaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if in.CNPJ == "" || in.CompetenciaInicial == "" || in.CompetenciaFinal == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cnpj, competencia_inicial e competencia_final são obrigatórios"})
	}

	empresa, err := h.empresaRepo.GetByCNPJ(in.CNPJ)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if empresa == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa não encontrada"})
	}

	processadas, err := h.processar.Executar(c.Context(), empresa.ID, in.CompetenciaInicial, in.CompetenciaFinal)
	if err != nil {
		if errors.Is(err, domain.ErrCompetenciaInvalida) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := dto.ProcessarAuditoriaResponse{CNPJ: in.CNPJ}
	for _, p := range processadas {
		item := dto.CompetenciaProcessadaResponse{
			AnoMes:             p.AnoMes,
			ItensClassificados: p.ItensClassificados,
			Pulada:             p.Pulada,
		}
		if p.Resultado != nil {
			item.BaseMonofasicaXML = ptrDecimal(p.Resultado.BaseMonofasicaXML)
			item.BaseMonofasicaPGDAS = ptrDecimal(p.Resultado.BaseMonofasicaPGDAS)
			item.DiferencaBase = ptrDecimal(p.Resultado.DiferencaBase)
			item.PISIndevido = dto.DecimalOuNulo(p.Resultado.PISIndevido)
			item.COFINSIndevido = dto.DecimalOuNulo(p.Resultado.COFINSIndevido)
			item.TotalIndevido = dto.DecimalOuNulo(p.Resultado.TotalIndevido)
		}
		out.Competencias = append(out.Competencias, item)
	}
	return c.JSON(out)
}

// Resumo devolve o relatório consolidado em JSON.
// GET /api/auditorias/:cnpj/resumo?inicial=AAAA-MM&final=AAAA-MM
func (h *AuditoriaHandler) Resumo(c *fiber.Ctx) error {
	cnpj, inicial, final, resp := h.paramsResumo(c)
	if resp != nil {
		return resp(c)
	}
	resumo, err := h.relatorio.Resumo(c.Context(), cnpj, inicial, final)
	if err != nil {
		return respostaErroResumo(c, err)
	}
	return c.JSON(resumo)
}

// ResumoPDF devolve o mesmo relatório renderizado em PDF.
// GET /api/auditorias/:cnpj/resumo/pdf?inicial=AAAA-MM&final=AAAA-MM
func (h *AuditoriaHandler) ResumoPDF(c *fiber.Ctx) error {
	cnpj, inicial, final, resp := h.paramsResumo(c)
	if resp != nil {
		return resp(c)
	}
	pdfBytes, err := h.relatorio.ResumoPDF(c.Context(), cnpj, inicial, final)
	if err != nil {
		return respostaErroResumo(c, err)
	}
	if h.relatorios != nil {
		// Cópia em disco é conveniência; o download segue mesmo se a gravação falhar.
		nome := fmt.Sprintf("auditoria_%s_%s_%s.pdf", cnpj, inicial, final)
		_, _ = h.relatorios.Salvar("", nome, pdfBytes)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="auditoria_%s_%s_%s.pdf"`, cnpj, inicial, final))
	return c.Send(pdfBytes)
}

func (h *AuditoriaHandler) paramsResumo(c *fiber.Ctx) (cnpj, inicial, final string, errResp func(*fiber.Ctx) error) {
	cnpj = c.Params("cnpj")
	inicial = c.Query("inicial")
	final = c.Query("final")
	if cnpj == "" || inicial == "" || final == "" {
		errResp = func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cnpj, inicial e final são obrigatórios"})
		}
	}
	return cnpj, inicial, final, errResp
}

func respostaErroResumo(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrCompetenciaInvalida) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	if errors.Is(err, domain.ErrEmpresaNaoEncontrada) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa não encontrada"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func ptrDecimal(d decimal.Decimal) *decimal.Decimal {
	return &d
}
