package http

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/contaudit/auditoria-monofasico/internal/application/dto"
	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
	"github.com/contaudit/auditoria-monofasico/internal/domain"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/arquivo"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

// UploadHandler recebe arquivos de NF-e (XML) e extratos do PGDAS-D (CSV).
// Ambos os endpoints aceitam multipart com o campo "arquivos" e os campos de
// formulário "cnpj" (obrigatório) e "razao_social" (opcional, usado no
// primeiro cadastro da empresa). Cada arquivo aceito ganha uma cópia em disco
// na pasta de uploads.
type UploadHandler struct {
	importarNota  *ingest.ImportarNotaUseCase
	importarPGDAS *ingest.ImportarPGDASUseCase
	uploads       *arquivo.Armazenamento
	log           *logger.Logger
}

// NewUploadHandler constrói o handler.
func NewUploadHandler(
	importarNota *ingest.ImportarNotaUseCase,
	importarPGDAS *ingest.ImportarPGDASUseCase,
	uploads *arquivo.Armazenamento,
	log *logger.Logger,
) *UploadHandler {
	return &UploadHandler{importarNota: importarNota, importarPGDAS: importarPGDAS, uploads: uploads, log: log}
}

// UploadNFe importa um ou mais XMLs de NF-e. Arquivos com problema (XML
// malformado, chave duplicada) são contados como rejeitados sem abortar o lote.
// POST /api/uploads/nfe
func (h *UploadHandler) UploadNFe(c *fiber.Ctx) error {
	cnpj := c.FormValue("cnpj")
	if cnpj == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo cnpj requerido"})
	}
	razaoSocial := c.FormValue("razao_social")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart inválido"})
	}
	arquivos := form.File["arquivos"]
	if len(arquivos) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nenhum arquivo enviado"})
	}

	resumo := dto.ImportacaoResponse{Arquivos: len(arquivos)}
	for _, fh := range arquivos {
		conteudo, err := lerArquivo(fh)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		_, err = h.importarNota.Executar(c.Context(), cnpj, razaoSocial, conteudo)
		if err != nil {
			if errors.Is(err, domain.ErrXMLInvalido) || errors.Is(err, domain.ErrDuplicate) {
				h.log.Warn().Str("arquivo", fh.Filename).Err(err).Msg("nota rejeitada")
				resumo.Rejeitados++
				continue
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		h.arquivar("xmls", fh.Filename, conteudo)
		resumo.Importados++
	}
	return c.Status(fiber.StatusCreated).JSON(resumo)
}

// UploadPGDAS importa um ou mais extratos CSV do PGDAS-D.
// POST /api/uploads/pgdas
func (h *UploadHandler) UploadPGDAS(c *fiber.Ctx) error {
	cnpj := c.FormValue("cnpj")
	if cnpj == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo cnpj requerido"})
	}
	razaoSocial := c.FormValue("razao_social")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart inválido"})
	}
	arquivos := form.File["arquivos"]
	if len(arquivos) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nenhum arquivo enviado"})
	}

	resumo := dto.ImportacaoResponse{Arquivos: len(arquivos)}
	for _, fh := range arquivos {
		conteudo, err := lerArquivo(fh)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		res, err := h.importarPGDAS.Executar(c.Context(), cnpj, razaoSocial, bytes.NewReader(conteudo))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		h.arquivar("pgdas", fh.Filename, conteudo)
		resumo.Importados += res.Importadas
		resumo.Rejeitados += res.Rejeitadas
	}
	return c.Status(fiber.StatusCreated).JSON(resumo)
}

// arquivar guarda a cópia do arquivo aceito; falha de disco não aborta a
// importação já confirmada.
func (h *UploadHandler) arquivar(subpasta, nome string, conteudo []byte) {
	if h.uploads == nil {
		return
	}
	if _, err := h.uploads.Salvar(subpasta, nome, conteudo); err != nil {
		h.log.Warn().Str("arquivo", nome).Err(err).Msg("falha ao arquivar upload")
	}
}
