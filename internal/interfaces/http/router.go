package http

import (
	"github.com/gofiber/fiber/v2"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
	"github.com/contaudit/auditoria-monofasico/internal/application/relatorio"
	"github.com/contaudit/auditoria-monofasico/internal/application/usecase"
	"github.com/contaudit/auditoria-monofasico/internal/domain/repository"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/arquivo"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	EmpresaUC     *usecase.EmpresaUseCase
	EmpresaRepo   repository.EmpresaRepository
	ImportarNota  *ingest.ImportarNotaUseCase
	ImportarPGDAS *ingest.ImportarPGDASUseCase
	Processar     *appaudit.ProcessarAuditoriaUseCase
	Relatorio     *relatorio.UseCase
	DirUploads    *arquivo.Armazenamento
	DirRelatorios *arquivo.Armazenamento
	Log           *logger.Logger
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Empresas
	empresas := api.Group("/empresas")
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	empresas.Post("/", empresaHandler.Create)
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/:cnpj", empresaHandler.GetByCNPJ)

	// Uploads (NF-e XML e extrato PGDAS-D)
	uploads := api.Group("/uploads")
	uploadHandler := NewUploadHandler(deps.ImportarNota, deps.ImportarPGDAS, deps.DirUploads, deps.Log)
	uploads.Post("/nfe", uploadHandler.UploadNFe)
	uploads.Post("/pgdas", uploadHandler.UploadPGDAS)

	// Auditoria (execução e relatórios)
	auditorias := api.Group("/auditorias")
	auditoriaHandler := NewAuditoriaHandler(deps.EmpresaRepo, deps.Processar, deps.Relatorio, deps.DirRelatorios)
	auditorias.Post("/", auditoriaHandler.Processar)
	auditorias.Get("/:cnpj/resumo", auditoriaHandler.Resumo)
	auditorias.Get("/:cnpj/resumo/pdf", auditoriaHandler.ResumoPDF)
}
