package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appaudit "github.com/contaudit/auditoria-monofasico/internal/application/audit"
	"github.com/contaudit/auditoria-monofasico/internal/application/ingest"
	"github.com/contaudit/auditoria-monofasico/internal/application/relatorio"
	"github.com/contaudit/auditoria-monofasico/internal/application/usecase"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/arquivo"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/nfe"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/pdf"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/pgdas"
	"github.com/contaudit/auditoria-monofasico/internal/infrastructure/postgres"
	httpRouter "github.com/contaudit/auditoria-monofasico/internal/interfaces/http"
	"github.com/contaudit/auditoria-monofasico/pkg/config"
	"github.com/contaudit/auditoria-monofasico/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	resultadoRepo := postgres.NewResultadoAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Etapas da auditoria: cada uma confirma a própria transação
	classificarUC := appaudit.NewClassificarCompetenciaUseCase(txRunner)
	cruzarUC := appaudit.NewCruzarCompetenciaUseCase(txRunner)
	calcularUC := appaudit.NewCalcularIndevidosUseCase(txRunner)
	processarUC := appaudit.NewProcessarAuditoriaUseCase(classificarUC, cruzarUC, calcularUC, log)

	// Ingestão de arquivos
	notaParser := nfe.NewParser()
	pgdasReader := pgdas.NewCSVReader()
	importarNotaUC := ingest.NewImportarNotaUseCase(empresaRepo, txRunner, notaParser)
	importarPGDASUC := ingest.NewImportarPGDASUseCase(empresaRepo, txRunner, pgdasReader, log)

	// Relatórios
	pdfGenerator := pdf.NewMarotoPDFGenerator()
	relatorioUC := relatorio.NewUseCase(empresaRepo, resultadoRepo, pdfGenerator)

	empresaUC := usecase.NewEmpresaUseCase(empresaRepo)

	// Cópias em disco dos uploads aceitos e dos PDFs gerados
	dirUploads := arquivo.NewArmazenamento(cfg.Audit.DirUploads)
	dirRelatorios := arquivo.NewArmazenamento(cfg.Audit.DirRelatorios)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    32 * 1024 * 1024, // lotes de XML de NF-e
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		EmpresaUC:     empresaUC,
		EmpresaRepo:   empresaRepo,
		ImportarNota:  importarNotaUC,
		ImportarPGDAS: importarPGDASUC,
		Processar:     processarUC,
		Relatorio:     relatorioUC,
		DirUploads:    dirUploads,
		DirRelatorios: dirRelatorios,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
