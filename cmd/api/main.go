package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/estoque"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/producao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/interfaces/http"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/config"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
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

	ordemRepo := postgres.NewOrdemProducaoRepository(pool)
	produtoRepo := postgres.NewProdutoRepository(pool)
	paleteRepo := postgres.NewPaleteRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	motor := estoque.NewMotorConsumo(log, cfg.Producao.ToleranciaCusto)

	expedicaoUC := expedicao.NewUseCase(txRunner, paleteRepo, log)

	// A conclusão de uma ordem vinculada a pedido dispara a geração dos
	// paletes de expedição.
	producaoUC := producao.NewUseCase(
		txRunner, motor, ordemRepo, produtoRepo,
		expedicaoUC,
		producao.PoliticaFalta(cfg.Producao.PoliticaFalta),
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Verde Pack Cantoneiras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProducaoUC:  producaoUC,
		ExpedicaoUC: expedicaoUC,
		JWTSecret:   cfg.JWT.Secret,
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
