package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/producao"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProducaoUC  *producao.UseCase
	ExpedicaoUC *expedicao.UseCase
	JWTSecret   string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	expedicaoHandler := NewExpedicaoHandler(deps.ExpedicaoUC)

	// Conferência por QR (público: o token do palete é a credencial)
	api.Post("/expedicao/conferir", expedicaoHandler.ConferirPalete)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ordens de produção (protegido)
	ordens := protected.Group("/ordens-producao")
	producaoHandler := NewProducaoHandler(deps.ProducaoUC)
	ordens.Get("/:id", producaoHandler.Obter)
	ordens.Post("/:id/iniciar", producaoHandler.IniciarOrdem)
	ordens.Post("/:id/finalizar", producaoHandler.FinalizarOrdem)
	ordens.Post("/:id/cancelar", producaoHandler.CancelarOrdem)
	ordens.Post("/:id/itens/:itemID/iniciar", producaoHandler.IniciarItem)
	ordens.Post("/:id/itens/:itemID/finalizar", producaoHandler.FinalizarItem)
	ordens.Post("/:id/itens/:itemID/cancelar", producaoHandler.CancelarItem)

	// Paletes de um pedido (protegido)
	pedidos := protected.Group("/pedidos")
	pedidos.Get("/:id/paletes", expedicaoHandler.ListarPaletes)
	pedidos.Post("/:id/paletes", expedicaoHandler.GerarPaletes)
}
