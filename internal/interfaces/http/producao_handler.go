package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/dto"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/producao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
)

// ProducaoHandler trata as rotas de ordens de produção (protegido).
type ProducaoHandler struct {
	uc *producao.UseCase
}

// NewProducaoHandler constrói o handler.
func NewProducaoHandler(uc *producao.UseCase) *ProducaoHandler {
	return &ProducaoHandler{uc: uc}
}

// Obter godoc
// @Summary      Consultar ordem de produção
// @Tags         producao
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da ordem"
// @Success      200  {object}  dto.OrdemProducaoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordens-producao/{id} [get]
func (h *ProducaoHandler) Obter(c *fiber.Ctx) error {
	ordem, err := h.uc.Obter(c.Context(), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.OrdemFromEntity(ordem))
}

// IniciarItem godoc
// @Summary      Iniciar produção de um item
// @Description  Move o item de aguardando para em_producao, baixando o estoque
//
//	das matérias-primas da receita. Alertas de troca de lote e faltas
//	são devolvidos individualmente.
//
// @Tags         producao
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID da ordem"
// @Param        itemID  path  string  true  "ID do item"
// @Success      200  {object}  dto.InicioProducaoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordens-producao/{id}/itens/{itemID}/iniciar [post]
func (h *ProducaoHandler) IniciarItem(c *fiber.Ctx) error {
	res, err := h.uc.IniciarItem(c.Context(), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return respondErro(c, err)
	}
	item := dto.ItemFromEntity(res.Item)
	return c.JSON(dto.InicioProducaoResponse{
		Ordem:   dto.OrdemFromEntity(res.Ordem),
		Item:    &item,
		Alertas: dto.AlertasFromEntity(res.Alertas),
		Faltas:  dto.FaltasFromEntity(res.Faltas),
	})
}

// FinalizarItem godoc
// @Summary      Finalizar produção de um item
// @Tags         producao
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID da ordem"
// @Param        itemID  path  string  true  "ID do item"
// @Success      200  {object}  dto.OrdemItemDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordens-producao/{id}/itens/{itemID}/finalizar [post]
func (h *ProducaoHandler) FinalizarItem(c *fiber.Ctx) error {
	item, err := h.uc.FinalizarItem(c.Context(), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.ItemFromEntity(item))
}

// CancelarItem godoc
// @Summary      Cancelar um item de produção
// @Tags         producao
// @Security     Bearer
// @Router       /api/ordens-producao/{id}/itens/{itemID}/cancelar [post]
func (h *ProducaoHandler) CancelarItem(c *fiber.Ctx) error {
	item, err := h.uc.CancelarItem(c.Context(), c.Params("id"), c.Params("itemID"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.ItemFromEntity(item))
}

// IniciarOrdem godoc
// @Summary      Iniciar ordem de produção sem itens (modo simples)
// @Tags         producao
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da ordem"
// @Success      200  {object}  dto.InicioProducaoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ordens-producao/{id}/iniciar [post]
func (h *ProducaoHandler) IniciarOrdem(c *fiber.Ctx) error {
	res, err := h.uc.IniciarOrdem(c.Context(), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.InicioProducaoResponse{
		Ordem:   dto.OrdemFromEntity(res.Ordem),
		Alertas: dto.AlertasFromEntity(res.Alertas),
		Faltas:  dto.FaltasFromEntity(res.Faltas),
	})
}

// FinalizarOrdem godoc
// @Summary      Concluir ordem de produção sem itens (modo simples)
// @Tags         producao
// @Security     Bearer
// @Router       /api/ordens-producao/{id}/finalizar [post]
func (h *ProducaoHandler) FinalizarOrdem(c *fiber.Ctx) error {
	ordem, err := h.uc.FinalizarOrdem(c.Context(), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.OrdemFromEntity(ordem))
}

// CancelarOrdem godoc
// @Summary      Cancelar ordem de produção
// @Tags         producao
// @Security     Bearer
// @Router       /api/ordens-producao/{id}/cancelar [post]
func (h *ProducaoHandler) CancelarOrdem(c *fiber.Ctx) error {
	ordem, err := h.uc.CancelarOrdem(c.Context(), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.OrdemFromEntity(ordem))
}

// respondErro mapeia erros de domínio para status HTTP.
func respondErro(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrTransicaoInvalida):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
	case errors.Is(err, domain.ErrEstoqueInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrPaleteJaConferido):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_CONFIRMED", Message: err.Error()})
	case errors.Is(err, domain.ErrConflito):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrReceitaNaoCadastrada):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: err.Error()})
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
