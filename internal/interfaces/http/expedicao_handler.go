package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/dto"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
)

// ExpedicaoHandler trata paletes e conferência por QR.
type ExpedicaoHandler struct {
	uc *expedicao.UseCase
}

// NewExpedicaoHandler constrói o handler.
func NewExpedicaoHandler(uc *expedicao.UseCase) *ExpedicaoHandler {
	return &ExpedicaoHandler{uc: uc}
}

// ListarPaletes godoc
// @Summary      Listar paletes de um pedido
// @Tags         expedicao
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do pedido"
// @Success      200  {array}  dto.PaleteDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/paletes [get]
func (h *ExpedicaoHandler) ListarPaletes(c *fiber.Ctx) error {
	paletes, err := h.uc.ListarPaletes(c.Context(), c.Params("id"))
	if err != nil {
		return respondErro(c, err)
	}
	out := make([]dto.PaleteDTO, 0, len(paletes))
	for _, p := range paletes {
		out = append(out, dto.PaleteFromEntity(p, false))
	}
	return c.JSON(out)
}

// GerarPaletes godoc
// @Summary      Gerar (ou regenerar) o lote de paletes de um pedido
// @Description  Regeneração é recusada quando algum palete já foi conferido.
// @Tags         expedicao
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id       path  string                   true   "ID do pedido"
// @Param        request  body  dto.GerarPaletesRequest  false  "Quantidade de paletes"
// @Success      200  {array}  dto.PaleteDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/paletes [post]
func (h *ExpedicaoHandler) GerarPaletes(c *fiber.Ctx) error {
	var req dto.GerarPaletesRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "corpo inválido"})
		}
	}
	paletes, err := h.uc.GerarPaletes(c.Context(), c.Params("id"), req.Quantidade)
	if err != nil {
		return respondErro(c, err)
	}
	// Na geração o token é devolvido uma única vez, para impressão dos QRs.
	out := make([]dto.PaleteDTO, 0, len(paletes))
	for _, p := range paletes {
		out = append(out, dto.PaleteFromEntity(p, true))
	}
	return c.JSON(out)
}

// ConferirPalete godoc
// @Summary      Conferir palete pelo token do QR
// @Description  Rota pública: o token impresso no QR é a própria credencial.
// @Tags         expedicao
// @Accept       json
// @Produce      json
// @Param        request  body  dto.ConferirPaleteRequest  true  "Token do palete"
// @Success      200  {object}  dto.ConferirPaleteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/expedicao/conferir [post]
func (h *ExpedicaoHandler) ConferirPalete(c *fiber.Ctx) error {
	var req dto.ConferirPaleteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "corpo inválido"})
	}
	req.Token = strings.TrimSpace(req.Token)
	if req.Token == "" {
		return respondErro(c, domain.ErrEntradaInvalida)
	}
	palete, todos, err := h.uc.ConfirmarPalete(c.Context(), req.Token, req.ConferidoPor)
	if err != nil {
		return respondErro(c, err)
	}
	return c.JSON(dto.ConferirPaleteResponse{
		Palete:          dto.PaleteFromEntity(palete, false),
		TodosConferidos: todos,
	})
}
