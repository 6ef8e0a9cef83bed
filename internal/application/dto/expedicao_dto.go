package dto

import (
	"time"

	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// GerarPaletesRequest body para POST /api/pedidos/:id/paletes.
// Quantidade 0 usa a quantidade configurada no pedido.
type GerarPaletesRequest struct {
	Quantidade int `json:"quantidade"`
}

// ConferirPaleteRequest body para POST /api/expedicao/conferir.
// Token vem do QR escaneado; ConferidoPor é opcional.
type ConferirPaleteRequest struct {
	Token        string `json:"token"`
	ConferidoPor string `json:"conferido_por,omitempty"`
}

// PaleteDTO palete de expedição.
type PaleteDTO struct {
	ID           string     `json:"id"`
	PedidoID     string     `json:"pedido_id"`
	Numero       int        `json:"numero"`
	Token        string     `json:"token,omitempty"`
	Status       string     `json:"status"`
	ConferidoEm  *time.Time `json:"conferido_em,omitempty"`
	ConferidoPor string     `json:"conferido_por,omitempty"`
}

// ConferirPaleteResponse resposta da conferência: o palete conferido e se o
// pedido inteiro ficou conferido (entregue) com esta conferência.
type ConferirPaleteResponse struct {
	Palete          PaleteDTO `json:"palete"`
	TodosConferidos bool      `json:"todos_conferidos"`
}

// PaleteFromEntity converte a entidade. Com token=false o token de conferência
// é omitido (listagens não devem vazar o segredo do QR).
func PaleteFromEntity(p *entity.Palete, token bool) PaleteDTO {
	out := PaleteDTO{
		ID:           p.ID,
		PedidoID:     p.PedidoID,
		Numero:       p.Numero,
		Status:       p.Status,
		ConferidoEm:  p.ConferidoEm,
		ConferidoPor: p.ConferidoPor,
	}
	if token {
		out.Token = p.Token
	}
	return out
}
