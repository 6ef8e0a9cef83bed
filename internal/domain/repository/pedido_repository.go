package repository

import (
	"time"

	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// PedidoRepository é o porto de acesso ao pedido de venda. O núcleo só lê o
// pedido e atualiza o status de entrega; o restante pertence ao módulo comercial.
type PedidoRepository interface {
	GetByID(id string) (*entity.Pedido, error)
	// GetForUpdate bloqueia a linha do pedido; serializa conferências
	// concorrentes de paletes do mesmo pedido.
	GetForUpdate(id string) (*entity.Pedido, error)
	AtualizarEntrega(pedidoID, status string, entregueEm *time.Time) error
}
