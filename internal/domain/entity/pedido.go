package entity

import "time"

// Status de entrega de um pedido de venda.
const (
	StatusEntregaPendente = "pendente"
	StatusEntregaEntregue = "entregue"
)

// Pedido representa o pedido de venda que originou uma ordem de produção.
// O núcleo só toca o status de entrega e a quantidade de paletes; o restante
// do pedido (cliente, valores, faturamento) pertence a outros módulos.
type Pedido struct {
	ID            string
	Codigo        string // ex.: PED-2026-0412
	StatusEntrega string
	QtdPaletes    int // paletes a gerar na conclusão da produção (padrão 1)
	EntregueEm    *time.Time
}
