package entity

import "time"

// Status de palete.
const (
	StatusPaletePendente  = "pendente"
	StatusPaleteConferido = "conferido"
)

// Palete representa uma unidade física de expedição de um pedido, conferida na
// entrega via token único (impresso como QR). O lote de paletes de um pedido é
// criado quando a produção conclui e substituído sempre por inteiro.
type Palete struct {
	ID           string
	PedidoID     string
	Numero       int    // sequencial dentro do pedido (1..n)
	Token        string // único e não adivinhável (uuid v4)
	Status       string
	ConferidoEm  *time.Time
	ConferidoPor string // opcional: quem escaneou
	CriadoEm     time.Time
}
