package repository

import "github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"

// PaleteRepository é o porto de persistência de paletes de expedição.
type PaleteRepository interface {
	GetByToken(token string) (*entity.Palete, error)
	// GetByTokenForUpdate bloqueia a linha do palete encontrado pelo token.
	GetByTokenForUpdate(token string) (*entity.Palete, error)
	ListarPorPedido(pedidoID string) ([]*entity.Palete, error)
	// CriarLote insere o lote completo de paletes de um pedido.
	CriarLote(paletes []*entity.Palete) error
	// ApagarPorPedido remove todos os paletes do pedido (substituição integral).
	ApagarPorPedido(pedidoID string) error
	Atualizar(palete *entity.Palete) error
}
