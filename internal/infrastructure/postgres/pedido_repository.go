package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.PedidoRepository = (*PedidoRepo)(nil)

// PedidoRepo implementação de PedidoRepository sobre PostgreSQL. O núcleo só
// lê o pedido e grava o status de entrega.
type PedidoRepo struct {
	q Querier
}

// NewPedidoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPedidoRepository(q Querier) *PedidoRepo {
	return &PedidoRepo{q: q}
}

// GetByID obtém um pedido. Devolve nil se não existir.
func (r *PedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	return r.get(id, false)
}

// GetForUpdate bloqueia a linha do pedido (SELECT FOR UPDATE): serializa
// conferências concorrentes de paletes do mesmo pedido.
func (r *PedidoRepo) GetForUpdate(id string) (*entity.Pedido, error) {
	return r.get(id, true)
}

func (r *PedidoRepo) get(id string, forUpdate bool) (*entity.Pedido, error) {
	query := `
		SELECT id, codigo, status_entrega, qtd_paletes, entregue_em
		FROM pedidos WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p entity.Pedido
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Codigo, &p.StatusEntrega, &p.QtdPaletes, &p.EntregueEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pedido: %w", err)
	}
	return &p, nil
}

// AtualizarEntrega grava o status de entrega do pedido.
func (r *PedidoRepo) AtualizarEntrega(pedidoID, status string, entregueEm *time.Time) error {
	query := `UPDATE pedidos SET status_entrega = $2, entregue_em = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, pedidoID, status, entregueEm)
	if err != nil {
		return fmt.Errorf("atualizar entrega do pedido: %w", err)
	}
	return nil
}
