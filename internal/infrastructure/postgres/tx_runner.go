package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/producao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ producao.TxRunner = (*TxRunner)(nil)
var _ expedicao.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL, com os
// repositórios atados à tx. Os SELECT ... FOR UPDATE dos adaptadores fazem a
// serialização por agregado (ordem, matéria-prima, pedido) dentro da tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação com os repositórios de produção/estoque e faz
// Commit ou Rollback conforme o retorno de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ordemRepo repository.OrdemProducaoRepository,
	receitaRepo repository.ReceitaRepository,
	materiaRepo repository.MateriaPrimaRepository,
	loteRepo repository.LoteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewOrdemProducaoRepository(tx),
		NewReceitaRepository(tx),
		NewMateriaPrimaRepository(tx),
		NewLoteRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunExpedicao inicia uma transação com os repositórios de expedição
// (conferência de paletes e geração de lote).
func (r *TxRunner) RunExpedicao(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	paleteRepo repository.PaleteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPedidoRepository(tx), NewPaleteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
