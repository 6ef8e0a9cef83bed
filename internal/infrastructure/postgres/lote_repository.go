package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

// LoteRepo implementação de LoteRepository sobre PostgreSQL.
type LoteRepo struct {
	q Querier
}

// NewLoteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// ListarPorMateriaPrimaForUpdate devolve os lotes da matéria-prima em ordem de
// precedência de consumo (sequência ascendente), bloqueando as linhas.
func (r *LoteRepo) ListarPorMateriaPrimaForUpdate(materiaPrimaID string) ([]*entity.LoteEstoque, error) {
	query := `
		SELECT id, materia_prima_id, saldo, custo_unitario, sequencia, recebido_em
		FROM lotes_estoque
		WHERE materia_prima_id = $1
		ORDER BY sequencia ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, materiaPrimaID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	defer rows.Close()

	var lotes []*entity.LoteEstoque
	for rows.Next() {
		var l entity.LoteEstoque
		if err := rows.Scan(&l.ID, &l.MateriaPrimaID, &l.Saldo, &l.CustoUnitario, &l.Sequencia, &l.RecebidoEm); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		lotes = append(lotes, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	return lotes, nil
}

// AtualizarSaldo grava o saldo restante do lote (zero quando esgotado).
func (r *LoteRepo) AtualizarSaldo(loteID string, saldo decimal.Decimal) error {
	query := `UPDATE lotes_estoque SET saldo = $2 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, loteID, saldo)
	if err != nil {
		return fmt.Errorf("atualizar saldo do lote: %w", err)
	}
	return nil
}
