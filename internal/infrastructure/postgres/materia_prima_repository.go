package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.MateriaPrimaRepository = (*MateriaPrimaRepo)(nil)

// MateriaPrimaRepo implementação de MateriaPrimaRepository sobre PostgreSQL.
type MateriaPrimaRepo struct {
	q Querier
}

// NewMateriaPrimaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMateriaPrimaRepository(q Querier) *MateriaPrimaRepo {
	return &MateriaPrimaRepo{q: q}
}

// GetByID obtém uma matéria-prima. Devolve nil se não existir.
func (r *MateriaPrimaRepo) GetByID(id string) (*entity.MateriaPrima, error) {
	return r.get(id, false)
}

// GetForUpdate obtém a matéria-prima bloqueando a linha (SELECT FOR UPDATE).
// É o ponto de serialização de consumos concorrentes do mesmo insumo.
func (r *MateriaPrimaRepo) GetForUpdate(id string) (*entity.MateriaPrima, error) {
	return r.get(id, true)
}

func (r *MateriaPrimaRepo) get(id string, forUpdate bool) (*entity.MateriaPrima, error) {
	query := `
		SELECT id, nome, estoque_atual, estoque_minimo, unidade_medida, atualizado_em
		FROM materias_primas WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var m entity.MateriaPrima
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Nome, &m.EstoqueAtual, &m.EstoqueMinimo, &m.UnidadeMedida, &m.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get matéria-prima: %w", err)
	}
	return &m, nil
}

// AtualizarEstoque grava o total derivado (soma dos saldos dos lotes).
func (r *MateriaPrimaRepo) AtualizarEstoque(id string, total decimal.Decimal) error {
	query := `
		UPDATE materias_primas SET estoque_atual = $2, atualizado_em = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, total)
	if err != nil {
		return fmt.Errorf("atualizar estoque: %w", err)
	}
	return nil
}
