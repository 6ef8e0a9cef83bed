package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*ProdutoRepo)(nil)

// ProdutoRepo implementação de ProdutoRepository sobre PostgreSQL (somente leitura).
type ProdutoRepo struct {
	q Querier
}

// NewProdutoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProdutoRepository(q Querier) *ProdutoRepo {
	return &ProdutoRepo{q: q}
}

// GetByID obtém um produto do catálogo. Devolve nil se não existir.
func (r *ProdutoRepo) GetByID(id string) (*entity.Produto, error) {
	query := `
		SELECT id, nome, unidade_medida, comprimento_peca, criado_em, atualizado_em
		FROM produtos WHERE id = $1`
	var p entity.Produto
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nome, &p.UnidadeMedida, &p.ComprimentoPeca, &p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produto: %w", err)
	}
	return &p, nil
}
