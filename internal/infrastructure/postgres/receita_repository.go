package postgres

import (
	"context"
	"fmt"

	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.ReceitaRepository = (*ReceitaRepo)(nil)

// ReceitaRepo implementação de ReceitaRepository sobre PostgreSQL (somente leitura).
type ReceitaRepo struct {
	q Querier
}

// NewReceitaRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewReceitaRepository(q Querier) *ReceitaRepo {
	return &ReceitaRepo{q: q}
}

// ListarPorProduto devolve as linhas de receita do produto.
func (r *ReceitaRepo) ListarPorProduto(produtoID string) ([]*entity.LinhaReceita, error) {
	query := `
		SELECT produto_id, materia_prima_id, consumo_por_unidade
		FROM receitas WHERE produto_id = $1`
	rows, err := r.q.Query(context.Background(), query, produtoID)
	if err != nil {
		return nil, fmt.Errorf("listar receita: %w", err)
	}
	defer rows.Close()

	var linhas []*entity.LinhaReceita
	for rows.Next() {
		var l entity.LinhaReceita
		if err := rows.Scan(&l.ProdutoID, &l.MateriaPrimaID, &l.ConsumoPorUnidade); err != nil {
			return nil, fmt.Errorf("scan receita: %w", err)
		}
		linhas = append(linhas, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar receita: %w", err)
	}
	return linhas, nil
}
