package repository

import "github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"

// ReceitaRepository é o porto de consulta de receitas (resolver de receita).
// Determinístico e sem efeitos colaterais; seguro para chamadas concorrentes.
type ReceitaRepository interface {
	// ListarPorProduto devolve as linhas de receita do produto. Lista vazia
	// significa produto sem receita cadastrada (o motor trata como erro).
	ListarPorProduto(produtoID string) ([]*entity.LinhaReceita, error)
}
