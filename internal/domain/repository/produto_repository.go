package repository

import "github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"

// ProdutoRepository é o porto de leitura do catálogo de produtos acabados.
// O cadastro é feito pelo módulo de catálogo; o núcleo só consulta.
type ProdutoRepository interface {
	GetByID(id string) (*entity.Produto, error)
}
