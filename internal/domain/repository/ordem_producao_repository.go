package repository

import "github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"

// OrdemProducaoRepository é o porto de persistência de ordens de produção e
// seus itens.
type OrdemProducaoRepository interface {
	// GetByID devolve a ordem com os itens carregados.
	GetByID(id string) (*entity.OrdemProducao, error)
	// GetForUpdate bloqueia a linha da ordem (SELECT FOR UPDATE) e carrega os
	// itens; serializa transições concorrentes sobre a mesma ordem.
	GetForUpdate(id string) (*entity.OrdemProducao, error)
	// Atualizar grava status e timestamps da ordem.
	Atualizar(ordem *entity.OrdemProducao) error
	// AtualizarItem grava status e timestamps de um item.
	AtualizarItem(item *entity.OrdemProducaoItem) error
}
