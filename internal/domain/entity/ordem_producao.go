package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de ordem de produção.
const (
	StatusOrdemAguardando = "aguardando"
	StatusOrdemEmProducao = "em_producao"
	StatusOrdemParcial    = "parcial"
	StatusOrdemConcluido  = "concluido"
	StatusOrdemCancelado  = "cancelado"
)

// Status de item de ordem de produção.
const (
	StatusItemAguardando = "aguardando"
	StatusItemEmProducao = "em_producao"
	StatusItemFinalizado = "finalizado"
	StatusItemCancelado  = "cancelado"
)

// OrdemProducao representa uma ordem de fabricação.
// Com itens, o status da ordem é derivado do agregado dos status dos itens;
// sem itens (modo simples/legado) o próprio campo Status segue as transições.
type OrdemProducao struct {
	ID              string
	Codigo          string // ex.: OP-2026-0153
	ProdutoID       string // opcional quando a ordem é itemizada
	Quantidade      decimal.Decimal // metros lineares
	QuantidadePecas int64           // opcional; convertida via Produto.ComprimentoPeca
	PedidoID        string          // referência ao pedido de venda de origem (opcional)
	Status          string
	PrevistaPara    *time.Time
	IniciadaEm      *time.Time
	ConcluidaEm     *time.Time
	CriadaEm        time.Time
	Itens           []*OrdemProducaoItem
}

// Itemizada indica se a ordem possui itens (o status passa a ser derivado).
func (o *OrdemProducao) Itemizada() bool {
	return len(o.Itens) > 0
}

// Item devolve o item com o ID dado, ou nil.
func (o *OrdemProducao) Item(itemID string) *OrdemProducaoItem {
	for _, it := range o.Itens {
		if it.ID == itemID {
			return it
		}
	}
	return nil
}

// OrdemProducaoItem representa a produção de um produto dentro de uma ordem.
type OrdemProducaoItem struct {
	ID           string
	OrdemID      string
	ProdutoID    string
	Quantidade   decimal.Decimal // metros lineares
	Status       string
	IniciadoEm   *time.Time
	FinalizadoEm *time.Time
}
