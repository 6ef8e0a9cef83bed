package producao

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante que a transição de status e o consumo
// de estoque disparado por ela formem uma única unidade atômica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ordemRepo repository.OrdemProducaoRepository,
		receitaRepo repository.ReceitaRepository,
		materiaRepo repository.MateriaPrimaRepository,
		loteRepo repository.LoteRepository,
	) error) error
}

// Consumidor é o motor de baixa de estoque acionado no início de produção.
type Consumidor interface {
	ConsumirParaProducao(
		receitaRepo repository.ReceitaRepository,
		materiaRepo repository.MateriaPrimaRepository,
		loteRepo repository.LoteRepository,
		produtoID string,
		quantidade decimal.Decimal,
	) ([]entity.AlertaTrocaLote, []entity.Falta, error)
}

// ConclusaoHandoff é invocado exatamente uma vez quando uma ordem (ou o último
// item de uma ordem) chega a concluído, sempre após o commit da transição.
// O sistema externo gera os paletes e os documentos de expedição.
type ConclusaoHandoff interface {
	OrdemConcluida(ctx context.Context, ordem *entity.OrdemProducao) error
}
