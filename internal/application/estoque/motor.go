package estoque

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/estoque"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/logger"
)

// MotorConsumo resolve a receita de um produto e baixa o estoque de cada
// matéria-prima consumindo lotes em ordem FIFO. Sempre executa com repositórios
// atados à transação do caller (início de ordem ou de item de produção): o lock
// da matéria-prima e as mutações de lote ficam na mesma unidade atômica.
type MotorConsumo struct {
	log        *logger.Logger
	tolerancia decimal.Decimal
}

// NewMotorConsumo constrói o motor. tolerancia é a diferença relativa de custo
// entre lotes consecutivos acima da qual um alerta é emitido (0 = qualquer).
func NewMotorConsumo(log *logger.Logger, tolerancia decimal.Decimal) *MotorConsumo {
	return &MotorConsumo{log: log, tolerancia: tolerancia}
}

// ConsumirParaProducao calcula, por linha de receita, a quantidade requerida
// (taxa × quantidade produzida) e consome os lotes da matéria-prima.
//
// Faltas e alertas são devolvidos como dados, individualmente, nunca como erro:
// a decisão de bloquear ou prosseguir com aviso é do caller. Uma falta em uma
// matéria-prima não desfaz consumos já aplicados às anteriores na mesma
// chamada; erros de persistência abortam (e derrubam a transação do caller).
func (m *MotorConsumo) ConsumirParaProducao(
	receitaRepo repository.ReceitaRepository,
	materiaRepo repository.MateriaPrimaRepository,
	loteRepo repository.LoteRepository,
	produtoID string,
	quantidade decimal.Decimal,
) ([]entity.AlertaTrocaLote, []entity.Falta, error) {
	linhas, err := receitaRepo.ListarPorProduto(produtoID)
	if err != nil {
		return nil, nil, fmt.Errorf("listar receita do produto %s: %w", produtoID, err)
	}
	if len(linhas) == 0 {
		return nil, nil, fmt.Errorf("%w: produto %s", domain.ErrReceitaNaoCadastrada, produtoID)
	}

	var alertas []entity.AlertaTrocaLote
	var faltas []entity.Falta

	for _, linha := range linhas {
		if !linha.ConsumoPorUnidade.IsPositive() {
			continue
		}
		necessario := linha.ConsumoPorUnidade.Mul(quantidade)

		// Lock da matéria-prima antes dos lotes: serializa consumos
		// concorrentes sobre o mesmo insumo (inclusive recebimentos).
		mp, err := materiaRepo.GetForUpdate(linha.MateriaPrimaID)
		if err != nil {
			return alertas, faltas, fmt.Errorf("bloquear matéria-prima %s: %w", linha.MateriaPrimaID, err)
		}
		if mp == nil {
			return alertas, faltas, fmt.Errorf("%w: matéria-prima %s", domain.ErrNotFound, linha.MateriaPrimaID)
		}
		lotes, err := loteRepo.ListarPorMateriaPrimaForUpdate(mp.ID)
		if err != nil {
			return alertas, faltas, fmt.Errorf("listar lotes de %s: %w", mp.Nome, err)
		}

		res := estoque.ConsumirLotes(mp, lotes, necessario, m.tolerancia)

		for _, c := range res.Consumos {
			for _, lote := range lotes {
				if lote.ID == c.LoteID {
					if err := loteRepo.AtualizarSaldo(lote.ID, lote.Saldo); err != nil {
						return alertas, faltas, fmt.Errorf("atualizar saldo do lote %s: %w", lote.ID, err)
					}
					break
				}
			}
		}

		// Invariante: estoque da matéria-prima == soma dos saldos dos lotes,
		// recalculado na mesma transação que mutou os lotes.
		total := estoque.SomarSaldos(lotes)
		if err := materiaRepo.AtualizarEstoque(mp.ID, total); err != nil {
			return alertas, faltas, fmt.Errorf("atualizar estoque de %s: %w", mp.Nome, err)
		}

		for _, a := range res.Alertas {
			m.log.Warn().
				Str("materia_prima", a.MateriaPrimaNome).
				Str("custo_anterior", a.CustoAnterior.String()).
				Str("custo_novo", a.CustoNovo.String()).
				Str("diferenca_pct", a.DiferencaPercentual.StringFixed(2)).
				Msg("troca de lote com variação de custo")
			alertas = append(alertas, a)
		}
		if res.Falta.IsPositive() {
			falta := entity.Falta{
				MateriaPrimaID:      mp.ID,
				MateriaPrimaNome:    mp.Nome,
				QuantidadeRequerida: necessario,
				QuantidadeAtendida:  res.Atendido(),
				QuantidadeFaltante:  res.Falta,
			}
			m.log.Warn().
				Str("materia_prima", falta.MateriaPrimaNome).
				Str("requerido", falta.QuantidadeRequerida.String()).
				Str("faltante", falta.QuantidadeFaltante.String()).
				Msg("estoque insuficiente para a produção")
			faltas = append(faltas, falta)
		}
	}

	return alertas, faltas, nil
}
