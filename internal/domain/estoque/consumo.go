// Package estoque contém a lógica pura de consumo de lotes (serviço de domínio).
// Nenhuma função deste pacote faz I/O; a persistência das mutações e o bloqueio
// por matéria-prima são responsabilidade da camada de aplicação.
package estoque

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// ConsumoLote registra quanto foi retirado de um lote e a que custo.
type ConsumoLote struct {
	LoteID        string
	Quantidade    decimal.Decimal
	CustoUnitario decimal.Decimal
}

// ResultadoConsumo é o resultado de uma passada de consumo sobre os lotes de
// uma matéria-prima. Falta > 0 indica que os lotes se esgotaram antes de
// atender a quantidade requerida; os saldos nunca ficam negativos.
type ResultadoConsumo struct {
	Consumos []ConsumoLote
	Alertas  []entity.AlertaTrocaLote
	Falta    decimal.Decimal
}

// Atendido devolve o total efetivamente consumido.
func (r ResultadoConsumo) Atendido() decimal.Decimal {
	total := decimal.Zero
	for _, c := range r.Consumos {
		total = total.Add(c.Quantidade)
	}
	return total
}

// ConsumirLotes percorre os lotes da matéria-prima em ordem de precedência
// (Sequencia ascendente — primeiro a entrar, primeiro a sair) retirando
// min(saldo, restante) de cada um até atender a quantidade ou esgotar os lotes.
// Muta o Saldo dos lotes recebidos.
//
// Quando o consumo cruza de um lote esgotado para o próximo lote distinto, os
// custos unitários são comparados: se a diferença relativa exceder a tolerância,
// um AlertaTrocaLote é emitido com ambos os custos e o delta percentual.
// Tolerância zero significa alertar em qualquer diferença de custo.
func ConsumirLotes(mp *entity.MateriaPrima, lotes []*entity.LoteEstoque, necessario, tolerancia decimal.Decimal) ResultadoConsumo {
	res := ResultadoConsumo{Falta: decimal.Zero}
	if !necessario.IsPositive() {
		return res
	}

	ordenados := make([]*entity.LoteEstoque, len(lotes))
	copy(ordenados, lotes)
	sort.SliceStable(ordenados, func(i, j int) bool {
		return ordenados[i].Sequencia < ordenados[j].Sequencia
	})

	restante := necessario
	var custoAnterior *decimal.Decimal

	for _, lote := range ordenados {
		if !restante.IsPositive() {
			break
		}
		if lote.Esgotado() {
			// Lote já zerado por consumo anterior: não conta como troca.
			continue
		}

		// Troca de lote: o anterior foi esgotado nesta passada e um novo
		// começa a ser consumido.
		if custoAnterior != nil {
			emitirAlertaTroca(&res, mp, *custoAnterior, lote.CustoUnitario, tolerancia)
		}

		retirada := decimal.Min(lote.Saldo, restante)
		lote.Saldo = lote.Saldo.Sub(retirada)
		restante = restante.Sub(retirada)

		res.Consumos = append(res.Consumos, ConsumoLote{
			LoteID:        lote.ID,
			Quantidade:    retirada,
			CustoUnitario: lote.CustoUnitario,
		})
		custo := lote.CustoUnitario
		custoAnterior = &custo
	}

	if restante.IsPositive() {
		res.Falta = restante
	}
	return res
}

// SomarSaldos recalcula o estoque total da matéria-prima como a soma dos saldos
// dos seus lotes. O invariante estoque == soma(lotes) é mantido aplicando este
// total na mesma transação que mutou os lotes.
func SomarSaldos(lotes []*entity.LoteEstoque) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lotes {
		total = total.Add(l.Saldo)
	}
	return total
}

func emitirAlertaTroca(res *ResultadoConsumo, mp *entity.MateriaPrima, anterior, novo, tolerancia decimal.Decimal) {
	if anterior.Equal(novo) || !anterior.IsPositive() {
		return
	}
	difRelativa := novo.Sub(anterior).Abs().Div(anterior)
	if !difRelativa.GreaterThan(tolerancia) {
		return
	}
	res.Alertas = append(res.Alertas, entity.AlertaTrocaLote{
		MateriaPrimaID:      mp.ID,
		MateriaPrimaNome:    mp.Nome,
		CustoAnterior:       anterior,
		CustoNovo:           novo,
		DiferencaPercentual: novo.Sub(anterior).Div(anterior).Mul(decimal.NewFromInt(100)),
	})
}
