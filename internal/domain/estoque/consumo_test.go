package estoque_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/estoque"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cenário de referência do motor FIFO:
//
//	Lote A: sequência 1, saldo 10, custo 5.00
//	Lote B: sequência 2, saldo 10, custo 8.00
//
// Consumir 15 deve esgotar A, retirar 5 de B e emitir exatamente um alerta de
// troca de lote com delta de +60% ((8-5)/5 × 100).
// ──────────────────────────────────────────────────────────────────────────────

func materiaTeste() *entity.MateriaPrima {
	return &entity.MateriaPrima{
		ID:           "mp-papelao",
		Nome:         "Papelão ondulado",
		EstoqueAtual: decimal.NewFromInt(20),
	}
}

func lotesTeste() []*entity.LoteEstoque {
	return []*entity.LoteEstoque{
		{ID: "lote-a", MateriaPrimaID: "mp-papelao", Sequencia: 1, Saldo: decimal.NewFromInt(10), CustoUnitario: decimal.NewFromInt(5)},
		{ID: "lote-b", MateriaPrimaID: "mp-papelao", Sequencia: 2, Saldo: decimal.NewFromInt(10), CustoUnitario: decimal.NewFromInt(8)},
	}
}

func TestConsumirLotes_FIFOComTrocaDeLote(t *testing.T) {
	lotes := lotesTeste()

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(15), decimal.Zero)

	require.Len(t, res.Consumos, 2, "deve consumir de dois lotes")
	assert.Equal(t, "lote-a", res.Consumos[0].LoteID, "o lote de menor sequência sai primeiro")
	assert.True(t, res.Consumos[0].Quantidade.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "lote-b", res.Consumos[1].LoteID)
	assert.True(t, res.Consumos[1].Quantidade.Equal(decimal.NewFromInt(5)))

	assert.True(t, lotes[0].Saldo.IsZero(), "lote A deve ficar zerado")
	assert.True(t, lotes[1].Saldo.Equal(decimal.NewFromInt(5)), "lote B deve ficar com 5")
	assert.True(t, res.Falta.IsZero())

	require.Len(t, res.Alertas, 1, "a troca A→B deve emitir exatamente um alerta")
	alerta := res.Alertas[0]
	assert.True(t, alerta.CustoAnterior.Equal(decimal.NewFromInt(5)))
	assert.True(t, alerta.CustoNovo.Equal(decimal.NewFromInt(8)))
	assert.True(t, alerta.DiferencaPercentual.Equal(decimal.NewFromInt(60)),
		"delta percentual deve ser (8-5)/5 × 100 = 60")
}

func TestConsumirLotes_DentroDoPrimeiroLoteSemAlerta(t *testing.T) {
	lotes := lotesTeste()

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(7), decimal.Zero)

	require.Len(t, res.Consumos, 1)
	assert.True(t, lotes[0].Saldo.Equal(decimal.NewFromInt(3)))
	assert.Empty(t, res.Alertas, "consumo dentro de um único lote não gera alerta")
	assert.True(t, res.Falta.IsZero())
}

func TestConsumirLotes_EsgotamentoExatoSemFalta(t *testing.T) {
	lotes := lotesTeste()

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(20), decimal.Zero)

	assert.True(t, res.Falta.IsZero(), "consumir exatamente o saldo total não é falta")
	assert.True(t, lotes[0].Saldo.IsZero())
	assert.True(t, lotes[1].Saldo.IsZero())
	assert.True(t, res.Atendido().Equal(decimal.NewFromInt(20)))
}

func TestConsumirLotes_FaltaQuandoLotesEsgotam(t *testing.T) {
	lotes := lotesTeste()

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(25), decimal.Zero)

	assert.True(t, res.Falta.Equal(decimal.NewFromInt(5)), "faltam 5 após drenar os 20 disponíveis")
	assert.True(t, res.Atendido().Equal(decimal.NewFromInt(20)))
	for _, l := range lotes {
		assert.True(t, l.Saldo.IsZero(), "saldo nunca fica negativo: lotes drenados ficam em zero")
	}
}

func TestConsumirLotes_ToleranciaSuprimeAlerta(t *testing.T) {
	lotes := lotesTeste()

	// Diferença relativa da troca A→B é 0.6; tolerância 0.6 não é excedida.
	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(15), decimal.NewFromFloat(0.6))
	assert.Empty(t, res.Alertas, "diferença igual à tolerância não alerta")

	lotes = lotesTeste()
	res = estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(15), decimal.NewFromFloat(0.5))
	assert.Len(t, res.Alertas, 1, "diferença acima da tolerância alerta")
}

func TestConsumirLotes_CustoIgualNaoAlerta(t *testing.T) {
	lotes := lotesTeste()
	lotes[1].CustoUnitario = decimal.NewFromInt(5)

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(15), decimal.Zero)
	assert.Empty(t, res.Alertas, "troca entre lotes de mesmo custo não alerta")
}

func TestConsumirLotes_IgnoraLotesJaZerados(t *testing.T) {
	lotes := lotesTeste()
	lotes[0].Saldo = decimal.Zero

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(5), decimal.Zero)

	require.Len(t, res.Consumos, 1)
	assert.Equal(t, "lote-b", res.Consumos[0].LoteID)
	assert.Empty(t, res.Alertas, "pular um lote já zerado não conta como troca")
}

func TestConsumirLotes_OrdenaPorSequencia(t *testing.T) {
	// Lotes chegam fora de ordem; a precedência é sempre pela sequência.
	lotes := []*entity.LoteEstoque{
		{ID: "lote-b", Sequencia: 2, Saldo: decimal.NewFromInt(10), CustoUnitario: decimal.NewFromInt(8)},
		{ID: "lote-a", Sequencia: 1, Saldo: decimal.NewFromInt(10), CustoUnitario: decimal.NewFromInt(5)},
	}

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(3), decimal.Zero)

	require.Len(t, res.Consumos, 1)
	assert.Equal(t, "lote-a", res.Consumos[0].LoteID)
}

func TestConsumirLotes_QuantidadeNaoPositiva(t *testing.T) {
	lotes := lotesTeste()

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.Zero, decimal.Zero)

	assert.Empty(t, res.Consumos)
	assert.True(t, lotes[0].Saldo.Equal(decimal.NewFromInt(10)), "nada é retirado")
}

// TestSomarSaldos_InvarianteEstoque verifica que, após qualquer consumo, o
// estoque recalculado é a soma exata dos saldos restantes.
func TestSomarSaldos_InvarianteEstoque(t *testing.T) {
	lotes := lotesTeste()

	res := estoque.ConsumirLotes(materiaTeste(), lotes, decimal.NewFromInt(13), decimal.Zero)
	require.True(t, res.Falta.IsZero())

	total := estoque.SomarSaldos(lotes)
	assert.True(t, total.Equal(decimal.NewFromInt(7)), "20 disponíveis - 13 consumidos = 7")
}
