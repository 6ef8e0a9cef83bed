package entity

import "github.com/shopspring/decimal"

// AlertaTrocaLote é emitido quando o consumo cruza para um lote com custo
// unitário diferente do lote recém-esgotado. Valor efêmero: retornado ao caller
// e logado, nunca persistido.
type AlertaTrocaLote struct {
	MateriaPrimaID      string
	MateriaPrimaNome    string
	CustoAnterior       decimal.Decimal
	CustoNovo           decimal.Decimal
	DiferencaPercentual decimal.Decimal // (novo - anterior) / anterior * 100
}

// Falta representa consumo não atendido de uma matéria-prima (estoque esgotado
// antes de cobrir a quantidade requerida). Reportada individualmente ao caller;
// a decisão de bloquear ou prosseguir é política do chamador.
type Falta struct {
	MateriaPrimaID      string
	MateriaPrimaNome    string
	QuantidadeRequerida decimal.Decimal
	QuantidadeAtendida  decimal.Decimal
	QuantidadeFaltante  decimal.Decimal
}
