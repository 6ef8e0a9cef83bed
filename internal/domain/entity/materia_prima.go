package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MateriaPrima representa um insumo de produção (papel, cola, tinta).
// EstoqueAtual é um valor derivado: soma dos saldos dos lotes da matéria-prima.
// O núcleo recalcula esse total a cada consumo, na mesma transação dos lotes.
type MateriaPrima struct {
	ID            string
	Nome          string
	EstoqueAtual  decimal.Decimal
	EstoqueMinimo decimal.Decimal // limiar de alerta de reposição (usado pelos dashboards)
	UnidadeMedida string          // ex.: "kg"
	AtualizadoEm  time.Time
}
