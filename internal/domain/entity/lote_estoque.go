package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoteEstoque representa um lote de matéria-prima recebido a um custo unitário.
// Sequencia é a ordem total de recebimento e define a precedência de consumo (FIFO).
// Criado pelo recebimento de mercadoria (externo); mutado apenas pelo motor de
// consumo; zerado quando esgotado, nunca apagado no meio de um consumo.
type LoteEstoque struct {
	ID             string
	MateriaPrimaID string
	Saldo          decimal.Decimal // >= 0
	CustoUnitario  decimal.Decimal // > 0
	Sequencia      int64
	RecebidoEm     time.Time
}

// Esgotado indica se o lote não tem mais saldo.
func (l *LoteEstoque) Esgotado() bool {
	return !l.Saldo.IsPositive()
}
