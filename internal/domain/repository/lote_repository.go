package repository

import (
	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// LoteRepository é o porto de persistência de lotes de matéria-prima.
// Lotes são criados pelo recebimento de mercadoria (externo a este núcleo)
// e mutados apenas pelo motor de consumo, dentro de transação.
type LoteRepository interface {
	// ListarPorMateriaPrimaForUpdate devolve os lotes da matéria-prima em
	// ordem de precedência (sequência ascendente), bloqueando as linhas.
	ListarPorMateriaPrimaForUpdate(materiaPrimaID string) ([]*entity.LoteEstoque, error)
	// AtualizarSaldo grava o saldo restante do lote (zero quando esgotado;
	// o lote nunca é apagado durante um consumo).
	AtualizarSaldo(loteID string, saldo decimal.Decimal) error
}
