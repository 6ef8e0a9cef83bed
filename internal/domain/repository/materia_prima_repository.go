package repository

import (
	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// MateriaPrimaRepository é o porto de persistência de matérias-primas.
type MateriaPrimaRepository interface {
	GetByID(id string) (*entity.MateriaPrima, error)
	// GetForUpdate bloqueia a linha da matéria-prima (SELECT FOR UPDATE),
	// serializando consumos concorrentes sobre os mesmos lotes.
	GetForUpdate(id string) (*entity.MateriaPrima, error)
	// AtualizarEstoque grava o total derivado (soma dos saldos dos lotes).
	AtualizarEstoque(id string, total decimal.Decimal) error
}
