package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto representa um produto acabado do catálogo (cantoneira).
// Somente leitura para o núcleo de produção; o cadastro é feito em outro módulo.
type Produto struct {
	ID              string
	Nome            string
	UnidadeMedida   string          // ex.: "m" (metro linear)
	ComprimentoPeca decimal.Decimal // metros por peça; usado para ordens informadas em peças
	CriadoEm        time.Time
	AtualizadoEm    time.Time
}
