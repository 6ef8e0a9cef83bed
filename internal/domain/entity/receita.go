package entity

import "github.com/shopspring/decimal"

// LinhaReceita relaciona um produto acabado a uma matéria-prima com a taxa de
// consumo por unidade produzida (ex.: kg de papel por metro de cantoneira).
// Somente leitura para o núcleo; invariante: ConsumoPorUnidade >= 0.
type LinhaReceita struct {
	ProdutoID         string
	MateriaPrimaID    string
	ConsumoPorUnidade decimal.Decimal
}
