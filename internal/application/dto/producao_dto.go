package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// AlertaTrocaLoteDTO alerta de variação de custo entre lotes consecutivos.
type AlertaTrocaLoteDTO struct {
	MateriaPrimaID      string          `json:"materia_prima_id"`
	MateriaPrima        string          `json:"materia_prima"`
	CustoAnterior       decimal.Decimal `json:"custo_anterior"`
	CustoNovo           decimal.Decimal `json:"custo_novo"`
	DiferencaPercentual decimal.Decimal `json:"diferenca_percentual"`
}

// FaltaDTO falta de estoque reportada no início de produção.
type FaltaDTO struct {
	MateriaPrimaID      string          `json:"materia_prima_id"`
	MateriaPrima        string          `json:"materia_prima"`
	QuantidadeRequerida decimal.Decimal `json:"quantidade_requerida"`
	QuantidadeAtendida  decimal.Decimal `json:"quantidade_atendida"`
	QuantidadeFaltante  decimal.Decimal `json:"quantidade_faltante"`
}

// OrdemItemDTO item de uma ordem de produção.
type OrdemItemDTO struct {
	ID           string          `json:"id"`
	ProdutoID    string          `json:"produto_id"`
	Quantidade   decimal.Decimal `json:"quantidade"`
	Status       string          `json:"status"`
	IniciadoEm   *time.Time      `json:"iniciado_em,omitempty"`
	FinalizadoEm *time.Time      `json:"finalizado_em,omitempty"`
}

// OrdemProducaoDTO ordem de produção com itens.
type OrdemProducaoDTO struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	ProdutoID   string          `json:"produto_id,omitempty"`
	Quantidade  decimal.Decimal `json:"quantidade"`
	PedidoID    string          `json:"pedido_id,omitempty"`
	Status      string          `json:"status"`
	IniciadaEm  *time.Time      `json:"iniciada_em,omitempty"`
	ConcluidaEm *time.Time      `json:"concluida_em,omitempty"`
	Itens       []OrdemItemDTO  `json:"itens,omitempty"`
}

// InicioProducaoResponse resposta de início de ordem/item: entidade atualizada
// mais os alertas e faltas do consumo, reportados individualmente.
type InicioProducaoResponse struct {
	Ordem   OrdemProducaoDTO     `json:"ordem"`
	Item    *OrdemItemDTO        `json:"item,omitempty"`
	Alertas []AlertaTrocaLoteDTO `json:"alertas"`
	Faltas  []FaltaDTO           `json:"faltas"`
}

// OrdemFromEntity converte a entidade para o DTO de resposta.
func OrdemFromEntity(o *entity.OrdemProducao) OrdemProducaoDTO {
	out := OrdemProducaoDTO{
		ID:          o.ID,
		Codigo:      o.Codigo,
		ProdutoID:   o.ProdutoID,
		Quantidade:  o.Quantidade,
		PedidoID:    o.PedidoID,
		Status:      o.Status,
		IniciadaEm:  o.IniciadaEm,
		ConcluidaEm: o.ConcluidaEm,
	}
	for _, it := range o.Itens {
		out.Itens = append(out.Itens, ItemFromEntity(it))
	}
	return out
}

// ItemFromEntity converte um item para DTO.
func ItemFromEntity(it *entity.OrdemProducaoItem) OrdemItemDTO {
	return OrdemItemDTO{
		ID:           it.ID,
		ProdutoID:    it.ProdutoID,
		Quantidade:   it.Quantidade,
		Status:       it.Status,
		IniciadoEm:   it.IniciadoEm,
		FinalizadoEm: it.FinalizadoEm,
	}
}

// AlertasFromEntity converte a lista de alertas (nunca nil no JSON: o operador
// precisa distinguir "sem alertas" de campo ausente).
func AlertasFromEntity(alertas []entity.AlertaTrocaLote) []AlertaTrocaLoteDTO {
	out := make([]AlertaTrocaLoteDTO, 0, len(alertas))
	for _, a := range alertas {
		out = append(out, AlertaTrocaLoteDTO{
			MateriaPrimaID:      a.MateriaPrimaID,
			MateriaPrima:        a.MateriaPrimaNome,
			CustoAnterior:       a.CustoAnterior,
			CustoNovo:           a.CustoNovo,
			DiferencaPercentual: a.DiferencaPercentual,
		})
	}
	return out
}

// FaltasFromEntity converte a lista de faltas.
func FaltasFromEntity(faltas []entity.Falta) []FaltaDTO {
	out := make([]FaltaDTO, 0, len(faltas))
	for _, f := range faltas {
		out = append(out, FaltaDTO{
			MateriaPrimaID:      f.MateriaPrimaID,
			MateriaPrima:        f.MateriaPrimaNome,
			QuantidadeRequerida: f.QuantidadeRequerida,
			QuantidadeAtendida:  f.QuantidadeAtendida,
			QuantidadeFaltante:  f.QuantidadeFaltante,
		})
	}
	return out
}
