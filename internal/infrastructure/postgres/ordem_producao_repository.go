package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.OrdemProducaoRepository = (*OrdemProducaoRepo)(nil)

// OrdemProducaoRepo implementação de OrdemProducaoRepository sobre PostgreSQL.
type OrdemProducaoRepo struct {
	q Querier
}

// NewOrdemProducaoRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewOrdemProducaoRepository(q Querier) *OrdemProducaoRepo {
	return &OrdemProducaoRepo{q: q}
}

// GetByID obtém a ordem com os itens carregados. Devolve nil se não existir.
func (r *OrdemProducaoRepo) GetByID(id string) (*entity.OrdemProducao, error) {
	return r.get(id, false)
}

// GetForUpdate bloqueia a linha da ordem (SELECT FOR UPDATE) e carrega os itens.
// Serializa transições concorrentes sobre a mesma ordem; ordens distintas não
// se bloqueiam.
func (r *OrdemProducaoRepo) GetForUpdate(id string) (*entity.OrdemProducao, error) {
	return r.get(id, true)
}

func (r *OrdemProducaoRepo) get(id string, forUpdate bool) (*entity.OrdemProducao, error) {
	query := `
		SELECT id, codigo, COALESCE(produto_id, ''), quantidade, quantidade_pecas,
		       COALESCE(pedido_id, ''), status, prevista_para, iniciada_em, concluida_em, criada_em
		FROM ordens_producao WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.OrdemProducao
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Codigo, &o.ProdutoID, &o.Quantidade, &o.QuantidadePecas,
		&o.PedidoID, &o.Status, &o.PrevistaPara, &o.IniciadaEm, &o.ConcluidaEm, &o.CriadaEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ordem de produção: %w", err)
	}

	itens, err := r.listarItens(o.ID)
	if err != nil {
		return nil, err
	}
	o.Itens = itens
	return &o, nil
}

func (r *OrdemProducaoRepo) listarItens(ordemID string) ([]*entity.OrdemProducaoItem, error) {
	query := `
		SELECT id, ordem_id, produto_id, quantidade, status, iniciado_em, finalizado_em
		FROM ordens_producao_itens
		WHERE ordem_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ordemID)
	if err != nil {
		return nil, fmt.Errorf("listar itens da ordem: %w", err)
	}
	defer rows.Close()

	var itens []*entity.OrdemProducaoItem
	for rows.Next() {
		var it entity.OrdemProducaoItem
		if err := rows.Scan(&it.ID, &it.OrdemID, &it.ProdutoID, &it.Quantidade, &it.Status, &it.IniciadoEm, &it.FinalizadoEm); err != nil {
			return nil, fmt.Errorf("scan item da ordem: %w", err)
		}
		itens = append(itens, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar itens da ordem: %w", err)
	}
	return itens, nil
}

// Atualizar grava status e timestamps da ordem.
func (r *OrdemProducaoRepo) Atualizar(ordem *entity.OrdemProducao) error {
	query := `
		UPDATE ordens_producao
		SET status = $2, iniciada_em = $3, concluida_em = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, ordem.ID, ordem.Status, ordem.IniciadaEm, ordem.ConcluidaEm)
	if err != nil {
		return fmt.Errorf("atualizar ordem: %w", err)
	}
	return nil
}

// AtualizarItem grava status e timestamps de um item.
func (r *OrdemProducaoRepo) AtualizarItem(item *entity.OrdemProducaoItem) error {
	query := `
		UPDATE ordens_producao_itens
		SET status = $2, iniciado_em = $3, finalizado_em = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.Status, item.IniciadoEm, item.FinalizadoEm)
	if err != nil {
		return fmt.Errorf("atualizar item da ordem: %w", err)
	}
	return nil
}
