package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.PaleteRepository = (*PaleteRepo)(nil)

// PaleteRepo implementação de PaleteRepository sobre PostgreSQL.
// paletes.token tem constraint UNIQUE; a coluna é indexada para a busca por
// QR escaneado.
type PaleteRepo struct {
	q Querier
}

// NewPaleteRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewPaleteRepository(q Querier) *PaleteRepo {
	return &PaleteRepo{q: q}
}

// GetByToken obtém um palete pelo token de conferência. Devolve nil se não existir.
func (r *PaleteRepo) GetByToken(token string) (*entity.Palete, error) {
	return r.getByToken(token, false)
}

// GetByTokenForUpdate obtém o palete bloqueando a linha.
func (r *PaleteRepo) GetByTokenForUpdate(token string) (*entity.Palete, error) {
	return r.getByToken(token, true)
}

func (r *PaleteRepo) getByToken(token string, forUpdate bool) (*entity.Palete, error) {
	query := `
		SELECT id, pedido_id, numero, token, status, conferido_em, COALESCE(conferido_por, ''), criado_em
		FROM paletes WHERE token = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var p entity.Palete
	err := r.q.QueryRow(context.Background(), query, token).Scan(
		&p.ID, &p.PedidoID, &p.Numero, &p.Token, &p.Status, &p.ConferidoEm, &p.ConferidoPor, &p.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get palete por token: %w", err)
	}
	return &p, nil
}

// ListarPorPedido devolve os paletes do pedido em ordem de número.
func (r *PaleteRepo) ListarPorPedido(pedidoID string) ([]*entity.Palete, error) {
	query := `
		SELECT id, pedido_id, numero, token, status, conferido_em, COALESCE(conferido_por, ''), criado_em
		FROM paletes WHERE pedido_id = $1
		ORDER BY numero ASC`
	rows, err := r.q.Query(context.Background(), query, pedidoID)
	if err != nil {
		return nil, fmt.Errorf("listar paletes: %w", err)
	}
	defer rows.Close()

	var paletes []*entity.Palete
	for rows.Next() {
		var p entity.Palete
		if err := rows.Scan(&p.ID, &p.PedidoID, &p.Numero, &p.Token, &p.Status, &p.ConferidoEm, &p.ConferidoPor, &p.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan palete: %w", err)
		}
		paletes = append(paletes, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar paletes: %w", err)
	}
	return paletes, nil
}

// CriarLote insere o lote completo de paletes de um pedido.
func (r *PaleteRepo) CriarLote(paletes []*entity.Palete) error {
	query := `
		INSERT INTO paletes (id, pedido_id, numero, token, status, criado_em)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, p := range paletes {
		if _, err := r.q.Exec(context.Background(), query,
			p.ID, p.PedidoID, p.Numero, p.Token, p.Status, p.CriadoEm,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: token de palete duplicado", domain.ErrConflito)
			}
			return fmt.Errorf("criar palete: %w", err)
		}
	}
	return nil
}

// ApagarPorPedido remove todos os paletes do pedido (substituição integral do lote).
func (r *PaleteRepo) ApagarPorPedido(pedidoID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM paletes WHERE pedido_id = $1`, pedidoID)
	if err != nil {
		return fmt.Errorf("apagar paletes do pedido: %w", err)
	}
	return nil
}

// Atualizar grava status, timestamp e responsável pela conferência.
func (r *PaleteRepo) Atualizar(palete *entity.Palete) error {
	conferidoPor := (*string)(nil)
	if palete.ConferidoPor != "" {
		conferidoPor = &palete.ConferidoPor
	}
	query := `
		UPDATE paletes SET status = $2, conferido_em = $3, conferido_por = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, palete.ID, palete.Status, palete.ConferidoEm, conferidoPor)
	if err != nil {
		return fmt.Errorf("atualizar palete: %w", err)
	}
	return nil
}
