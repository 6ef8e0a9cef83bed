// Package expedicao implementa o protocolo de conferência de entrega por
// paletes: cada pedido concluído recebe um lote de paletes com tokens únicos
// (impressos como QR); a entrega só é registrada quando o último palete do
// pedido é conferido.
package expedicao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/logger"
)

// TxRunner executa uma função dentro de uma transação de BD com os
// repositórios de expedição atados à tx.
type TxRunner interface {
	RunExpedicao(ctx context.Context, fn func(
		pedidoRepo repository.PedidoRepository,
		paleteRepo repository.PaleteRepository,
	) error) error
}

// UseCase implementa a geração e a conferência de paletes.
// Toda operação bloqueia a linha do pedido (SELECT FOR UPDATE) antes de tocar
// os paletes: conferências concorrentes do mesmo pedido são serializadas e o
// recálculo de "todos conferidos" enxerga um snapshot consistente.
type UseCase struct {
	txRunner   TxRunner
	paleteRepo repository.PaleteRepository
	log        *logger.Logger
}

// NewUseCase constrói o caso de uso de expedição.
func NewUseCase(txRunner TxRunner, paleteRepo repository.PaleteRepository, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, paleteRepo: paleteRepo, log: log}
}

// ListarPaletes devolve os paletes do pedido (leitura, sem lock).
func (uc *UseCase) ListarPaletes(ctx context.Context, pedidoID string) ([]*entity.Palete, error) {
	return uc.paleteRepo.ListarPorPedido(pedidoID)
}

// GerarPaletes cria o lote de paletes de um pedido com tokens novos,
// substituindo por inteiro qualquer lote anterior. qtd <= 0 usa a quantidade
// configurada no pedido (padrão 1). Rejeitado com ErrConflito se algum palete
// existente já foi conferido: um lote parcialmente conferido nunca é recriado.
func (uc *UseCase) GerarPaletes(ctx context.Context, pedidoID string, qtd int) ([]*entity.Palete, error) {
	var paletes []*entity.Palete
	err := uc.txRunner.RunExpedicao(ctx, func(
		pedidoRepo repository.PedidoRepository,
		paleteRepo repository.PaleteRepository,
	) error {
		pedido, err := pedidoRepo.GetForUpdate(pedidoID)
		if err != nil {
			return err
		}
		if pedido == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, pedidoID)
		}
		if qtd <= 0 {
			qtd = pedido.QtdPaletes
		}
		if qtd <= 0 {
			qtd = 1
		}

		existentes, err := paleteRepo.ListarPorPedido(pedido.ID)
		if err != nil {
			return err
		}
		for _, p := range existentes {
			if p.Status == entity.StatusPaleteConferido {
				return fmt.Errorf("%w: pedido %s já tem palete conferido, lote não pode ser recriado", domain.ErrConflito, pedido.Codigo)
			}
		}
		if len(existentes) > 0 {
			if err := paleteRepo.ApagarPorPedido(pedido.ID); err != nil {
				return err
			}
		}

		now := time.Now()
		paletes = make([]*entity.Palete, 0, qtd)
		for i := 1; i <= qtd; i++ {
			paletes = append(paletes, &entity.Palete{
				ID:       uuid.New().String(),
				PedidoID: pedido.ID,
				Numero:   i,
				Token:    uuid.New().String(),
				Status:   entity.StatusPaletePendente,
				CriadoEm: now,
			})
		}
		return paleteRepo.CriarLote(paletes)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("pedido", pedidoID).Int("paletes", len(paletes)).Msg("lote de paletes gerado")
	return paletes, nil
}

// ConfirmarPalete confere um palete pelo token. Devolve o palete e se, com esta
// conferência, todos os paletes do pedido ficaram conferidos — nesse caso o
// pedido é marcado como entregue na mesma transação (o gatilho é a última
// conferência, não uma checagem separada de lote).
//
// Token desconhecido -> ErrNotFound; palete já conferido -> ErrPaleteJaConferido
// (rejeição idempotente, distinguível de "não encontrado").
func (uc *UseCase) ConfirmarPalete(ctx context.Context, token, conferidoPor string) (*entity.Palete, bool, error) {
	var palete *entity.Palete
	var todos bool
	err := uc.txRunner.RunExpedicao(ctx, func(
		pedidoRepo repository.PedidoRepository,
		paleteRepo repository.PaleteRepository,
	) error {
		// Leitura sem lock só para descobrir o pedido; o lock é sempre
		// adquirido na ordem pedido -> palete para evitar deadlock com a
		// geração de lote.
		encontrado, err := paleteRepo.GetByToken(token)
		if err != nil {
			return err
		}
		if encontrado == nil {
			return fmt.Errorf("%w: token de palete desconhecido", domain.ErrNotFound)
		}

		pedido, err := pedidoRepo.GetForUpdate(encontrado.PedidoID)
		if err != nil {
			return err
		}
		if pedido == nil {
			return fmt.Errorf("%w: pedido %s", domain.ErrNotFound, encontrado.PedidoID)
		}

		// Relê o palete sob o lock do pedido: o estado visto aqui é o vigente.
		palete, err = paleteRepo.GetByTokenForUpdate(token)
		if err != nil {
			return err
		}
		if palete == nil {
			return fmt.Errorf("%w: token de palete desconhecido", domain.ErrNotFound)
		}
		if palete.Status == entity.StatusPaleteConferido {
			return fmt.Errorf("%w: palete %d do pedido %s", domain.ErrPaleteJaConferido, palete.Numero, pedido.Codigo)
		}

		now := time.Now()
		palete.Status = entity.StatusPaleteConferido
		palete.ConferidoEm = &now
		palete.ConferidoPor = conferidoPor
		if err := paleteRepo.Atualizar(palete); err != nil {
			return err
		}

		irmaos, err := paleteRepo.ListarPorPedido(pedido.ID)
		if err != nil {
			return err
		}
		todos = true
		for _, p := range irmaos {
			if p.Status != entity.StatusPaleteConferido {
				todos = false
				break
			}
		}
		if todos {
			if err := pedidoRepo.AtualizarEntrega(pedido.ID, entity.StatusEntregaEntregue, &now); err != nil {
				return err
			}
			uc.log.Info().Str("pedido", pedido.Codigo).Msg("todos os paletes conferidos, pedido entregue")
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return palete, todos, nil
}

// OrdemConcluida implementa o hand-off de conclusão de produção: gera o lote
// de paletes do pedido de origem da ordem. Ordens sem pedido vinculado não
// geram paletes.
func (uc *UseCase) OrdemConcluida(ctx context.Context, ordem *entity.OrdemProducao) error {
	if ordem.PedidoID == "" {
		uc.log.Debug().Str("ordem", ordem.Codigo).Msg("ordem concluída sem pedido vinculado, sem paletes")
		return nil
	}
	_, err := uc.GerarPaletes(ctx, ordem.PedidoID, 0)
	return err
}
