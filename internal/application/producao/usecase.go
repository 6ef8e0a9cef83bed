package producao

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/producao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/logger"
)

// PoliticaFalta define o que fazer quando o estoque é insuficiente ao iniciar
// produção: bloquear a transição (padrão) ou prosseguir reportando as faltas.
type PoliticaFalta string

// Políticas de falta aceitas.
const (
	PoliticaBloquear PoliticaFalta = "bloquear"
	PoliticaAvisar   PoliticaFalta = "avisar"
)

// UseCase dirige o ciclo de vida de ordens de produção e seus itens.
// Cada transição roda em uma transação própria com a linha da ordem bloqueada
// (SELECT FOR UPDATE): transições concorrentes sobre a mesma ordem são
// serializadas; ordens distintas seguem em paralelo.
type UseCase struct {
	txRunner    TxRunner
	motor       Consumidor
	ordemRepo   repository.OrdemProducaoRepository
	produtoRepo repository.ProdutoRepository
	handoff     ConclusaoHandoff
	politica    PoliticaFalta
	log         *logger.Logger
}

// NewUseCase constrói o caso de uso da máquina de estados de produção.
func NewUseCase(
	txRunner TxRunner,
	motor Consumidor,
	ordemRepo repository.OrdemProducaoRepository,
	produtoRepo repository.ProdutoRepository,
	handoff ConclusaoHandoff,
	politica PoliticaFalta,
	log *logger.Logger,
) *UseCase {
	if politica == "" {
		politica = PoliticaBloquear
	}
	return &UseCase{
		txRunner:    txRunner,
		motor:       motor,
		ordemRepo:   ordemRepo,
		produtoRepo: produtoRepo,
		handoff:     handoff,
		politica:    politica,
		log:         log,
	}
}

// ResultadoInicio devolve o item (ou ordem) iniciado junto com os alertas de
// troca de lote e as faltas reportadas pelo motor de consumo.
type ResultadoInicio struct {
	Ordem   *entity.OrdemProducao
	Item    *entity.OrdemProducaoItem
	Alertas []entity.AlertaTrocaLote
	Faltas  []entity.Falta
}

// Obter devolve a ordem com itens (leitura, sem lock).
func (uc *UseCase) Obter(ctx context.Context, ordemID string) (*entity.OrdemProducao, error) {
	ordem, err := uc.ordemRepo.GetByID(ordemID)
	if err != nil {
		return nil, err
	}
	if ordem == nil {
		return nil, fmt.Errorf("%w: ordem %s", domain.ErrNotFound, ordemID)
	}
	return ordem, nil
}

// IniciarItem move um item de aguardando para em_producao, baixando o estoque
// das matérias-primas da receita do produto do item na mesma transação.
func (uc *UseCase) IniciarItem(ctx context.Context, ordemID, itemID string) (*ResultadoInicio, error) {
	var out ResultadoInicio
	err := uc.txRunner.Run(ctx, func(
		ordemRepo repository.OrdemProducaoRepository,
		receitaRepo repository.ReceitaRepository,
		materiaRepo repository.MateriaPrimaRepository,
		loteRepo repository.LoteRepository,
	) error {
		ordem, err := carregarOrdem(ordemRepo, ordemID)
		if err != nil {
			return err
		}
		item := ordem.Item(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s da ordem %s", domain.ErrNotFound, itemID, ordemID)
		}
		if err := producao.ValidarInicioItem(item); err != nil {
			return err
		}

		alertas, faltas, err := uc.motor.ConsumirParaProducao(receitaRepo, materiaRepo, loteRepo, item.ProdutoID, item.Quantidade)
		if err != nil {
			return err
		}
		if len(faltas) > 0 && uc.politica == PoliticaBloquear {
			return faltaErr(faltas)
		}

		now := time.Now()
		item.Status = entity.StatusItemEmProducao
		item.IniciadoEm = &now
		if err := ordemRepo.AtualizarItem(item); err != nil {
			return err
		}
		if err := uc.aplicarStatusDerivado(ordemRepo, ordem, now); err != nil {
			return err
		}
		out = ResultadoInicio{Ordem: ordem, Item: item, Alertas: alertas, Faltas: faltas}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FinalizarItem move um item de em_producao para finalizado e re-deriva o
// status da ordem. Se todos os itens ficarem terminais, a ordem conclui e o
// hand-off de conclusão dispara uma única vez, após o commit.
func (uc *UseCase) FinalizarItem(ctx context.Context, ordemID, itemID string) (*entity.OrdemProducaoItem, error) {
	var item *entity.OrdemProducaoItem
	var concluida *entity.OrdemProducao
	err := uc.txRunner.Run(ctx, func(
		ordemRepo repository.OrdemProducaoRepository,
		_ repository.ReceitaRepository,
		_ repository.MateriaPrimaRepository,
		_ repository.LoteRepository,
	) error {
		ordem, err := carregarOrdem(ordemRepo, ordemID)
		if err != nil {
			return err
		}
		item = ordem.Item(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s da ordem %s", domain.ErrNotFound, itemID, ordemID)
		}
		if err := producao.ValidarFimItem(item); err != nil {
			return err
		}

		now := time.Now()
		item.Status = entity.StatusItemFinalizado
		item.FinalizadoEm = &now
		if err := ordemRepo.AtualizarItem(item); err != nil {
			return err
		}
		anterior := ordem.Status
		if err := uc.aplicarStatusDerivado(ordemRepo, ordem, now); err != nil {
			return err
		}
		if ordem.Status == entity.StatusOrdemConcluido && anterior != entity.StatusOrdemConcluido {
			concluida = ordem
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.dispararHandoff(ctx, concluida)
	return item, nil
}

// CancelarItem cancela um item (de aguardando ou em_producao) e re-deriva o
// status da ordem. Se o cancelamento fecha o conjunto com ao menos um item
// finalizado, a ordem conclui e o hand-off dispara; uma ordem que termina com
// todos os itens cancelados vira cancelada, sem hand-off.
func (uc *UseCase) CancelarItem(ctx context.Context, ordemID, itemID string) (*entity.OrdemProducaoItem, error) {
	var item *entity.OrdemProducaoItem
	var concluida *entity.OrdemProducao
	err := uc.txRunner.Run(ctx, func(
		ordemRepo repository.OrdemProducaoRepository,
		_ repository.ReceitaRepository,
		_ repository.MateriaPrimaRepository,
		_ repository.LoteRepository,
	) error {
		ordem, err := carregarOrdem(ordemRepo, ordemID)
		if err != nil {
			return err
		}
		item = ordem.Item(itemID)
		if item == nil {
			return fmt.Errorf("%w: item %s da ordem %s", domain.ErrNotFound, itemID, ordemID)
		}
		if err := producao.ValidarCancelamentoItem(item); err != nil {
			return err
		}
		item.Status = entity.StatusItemCancelado
		if err := ordemRepo.AtualizarItem(item); err != nil {
			return err
		}
		anterior := ordem.Status
		if err := uc.aplicarStatusDerivado(ordemRepo, ordem, time.Now()); err != nil {
			return err
		}
		if ordem.Status == entity.StatusOrdemConcluido && anterior != entity.StatusOrdemConcluido {
			concluida = ordem
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.dispararHandoff(ctx, concluida)
	return item, nil
}

// IniciarOrdem inicia uma ordem sem itens (modo simples/legado): a própria
// ordem vai de aguardando para em_producao e o consumo é feito para a
// quantidade total da ordem.
func (uc *UseCase) IniciarOrdem(ctx context.Context, ordemID string) (*ResultadoInicio, error) {
	// A quantidade da ordem é imutável: a conversão peças -> metros é resolvida
	// antes da transação, fora do lock.
	previa, err := uc.Obter(ctx, ordemID)
	if err != nil {
		return nil, err
	}
	quantidade, err := uc.quantidadeDaOrdem(previa)
	if err != nil {
		return nil, err
	}

	var out ResultadoInicio
	err = uc.txRunner.Run(ctx, func(
		ordemRepo repository.OrdemProducaoRepository,
		receitaRepo repository.ReceitaRepository,
		materiaRepo repository.MateriaPrimaRepository,
		loteRepo repository.LoteRepository,
	) error {
		ordem, err := carregarOrdem(ordemRepo, ordemID)
		if err != nil {
			return err
		}
		if ordem.Itemizada() {
			return fmt.Errorf("%w: ordem %s possui itens; inicie pelos itens", domain.ErrTransicaoInvalida, ordem.Codigo)
		}
		if ordem.Status != entity.StatusOrdemAguardando {
			return fmt.Errorf("%w: ordem %s já está em %q", domain.ErrTransicaoInvalida, ordem.Codigo, ordem.Status)
		}

		alertas, faltas, err := uc.motor.ConsumirParaProducao(receitaRepo, materiaRepo, loteRepo, ordem.ProdutoID, quantidade)
		if err != nil {
			return err
		}
		if len(faltas) > 0 && uc.politica == PoliticaBloquear {
			return faltaErr(faltas)
		}

		now := time.Now()
		ordem.Status = entity.StatusOrdemEmProducao
		ordem.IniciadaEm = &now
		if err := ordemRepo.Atualizar(ordem); err != nil {
			return err
		}
		out = ResultadoInicio{Ordem: ordem, Alertas: alertas, Faltas: faltas}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// FinalizarOrdem conclui uma ordem sem itens (em_producao -> concluido) e
// dispara o hand-off de conclusão após o commit.
func (uc *UseCase) FinalizarOrdem(ctx context.Context, ordemID string) (*entity.OrdemProducao, error) {
	var concluida *entity.OrdemProducao
	err := uc.txRunner.Run(ctx, func(
		ordemRepo repository.OrdemProducaoRepository,
		_ repository.ReceitaRepository,
		_ repository.MateriaPrimaRepository,
		_ repository.LoteRepository,
	) error {
		ordem, err := carregarOrdem(ordemRepo, ordemID)
		if err != nil {
			return err
		}
		if ordem.Itemizada() {
			return fmt.Errorf("%w: ordem %s possui itens; finalize pelos itens", domain.ErrTransicaoInvalida, ordem.Codigo)
		}
		if ordem.Status != entity.StatusOrdemEmProducao {
			return fmt.Errorf("%w: ordem %s está em %q, esperado %q", domain.ErrTransicaoInvalida, ordem.Codigo, ordem.Status, entity.StatusOrdemEmProducao)
		}

		now := time.Now()
		ordem.Status = entity.StatusOrdemConcluido
		ordem.ConcluidaEm = &now
		if err := ordemRepo.Atualizar(ordem); err != nil {
			return err
		}
		concluida = ordem
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.dispararHandoff(ctx, concluida)
	return concluida, nil
}

// CancelarOrdem cancela uma ordem em aguardando ou em_producao. Em ordens
// itemizadas, os itens não terminais são cancelados junto.
func (uc *UseCase) CancelarOrdem(ctx context.Context, ordemID string) (*entity.OrdemProducao, error) {
	var cancelada *entity.OrdemProducao
	err := uc.txRunner.Run(ctx, func(
		ordemRepo repository.OrdemProducaoRepository,
		_ repository.ReceitaRepository,
		_ repository.MateriaPrimaRepository,
		_ repository.LoteRepository,
	) error {
		ordem, err := carregarOrdem(ordemRepo, ordemID)
		if err != nil {
			return err
		}
		if ordem.Status != entity.StatusOrdemAguardando && ordem.Status != entity.StatusOrdemEmProducao {
			return fmt.Errorf("%w: ordem %s em %q não pode ser cancelada", domain.ErrTransicaoInvalida, ordem.Codigo, ordem.Status)
		}
		for _, item := range ordem.Itens {
			if item.Status == entity.StatusItemAguardando || item.Status == entity.StatusItemEmProducao {
				item.Status = entity.StatusItemCancelado
				if err := ordemRepo.AtualizarItem(item); err != nil {
					return err
				}
			}
		}
		ordem.Status = entity.StatusOrdemCancelado
		if err := ordemRepo.Atualizar(ordem); err != nil {
			return err
		}
		cancelada = ordem
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelada, nil
}

// aplicarStatusDerivado recalcula o status agregado da ordem a partir dos
// itens e persiste quando muda, registrando os timestamps de início/conclusão.
func (uc *UseCase) aplicarStatusDerivado(ordemRepo repository.OrdemProducaoRepository, ordem *entity.OrdemProducao, now time.Time) error {
	statusItens := make([]string, 0, len(ordem.Itens))
	for _, it := range ordem.Itens {
		statusItens = append(statusItens, it.Status)
	}
	derivado := producao.DerivarStatusOrdem(statusItens)
	if derivado == ordem.Status {
		return nil
	}
	ordem.Status = derivado
	if ordem.IniciadaEm == nil && derivado != entity.StatusOrdemAguardando && derivado != entity.StatusOrdemCancelado {
		ordem.IniciadaEm = &now
	}
	if derivado == entity.StatusOrdemConcluido {
		ordem.ConcluidaEm = &now
	}
	return ordemRepo.Atualizar(ordem)
}

// dispararHandoff chama o hand-off de conclusão fora da transação. A transição
// já foi commitada: falha aqui é logada, não desfaz a conclusão.
func (uc *UseCase) dispararHandoff(ctx context.Context, ordem *entity.OrdemProducao) {
	if ordem == nil || uc.handoff == nil {
		return
	}
	uc.log.Info().Str("ordem", ordem.Codigo).Msg("ordem de produção concluída")
	if err := uc.handoff.OrdemConcluida(ctx, ordem); err != nil {
		uc.log.Error().Err(err).Str("ordem", ordem.Codigo).Msg("hand-off de conclusão falhou")
	}
}

// quantidadeDaOrdem resolve a quantidade em metros de uma ordem simples.
// Ordens informadas em peças são convertidas via Produto.ComprimentoPeca;
// a conversão é explícita, nunca implícita na receita.
func (uc *UseCase) quantidadeDaOrdem(ordem *entity.OrdemProducao) (decimal.Decimal, error) {
	if ordem.Quantidade.IsPositive() {
		return ordem.Quantidade, nil
	}
	if ordem.QuantidadePecas > 0 {
		produto, err := uc.produtoRepo.GetByID(ordem.ProdutoID)
		if err != nil {
			return decimal.Zero, err
		}
		if produto == nil {
			return decimal.Zero, fmt.Errorf("%w: produto %s", domain.ErrNotFound, ordem.ProdutoID)
		}
		if !produto.ComprimentoPeca.IsPositive() {
			return decimal.Zero, fmt.Errorf("%w: produto %s sem comprimento por peça para converter %d peças", domain.ErrEntradaInvalida, produto.Nome, ordem.QuantidadePecas)
		}
		return produto.ComprimentoPeca.Mul(decimal.NewFromInt(ordem.QuantidadePecas)), nil
	}
	return decimal.Zero, fmt.Errorf("%w: ordem %s sem quantidade", domain.ErrEntradaInvalida, ordem.Codigo)
}

func carregarOrdem(ordemRepo repository.OrdemProducaoRepository, ordemID string) (*entity.OrdemProducao, error) {
	ordem, err := ordemRepo.GetForUpdate(ordemID)
	if err != nil {
		return nil, err
	}
	if ordem == nil {
		return nil, fmt.Errorf("%w: ordem %s", domain.ErrNotFound, ordemID)
	}
	return ordem, nil
}

func faltaErr(faltas []entity.Falta) error {
	nomes := make([]string, 0, len(faltas))
	for _, f := range faltas {
		nomes = append(nomes, f.MateriaPrimaNome)
	}
	return fmt.Errorf("%w: %v", domain.ErrEstoqueInsuficiente, nomes)
}
