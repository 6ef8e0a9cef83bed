// Package producao contém a máquina de estados de ordens de produção
// (serviço de domínio, sem I/O).
package producao

import (
	"fmt"

	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
)

// DerivarStatusOrdem deriva o status agregado de uma ordem a partir dos status
// dos seus itens. Função total: cobre qualquer combinação de status.
//
// Regras:
//   - todos cancelados                       -> cancelado (sem hand-off de conclusão)
//   - todos terminais (finalizado/cancelado) -> concluido
//   - ao menos um finalizado                 -> parcial
//   - ao menos um em produção                -> em_producao
//   - caso restante (todos aguardando,
//     possivelmente com cancelados)          -> aguardando
func DerivarStatusOrdem(statusItens []string) string {
	if len(statusItens) == 0 {
		return entity.StatusOrdemAguardando
	}

	var finalizados, cancelados, emProducao int
	for _, st := range statusItens {
		switch st {
		case entity.StatusItemFinalizado:
			finalizados++
		case entity.StatusItemCancelado:
			cancelados++
		case entity.StatusItemEmProducao:
			emProducao++
		}
	}

	total := len(statusItens)
	switch {
	case cancelados == total:
		return entity.StatusOrdemCancelado
	case finalizados+cancelados == total:
		return entity.StatusOrdemConcluido
	case finalizados > 0:
		return entity.StatusOrdemParcial
	case emProducao > 0:
		return entity.StatusOrdemEmProducao
	default:
		return entity.StatusOrdemAguardando
	}
}

// ValidarInicioItem verifica se um item pode passar de aguardando para em produção.
func ValidarInicioItem(item *entity.OrdemProducaoItem) error {
	if item.Status != entity.StatusItemAguardando {
		return fmt.Errorf("%w: item %s já está em %q", domain.ErrTransicaoInvalida, item.ID, item.Status)
	}
	return nil
}

// ValidarFimItem verifica se um item pode passar de em produção para finalizado.
func ValidarFimItem(item *entity.OrdemProducaoItem) error {
	if item.Status != entity.StatusItemEmProducao {
		return fmt.Errorf("%w: item %s está em %q, esperado %q", domain.ErrTransicaoInvalida, item.ID, item.Status, entity.StatusItemEmProducao)
	}
	return nil
}

// ValidarCancelamentoItem verifica se um item pode ser cancelado
// (permitido de aguardando ou em produção).
func ValidarCancelamentoItem(item *entity.OrdemProducaoItem) error {
	if item.Status != entity.StatusItemAguardando && item.Status != entity.StatusItemEmProducao {
		return fmt.Errorf("%w: item %s em %q não pode ser cancelado", domain.ErrTransicaoInvalida, item.ID, item.Status)
	}
	return nil
}
