package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ repository.ProdutoRepository = (*produtoRepo)(nil)
var _ repository.ReceitaRepository = (*receitaRepo)(nil)
var _ repository.MateriaPrimaRepository = (*materiaRepo)(nil)
var _ repository.LoteRepository = (*loteRepo)(nil)
var _ repository.OrdemProducaoRepository = (*ordemRepo)(nil)
var _ repository.PedidoRepository = (*pedidoRepo)(nil)
var _ repository.PaleteRepository = (*paleteRepo)(nil)

// Adaptadores sobre o Store. Com lock=true cada chamada adquire o mutex
// (leituras fora de transação); com lock=false o mutex já é do Run.
// Leituras devolvem cópias: mutações só entram no store via métodos de escrita.

type produtoRepo struct {
	s    *Store
	lock bool
}

func (r *produtoRepo) GetByID(id string) (*entity.Produto, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	p, ok := r.s.produtos[id]
	if !ok {
		return nil, nil
	}
	return cloneProduto(p), nil
}

type receitaRepo struct {
	s    *Store
	lock bool
}

func (r *receitaRepo) ListarPorProduto(produtoID string) ([]*entity.LinhaReceita, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	linhas := r.s.receitas[produtoID]
	out := make([]*entity.LinhaReceita, 0, len(linhas))
	for _, l := range linhas {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

type materiaRepo struct {
	s    *Store
	lock bool
}

func (r *materiaRepo) GetByID(id string) (*entity.MateriaPrima, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	m, ok := r.s.materias[id]
	if !ok {
		return nil, nil
	}
	c := *m
	return &c, nil
}

func (r *materiaRepo) GetForUpdate(id string) (*entity.MateriaPrima, error) {
	// Sob o mutex do Run a exclusão já está garantida.
	return r.GetByID(id)
}

func (r *materiaRepo) AtualizarEstoque(id string, total decimal.Decimal) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if m, ok := r.s.materias[id]; ok {
		m.EstoqueAtual = total
		m.AtualizadoEm = time.Now()
	}
	return nil
}

type loteRepo struct {
	s    *Store
	lock bool
}

func (r *loteRepo) ListarPorMateriaPrimaForUpdate(materiaPrimaID string) ([]*entity.LoteEstoque, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var out []*entity.LoteEstoque
	for _, l := range r.s.lotes {
		if l.MateriaPrimaID == materiaPrimaID {
			c := *l
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequencia < out[j].Sequencia })
	return out, nil
}

func (r *loteRepo) AtualizarSaldo(loteID string, saldo decimal.Decimal) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if l, ok := r.s.lotes[loteID]; ok {
		l.Saldo = saldo
	}
	return nil
}

type ordemRepo struct {
	s    *Store
	lock bool
}

func (r *ordemRepo) GetByID(id string) (*entity.OrdemProducao, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	o, ok := r.s.ordens[id]
	if !ok {
		return nil, nil
	}
	return cloneOrdem(o), nil
}

func (r *ordemRepo) GetForUpdate(id string) (*entity.OrdemProducao, error) {
	return r.GetByID(id)
}

func (r *ordemRepo) Atualizar(ordem *entity.OrdemProducao) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if o, ok := r.s.ordens[ordem.ID]; ok {
		o.Status = ordem.Status
		o.IniciadaEm = ordem.IniciadaEm
		o.ConcluidaEm = ordem.ConcluidaEm
	}
	return nil
}

func (r *ordemRepo) AtualizarItem(item *entity.OrdemProducaoItem) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	o, ok := r.s.ordens[item.OrdemID]
	if !ok {
		return nil
	}
	for _, it := range o.Itens {
		if it.ID == item.ID {
			it.Status = item.Status
			it.IniciadoEm = item.IniciadoEm
			it.FinalizadoEm = item.FinalizadoEm
			break
		}
	}
	return nil
}

type pedidoRepo struct {
	s    *Store
	lock bool
}

func (r *pedidoRepo) GetByID(id string) (*entity.Pedido, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	p, ok := r.s.pedidos[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *pedidoRepo) GetForUpdate(id string) (*entity.Pedido, error) {
	return r.GetByID(id)
}

func (r *pedidoRepo) AtualizarEntrega(pedidoID, status string, entregueEm *time.Time) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if p, ok := r.s.pedidos[pedidoID]; ok {
		p.StatusEntrega = status
		p.EntregueEm = entregueEm
	}
	return nil
}

type paleteRepo struct {
	s    *Store
	lock bool
}

func (r *paleteRepo) GetByToken(token string) (*entity.Palete, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, p := range r.s.paletes {
		if p.Token == token {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *paleteRepo) GetByTokenForUpdate(token string) (*entity.Palete, error) {
	return r.GetByToken(token)
}

func (r *paleteRepo) ListarPorPedido(pedidoID string) ([]*entity.Palete, error) {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	var out []*entity.Palete
	for _, p := range r.s.paletes {
		if p.PedidoID == pedidoID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *paleteRepo) CriarLote(paletes []*entity.Palete) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for _, p := range paletes {
		c := *p
		r.s.paletes[p.ID] = &c
	}
	return nil
}

func (r *paleteRepo) ApagarPorPedido(pedidoID string) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	for id, p := range r.s.paletes {
		if p.PedidoID == pedidoID {
			delete(r.s.paletes, id)
		}
	}
	return nil
}

func (r *paleteRepo) Atualizar(palete *entity.Palete) error {
	if r.lock {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
	}
	if p, ok := r.s.paletes[palete.ID]; ok {
		p.Status = palete.Status
		p.ConferidoEm = palete.ConferidoEm
		p.ConferidoPor = palete.ConferidoPor
	}
	return nil
}
