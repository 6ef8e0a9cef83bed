// Package memory fornece adaptadores de persistência em memória com as mesmas
// garantias transacionais dos adaptadores PostgreSQL: cada Run executa sob
// exclusão mútua e desfaz todas as mutações se o callback devolver erro.
// Usado nos testes das camadas de aplicação e no modo local (sem banco).
package memory

import (
	"context"
	"sync"

	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/producao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/repository"
)

var _ producao.TxRunner = (*Store)(nil)
var _ expedicao.TxRunner = (*Store)(nil)

// Store guarda todos os agregados em mapas protegidos por um único mutex.
// Um mutex global é uma implementação válida da exclusão por agregado exigida
// pelo núcleo (mais grossa, nunca menos segura).
type Store struct {
	mu sync.Mutex

	produtos map[string]*entity.Produto
	receitas map[string][]*entity.LinhaReceita
	materias map[string]*entity.MateriaPrima
	lotes    map[string]*entity.LoteEstoque
	ordens   map[string]*entity.OrdemProducao
	pedidos  map[string]*entity.Pedido
	paletes  map[string]*entity.Palete
}

// NewStore cria um store vazio.
func NewStore() *Store {
	return &Store{
		produtos: map[string]*entity.Produto{},
		receitas: map[string][]*entity.LinhaReceita{},
		materias: map[string]*entity.MateriaPrima{},
		lotes:    map[string]*entity.LoteEstoque{},
		ordens:   map[string]*entity.OrdemProducao{},
		pedidos:  map[string]*entity.Pedido{},
		paletes:  map[string]*entity.Palete{},
	}
}

// Carga de dados (seed) — usada por testes e pelo modo local.

func (s *Store) AddProduto(p *entity.Produto) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.produtos[p.ID] = cloneProduto(p)
}

func (s *Store) AddReceita(produtoID string, linhas ...*entity.LinhaReceita) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range linhas {
		c := *l
		s.receitas[produtoID] = append(s.receitas[produtoID], &c)
	}
}

func (s *Store) AddMateriaPrima(m *entity.MateriaPrima) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *m
	s.materias[m.ID] = &c
}

func (s *Store) AddLote(l *entity.LoteEstoque) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *l
	s.lotes[l.ID] = &c
}

func (s *Store) AddOrdem(o *entity.OrdemProducao) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ordens[o.ID] = cloneOrdem(o)
}

func (s *Store) AddPedido(p *entity.Pedido) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.pedidos[p.ID] = &c
}

func (s *Store) AddPalete(p *entity.Palete) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.paletes[p.ID] = &c
}

// Run implementa producao.TxRunner: executa fn sob o mutex com repositórios
// atados ao store e desfaz tudo se fn devolver erro.
func (s *Store) Run(ctx context.Context, fn func(
	ordemRepo repository.OrdemProducaoRepository,
	receitaRepo repository.ReceitaRepository,
	materiaRepo repository.MateriaPrimaRepository,
	loteRepo repository.LoteRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	err := fn(
		&ordemRepo{s: s},
		&receitaRepo{s: s},
		&materiaRepo{s: s},
		&loteRepo{s: s},
	)
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// RunExpedicao implementa expedicao.TxRunner.
func (s *Store) RunExpedicao(ctx context.Context, fn func(
	pedidoRepo repository.PedidoRepository,
	paleteRepo repository.PaleteRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	err := fn(&pedidoRepo{s: s}, &paleteRepo{s: s})
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Repositórios de leitura (fora de transação), com lock por chamada.

func (s *Store) Produtos() repository.ProdutoRepository {
	return &produtoRepo{s: s, lock: true}
}

func (s *Store) Ordens() repository.OrdemProducaoRepository {
	return &ordemRepo{s: s, lock: true}
}

func (s *Store) Paletes() repository.PaleteRepository {
	return &paleteRepo{s: s, lock: true}
}

func (s *Store) Pedidos() repository.PedidoRepository {
	return &pedidoRepo{s: s, lock: true}
}

func (s *Store) MateriasPrimas() repository.MateriaPrimaRepository {
	return &materiaRepo{s: s, lock: true}
}

func (s *Store) Lotes() repository.LoteRepository {
	return &loteRepo{s: s, lock: true}
}

// snapshot/restore: cópia profunda dos mapas para rollback do Run.

type storeSnapshot struct {
	materias map[string]*entity.MateriaPrima
	lotes    map[string]*entity.LoteEstoque
	ordens   map[string]*entity.OrdemProducao
	pedidos  map[string]*entity.Pedido
	paletes  map[string]*entity.Palete
}

func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		materias: make(map[string]*entity.MateriaPrima, len(s.materias)),
		lotes:    make(map[string]*entity.LoteEstoque, len(s.lotes)),
		ordens:   make(map[string]*entity.OrdemProducao, len(s.ordens)),
		pedidos:  make(map[string]*entity.Pedido, len(s.pedidos)),
		paletes:  make(map[string]*entity.Palete, len(s.paletes)),
	}
	for id, m := range s.materias {
		c := *m
		snap.materias[id] = &c
	}
	for id, l := range s.lotes {
		c := *l
		snap.lotes[id] = &c
	}
	for id, o := range s.ordens {
		snap.ordens[id] = cloneOrdem(o)
	}
	for id, p := range s.pedidos {
		c := *p
		snap.pedidos[id] = &c
	}
	for id, p := range s.paletes {
		c := *p
		snap.paletes[id] = &c
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.materias = snap.materias
	s.lotes = snap.lotes
	s.ordens = snap.ordens
	s.pedidos = snap.pedidos
	s.paletes = snap.paletes
}

func cloneProduto(p *entity.Produto) *entity.Produto {
	c := *p
	return &c
}

func cloneOrdem(o *entity.OrdemProducao) *entity.OrdemProducao {
	c := *o
	c.Itens = make([]*entity.OrdemProducaoItem, 0, len(o.Itens))
	for _, it := range o.Itens {
		ci := *it
		c.Itens = append(c.Itens, &ci)
	}
	return &c
}
