package expedicao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/infrastructure/memory"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/logger"
)

func seedPedido(qtdPaletes int) (*memory.Store, *expedicao.UseCase) {
	store := memory.NewStore()
	store.AddPedido(&entity.Pedido{
		ID:            "ped-1",
		Codigo:        "PED-0001",
		StatusEntrega: entity.StatusEntregaPendente,
		QtdPaletes:    qtdPaletes,
	})
	uc := expedicao.NewUseCase(store, store.Paletes(), logger.Nop())
	return store, uc
}

func TestGerarPaletes_LoteComTokensUnicos(t *testing.T) {
	_, uc := seedPedido(3)

	paletes, err := uc.GerarPaletes(context.Background(), "ped-1", 0)
	require.NoError(t, err)
	require.Len(t, paletes, 3, "qtd <= 0 usa a quantidade do pedido")

	tokens := map[string]bool{}
	for i, p := range paletes {
		assert.Equal(t, i+1, p.Numero, "numeração sequencial a partir de 1")
		assert.Equal(t, entity.StatusPaletePendente, p.Status)
		assert.NotEmpty(t, p.Token)
		assert.False(t, tokens[p.Token], "tokens devem ser únicos no lote")
		tokens[p.Token] = true
	}
}

func TestGerarPaletes_PedidoSemQuantidadeUsaUm(t *testing.T) {
	_, uc := seedPedido(0)

	paletes, err := uc.GerarPaletes(context.Background(), "ped-1", 0)
	require.NoError(t, err)
	assert.Len(t, paletes, 1)
}

func TestGerarPaletes_PedidoInexistente(t *testing.T) {
	_, uc := seedPedido(2)

	_, err := uc.GerarPaletes(context.Background(), "ped-999", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGerarPaletes_RegeneracaoSubstituiLotePendente(t *testing.T) {
	_, uc := seedPedido(2)
	ctx := context.Background()

	antigos, err := uc.GerarPaletes(ctx, "ped-1", 2)
	require.NoError(t, err)

	novos, err := uc.GerarPaletes(ctx, "ped-1", 3)
	require.NoError(t, err)
	require.Len(t, novos, 3)

	// Os tokens antigos morrem com o lote antigo.
	_, _, err = uc.ConfirmarPalete(ctx, antigos[0].Token, "maria")
	assert.ErrorIs(t, err, domain.ErrNotFound, "token do lote substituído deixa de valer")

	listados, err := uc.ListarPaletes(ctx, "ped-1")
	require.NoError(t, err)
	assert.Len(t, listados, 3)
}

func TestGerarPaletes_RegeneracaoRejeitadaAposConferencia(t *testing.T) {
	_, uc := seedPedido(2)
	ctx := context.Background()

	paletes, err := uc.GerarPaletes(ctx, "ped-1", 2)
	require.NoError(t, err)

	_, _, err = uc.ConfirmarPalete(ctx, paletes[0].Token, "maria")
	require.NoError(t, err)

	_, err = uc.GerarPaletes(ctx, "ped-1", 2)
	assert.ErrorIs(t, err, domain.ErrConflito,
		"lote parcialmente conferido nunca é recriado")
}

func TestConfirmarPalete_UltimaConferenciaEntregaOPedido(t *testing.T) {
	store, uc := seedPedido(2)
	ctx := context.Background()

	paletes, err := uc.GerarPaletes(ctx, "ped-1", 2)
	require.NoError(t, err)

	p1, todos, err := uc.ConfirmarPalete(ctx, paletes[0].Token, "maria")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaleteConferido, p1.Status)
	assert.Equal(t, "maria", p1.ConferidoPor)
	assert.NotNil(t, p1.ConferidoEm)
	assert.False(t, todos, "falta um palete")

	pedido, err := store.Pedidos().GetByID("ped-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEntregaPendente, pedido.StatusEntrega)

	_, todos, err = uc.ConfirmarPalete(ctx, paletes[1].Token, "joao")
	require.NoError(t, err)
	assert.True(t, todos, "última conferência fecha o pedido")

	pedido, err = store.Pedidos().GetByID("ped-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEntregaEntregue, pedido.StatusEntrega)
	assert.NotNil(t, pedido.EntregueEm)
}

func TestConfirmarPalete_OrdemDasConferenciasNaoImporta(t *testing.T) {
	store, uc := seedPedido(2)
	ctx := context.Background()

	paletes, err := uc.GerarPaletes(ctx, "ped-1", 2)
	require.NoError(t, err)

	// Confere na ordem inversa; a entrega é disparada pela última, igual.
	_, todos, err := uc.ConfirmarPalete(ctx, paletes[1].Token, "maria")
	require.NoError(t, err)
	assert.False(t, todos)

	_, todos, err = uc.ConfirmarPalete(ctx, paletes[0].Token, "maria")
	require.NoError(t, err)
	assert.True(t, todos)

	pedido, err := store.Pedidos().GetByID("ped-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEntregaEntregue, pedido.StatusEntrega)
}

func TestConfirmarPalete_DuplaConferenciaRejeitada(t *testing.T) {
	store, uc := seedPedido(2)
	ctx := context.Background()

	paletes, err := uc.GerarPaletes(ctx, "ped-1", 2)
	require.NoError(t, err)

	_, _, err = uc.ConfirmarPalete(ctx, paletes[0].Token, "maria")
	require.NoError(t, err)

	_, _, err = uc.ConfirmarPalete(ctx, paletes[0].Token, "joao")
	assert.ErrorIs(t, err, domain.ErrPaleteJaConferido,
		"reler o mesmo QR é rejeitado, distinguível de token desconhecido")

	// A dupla leitura não conta como segunda conferência nem entrega o pedido.
	pedido, err := store.Pedidos().GetByID("ped-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEntregaPendente, pedido.StatusEntrega)
}

func TestConfirmarPalete_TokenDesconhecido(t *testing.T) {
	_, uc := seedPedido(1)

	_, _, err := uc.ConfirmarPalete(context.Background(), "token-que-nao-existe", "maria")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrdemConcluida_GeraPaletesDoPedido(t *testing.T) {
	_, uc := seedPedido(2)
	ctx := context.Background()

	err := uc.OrdemConcluida(ctx, &entity.OrdemProducao{
		ID: "op-1", Codigo: "OP-0001", PedidoID: "ped-1",
	})
	require.NoError(t, err)

	paletes, err := uc.ListarPaletes(ctx, "ped-1")
	require.NoError(t, err)
	assert.Len(t, paletes, 2, "hand-off gera o lote com a quantidade do pedido")
}

func TestOrdemConcluida_SemPedidoVinculadoNaoGera(t *testing.T) {
	_, uc := seedPedido(2)

	err := uc.OrdemConcluida(context.Background(), &entity.OrdemProducao{
		ID: "op-1", Codigo: "OP-0001",
	})
	assert.NoError(t, err, "ordem sem pedido é um no-op")
}
