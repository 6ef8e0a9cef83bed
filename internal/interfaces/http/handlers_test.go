package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/dto"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/estoque"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/expedicao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/application/producao"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/domain/entity"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/infrastructure/memory"
	apphttp "github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/internal/interfaces/http"
	"github.com/ricardosaitow/erp-verde-pack-cantoneiras-sub000/pkg/logger"
)

// buildAPI monta a API completa sobre o store em memória, com a produção
// ligada à expedição pelo hand-off de conclusão.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()

	expedicaoUC := expedicao.NewUseCase(store, store.Paletes(), log)
	motor := estoque.NewMotorConsumo(log, decimal.Zero)
	producaoUC := producao.NewUseCase(
		store, motor, store.Ordens(), store.Produtos(),
		expedicaoUC, producao.PoliticaBloquear, log,
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProducaoUC:  producaoUC,
		ExpedicaoUC: expedicaoUC,
		JWTSecret:   testJWTSecret,
	})
	return app, store
}

func seedAPI(store *memory.Store) {
	store.AddProduto(&entity.Produto{ID: "prod-1", Nome: "Cantoneira 50x50x3", UnidadeMedida: "m"})
	store.AddReceita("prod-1", &entity.LinhaReceita{
		ProdutoID: "prod-1", MateriaPrimaID: "mp-1", ConsumoPorUnidade: decimal.NewFromInt(1),
	})
	store.AddMateriaPrima(&entity.MateriaPrima{ID: "mp-1", Nome: "Papelão", EstoqueAtual: decimal.NewFromInt(100)})
	store.AddLote(&entity.LoteEstoque{
		ID: "lote-1", MateriaPrimaID: "mp-1", Sequencia: 1,
		Saldo: decimal.NewFromInt(100), CustoUnitario: decimal.NewFromInt(5),
	})
	store.AddPedido(&entity.Pedido{ID: "ped-1", Codigo: "PED-0001", StatusEntrega: entity.StatusEntregaPendente, QtdPaletes: 2})
	store.AddOrdem(&entity.OrdemProducao{
		ID: "op-1", Codigo: "OP-0001", ProdutoID: "prod-1", PedidoID: "ped-1",
		Status: entity.StatusOrdemAguardando,
		Itens: []*entity.OrdemProducaoItem{{
			ID: "item-1", OrdemID: "op-1", ProdutoID: "prod-1",
			Quantidade: decimal.NewFromInt(10), Status: entity.StatusItemAguardando,
		}},
	})
}

func apiRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAPI_RotasProtegidasExigemToken(t *testing.T) {
	app, store := buildAPI(t)
	seedAPI(store)

	resp := apiRequest(t, app, http.MethodGet, "/api/ordens-producao/op-1", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = apiRequest(t, app, http.MethodPost, "/api/pedidos/ped-1/paletes", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_FluxoProducaoAteEntrega(t *testing.T) {
	app, store := buildAPI(t)
	seedAPI(store)
	token := tokenForRole(t, "producao")

	// Inicia e finaliza o único item: a ordem conclui e o hand-off gera os
	// paletes do pedido.
	resp := apiRequest(t, app, http.MethodPost, "/api/ordens-producao/op-1/itens/item-1/iniciar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inicio dto.InicioProducaoResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&inicio))
	resp.Body.Close()
	assert.Equal(t, entity.StatusItemEmProducao, inicio.Item.Status)
	assert.Empty(t, inicio.Faltas)

	resp = apiRequest(t, app, http.MethodPost, "/api/ordens-producao/op-1/itens/item-1/finalizar", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = apiRequest(t, app, http.MethodGet, "/api/ordens-producao/op-1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ordem dto.OrdemProducaoDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ordem))
	resp.Body.Close()
	assert.Equal(t, entity.StatusOrdemConcluido, ordem.Status)

	// Os paletes gerados pelo hand-off aparecem na listagem (sem token de QR).
	resp = apiRequest(t, app, http.MethodGet, "/api/pedidos/ped-1/paletes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listados []dto.PaleteDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listados))
	resp.Body.Close()
	require.Len(t, listados, 2)
	for _, p := range listados {
		assert.Empty(t, p.Token, "token de QR não vaza em listagens")
		assert.Equal(t, entity.StatusPaletePendente, p.Status)
	}

	// Confere os dois paletes pela rota pública; a segunda leitura entrega o
	// pedido.
	paletes, err := store.Paletes().ListarPorPedido("ped-1")
	require.NoError(t, err)

	resp = apiRequest(t, app, http.MethodPost, "/api/expedicao/conferir", "",
		dto.ConferirPaleteRequest{Token: paletes[0].Token, ConferidoPor: "maria"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var conf dto.ConferirPaleteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conf))
	resp.Body.Close()
	assert.False(t, conf.TodosConferidos)

	resp = apiRequest(t, app, http.MethodPost, "/api/expedicao/conferir", "",
		dto.ConferirPaleteRequest{Token: paletes[1].Token, ConferidoPor: "joao"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&conf))
	resp.Body.Close()
	assert.True(t, conf.TodosConferidos)

	pedido, err := store.Pedidos().GetByID("ped-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusEntregaEntregue, pedido.StatusEntrega)
}

func TestAPI_ConferirPalete_Erros(t *testing.T) {
	app, store := buildAPI(t)
	seedAPI(store)

	// Token desconhecido -> 404.
	resp := apiRequest(t, app, http.MethodPost, "/api/expedicao/conferir", "",
		dto.ConferirPaleteRequest{Token: "nao-existe"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Token vazio -> 400.
	resp = apiRequest(t, app, http.MethodPost, "/api/expedicao/conferir", "",
		dto.ConferirPaleteRequest{Token: "   "})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ConferirPalete_DuplaLeitura409(t *testing.T) {
	app, store := buildAPI(t)
	seedAPI(store)
	token := tokenForRole(t, "expedicao")

	resp := apiRequest(t, app, http.MethodPost, "/api/pedidos/ped-1/paletes", token,
		dto.GerarPaletesRequest{Quantidade: 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var gerados []dto.PaleteDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&gerados))
	resp.Body.Close()
	require.Len(t, gerados, 1)
	require.NotEmpty(t, gerados[0].Token, "a geração devolve o token para impressão")

	corpo := dto.ConferirPaleteRequest{Token: gerados[0].Token, ConferidoPor: "maria"}
	resp = apiRequest(t, app, http.MethodPost, "/api/expedicao/conferir", "", corpo)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = apiRequest(t, app, http.MethodPost, "/api/expedicao/conferir", "", corpo)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"reler o mesmo QR devolve conflito, não sucesso nem 404")
}

func TestAPI_TransicaoInvalida409(t *testing.T) {
	app, store := buildAPI(t)
	seedAPI(store)
	token := tokenForRole(t, "producao")

	resp := apiRequest(t, app, http.MethodPost, "/api/ordens-producao/op-1/itens/item-1/finalizar", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode,
		"finalizar um item aguardando é transição inválida")
}

func TestAPI_OrdemInexistente404(t *testing.T) {
	app, store := buildAPI(t)
	seedAPI(store)
	token := tokenForRole(t, "producao")

	resp := apiRequest(t, app, http.MethodGet, "/api/ordens-producao/op-999", token, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
