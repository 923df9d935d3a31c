package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/clientelab/cliente-analytics-api/internal/models"
)

// mockClienteService for handler testing
type mockClienteService struct {
	createFn           func(ctx context.Context, cliente *models.Cliente) (*models.Cliente, error)
	getByIDFn          func(ctx context.Context, id string) (*models.Cliente, error)
	listFn             func(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error)
	updateFn           func(ctx context.Context, id string, patch *models.ClienteUpdate) (*models.Cliente, error)
	deleteFn           func(ctx context.Context, id string) (bool, error)
	faixaEtariaFn      func(ctx context.Context) ([]models.FaixaEtariaStats, error)
	segmentacaoFn      func(ctx context.Context) ([]models.SegmentoRFM, error)
	produtosFn         func(ctx context.Context, limit int) ([]models.ProdutoVendas, error)
	maiorValorFn       func(ctx context.Context, limit int) ([]models.CompraTop, error)
	comportamentoFn    func(ctx context.Context) ([]models.ComportamentoIdade, error)
	gastoFaixaEtariaFn func(ctx context.Context) ([]models.GastoFaixaEtaria, error)
}

func (m *mockClienteService) Create(ctx context.Context, cliente *models.Cliente) (*models.Cliente, error) {
	return m.createFn(ctx, cliente)
}

func (m *mockClienteService) GetByID(ctx context.Context, id string) (*models.Cliente, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockClienteService) List(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error) {
	return m.listFn(ctx, filter)
}

func (m *mockClienteService) Update(ctx context.Context, id string, patch *models.ClienteUpdate) (*models.Cliente, error) {
	return m.updateFn(ctx, id, patch)
}

func (m *mockClienteService) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockClienteService) AnalisarFaixaEtaria(ctx context.Context) ([]models.FaixaEtariaStats, error) {
	return m.faixaEtariaFn(ctx)
}

func (m *mockClienteService) SegmentacaoRFM(ctx context.Context) ([]models.SegmentoRFM, error) {
	return m.segmentacaoFn(ctx)
}

func (m *mockClienteService) ProdutosMaisVendidos(ctx context.Context, limit int) ([]models.ProdutoVendas, error) {
	return m.produtosFn(ctx, limit)
}

func (m *mockClienteService) ClientesMaiorValorCompra(ctx context.Context, limit int) ([]models.CompraTop, error) {
	return m.maiorValorFn(ctx, limit)
}

func (m *mockClienteService) ComportamentoPorIdade(ctx context.Context) ([]models.ComportamentoIdade, error) {
	return m.comportamentoFn(ctx)
}

func (m *mockClienteService) GastoPorFaixaEtaria(ctx context.Context) ([]models.GastoFaixaEtaria, error) {
	return m.gastoFaixaEtariaFn(ctx)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the mock service the same way cmd/api does
func newTestRouter(svc *mockClienteService) http.Handler {
	logger := testLogger()
	clienteHandler := NewClienteHandler(svc, logger)
	analyticsHandler := NewAnalyticsHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/clientes", func(r chi.Router) {
		r.Post("/", clienteHandler.CreateCliente)
		r.Get("/", clienteHandler.ListClientes)

		r.Route("/analise", func(r chi.Router) {
			r.Get("/faixa-etaria", analyticsHandler.FaixaEtaria)
			r.Get("/segmentacao-rfm", analyticsHandler.SegmentacaoRFM)
			r.Get("/produtos-mais-vendidos", analyticsHandler.ProdutosMaisVendidos)
			r.Get("/maior-valor-compra", analyticsHandler.MaiorValorCompra)
			r.Get("/comportamento-idade", analyticsHandler.ComportamentoIdade)
			r.Get("/gasto-faixa-etaria", analyticsHandler.GastoFaixaEtaria)
		})

		r.Get("/{id}", clienteHandler.GetCliente)
		r.Put("/{id}", clienteHandler.UpdateCliente)
		r.Delete("/{id}", clienteHandler.DeleteCliente)
	})
	return r
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCliente(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		createErr  error
		wantStatus int
	}{
		{
			name:       "created",
			body:       models.Cliente{ID: "c1", Nome: "Ana Silva", Idade: 25},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate id",
			body:       models.Cliente{ID: "c1", Nome: "Ana Silva", Idade: 25},
			createErr:  models.ErrDuplicateIDWithMsg("cliente with id c1 already exists"),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation failure",
			body:       models.Cliente{ID: "c1", Nome: "A", Idade: 25},
			createErr:  models.ErrInvalidInput("invalid fields: nome (min)"),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockClienteService{
				createFn: func(ctx context.Context, cliente *models.Cliente) (*models.Cliente, error) {
					if tt.createErr != nil {
						return nil, tt.createErr
					}
					return cliente, nil
				},
			}

			rec := doRequest(t, newTestRouter(svc), http.MethodPost, "/clientes", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestCreateCliente_InvalidJSON(t *testing.T) {
	svc := &mockClienteService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/clientes", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetCliente(t *testing.T) {
	svc := &mockClienteService{
		getByIDFn: func(ctx context.Context, id string) (*models.Cliente, error) {
			if id == "c1" {
				return &models.Cliente{ID: "c1", Nome: "Ana Silva", Idade: 25}, nil
			}
			return nil, models.ErrNotFoundWithMsg("cliente with id " + id + " not found")
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, http.MethodGet, "/clientes/c1", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var got models.Cliente
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if got.ID != "c1" || got.Nome != "Ana Silva" {
		t.Errorf("body = %+v, want cliente c1", got)
	}

	rec = doRequest(t, router, http.MethodGet, "/clientes/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestListClientes(t *testing.T) {
	var captured models.ClienteFilter
	svc := &mockClienteService{
		listFn: func(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error) {
			captured = filter
			return []*models.Cliente{}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, http.MethodGet, "/clientes?nome=ana&idade_min=30", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if captured.Nome != "ana" || captured.IdadeMin != 30 {
		t.Errorf("filter = %+v, want nome=ana idade_min=30", captured)
	}

	rec = doRequest(t, router, http.MethodGet, "/clientes?idade_min=abc", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status for bad idade_min = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestUpdateCliente(t *testing.T) {
	svc := &mockClienteService{
		updateFn: func(ctx context.Context, id string, patch *models.ClienteUpdate) (*models.Cliente, error) {
			if id != "c1" {
				return nil, models.ErrNotFoundWithMsg("cliente with id " + id + " not found or unchanged")
			}
			return &models.Cliente{ID: "c1", Nome: "Ana", Idade: *patch.Idade}, nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, http.MethodPut, "/clientes/c1", map[string]int{"idade": 26})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = doRequest(t, router, http.MethodPut, "/clientes/missing", map[string]int{"idade": 26})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteCliente(t *testing.T) {
	svc := &mockClienteService{
		deleteFn: func(ctx context.Context, id string) (bool, error) {
			return id == "c1", nil
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, http.MethodDelete, "/clientes/c1", nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("delete response has body %q, want empty", rec.Body.String())
	}

	rec = doRequest(t, router, http.MethodDelete, "/clientes/missing", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
