package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/clientelab/cliente-analytics-api/internal/models"
	"github.com/clientelab/cliente-analytics-api/internal/service"
)

// ClienteHandler handles cliente CRUD HTTP requests
type ClienteHandler struct {
	clienteService service.ClienteService
	logger         *slog.Logger
}

// NewClienteHandler creates a new cliente handler
func NewClienteHandler(clienteService service.ClienteService, logger *slog.Logger) *ClienteHandler {
	return &ClienteHandler{
		clienteService: clienteService,
		logger:         logger,
	}
}

// CreateCliente handles POST /clientes
func (h *ClienteHandler) CreateCliente(w http.ResponseWriter, r *http.Request) {
	var cliente models.Cliente

	if err := json.NewDecoder(r.Body).Decode(&cliente); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	created, err := h.clienteService.Create(r.Context(), &cliente)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, created)
}

// ListClientes handles GET /clientes
func (h *ClienteHandler) ListClientes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := models.ClienteFilter{
		Nome: query.Get("nome"),
	}

	if raw := query.Get("idade_min"); raw != "" {
		idadeMin, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_QUERY", "idade_min must be an integer")
			return
		}
		filter.IdadeMin = idadeMin
	}

	clientes, err := h.clienteService.List(r.Context(), filter)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, clientes)
}

// GetCliente handles GET /clientes/{id}
func (h *ClienteHandler) GetCliente(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cliente, err := h.clienteService.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, cliente)
}

// UpdateCliente handles PUT /clientes/{id}
func (h *ClienteHandler) UpdateCliente(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch models.ClienteUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	cliente, err := h.clienteService.Update(r.Context(), id, &patch)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, cliente)
}

// DeleteCliente handles DELETE /clientes/{id}
func (h *ClienteHandler) DeleteCliente(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	deleted, err := h.clienteService.Delete(r.Context(), id)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	if !deleted {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "cliente with id "+id+" not found")
		return
	}

	respondNoContent(w)
}
