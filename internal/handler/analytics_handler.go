package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/clientelab/cliente-analytics-api/internal/service"
)

// AnalyticsHandler handles the read-only cliente analytics endpoints
type AnalyticsHandler struct {
	clienteService service.ClienteService
	logger         *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(clienteService service.ClienteService, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		clienteService: clienteService,
		logger:         logger,
	}
}

// FaixaEtaria handles GET /clientes/analise/faixa-etaria
func (h *AnalyticsHandler) FaixaEtaria(w http.ResponseWriter, r *http.Request) {
	result, err := h.clienteService.AnalisarFaixaEtaria(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// SegmentacaoRFM handles GET /clientes/analise/segmentacao-rfm
func (h *AnalyticsHandler) SegmentacaoRFM(w http.ResponseWriter, r *http.Request) {
	result, err := h.clienteService.SegmentacaoRFM(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// ProdutosMaisVendidos handles GET /clientes/analise/produtos-mais-vendidos
func (h *AnalyticsHandler) ProdutosMaisVendidos(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	result, err := h.clienteService.ProdutosMaisVendidos(r.Context(), limit)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// MaiorValorCompra handles GET /clientes/analise/maior-valor-compra
func (h *AnalyticsHandler) MaiorValorCompra(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	result, err := h.clienteService.ClientesMaiorValorCompra(r.Context(), limit)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// ComportamentoIdade handles GET /clientes/analise/comportamento-idade
func (h *AnalyticsHandler) ComportamentoIdade(w http.ResponseWriter, r *http.Request) {
	result, err := h.clienteService.ComportamentoPorIdade(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// GastoFaixaEtaria handles GET /clientes/analise/gasto-faixa-etaria
func (h *AnalyticsHandler) GastoFaixaEtaria(w http.ResponseWriter, r *http.Request) {
	result, err := h.clienteService.GastoPorFaixaEtaria(r.Context())
	if err != nil {
		handleError(w, err, h.logger)
		return
	}
	respondSuccess(w, result)
}

// parseLimit reads the optional limit query parameter. A missing limit
// falls back to the service default; zero, negative or non-numeric
// values are rejected.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_QUERY", "limit must be a positive integer")
		return 0, false
	}

	return limit, true
}
