package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clientelab/cliente-analytics-api/internal/models"
	"github.com/clientelab/cliente-analytics-api/internal/repository"
)

// ClienteService handles cliente business logic
type ClienteService interface {
	Create(ctx context.Context, cliente *models.Cliente) (*models.Cliente, error)
	GetByID(ctx context.Context, id string) (*models.Cliente, error)
	List(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error)
	Update(ctx context.Context, id string, patch *models.ClienteUpdate) (*models.Cliente, error)
	Delete(ctx context.Context, id string) (bool, error)

	AnalisarFaixaEtaria(ctx context.Context) ([]models.FaixaEtariaStats, error)
	SegmentacaoRFM(ctx context.Context) ([]models.SegmentoRFM, error)
	ProdutosMaisVendidos(ctx context.Context, limit int) ([]models.ProdutoVendas, error)
	ClientesMaiorValorCompra(ctx context.Context, limit int) ([]models.CompraTop, error)
	ComportamentoPorIdade(ctx context.Context) ([]models.ComportamentoIdade, error)
	GastoPorFaixaEtaria(ctx context.Context) ([]models.GastoFaixaEtaria, error)
}

type clienteService struct {
	clienteRepo repository.ClienteRepository
	logger      *slog.Logger
}

// NewClienteService creates a new cliente service
func NewClienteService(
	clienteRepo repository.ClienteRepository,
	logger *slog.Logger,
) ClienteService {
	return &clienteService{
		clienteRepo: clienteRepo,
		logger:      logger,
	}
}

// Create creates a new cliente. The id must not be in use; the pre-insert
// lookup gives the friendly error, the unique index backs it up when two
// creates race.
func (s *clienteService) Create(ctx context.Context, cliente *models.Cliente) (*models.Cliente, error) {
	if err := cliente.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.clienteRepo.FindByID(ctx, cliente.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to check cliente id: %w", err)
	}
	if existing != nil {
		return nil, models.ErrDuplicateIDWithMsg(
			fmt.Sprintf("cliente with id %s already exists", cliente.ID),
		)
	}

	if err := s.clienteRepo.Insert(ctx, cliente); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, err
		}
		s.logger.Error("failed to create cliente",
			slog.String("cliente_id", cliente.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cliente: %w", err)
	}

	s.logger.Info("cliente created",
		slog.String("cliente_id", cliente.ID),
	)

	// Re-read so the response reflects the canonical stored shape
	return s.clienteRepo.FindByID(ctx, cliente.ID)
}

// GetByID retrieves a cliente by id
func (s *clienteService) GetByID(ctx context.Context, id string) (*models.Cliente, error) {
	return s.clienteRepo.FindByID(ctx, id)
}

// List retrieves clientes matching the optional filters
func (s *clienteService) List(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error) {
	clientes, err := s.clienteRepo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}
	return clientes, nil
}

// Update applies a partial patch to an existing cliente. A patch that
// modifies nothing is indistinguishable from a missing id: both report
// not found, matching the modified-count signal this behavior rides on.
func (s *clienteService) Update(ctx context.Context, id string, patch *models.ClienteUpdate) (*models.Cliente, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	// An empty $set is a server-side error in Mongo, not a zero
	// modified count, so the field-less patch is answered here
	if patch.IsEmpty() {
		return nil, models.ErrNotFoundWithMsg(
			fmt.Sprintf("cliente with id %s not found or unchanged", id),
		)
	}

	set := bson.M{}
	if patch.Nome != nil {
		set["nome"] = *patch.Nome
	}
	if patch.Idade != nil {
		set["idade"] = *patch.Idade
	}
	if patch.UltimaCompra != nil {
		set["ultima_compra"] = patch.UltimaCompra
	}

	_, modified, err := s.clienteRepo.Update(ctx, id, set)
	if err != nil {
		s.logger.Error("failed to update cliente",
			slog.String("cliente_id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to update cliente: %w", err)
	}

	if modified == 0 {
		return nil, models.ErrNotFoundWithMsg(
			fmt.Sprintf("cliente with id %s not found or unchanged", id),
		)
	}

	s.logger.Info("cliente updated",
		slog.String("cliente_id", id),
	)

	return s.clienteRepo.FindByID(ctx, id)
}

// Delete removes a cliente and reports whether anything was deleted
func (s *clienteService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.clienteRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete cliente",
			slog.String("cliente_id", id),
			slog.String("error", err.Error()),
		)
		return false, fmt.Errorf("failed to delete cliente: %w", err)
	}

	if deleted {
		s.logger.Info("cliente deleted",
			slog.String("cliente_id", id),
		)
	}

	return deleted, nil
}

// AnalisarFaixaEtaria groups clientes into age-band buckets with purchase stats
func (s *clienteService) AnalisarFaixaEtaria(ctx context.Context) ([]models.FaixaEtariaStats, error) {
	out := []models.FaixaEtariaStats{}
	if err := s.runPipeline(ctx, "faixa-etaria", faixaEtariaPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SegmentacaoRFM buckets clientes by recency of their last purchase
func (s *clienteService) SegmentacaoRFM(ctx context.Context) ([]models.SegmentoRFM, error) {
	out := []models.SegmentoRFM{}
	if err := s.runPipeline(ctx, "segmentacao-rfm", segmentacaoRFMPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProdutosMaisVendidos ranks products by sale count
func (s *clienteService) ProdutosMaisVendidos(ctx context.Context, limit int) ([]models.ProdutoVendas, error) {
	if limit <= 0 {
		limit = DefaultAnalyticsLimit
	}

	out := []models.ProdutoVendas{}
	if err := s.runPipeline(ctx, "produtos-mais-vendidos", produtosMaisVendidosPipeline(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClientesMaiorValorCompra ranks clientes by last purchase value
func (s *clienteService) ClientesMaiorValorCompra(ctx context.Context, limit int) ([]models.CompraTop, error) {
	if limit <= 0 {
		limit = DefaultAnalyticsLimit
	}

	out := []models.CompraTop{}
	if err := s.runPipeline(ctx, "maior-valor-compra", maiorValorCompraPipeline(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ComportamentoPorIdade summarizes purchase behavior per age band
func (s *clienteService) ComportamentoPorIdade(ctx context.Context) ([]models.ComportamentoIdade, error) {
	out := []models.ComportamentoIdade{}
	if err := s.runPipeline(ctx, "comportamento-idade", comportamentoPorIdadePipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GastoPorFaixaEtaria totals spending per age band
func (s *clienteService) GastoPorFaixaEtaria(ctx context.Context) ([]models.GastoFaixaEtaria, error) {
	out := []models.GastoFaixaEtaria{}
	if err := s.runPipeline(ctx, "gasto-faixa-etaria", gastoPorFaixaEtariaPipeline(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// runPipeline executes one aggregation and re-signals any failure as a
// pipeline-execution error carrying the underlying cause. No retries.
func (s *clienteService) runPipeline(ctx context.Context, name string, pipeline mongo.Pipeline, out interface{}) error {
	if err := s.clienteRepo.Aggregate(ctx, pipeline, out); err != nil {
		s.logger.Error("aggregation pipeline failed",
			slog.String("pipeline", name),
			slog.String("error", err.Error()),
		)
		return models.ErrPipelineWithCause(
			fmt.Sprintf("failed to run %s analysis", name),
			err,
		)
	}
	return nil
}
