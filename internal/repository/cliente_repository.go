package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clientelab/cliente-analytics-api/internal/models"
)

// ClienteRepository defines the interface for cliente data access
type ClienteRepository interface {
	Insert(ctx context.Context, cliente *models.Cliente) error
	FindByID(ctx context.Context, id string) (*models.Cliente, error)
	Find(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error)
	Update(ctx context.Context, id string, set bson.M) (matched, modified int64, err error)
	Delete(ctx context.Context, id string) (bool, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error
}

// mongoClienteRepository implements ClienteRepository against one collection
type mongoClienteRepository struct {
	collection *mongo.Collection
}

// NewClienteRepository creates a new cliente repository
func NewClienteRepository(collection *mongo.Collection) ClienteRepository {
	return &mongoClienteRepository{collection: collection}
}

// noInternalID hides the storage-assigned _id from everything above this layer
var noInternalID = options.FindOne().SetProjection(bson.M{"_id": 0})

// Insert stores a new cliente document
func (r *mongoClienteRepository) Insert(ctx context.Context, cliente *models.Cliente) error {
	_, err := r.collection.InsertOne(ctx, cliente)
	if mongo.IsDuplicateKeyError(err) {
		return models.ErrDuplicateIDWithMsg(fmt.Sprintf("cliente with id %s already exists", cliente.ID))
	}
	if err != nil {
		return fmt.Errorf("failed to insert cliente: %w", err)
	}
	return nil
}

// FindByID retrieves a cliente by its external id
func (r *mongoClienteRepository) FindByID(ctx context.Context, id string) (*models.Cliente, error) {
	cliente := &models.Cliente{}
	err := r.collection.FindOne(ctx, bson.M{"id": id}, noInternalID).Decode(cliente)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFoundWithMsg(fmt.Sprintf("cliente with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find cliente: %w", err)
	}

	return cliente, nil
}

// Find retrieves clientes matching the filter; an empty filter matches everything
func (r *mongoClienteRepository) Find(ctx context.Context, filter models.ClienteFilter) ([]*models.Cliente, error) {
	query := bson.M{}
	if filter.Nome != "" {
		query["nome"] = bson.M{"$regex": filter.Nome, "$options": "i"}
	}
	if filter.IdadeMin > 0 {
		query["idade"] = bson.M{"$gte": filter.IdadeMin}
	}

	cursor, err := r.collection.Find(ctx, query, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("failed to list clientes: %w", err)
	}

	clientes := []*models.Cliente{}
	if err := cursor.All(ctx, &clientes); err != nil {
		return nil, fmt.Errorf("failed to decode clientes: %w", err)
	}

	return clientes, nil
}

// Update applies a partial $set to one cliente and reports matched/modified counts
func (r *mongoClienteRepository) Update(ctx context.Context, id string, set bson.M) (int64, int64, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to update cliente: %w", err)
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

// Delete removes one cliente and reports whether a document was removed
func (r *mongoClienteRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete cliente: %w", err)
	}
	return result.DeletedCount > 0, nil
}

// Aggregate runs a pipeline and decodes every result document into out
func (r *mongoClienteRepository) Aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("failed to run aggregation: %w", err)
	}

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("failed to decode aggregation results: %w", err)
	}

	return nil
}
