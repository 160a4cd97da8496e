package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mamadbah2/finalqc/internal/domain/models"
	"github.com/mamadbah2/finalqc/internal/repository"
)

const inspectionsCollection = "final_inspections"

// Connect opens a client against uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client, nil
}

// InspectionRepository stores inspections as single documents with embedded
// child rows, so every write replaces a record atomically.
type InspectionRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *zap.Logger
}

var _ repository.InspectionRepository = (*InspectionRepository)(nil)

// NewInspectionRepository binds the repository to the inspections collection of dbName.
func NewInspectionRepository(client *mongo.Client, dbName string, logger *zap.Logger) *InspectionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &InspectionRepository{
		client:     client,
		collection: client.Database(dbName).Collection(inspectionsCollection),
		logger:     logger.Named("mongodb"),
	}
}

// EnsureIndexes creates the indexes backing the list query.
func (r *InspectionRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "inspection_date", Value: -1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create inspection indexes: %w", err)
	}
	return nil
}

// Create inserts a new inspection document.
func (r *InspectionRepository) Create(ctx context.Context, rec *models.Inspection) error {
	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert inspection: %w", err)
	}
	r.logger.Debug("inspection inserted", zap.String("id", rec.ID))
	return nil
}

// Update replaces the stored document with rec.
func (r *InspectionRepository) Update(ctx context.Context, rec *models.Inspection) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rec.ID}, rec)
	if err != nil {
		return fmt.Errorf("failed to replace inspection %s: %w", rec.ID, err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	r.logger.Debug("inspection replaced", zap.String("id", rec.ID))
	return nil
}

// FindByID loads one inspection.
func (r *InspectionRepository) FindByID(ctx context.Context, id string) (*models.Inspection, error) {
	var rec models.Inspection
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find inspection %s: %w", id, err)
	}
	return &rec, nil
}

// List returns the inspections matching filter, most recent first.
func (r *InspectionRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Inspection, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "inspection_date", Value: -1},
		{Key: "created_at", Value: -1},
	})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.collection.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]*models.Inspection, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode inspections: %w", err)
	}
	return out, nil
}

func buildQuery(filter models.ListFilter) bson.M {
	query := bson.M{}
	if filter.Status.IsSet() {
		query["status"] = filter.Status.String()
	}

	dateRange := bson.M{}
	if filter.From != "" {
		dateRange["$gte"] = filter.From
	}
	if filter.To != "" {
		dateRange["$lte"] = filter.To
	}
	if len(dateRange) > 0 {
		query["inspection_date"] = dateRange
	}

	if filter.Search != "" {
		pattern := bson.M{"$regex": regexp.QuoteMeta(filter.Search), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"po_number": pattern},
			bson.M{"style_no": pattern},
			bson.M{"brand_buyer": pattern},
			bson.M{"factory_name": pattern},
		}
	}
	return query
}

// Close closes the MongoDB connection.
func (r *InspectionRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
