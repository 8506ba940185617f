package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cargotrack/tracking-api/internal/core/domain"
)

const collectionShipments = "shipments"

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// Create inserts a new shipment document. The repository owns the
// primary key and the created/updated stamps; a tracking id collision
// surfaces as domain.ErrDuplicateTracking via the unique index.
func (r *ShipmentRepository) Create(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}

	if _, err := r.col.InsertOne(ctx, s); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTracking
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// FindByID retrieves a shipment by primary key. An id that is not valid
// ObjectID hex cannot match any document and is reported as not found
// so callers can retry the identifier as a tracking id.
func (r *ShipmentRepository) FindByID(ctx context.Context, id string) (*domain.Shipment, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrShipmentNotFound
	}
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByTrackingID retrieves a shipment by its external tracking code.
func (r *ShipmentRepository) FindByTrackingID(ctx context.Context, trackingID string) (*domain.Shipment, error) {
	return r.findOne(ctx, bson.M{"tracking_id": trackingID})
}

func (r *ShipmentRepository) findOne(ctx context.Context, filter bson.M) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Shipment
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, fmt.Errorf("find shipment: %w", err)
	}
	return &s, nil
}

// Update replaces the stored document. Concurrent updates to the same
// shipment are last-write-wins; there is no optimistic locking.
func (r *ShipmentRepository) Update(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	s.UpdatedAt = time.Now().UTC()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrShipmentNotFound
	}
	return nil
}

// List returns all shipments sorted by creation time, newest first.
func (r *ShipmentRepository) List(ctx context.Context) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer cur.Close(ctx)

	var shipments []*domain.Shipment
	if err := cur.All(ctx, &shipments); err != nil {
		return nil, fmt.Errorf("decode shipments: %w", err)
	}
	return shipments, nil
}

// FindOverdue returns in-transit shipments whose estimated ETA has
// already passed.
func (r *ShipmentRepository) FindOverdue(ctx context.Context, now time.Time) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"status":        domain.StatusInTransit,
		"estimated_eta": bson.M{"$lt": now},
	}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find overdue shipments: %w", err)
	}
	defer cur.Close(ctx)

	var shipments []*domain.Shipment
	if err := cur.All(ctx, &shipments); err != nil {
		return nil, fmt.Errorf("decode overdue shipments: %w", err)
	}
	return shipments, nil
}

// EnsureIndexes creates the indexes backing tracking id uniqueness and
// the newest-first listing.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "tracking_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "estimated_eta", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
