package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primstrade/platform/internal/core/domain"
)

const collectionStatusChanges = "signal_status_changes"

// AuditRepository stores status change entries keyed by their ULID.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionStatusChanges)}
}

type statusChangeDoc struct {
	ID        string    `bson:"_id"`
	SignalID  string    `bson:"signalId"`
	From      string    `bson:"from"`
	To        string    `bson:"to"`
	ActorID   string    `bson:"actorId"`
	RequestID string    `bson:"requestId,omitempty"`
	At        time.Time `bson:"at"`
}

// InsertStatusChange writes one entry. Re-inserting the same id is a no-op so
// retried writes do not duplicate history.
func (r *AuditRepository) InsertStatusChange(ctx context.Context, change *domain.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := statusChangeDoc{
		ID:        change.ID,
		SignalID:  change.SignalID,
		From:      string(change.From),
		To:        string(change.To),
		ActorID:   change.ActorID,
		RequestID: change.RequestID,
		At:        change.At,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("insert status change: %w", err)
	}
	return nil
}

// ListStatusChanges returns the history of one signal, oldest first.
func (r *AuditRepository) ListStatusChanges(ctx context.Context, signalID string) ([]*domain.StatusChange, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"signalId": signalID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status changes: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []statusChangeDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode status changes: %w", err)
	}

	out := make([]*domain.StatusChange, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.StatusChange{
			ID:        d.ID,
			SignalID:  d.SignalID,
			From:      domain.SignalStatus(d.From),
			To:        domain.SignalStatus(d.To),
			ActorID:   d.ActorID,
			RequestID: d.RequestID,
			At:        d.At.UTC(),
		})
	}
	return out, nil
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "signalId", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}
