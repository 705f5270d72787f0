package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/primstrade/platform/internal/core/domain"
	"github.com/primstrade/platform/internal/core/ports"
)

const collectionSignals = "tradesignals"

type SignalRepository struct {
	coll *mongo.Collection
}

func NewSignalRepository(db *mongo.Database) *SignalRepository {
	return &SignalRepository{coll: db.Collection(collectionSignals)}
}

type signalDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Asset      string             `bson:"asset"`
	EntryPrice float64            `bson:"entryPrice"`
	StopLoss   float64            `bson:"stopLoss"`
	TakeProfit float64            `bson:"takeProfit"`
	Timeframe  string             `bson:"timeframe"`
	Rationale  string             `bson:"rationale"`
	ImageURL   string             `bson:"imageUrl,omitempty"`
	Status     string             `bson:"status"`
	CreatedBy  primitive.ObjectID `bson:"createdBy"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *signalDoc) toDomain() *domain.TradeSignal {
	return &domain.TradeSignal{
		ID:         d.ID.Hex(),
		Asset:      d.Asset,
		EntryPrice: d.EntryPrice,
		StopLoss:   d.StopLoss,
		TakeProfit: d.TakeProfit,
		Timeframe:  d.Timeframe,
		Rationale:  d.Rationale,
		ImageURL:   d.ImageURL,
		Status:     domain.SignalStatus(d.Status),
		CreatedBy:  d.CreatedBy.Hex(),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

func (r *SignalRepository) Create(ctx context.Context, s *domain.TradeSignal) (*domain.TradeSignal, error) {
	owner, err := objectID(s.CreatedBy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := signalDoc{
		ID:         primitive.NewObjectID(),
		Asset:      s.Asset,
		EntryPrice: s.EntryPrice,
		StopLoss:   s.StopLoss,
		TakeProfit: s.TakeProfit,
		Timeframe:  s.Timeframe,
		Rationale:  s.Rationale,
		ImageURL:   s.ImageURL,
		Status:     string(s.Status),
		CreatedBy:  owner,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert trade signal: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *SignalRepository) FindByID(ctx context.Context, id string) (*domain.TradeSignal, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc signalDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrSignalNotFound)
	}
	return doc.toDomain(), nil
}

// List returns the signals matching filter, newest first.
func (r *SignalRepository) List(ctx context.Context, filter ports.SignalFilter) ([]*domain.TradeSignal, error) {
	query := bson.M{}
	if filter.CreatedBy != "" {
		owner, err := objectID(filter.CreatedBy)
		if err != nil {
			return nil, err
		}
		query["createdBy"] = owner
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find trade signals: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []signalDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode trade signals: %w", err)
	}

	signals := make([]*domain.TradeSignal, 0, len(docs))
	for i := range docs {
		signals = append(signals, docs[i].toDomain())
	}
	return signals, nil
}

// Update applies changes and returns the stored signal. An empty ImageURL
// removes the image field.
func (r *SignalRepository) Update(ctx context.Context, id string, changes ports.SignalChanges) (*domain.TradeSignal, error) {
	set := bson.M{"updatedAt": changes.UpdatedAt}
	if changes.Asset != nil {
		set["asset"] = *changes.Asset
	}
	if changes.EntryPrice != nil {
		set["entryPrice"] = *changes.EntryPrice
	}
	if changes.StopLoss != nil {
		set["stopLoss"] = *changes.StopLoss
	}
	if changes.TakeProfit != nil {
		set["takeProfit"] = *changes.TakeProfit
	}
	if changes.Timeframe != nil {
		set["timeframe"] = *changes.Timeframe
	}
	if changes.Rationale != nil {
		set["rationale"] = *changes.Rationale
	}

	update := bson.M{"$set": set}
	if changes.ImageURL != nil {
		if *changes.ImageURL == "" {
			update["$unset"] = bson.M{"imageUrl": ""}
		} else {
			set["imageUrl"] = *changes.ImageURL
		}
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *SignalRepository) UpdateStatus(ctx context.Context, id string, status domain.SignalStatus, at time.Time) (*domain.TradeSignal, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{"status": string(status), "updatedAt": at}})
}

func (r *SignalRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete trade signal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSignalNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the owner, public and admin lists.
func (r *SignalRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *SignalRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.TradeSignal, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc signalDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrSignalNotFound)
	}
	return doc.toDomain(), nil
}
