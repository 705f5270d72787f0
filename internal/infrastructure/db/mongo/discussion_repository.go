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

const collectionDiscussions = "discussions"

type DiscussionRepository struct {
	coll *mongo.Collection
}

func NewDiscussionRepository(db *mongo.Database) *DiscussionRepository {
	return &DiscussionRepository{coll: db.Collection(collectionDiscussions)}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Content   string             `bson:"content"`
	CreatedBy primitive.ObjectID `bson:"createdBy"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

type discussionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedBy primitive.ObjectID `bson:"createdBy"`
	Comments  []commentDoc       `bson:"comments"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *discussionDoc) toDomain() *domain.Discussion {
	comments := make([]domain.Comment, 0, len(d.Comments))
	for _, c := range d.Comments {
		comments = append(comments, domain.Comment{
			ID:        c.ID.Hex(),
			Content:   c.Content,
			CreatedBy: c.CreatedBy.Hex(),
			CreatedAt: c.CreatedAt.UTC(),
			UpdatedAt: c.UpdatedAt.UTC(),
		})
	}
	return &domain.Discussion{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedBy: d.CreatedBy.Hex(),
		Comments:  comments,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *DiscussionRepository) Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error) {
	author, err := objectID(d.CreatedBy)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := discussionDoc{
		ID:        primitive.NewObjectID(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedBy: author,
		Comments:  []commentDoc{},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert discussion: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DiscussionRepository) FindByID(ctx context.Context, id string) (*domain.Discussion, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc discussionDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrDiscussionNotFound)
	}
	return doc.toDomain(), nil
}

// List returns every discussion, newest first.
func (r *DiscussionRepository) List(ctx context.Context) ([]*domain.Discussion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find discussions: %w", err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var docs []discussionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode discussions: %w", err)
	}

	out := make([]*domain.Discussion, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *DiscussionRepository) Update(ctx context.Context, id string, changes ports.DiscussionChanges) (*domain.Discussion, error) {
	set := bson.M{"updatedAt": changes.UpdatedAt}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Content != nil {
		set["content"] = *changes.Content
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *DiscussionRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete discussion: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDiscussionNotFound
	}
	return nil
}

// AddComment appends c to the discussion. The comment id is assigned here.
func (r *DiscussionRepository) AddComment(ctx context.Context, discussionID string, c *domain.Comment) (*domain.Discussion, error) {
	author, err := objectID(c.CreatedBy)
	if err != nil {
		return nil, err
	}

	doc := commentDoc{
		ID:        primitive.NewObjectID(),
		Content:   c.Content,
		CreatedBy: author,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	return r.findOneAndUpdate(ctx, discussionID, bson.M{"$push": bson.M{"comments": doc}})
}

func (r *DiscussionRepository) RemoveComment(ctx context.Context, discussionID, commentID string) (*domain.Discussion, error) {
	cid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, domain.ErrCommentNotFound
	}
	return r.findOneAndUpdate(ctx, discussionID, bson.M{"$pull": bson.M{"comments": bson.M{"_id": cid}}})
}

func (r *DiscussionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

func (r *DiscussionRepository) findOneAndUpdate(ctx context.Context, id string, update bson.M) (*domain.Discussion, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc discussionDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc); err != nil {
		return nil, notFound(err, domain.ErrDiscussionNotFound)
	}
	return doc.toDomain(), nil
}
