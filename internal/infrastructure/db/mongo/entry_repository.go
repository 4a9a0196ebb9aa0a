package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openjournal/diary-system/internal/core/domain"
)

const entriesCollection = "entries"

// EntryRepository implements ports.EntryRepository using MongoDB.
type EntryRepository struct {
	coll *mongo.Collection
}

func NewEntryRepository(db *mongo.Database) *EntryRepository {
	return &EntryRepository{coll: db.Collection(entriesCollection)}
}

type mongoEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Text       string             `bson:"text"`
	InProgress bool               `bson:"in_progress"`
	Result     *string            `bson:"result"`
	CreatedOn  time.Time          `bson:"created_on"`
}

func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoEntry{
		UserID:     entry.UserID,
		Text:       entry.Text,
		InProgress: entry.InProgress,
		Result:     entry.Result,
		CreatedOn:  entry.CreatedOn.UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}

	created := *entry
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEntryNotFound
	}

	var me mongoEntry
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&me); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}
	return me.toDomain(), nil
}

func (r *EntryRepository) FindByUser(ctx context.Context, userID string) ([]domain.Entry, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *EntryRepository) FindAll(ctx context.Context) ([]domain.Entry, error) {
	return r.find(ctx, bson.M{})
}

func (r *EntryRepository) find(ctx context.Context, filter bson.M) ([]domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find entries: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.Entry
	for cur.Next(ctx) {
		var me mongoEntry
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode entry: %w", err)
		}
		entries = append(entries, *me.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// Complete sets the result and clears the in-progress flag in one conditional
// update filtered on in_progress, so only the first completion ever writes.
// A redelivered completion matches nothing and returns success, leaving the
// original result in place.
func (r *EntryRepository) Complete(ctx context.Context, id, result string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEntryNotFound
	}

	filter := bson.M{"_id": oid, "in_progress": true}
	update := bson.M{"$set": bson.M{"in_progress": false, "result": result}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("complete entry: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either already completed (fine) or genuinely missing.
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid})
		if err != nil {
			return fmt.Errorf("complete entry: %w", err)
		}
		if n == 0 {
			return domain.ErrEntryNotFound
		}
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *EntryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func (me *mongoEntry) toDomain() *domain.Entry {
	return &domain.Entry{
		ID:         me.ID.Hex(),
		UserID:     me.UserID,
		Text:       me.Text,
		InProgress: me.InProgress,
		Result:     me.Result,
		CreatedOn:  me.CreatedOn.UTC(),
	}
}
