package book

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewMongoRepo(coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// mongoFilter builds a filter holding only the constraints present in q.
func mongoFilter(q Query) bson.D {
	filter := bson.D{}
	if q.MinRating != nil {
		filter = append(filter, bson.E{Key: "average_rating", Value: bson.D{{Key: "$gte", Value: *q.MinRating}}})
	}
	if q.NumPages != nil {
		filter = append(filter, bson.E{Key: "num_pages", Value: *q.NumPages})
	}
	if q.Title != nil {
		filter = append(filter, bson.E{Key: "title", Value: primitive.Regex{Pattern: regexp.QuoteMeta(*q.Title), Options: "i"}})
	}
	return filter
}

func mongoFindOptions(q Query) *options.FindOptions {
	opts := options.Find()
	if q.Skip != nil {
		opts.SetSkip(int64(*q.Skip))
	}
	if q.Limit != nil {
		opts.SetLimit(int64(*q.Limit))
	}
	return opts
}

func (r *MongoRepo) Create(ctx context.Context, b Book) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return Book{}, fmt.Errorf("insert book %s: %w", b.ID, err)
	}
	return b, nil
}

func (r *MongoRepo) List(ctx context.Context, q Query) ([]Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, mongoFilter(q), mongoFindOptions(q))
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}

	out := []Book{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return out, nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&b); err != nil {
		return Book{}, translateMongoErr(err, "find book %s", id)
	}
	return b, nil
}

func (r *MongoRepo) Update(ctx context.Context, id string, u Update) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	set := bson.M{}
	for k, v := range u.Fields() {
		set[k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b Book
	err := r.coll.FindOneAndUpdate(ctx, byID(id), bson.D{{Key: "$set", Value: set}}, opts).Decode(&b)
	if err != nil {
		return Book{}, translateMongoErr(err, "update book %s", id)
	}
	return b, nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	if err := r.coll.FindOneAndDelete(ctx, byID(id)).Decode(&b); err != nil {
		return Book{}, translateMongoErr(err, "delete book %s", id)
	}
	return b, nil
}

func translateMongoErr(err error, format string, args ...any) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// MongoIndexes lists the indexes the search filters rely on. A collection
// may hold a single text index, so title and authors share one.
func MongoIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "average_rating", Value: 1}}, Options: options.Index().SetName("average_rating_1")},
		{Keys: bson.D{{Key: "num_pages", Value: 1}}, Options: options.Index().SetName("num_pages_1")},
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "authors", Value: "text"}},
			Options: options.Index().SetName("title_authors_text"),
		},
	}
}

// EnsureIndexes creates the search indexes; existing ones are left as they are.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) ([]string, error) {
	names, err := r.coll.Indexes().CreateMany(ctx, MongoIndexes())
	if err != nil {
		return nil, fmt.Errorf("create indexes: %w", err)
	}
	return names, nil
}
