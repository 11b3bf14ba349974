package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoCollection[T any, PT EntityPtr[T]] struct {
	coll *mongo.Collection
}

// NewMongoCollection returns a Collection backed by a MongoDB collection.
func NewMongoCollection[T any, PT EntityPtr[T]](db *mongo.Database, name string) Collection[T] {
	return &mongoCollection[T, PT]{coll: db.Collection(name)}
}

func (r *mongoCollection[T, PT]) Insert(ctx context.Context, doc *T) error {
	stampNew(PT(doc), utcNow())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", r.coll.Name(), err)
	}
	return nil
}

func (r *mongoCollection[T, PT]) FindByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.coll.FindOne(ctx, byID(id)).Decode(&out); err != nil {
		return nil, r.mapErr(err)
	}
	return &out, nil
}

func (r *mongoCollection[T, PT]) FindFirst(ctx context.Context) (*T, error) {
	var out T
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if err := r.coll.FindOne(ctx, bson.D{}, opts).Decode(&out); err != nil {
		return nil, r.mapErr(err)
	}
	return &out, nil
}

func (r *mongoCollection[T, PT]) List(ctx context.Context, q PageQuery) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.coll.Name(), err)
	}
	out := make([]T, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return out, nil
}

func (r *mongoCollection[T, PT]) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", r.coll.Name(), err)
	}
	return n, nil
}

func (r *mongoCollection[T, PT]) Replace(ctx context.Context, doc *T) error {
	meta := PT(doc).EntityMeta()
	stampUpdate(PT(doc), utcNow())
	res, err := r.coll.ReplaceOne(ctx, byID(meta.ID), doc)
	if err != nil {
		return fmt.Errorf("replace in %s: %w", r.coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoCollection[T, PT]) Delete(ctx context.Context, id string) (*T, error) {
	var out T
	if err := r.coll.FindOneAndDelete(ctx, byID(id)).Decode(&out); err != nil {
		return nil, r.mapErr(err)
	}
	return &out, nil
}

func (r *mongoCollection[T, PT]) mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("query %s: %w", r.coll.Name(), err)
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}
