package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/duccv/whereisit/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoItemRepository struct {
	coll *mongo.Collection
}

func NewMongoItemRepository(coll *mongo.Collection) ItemRepository {
	return &mongoItemRepository{coll: coll}
}

func (r *mongoItemRepository) FindAll(ctx context.Context) ([]model.Item, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoItemRepository) FindByID(ctx context.Context, id string) (model.Item, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var item model.Item
	err = r.coll.FindOne(ctx, bson.M{model.ItemIDField: oid}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item %s: %w", id, err)
	}
	return item, nil
}

func (r *mongoItemRepository) FindLatest(ctx context.Context, limit int64) ([]model.Item, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: model.ItemDateField, Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoItemRepository) FindByContactEmail(ctx context.Context, email *string) ([]model.Item, error) {
	var value any
	if email != nil {
		value = *email
	}
	return r.find(ctx, bson.M{model.ItemContactEmail: value})
}

func (r *mongoItemRepository) find(
	ctx context.Context,
	filter bson.M,
	opts ...options.Lister[options.FindOptions],
) ([]model.Item, error) {
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find items: %w", err)
	}
	items := make([]model.Item, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return items, nil
}

func (r *mongoItemRepository) Insert(ctx context.Context, item model.Item) (*model.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}
	return &model.InsertResult{Acknowledged: res.Acknowledged, InsertedID: res.InsertedID}, nil
}

func (r *mongoItemRepository) Update(ctx context.Context, id string, set model.Item) (*model.UpdateResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{model.ItemIDField: oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("update item %s: %w", id, err)
	}
	return &model.UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}, nil
}

func (r *mongoItemRepository) Delete(ctx context.Context, id string) (*model.DeleteResult, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{model.ItemIDField: oid})
	if err != nil {
		return nil, fmt.Errorf("delete item %s: %w", id, err)
	}
	return &model.DeleteResult{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}, nil
}

type mongoRecoveryRepository struct {
	coll *mongo.Collection
}

func NewMongoRecoveryRepository(coll *mongo.Collection) RecoveryRepository {
	return &mongoRecoveryRepository{coll: coll}
}

func (r *mongoRecoveryRepository) FindAll(ctx context.Context) ([]bson.M, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find recoveries: %w", err)
	}
	recoveries := make([]bson.M, 0)
	if err := cursor.All(ctx, &recoveries); err != nil {
		return nil, fmt.Errorf("decode recoveries: %w", err)
	}
	return recoveries, nil
}

func (r *mongoRecoveryRepository) Insert(ctx context.Context, recovery *model.Recovery) (*model.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, recovery)
	if err != nil {
		return nil, fmt.Errorf("insert recovery: %w", err)
	}
	return &model.InsertResult{Acknowledged: res.Acknowledged, InsertedID: res.InsertedID}, nil
}
