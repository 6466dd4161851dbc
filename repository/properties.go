package repository

import (
	"CasaFacil/models"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Properties struct {
	collection *mongo.Collection
}

func NewProperties(db *mongo.Database, collectionName string) *Properties {
	if collectionName == "" {
		collectionName = "properties"
	}
	return &Properties{collection: db.Collection(collectionName)}
}

func (r *Properties) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "available", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	return err
}

func (r *Properties) Create(ctx context.Context, property models.Property) error {
	_, err := r.collection.InsertOne(ctx, property)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *Properties) Get(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// ListAvailable returns available listings, newest first. limit <= 0 means
// no limit.
func (r *Properties) ListAvailable(ctx context.Context, limit int64) ([]models.Property, error) {
	return r.find(ctx, bson.M{"available": true}, limit)
}

func (r *Properties) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	return r.find(ctx, bson.M{"ownerId": ownerID}, 0)
}

// Update applies patch and returns the stored document. Last writer wins.
func (r *Properties) Update(ctx context.Context, id string, patch models.PropertyPatch) (*models.Property, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var property models.Property
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patch.SetDoc()}, opts).Decode(&property)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *Properties) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *Properties) CountAvailable(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"available": true})
}

func (r *Properties) find(ctx context.Context, filter bson.M, limit int64) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}
