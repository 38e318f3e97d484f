// Package mongo implements storage in a mongodb collection.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jacobpatterson1549/selene-tiles/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	databaseName   = "selene-tiles-db"
	collectionName = "tile_storage"
	keyField       = "_id"
	valueField     = "value"
)

// Storage keeps one document per key in a collection.
type Storage struct {
	Values *mongo.Collection
	db.Config
}

// NewStorage connects to the database and creates storage in the tile_storage collection.
func NewStorage(ctx context.Context, cfg db.Config, databaseURL string) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating mongo storage: validation: %w", err)
	}
	clientOptions := options.Client()
	clientOptions.ApplyURI(databaseURL)
	var client *mongo.Client
	if err := cfg.WithTimeout(ctx, func(ctx context.Context) error {
		var err error
		client, err = mongo.Connect(ctx, clientOptions)
		return err
	}); err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	database := client.Database(databaseName)
	s := Storage{
		Values: database.Collection(collectionName),
		Config: cfg,
	}
	return &s, nil
}

// Get reads the value for the key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var document struct {
		Value string `bson:"value"`
	}
	err := s.WithTimeout(ctx, func(ctx context.Context) error {
		result := s.Values.FindOne(ctx, d(e(keyField, key)))
		return result.Decode(&document)
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return document.Value, true, nil
}

// Set writes the value for the key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	filter := d(e(keyField, key))
	replacement := d(e(keyField, key), e(valueField, value))
	replaceOptions := options.Replace()
	replaceOptions.SetUpsert(true)
	if err := s.WithTimeout(ctx, func(ctx context.Context) error {
		_, err := s.Values.ReplaceOne(ctx, filter, replacement, replaceOptions)
		return err
	}); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Clear removes all values.
func (s *Storage) Clear(ctx context.Context) error {
	if err := s.WithTimeout(ctx, func(ctx context.Context) error {
		_, err := s.Values.DeleteMany(ctx, bson.D{})
		return err
	}); err != nil {
		return fmt.Errorf("clearing values: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Storage) Close(ctx context.Context) error {
	return s.Values.Database().Client().Disconnect(ctx)
}

// d is a helper function to create bson.D elements.
func d(e ...bson.E) bson.D {
	return bson.D(e)
}

// e is a helper function to create bson.E elements.
func e(key string, value interface{}) bson.E {
	return bson.E{Key: key, Value: value}
}
