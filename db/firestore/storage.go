// Package firestore implements storage in a google cloud firestore database.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/jacobpatterson1549/selene-tiles/db"
)

const valueField = "value"

type (
	// Storage keeps one document per key in the storage collection.
	Storage struct {
		client *firestore.Client
		db.Config
	}

	// document is the structure of a stored value.
	document struct {
		Value string `firestore:"value"`
	}
)

// NewStorage creates a firestore client for the project.
func NewStorage(ctx context.Context, cfg db.Config, projectID string) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating firestore storage: validation: %w", err)
	}
	if len(projectID) == 0 {
		return nil, fmt.Errorf("creating firestore storage: validation: project id required")
	}
	client, err := firestore.NewClient(ctx, projectID) // do not timeout context - the client is used by the storage
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}
	s := Storage{
		client: client,
		Config: cfg,
	}
	return &s, nil
}

func (s *Storage) values() *firestore.CollectionRef {
	return s.client.Collection("services").Doc("selene-tiles").Collection("storage")
}

// Get reads the value for the key.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	var d document
	exists := true
	if err := s.WithTimeout(ctx, func(ctx context.Context) error {
		snapshot, err := s.values().Doc(key).Get(ctx)
		if err != nil {
			if snapshot != nil && !snapshot.Exists() {
				exists = false
				return nil
			}
			return err
		}
		return snapshot.DataTo(&d)
	}); err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return d.Value, exists, nil
}

// Set writes the value for the key.
func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.WithTimeout(ctx, func(ctx context.Context) error {
		m := map[string]interface{}{
			valueField: value,
		}
		_, err := s.values().Doc(key).Set(ctx, m)
		return err
	}); err != nil {
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}

// Clear removes all values.
func (s *Storage) Clear(ctx context.Context) error {
	if err := s.WithTimeout(ctx, func(ctx context.Context) error {
		snapshots, err := s.values().Documents(ctx).GetAll()
		if err != nil {
			return err
		}
		bw := s.client.BulkWriter(ctx)
		jobs := make([]*firestore.BulkWriterJob, 0, len(snapshots))
		for _, snapshot := range snapshots {
			job, err := bw.Delete(snapshot.Ref)
			if err != nil {
				bw.End()
				return err
			}
			jobs = append(jobs, job)
		}
		bw.End()
		for _, job := range jobs {
			if _, err := job.Results(); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("clearing values: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *Storage) Close() error {
	return s.client.Close()
}
