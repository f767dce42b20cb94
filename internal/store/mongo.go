package store

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	apperrors "hostelhub/pkg/errors"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	snapshotCollection = "snapshots"
	snapshotDocID      = "snapshot"

	// Bounded retries for the version CAS; contention beyond this is
	// surfaced as StoreUnavailable so callers can retry.
	maxCASAttempts = 5
)

// snapshotDocument is the single persisted document: the whole entity set
// plus a version counter that grows by one on every committed Update.
type snapshotDocument struct {
	ID       string         `bson:"_id"`
	Version  int64          `bson:"version"`
	Snapshot model.Snapshot `bson:",inline"`
}

// MongoStore holds the snapshot in one document and serializes updates
// with a compare-and-swap on the version counter: the replace filter
// matches both _id and the version that was loaded, so a concurrent
// commit in between makes the swap miss and the read-modify-write is
// retried against the newer snapshot.
type MongoStore struct {
	collection *mongo.Collection
	corrupted  atomic.Bool
	log        *logger.Logger
}

func Connect(ctx context.Context, uri string, timeout time.Duration, log *logger.Logger) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Successfully connected to MongoDB")
	return client, nil
}

func NewMongoStore(ctx context.Context, client *mongo.Client, database string, log *logger.Logger) (*MongoStore, error) {
	s := &MongoStore{
		collection: client.Database(database).Collection(snapshotCollection),
		log:        log,
	}

	empty := snapshotDocument{
		ID:       snapshotDocID,
		Version:  0,
		Snapshot: *model.NewSnapshot(),
	}
	if _, err := s.collection.InsertOne(ctx, empty); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.StoreUnavailable(err)
		}
	} else {
		log.Info("Bootstrapped empty snapshot", "database", database, "collection", snapshotCollection)
	}

	return s, nil
}

func (s *MongoStore) View(ctx context.Context, fn func(*model.Snapshot) error) error {
	doc, err := s.loadDocument(ctx)
	if err != nil {
		return err
	}
	return fn(&doc.Snapshot)
}

func (s *MongoStore) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	for attempt := 0; attempt < maxCASAttempts; attempt++ {
		doc, err := s.loadDocument(ctx)
		if err != nil {
			return err
		}

		if err := fn(&doc.Snapshot); err != nil {
			return err
		}

		loadedVersion := doc.Version
		doc.Version++

		result, err := s.collection.ReplaceOne(ctx,
			bson.M{"_id": snapshotDocID, "version": loadedVersion},
			doc,
		)
		if err != nil {
			return apperrors.StoreUnavailable(err)
		}
		if result.MatchedCount == 1 {
			return nil
		}

		s.log.Debug("Snapshot version moved underneath update, retrying",
			"loaded_version", loadedVersion,
			"attempt", attempt+1,
		)
	}

	return apperrors.StoreUnavailable(
		fmt.Errorf("snapshot version contention persisted across %d attempts", maxCASAttempts))
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.collection.Database().Client().Ping(ctx, nil)
}

func (s *MongoStore) loadDocument(ctx context.Context) (*snapshotDocument, error) {
	if s.corrupted.Load() {
		return nil, apperrors.CorruptState(errors.New("store is poisoned"))
	}

	var doc snapshotDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": snapshotDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &snapshotDocument{
				ID:       snapshotDocID,
				Snapshot: *model.NewSnapshot(),
			}, nil
		}
		if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
			return nil, apperrors.StoreUnavailable(err)
		}
		var cmdErr mongo.CommandError
		if errors.As(err, &cmdErr) {
			return nil, apperrors.StoreUnavailable(err)
		}
		// Anything else out of Decode means the stored document no longer
		// matches the snapshot schema.
		s.corrupted.Store(true)
		s.log.Error("Snapshot document failed to decode, store poisoned until repaired", "error", err)
		return nil, apperrors.CorruptState(err)
	}

	return &doc, nil
}
