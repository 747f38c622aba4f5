package storage

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/includeviz/pkg/errors"
	"github.com/matzehuels/includeviz/pkg/graph"
)

// Default database and collection names.
const (
	DefaultDatabase   = "includeviz"
	DefaultCollection = "layouts"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore stores layouts in a MongoDB collection. The layout ID is the
// document _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and pings the primary.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// SaveLayout upserts l.
func (s *MongoStore) SaveLayout(ctx context.Context, l graph.Layout) error {
	if err := errors.ValidateLayoutID(l.ID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "save layout %s", l.ID)
	}
	return nil
}

// GetLayout loads a layout by ID.
func (s *MongoStore) GetLayout(ctx context.Context, id string) (graph.Layout, error) {
	if err := errors.ValidateLayoutID(id); err != nil {
		return graph.Layout{}, err
	}
	var l graph.Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return graph.Layout{}, errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
	}
	if err != nil {
		return graph.Layout{}, errors.Wrap(errors.ErrCodeStorage, err, "load layout %s", id)
	}
	return l, nil
}

// DeleteLayout removes a layout by ID.
func (s *MongoStore) DeleteLayout(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete layout %s", id)
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
