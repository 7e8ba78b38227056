package library

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tannerbroberts/abouttime/pkg/cache"
	"github.com/tannerbroberts/abouttime/pkg/template"
)

// Mongo collection layout: one document per library, keyed by name.
const (
	mongoDatabase   = "abouttime"
	mongoCollection = "libraries"
)

// libraryDoc is the MongoDB document shape wrapping a library.
type libraryDoc struct {
	Name    string           `bson:"name"`
	Library template.Library `bson:"library"`
	SavedAt time.Time        `bson:"savedAt"`
}

// MongoStore loads and saves template libraries from a MongoDB collection,
// for deployments where several machines share one authoring library.
type MongoStore struct {
	client *mongo.Client
	name   string
	logger *log.Logger
}

// NewMongoStore connects to MongoDB and verifies the connection.
// name selects which library document this store reads and writes.
func NewMongoStore(ctx context.Context, uri, name string, logger *log.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{client: client, name: name, logger: logger}, nil
}

func (s *MongoStore) collection() *mongo.Collection {
	return s.client.Database(mongoDatabase).Collection(mongoCollection)
}

// Load fetches the library document. As with the file store, any failure
// yields an empty library: a missing document, a decode error, and an
// unreachable server all degrade the same way.
func (s *MongoStore) Load(ctx context.Context) template.Library {
	var doc libraryDoc
	err := s.collection().FindOne(ctx, bson.M{"name": s.name}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			s.logger.Debug("library document not found, starting empty", "name", s.name)
		} else {
			s.logger.Warn("library unreadable, starting empty", "name", s.name, "err", err)
		}
		return template.Library{}
	}
	if err := doc.Library.Validate(); err != nil {
		s.logger.Warn("library document invalid, starting empty", "name", s.name, "err", err)
		return template.Library{}
	}
	return doc.Library
}

// LoadStore fetches the library and builds the immutable store.
func (s *MongoStore) LoadStore(ctx context.Context) *template.Store {
	return template.NewStore(s.Load(ctx))
}

// Hash returns the content hash of the stored library, used to scope cache
// keys to one exact library state. It mirrors FileStore.Hash except the
// bytes come from the canonical JSON encoding rather than a file.
func (s *MongoStore) Hash(ctx context.Context) string {
	data, err := json.Marshal(s.Load(ctx))
	if err != nil {
		data = nil
	}
	return cache.Hash(data)
}

// Save upserts the library document. Mongo has no quota signal comparable
// to ENOSPC, so every failure here is logged and swallowed.
func (s *MongoStore) Save(ctx context.Context, lib template.Library) error {
	doc := libraryDoc{Name: s.name, Library: lib, SavedAt: time.Now().UTC()}
	_, err := s.collection().ReplaceOne(ctx,
		bson.M{"name": s.name}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		s.logger.Warn("library save failed", "name", s.name, "err", err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
