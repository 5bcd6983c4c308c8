package database

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"contentapi/internal/apperr"
	"contentapi/internal/config"
)

// Collection names. Foreign keys are stored as the 24-hex string form of
// the referenced document's _id.
const (
	UsersCollection    = "users"
	PostsCollection    = "posts"
	CommentsCollection = "comments"
)

// Database is the process-wide handle to the document store. It is
// constructed once at startup and injected into the repositories; the
// actual connection is dialed lazily on first use, guarded so concurrent
// first callers share a single dial attempt.
type Database struct {
	cfg *config.Config

	once   sync.Once
	client *mongo.Client
	db     *mongo.Database
	err    error
}

func New(cfg *config.Config) *Database {
	return &Database{cfg: cfg}
}

func (d *Database) connect(ctx context.Context) {
	if d.cfg.MongoURI == "" {
		d.err = &apperr.ConfigurationError{Key: "MONGODB_URI"}
		return
	}
	if d.cfg.DBName == "" {
		d.err = &apperr.ConfigurationError{Key: "DB_NAME"}
		return
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(d.cfg.MongoURI))
	if err != nil {
		d.err = fmt.Errorf("connecting to mongo: %w", err)
		return
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		d.err = fmt.Errorf("pinging mongo: %w", err)
		return
	}

	log.Printf("connected to mongo, database %s", d.cfg.DBName)
	d.client = client
	d.db = client.Database(d.cfg.DBName)
}

// Collection returns a handle to the named collection, dialing the
// connection on first call. A failed first dial (including missing
// configuration) is sticky and fails every subsequent call.
func (d *Database) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	d.once.Do(func() { d.connect(ctx) })
	if d.err != nil {
		return nil, d.err
	}
	return d.db.Collection(name), nil
}

func (d *Database) Close(ctx context.Context) error {
	if d.client == nil {
		return nil
	}
	return d.client.Disconnect(ctx)
}

// ToObjectID converts the external 24-hex string form into the native id.
func ToObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}
