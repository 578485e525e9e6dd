package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCloseTimeout = 5 * time.Second

// mongoCheckpointDocument is the stored shape of a checkpoint, keyed by
// run name.
type mongoCheckpointDocument struct {
	Name            string    `bson:"_id"`
	CurrentLine     int       `bson:"current_line"`
	StyleContent    string    `bson:"style_content"`
	CompactionCount int       `bson:"compaction_count"`
	UpdatedAt       time.Time `bson:"updated_at"`
}

func (d mongoCheckpointDocument) toCheckpoint() *Checkpoint {
	return &Checkpoint{
		CurrentLine:     d.CurrentLine,
		StyleContent:    d.StyleContent,
		CompactionCount: d.CompactionCount,
		Timestamp:       d.UpdatedAt,
	}
}

func newMongoCheckpointDocument(name string, cp *Checkpoint) mongoCheckpointDocument {
	return mongoCheckpointDocument{
		Name:            name,
		CurrentLine:     cp.CurrentLine,
		StyleContent:    cp.StyleContent,
		CompactionCount: cp.CompactionCount,
		UpdatedAt:       cp.Timestamp.UTC(),
	}
}

// MongoStore keeps checkpoints in a MongoDB collection, one document per
// named run.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	name       string
}

func NewMongoStore(ctx context.Context, uri, database, collection, name string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("mongo uri is required")
	}
	if database == "" {
		database = "stylist"
	}
	if collection == "" {
		collection = "checkpoints"
	}
	if name == "" {
		name = "default"
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
		name:       name,
	}, nil
}

func (ms *MongoStore) Load(ctx context.Context) (*Checkpoint, error) {
	var doc mongoCheckpointDocument
	err := ms.collection.FindOne(ctx, bson.M{"_id": ms.name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("load checkpoint %q: %w", ms.name, err)
	}
	return doc.toCheckpoint(), nil
}

func (ms *MongoStore) Save(ctx context.Context, cp *Checkpoint) error {
	doc := newMongoCheckpointDocument(ms.name, cp)
	_, err := ms.collection.ReplaceOne(ctx, bson.M{"_id": ms.name}, doc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save checkpoint %q: %w", ms.name, err)
	}
	return nil
}

func (ms *MongoStore) Close(ctx context.Context) error {
	if ms.client == nil {
		return nil
	}
	closeCtx, cancel := context.WithTimeout(ctx, mongoCloseTimeout)
	defer cancel()
	return ms.client.Disconnect(closeCtx)
}

var _ Store = (*MongoStore)(nil)
