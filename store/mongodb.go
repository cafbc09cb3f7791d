package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoBackend keeps one document per collection in the "tables" collection:
// { _id: <collection>, rows: [...], updatedAt }.
type MongoBackend struct {
	Client   *mongo.Client
	Database *mongo.Database
}

type tableDoc struct {
	ID        string    `bson:"_id"`
	Rows      bson.A    `bson:"rows"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func NewMongoBackend(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoBackend, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	logger.Info("connected to MongoDB", zap.String("db", dbName))
	return &MongoBackend{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *MongoBackend) Tables() *mongo.Collection {
	return m.Database.Collection("tables")
}

func (m *MongoBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	var doc tableDoc
	err := m.Tables().FindOne(ctx, bson.M{"_id": collection}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rows, err := rowsToJSON(doc.Rows)
	if err != nil {
		return nil, fmt.Errorf("encode %s rows: %w", collection, err)
	}
	return rows, nil
}

func (m *MongoBackend) Save(ctx context.Context, collection string, doc []byte) error {
	rows, err := rowsFromJSON(doc)
	if err != nil {
		return fmt.Errorf("decode %s rows: %w", collection, err)
	}
	replacement := tableDoc{ID: collection, Rows: rows, UpdatedAt: time.Now()}
	_, err = m.Tables().ReplaceOne(ctx, bson.M{"_id": collection}, replacement, options.Replace().SetUpsert(true))
	return err
}

// rowsToJSON renders stored rows as a plain JSON array. Relaxed extended JSON keeps int32,
// int64 and double values as bare numbers.
func rowsToJSON(rows bson.A) ([]byte, error) {
	if rows == nil {
		rows = bson.A{}
	}
	ext, err := bson.MarshalExtJSON(bson.M{"rows": rows}, false, false)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Rows json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(ext, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Rows, nil
}

// rowsFromJSON parses a JSON array document into BSON values.
func rowsFromJSON(doc []byte) (bson.A, error) {
	var wrapper struct {
		Rows bson.A `bson:"rows"`
	}
	ext := make([]byte, 0, len(doc)+10)
	ext = append(ext, `{"rows":`...)
	ext = append(ext, doc...)
	ext = append(ext, '}')
	if err := bson.UnmarshalExtJSON(ext, false, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Rows == nil {
		wrapper.Rows = bson.A{}
	}
	return wrapper.Rows, nil
}

func (m *MongoBackend) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}
