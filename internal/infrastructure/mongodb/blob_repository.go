package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/stocklist/internal/domain/repository"
)

var _ repository.BlobStore = (*BlobRepository)(nil)

const collName = "kv_blobs"

// blobDocument documento persistido: una clave por documento.
type blobDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// BlobRepository implementa BlobStore sobre MongoDB.
type BlobRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewBlobRepository conecta y verifica con ping.
func NewBlobRepository(ctx context.Context, uri, dbName string) (*BlobRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("conectar a mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return &BlobRepository{
		client: client,
		coll:   client.Database(dbName).Collection(collName),
	}, nil
}

// Get devuelve el blob o nil si la clave no existe.
func (r *BlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var doc blobDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blob: %w", err)
	}
	return []byte(doc.Value), nil
}

// Put reemplaza el documento completo de la clave (upsert).
func (r *BlobRepository) Put(ctx context.Context, key string, blob []byte) error {
	doc := blobDocument{Key: key, Value: string(blob), UpdatedAt: time.Now().UTC()}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("put blob: %w", err)
	}
	return nil
}

// Close cierra la conexión.
func (r *BlobRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
