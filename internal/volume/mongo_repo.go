package volume

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type volumeDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Fields `bson:",inline"`
}

func (d volumeDocument) toVolume() Volume {
	return Volume{ID: d.ID.Hex(), Fields: d.Fields}
}

// MongoRepo stores volumes as documents of a MongoDB collection.
type MongoRepo struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
}

// OpenMongoRepo connects to uri and verifies the connection with a ping.
func OpenMongoRepo(ctx context.Context, uri, database, collection string, timeout time.Duration) (*MongoRepo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongo")
	}
	return NewMongoRepo(client, client.Database(database).Collection(collection), timeout), nil
}

func NewMongoRepo(client *mongo.Client, coll *mongo.Collection, timeout time.Duration) *MongoRepo {
	return &MongoRepo{client: client, coll: coll, timeout: timeout}
}

func (r *MongoRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *MongoRepo) Create(ctx context.Context, f Fields) (Volume, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	doc := volumeDocument{Fields: f}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return Volume{}, storageErr("create", errors.Wrap(err, "insert volume"))
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return Volume{}, storageErr("create", errors.Errorf("unexpected inserted id %v", res.InsertedID))
	}
	doc.ID = oid
	return doc.toVolume(), nil
}

func (r *MongoRepo) FindAll(ctx context.Context) ([]Volume, error) {
	return r.findMany(ctx, "find all", bson.D{})
}

func (r *MongoRepo) Find(ctx context.Context, q Filter) ([]Volume, error) {
	// A scalar equality on an array field matches membership, which is what genre lookups need.
	return r.findMany(ctx, "find", bson.D{{Key: string(q.Field), Value: q.Value}})
}

func (r *MongoRepo) FindByID(ctx context.Context, id string) (Volume, error) {
	oid, err := objectID("find", id)
	if err != nil {
		return Volume{}, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return decodeOne("find", r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func (r *MongoRepo) DeleteByID(ctx context.Context, id string) (Volume, error) {
	oid, err := objectID("delete", id)
	if err != nil {
		return Volume{}, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return decodeOne("delete", r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func (r *MongoRepo) UpdateByID(ctx context.Context, id string, patch Fields) (Volume, error) {
	oid, err := objectID("update", id)
	if err != nil {
		return Volume{}, err
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	filter := bson.D{{Key: "_id", Value: oid}}
	if patch.IsEmpty() {
		// $set rejects an empty document.
		return decodeOne("update", r.coll.FindOne(ctx, filter))
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne("update", r.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: patch}}, opts))
}

func (r *MongoRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *MongoRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *MongoRepo) findMany(ctx context.Context, op string, filter bson.D) ([]Volume, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, storageErr(op, errors.Wrap(err, "query volumes"))
	}
	var docs []volumeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr(op, errors.Wrap(err, "decode volumes"))
	}
	out := make([]Volume, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toVolume())
	}
	return out, nil
}

func decodeOne(op string, res *mongo.SingleResult) (Volume, error) {
	var doc volumeDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Volume{}, ErrNotFound
		}
		return Volume{}, storageErr(op, errors.Wrap(err, "decode volume"))
	}
	return doc.toVolume(), nil
}

func objectID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storageErr(op, errors.Wrapf(err, "malformed id %q", id))
	}
	return oid, nil
}
