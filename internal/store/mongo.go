package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// defaultMongoDatabase is used when the connection string names no database.
const defaultMongoDatabase = "crud-api"

// MongoStore maps each collection onto a MongoDB collection of the same name.
// Identifiers are stored as ObjectIDs and exposed as their hex form.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri and pings the primary. The database is taken
// from the path of uri.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("mongo: parse uri: %w", err)
	}
	dbName := cs.Database
	if dbName == "" {
		dbName = defaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	if err := checkID(id); err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(id)
}

// fromBSON converts a decoded BSON document into a Document, turning
// ObjectIDs into hex strings and nested BSON containers into plain maps and
// slices so the result encodes as ordinary JSON.
func fromBSON(m bson.M) Document {
	doc := make(Document, len(m))
	for k, v := range m {
		doc[k] = fromBSONValue(v)
	}
	return doc
}

func fromBSONValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case bson.M:
		return map[string]any(fromBSON(val))
	case bson.D:
		return map[string]any(fromBSON(val.Map()))
	case bson.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = fromBSONValue(item)
		}
		return out
	default:
		return v
	}
}

// toBSON copies doc for writing, dropping IDField. The caller sets the id.
func toBSON(doc Document) bson.M {
	m := make(bson.M, len(doc)+1)
	for k, v := range doc {
		if k == IDField {
			continue
		}
		m[k] = v
	}
	return m
}

func (s *MongoStore) Find(ctx context.Context, collection string) ([]Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}
	result := make([]Document, 0, len(raw))
	for _, m := range raw {
		result = append(result, fromBSON(m))
	}
	return result, nil
}

func (s *MongoStore) FindByID(ctx context.Context, collection, id string) (Document, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var m bson.M
	err = s.db.Collection(collection).FindOne(ctx, bson.M{IDField: oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(m), nil
}

func (s *MongoStore) Insert(ctx context.Context, collection string, docs ...Document) ([]Document, error) {
	if len(docs) == 0 {
		return []Document{}, nil
	}
	writes := make([]any, 0, len(docs))
	for _, doc := range docs {
		m := toBSON(doc)
		m[IDField] = primitive.NewObjectID()
		writes = append(writes, m)
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, writes); err != nil {
		return nil, err
	}
	result := make([]Document, 0, len(writes))
	for _, w := range writes {
		result = append(result, fromBSON(w.(bson.M)))
	}
	return result, nil
}

func (s *MongoStore) Replace(ctx context.Context, collection, id string, doc Document) (Document, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	m := toBSON(doc)
	res, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{IDField: oid}, m)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	m[IDField] = oid
	return fromBSON(m), nil
}

func (s *MongoStore) DeleteByID(ctx context.Context, collection, id string) (Document, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var m bson.M
	err = s.db.Collection(collection).FindOneAndDelete(ctx, bson.M{IDField: oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fromBSON(m), nil
}

func (s *MongoStore) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := s.db.Collection(collection).DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
