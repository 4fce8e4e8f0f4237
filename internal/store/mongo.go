package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/patelshaan/imposter/internal/models"
)

// mongoDocument wraps a room for storage: the code doubles as _id, and the
// version field carries the counter Transact compares against.
type mongoDocument struct {
	Code      string       `bson:"_id"`
	Version   int64        `bson:"version"`
	Room      *models.Room `bson:"room"`
	UpdatedAt time.Time    `bson:"updatedAt"`
}

// Mongo is a Store backed by a MongoDB collection. Subscribe rides change
// streams, so it requires a replica-set deployment.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
	retries    int
}

// NewMongo connects and pings the deployment. retries bounds the Transact
// conflict loop.
func NewMongo(ctx context.Context, uri, database string, retries int) (*Mongo, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", ErrUnavailable, err)
	}

	if retries < 1 {
		retries = 8
	}
	return &Mongo{
		client:     client,
		collection: client.Database(database).Collection("rooms"),
		retries:    retries,
	}, nil
}

func (m *Mongo) fetch(ctx context.Context, code string) (*mongoDocument, error) {
	var doc mongoDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &doc, nil
}

func (m *Mongo) Get(ctx context.Context, code string) (*models.Room, error) {
	doc, err := m.fetch(ctx, code)
	if err != nil {
		return nil, err
	}
	return doc.Room, nil
}

func (m *Mongo) Put(ctx context.Context, code string, room *models.Room) error {
	doc := mongoDocument{Code: code, Version: 1, Room: room, UpdatedAt: time.Now()}
	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConflict
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (m *Mongo) Patch(ctx context.Context, code string, fields map[string]any) error {
	set := bson.M{"updatedAt": time.Now()}
	for field, value := range fields {
		set["room."+field] = value
	}
	res, err := m.collection.UpdateOne(ctx, bson.M{"_id": code}, bson.M{
		"$set": set,
		"$inc": bson.M{"version": 1},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrAbsent
	}
	return nil
}

func (m *Mongo) Remove(ctx context.Context, code string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": code}); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (m *Mongo) Transact(ctx context.Context, code string, fn TransformFunc) (*models.Room, error) {
	for attempt := 0; attempt < m.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := m.fetch(ctx, code)
		exists := true
		if errors.Is(err, ErrAbsent) {
			exists = false
		} else if err != nil {
			return nil, err
		}

		var observed *models.Room
		if exists {
			observed = doc.Room
		}
		next, fnErr := fn(observed.Clone())
		if fnErr != nil {
			return observed, fnErr
		}

		switch {
		case next == nil && !exists:
			return nil, nil

		case next == nil:
			res, err := m.collection.DeleteOne(ctx, bson.M{"_id": code, "version": doc.Version})
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			if res.DeletedCount == 0 {
				continue // concurrent commit, re-read
			}
			return nil, nil

		case !exists:
			created := mongoDocument{Code: code, Version: 1, Room: next, UpdatedAt: time.Now()}
			if _, err := m.collection.InsertOne(ctx, created); err != nil {
				if mongo.IsDuplicateKeyError(err) {
					continue
				}
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			return next, nil

		default:
			replacement := mongoDocument{Code: code, Version: doc.Version + 1, Room: next, UpdatedAt: time.Now()}
			res, err := m.collection.ReplaceOne(ctx, bson.M{"_id": code, "version": doc.Version}, replacement)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			if res.MatchedCount == 0 {
				continue
			}
			return next, nil
		}
	}
	return nil, ErrConflict
}

func (m *Mongo) List(ctx context.Context) ([]*models.Room, error) {
	cursor, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var rooms []*models.Room
	for cursor.Next(ctx) {
		var doc mongoDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		rooms = append(rooms, doc.Room)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return rooms, nil
}

func (m *Mongo) Subscribe(ctx context.Context, code string, onChange func(*models.Room), onError func(error)) (*Subscription, error) {
	// Open the stream before reading the initial snapshot so a commit landing
	// in between is queued rather than lost. Events the snapshot already
	// reflects are dropped by version below.
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "documentKey._id", Value: code}}}},
	}
	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := m.collection.Watch(streamCtx, pipeline,
		options.ChangeStream().SetFullDocument(options.UpdateLookup))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: watch: %v", ErrUnavailable, err)
	}

	doc, err := m.fetch(ctx, code)
	if err != nil {
		cancel()
		stream.Close(context.Background())
		return nil, err
	}

	go func() {
		defer stream.Close(context.Background())

		last := doc.Version
		onChange(doc.Room)
		for stream.Next(streamCtx) {
			var event struct {
				OperationType string        `bson:"operationType"`
				FullDocument  mongoDocument `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				onError(fmt.Errorf("%w: %v", ErrUnavailable, err))
				return
			}
			if event.OperationType == "delete" {
				onChange(nil)
				return
			}
			if event.FullDocument.Version <= last {
				continue
			}
			last = event.FullDocument.Version
			onChange(event.FullDocument.Room)
		}
		if err := stream.Err(); err != nil && streamCtx.Err() == nil {
			// Transport failure: the subscription is terminally failed, the
			// caller must re-establish it.
			onError(fmt.Errorf("%w: %v", ErrUnavailable, err))
		}
	}()

	return NewSubscription(cancel), nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
