package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quillcms/go-services/internal/versioning"
)

// MongoSnapshotRepo implements SnapshotRepository on the contentVersions
// collection. Snapshots are looked up by the string "id" field; the secondary
// indexes back the history listing and the retention sweep.
type MongoSnapshotRepo struct {
	col *mongo.Collection
}

func NewMongoSnapshotRepo(col *mongo.Collection) *MongoSnapshotRepo {
	col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "contentType", Value: 1}, {Key: "contentId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: 1}}},
	})
	return &MongoSnapshotRepo{col: col}
}

func (r *MongoSnapshotRepo) Insert(ctx context.Context, s *versioning.Snapshot) (string, error) {
	if s.ID == "" {
		s.ID = primitive.NewObjectID().Hex()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	if _, err := r.col.InsertOne(ctx, s); err != nil {
		return "", err
	}
	return s.ID, nil
}

func (r *MongoSnapshotRepo) Get(ctx context.Context, id string) (*versioning.Snapshot, error) {
	var s versioning.Snapshot
	if err := r.col.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *MongoSnapshotRepo) ListByContent(ctx context.Context, ct versioning.ContentType, contentID string) ([]*versioning.Snapshot, error) {
	filter := bson.M{"contentType": ct, "contentId": contentID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := []*versioning.Snapshot{}
	for cur.Next(ctx) {
		var s versioning.Snapshot
		if err := cur.Decode(&s); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, cur.Err()
}

func (r *MongoSnapshotRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time, limit int64) (int64, error) {
	// select the oldest eligible batch first so one call never deletes more
	// than limit records
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"id": 1})
	cur, err := r.col.Find(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}}, opts)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	ids := []string{}
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return 0, err
		}
		ids = append(ids, doc.ID)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.col.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoSnapshotRepo) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *MongoSnapshotRepo) CreatedAtBounds(ctx context.Context) (*time.Time, *time.Time, error) {
	oldest, err := r.boundary(ctx, 1)
	if err != nil {
		return nil, nil, err
	}
	if oldest == nil {
		return nil, nil, nil
	}
	newest, err := r.boundary(ctx, -1)
	if err != nil {
		return nil, nil, err
	}
	return oldest, newest, nil
}

func (r *MongoSnapshotRepo) boundary(ctx context.Context, direction int) (*time.Time, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "createdAt", Value: direction}}).
		SetProjection(bson.M{"createdAt": 1})
	var doc struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	if err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc.CreatedAt, nil
}

// MongoSettingsRepo implements SettingsRepository on the
// versionControlSettings collection (one document per key).
type MongoSettingsRepo struct {
	col *mongo.Collection
}

func NewMongoSettingsRepo(col *mongo.Collection) *MongoSettingsRepo {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "key", Value: 1}}, Options: options.Index().SetUnique(true)}
	col.Indexes().CreateOne(context.Background(), idx)
	return &MongoSettingsRepo{col: col}
}

func (r *MongoSettingsRepo) GetBool(ctx context.Context, key string) (bool, error) {
	res := r.col.FindOne(ctx, bson.M{"key": key})
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			return false, nil
		}
		return false, err
	}
	var doc struct {
		Value interface{} `bson:"value"`
	}
	if err := res.Decode(&doc); err != nil {
		// a malformed settings document reads as disabled
		return false, nil
	}
	v, ok := doc.Value.(bool)
	return ok && v, nil
}

func (r *MongoSettingsRepo) SetBool(ctx context.Context, key string, value bool) error {
	filter := bson.M{"key": key}
	update := bson.M{"$set": bson.M{"key": key, "value": value, "updatedAt": time.Now().UTC()}}
	_, err := r.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}
