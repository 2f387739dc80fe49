package content

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/quillcms/go-services/internal/versioning"
)

// MongoRepository reads and patches live items in the CMS's own posts and
// pages collections. Items are keyed by their string "id" field.
type MongoRepository struct {
	posts *mongo.Collection
	pages *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		posts: db.Collection("posts"),
		pages: db.Collection("pages"),
	}
}

func (r *MongoRepository) collection(ct versioning.ContentType) *mongo.Collection {
	if ct == versioning.ContentTypePage {
		return r.pages
	}
	return r.posts
}

func (r *MongoRepository) Get(ctx context.Context, ct versioning.ContentType, id string) (*Item, error) {
	var it Item
	if err := r.collection(ct).FindOne(ctx, bson.M{"id": id}).Decode(&it); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	if ct == versioning.ContentTypePage {
		// pages never carry a description, whatever the stored document says
		it.Description = ""
	}
	return &it, nil
}

func (r *MongoRepository) Patch(ctx context.Context, ct versioning.ContentType, id string, p Patch) error {
	set := bson.M{
		"title":        p.Title,
		"content":      p.Content,
		"lastSyncedAt": p.LastSyncedAt,
	}
	if ct == versioning.ContentTypePost {
		set["description"] = p.Description
	}
	res, err := r.collection(ct).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
