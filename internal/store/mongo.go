package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commhendrix/academic-portfolio/internal/models"
)

// The CV is a single document; a fixed id keeps Replace an upsert.
const cvDocID = "profile"

// MongoCVStore holds the CV profile document in MongoDB.
type MongoCVStore struct {
	col *mongo.Collection
}

func NewMongoCVStore(db *mongo.Database) *MongoCVStore {
	return &MongoCVStore{col: db.Collection("cv")}
}

// Get returns the profile document, or (nil, nil) when none is stored yet.
func (s *MongoCVStore) Get(ctx context.Context) (*models.CV, error) {
	var cv models.CV
	err := s.col.FindOne(ctx, bson.M{"_id": cvDocID}).Decode(&cv)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find cv: %w", err)
	}
	return &cv, nil
}

// Replace upserts the profile fields. The PDF link is owned by
// SetPDFObjectKey and survives profile edits untouched.
func (s *MongoCVStore) Replace(ctx context.Context, cv *models.CV) error {
	cv.UpdatedAt = time.Now()
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": cvDocID},
		bson.M{"$set": bson.M{
			"name":       cv.Name,
			"contacts":   cv.Contacts,
			"sections":   cv.Sections,
			"updated_at": cv.UpdatedAt,
		}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace cv: %w", err)
	}
	return nil
}

// SetPDFObjectKey records where the downloadable CV PDF lives in object
// storage without touching the rest of the document.
func (s *MongoCVStore) SetPDFObjectKey(ctx context.Context, key string) error {
	_, err := s.col.UpdateOne(ctx, bson.M{"_id": cvDocID},
		bson.M{"$set": bson.M{"pdf_object_key": key}},
		options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set pdf key: %w", err)
	}
	return nil
}
