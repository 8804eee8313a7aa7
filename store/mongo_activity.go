package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
)

type mongoActivity struct {
	c *mongo.Collection
}

func (s *mongoActivity) Insert(ctx context.Context, entry *models.Activity) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

func (s *mongoActivity) ListByCompany(ctx context.Context, companyName string, limit int64) ([]models.Activity, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.c.Find(ctx, bson.M{"companyName": companyName}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []models.Activity
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []models.Activity{}
	}
	return entries, nil
}
