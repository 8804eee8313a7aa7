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

type mongoCustomRequests struct {
	c *mongo.Collection
}

func (s *mongoCustomRequests) Create(ctx context.Context, request *models.CustomRequest) (primitive.ObjectID, error) {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	if request.Status == "" {
		request.Status = models.RequestPending
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, request)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return request.ID, nil
}

func (s *mongoCustomRequests) Get(ctx context.Context, id primitive.ObjectID) (*models.CustomRequest, error) {
	var request models.CustomRequest
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (s *mongoCustomRequests) ListByRequestor(ctx context.Context, email string) ([]models.CustomRequest, error) {
	return s.find(ctx, bson.M{"requestorEmail": email})
}

func (s *mongoCustomRequests) ListByTeam(ctx context.Context, companyName string) ([]models.CustomRequest, error) {
	return s.find(ctx, bson.M{"requestorTeam": companyName})
}

func (s *mongoCustomRequests) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoCustomRequests) Patch(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoCustomRequests) find(ctx context.Context, filter bson.M) ([]models.CustomRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.CustomRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.CustomRequest{}
	}
	return requests, nil
}
