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

type mongoRequests struct {
	c *mongo.Collection
}

func (s *mongoRequests) Create(ctx context.Context, request *models.Request) (primitive.ObjectID, error) {
	if request.ID.IsZero() {
		request.ID = primitive.NewObjectID()
	}
	if request.RequestStatus == "" {
		request.RequestStatus = models.RequestPending
	}
	if request.ApprovalDate == "" {
		request.ApprovalDate = models.NoApproval
	}
	if request.RequestDate.IsZero() {
		request.RequestDate = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, request)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return request.ID, nil
}

func (s *mongoRequests) Get(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	var request models.Request
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// Delete removes a request by id alone. There is deliberately no status
// guard here: cancel-while-Pending is a client convention, not a stored
// invariant.
func (s *mongoRequests) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// requestQuery translates a RequestFilter into a Mongo filter.
func requestQuery(f RequestFilter) bson.M {
	filter := bson.M{"requestorEmail": f.RequestorEmail}
	if f.AssetType != "" {
		filter["assetType"] = f.AssetType
	}
	if f.RequestStatus != "" {
		filter["requestStatus"] = f.RequestStatus
	}
	if f.AssetNameSearch != "" {
		filter["assetName"] = bson.M{"$regex": primitive.Regex{Pattern: f.AssetNameSearch, Options: "i"}}
	}
	return filter
}

func (s *mongoRequests) ListByRequestor(ctx context.Context, f RequestFilter) ([]models.Request, error) {
	return s.find(ctx, requestQuery(f))
}

func (s *mongoRequests) ListByCompany(ctx context.Context, companyName, requestorNameSearch string) ([]models.Request, error) {
	filter := bson.M{"assetCompany": companyName}
	if requestorNameSearch != "" {
		filter["requestorName"] = bson.M{"$regex": primitive.Regex{Pattern: requestorNameSearch, Options: "i"}}
	}
	return s.find(ctx, filter)
}

func (s *mongoRequests) ListAllocated(ctx context.Context, companyName string) ([]models.Request, error) {
	return s.find(ctx, bson.M{"assetCompany": companyName, "requestStatus": models.RequestApproved})
}

func (s *mongoRequests) ListPendingForAdmin(ctx context.Context, adminEmail string) ([]models.Request, error) {
	return s.find(ctx, bson.M{"assetPostedBy": adminEmail, "requestStatus": models.RequestPending})
}

func (s *mongoRequests) Approve(ctx context.Context, id primitive.ObjectID, approvedAt time.Time) error {
	return s.setStatus(ctx, id, bson.M{
		"requestStatus": models.RequestApproved,
		"approvalDate":  approvedAt.UTC().Format(time.RFC3339),
	})
}

func (s *mongoRequests) Reject(ctx context.Context, id primitive.ObjectID) error {
	return s.setStatus(ctx, id, bson.M{
		"requestStatus": models.RequestRejected,
		"approvalDate":  models.NoApproval,
	})
}

func (s *mongoRequests) Return(ctx context.Context, id primitive.ObjectID) error {
	return s.setStatus(ctx, id, bson.M{"requestStatus": models.RequestReturned})
}

// MostRequested groups a company's requests by asset, keeps one
// representative document per group, and ranks by frequency.
func (s *mongoRequests) MostRequested(ctx context.Context, companyName string, limit int) ([]RequestCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "assetCompany", Value: companyName}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$assetId"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "request", Value: bson.D{{Key: "$first", Value: "$$ROOT"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var counts []RequestCount
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []RequestCount{}
	}
	return counts, nil
}

func (s *mongoRequests) CountByType(ctx context.Context, postedBy string) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "assetPostedBy", Value: postedBy}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$assetType"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, err
	}
	defer cursor.Close(ctx)

	var returnable, total int64
	for cursor.Next(ctx) {
		var row struct {
			AssetType string `bson:"_id"`
			Count     int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return 0, 0, err
		}
		total += row.Count
		if row.AssetType == models.TypeReturnable {
			returnable += row.Count
		}
	}
	return returnable, total, cursor.Err()
}

func (s *mongoRequests) setStatus(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoRequests) find(ctx context.Context, filter bson.M) ([]models.Request, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestDate", Value: -1}})
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var requests []models.Request
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}
