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

type mongoAssets struct {
	c *mongo.Collection
}

// assetQuery translates an AssetFilter into a Mongo filter plus find
// options. Availability is derived from productQuantity; the stored status
// field only carries workflow states and never participates here.
func assetQuery(f AssetFilter) (bson.M, *options.FindOptions) {
	filter := bson.M{}
	if f.PostedBy != "" {
		filter["assetPostedBy"] = f.PostedBy
	}
	if f.CompanyName != "" {
		filter["assetCompany"] = f.CompanyName
	}
	if f.ProductType != "" {
		filter["productType"] = f.ProductType
	}
	switch f.Availability {
	case AvailabilityAvailable:
		filter["productQuantity"] = bson.M{"$gt": 0}
	case AvailabilityStockOut:
		filter["productQuantity"] = 0
	}
	if f.NameSearch != "" {
		filter["productName"] = bson.M{"$regex": primitive.Regex{Pattern: f.NameSearch, Options: "i"}}
	}

	opts := options.Find()
	switch f.SortQuantity {
	case "asc":
		opts.SetSort(bson.D{{Key: "productQuantity", Value: 1}})
	case "desc":
		opts.SetSort(bson.D{{Key: "productQuantity", Value: -1}})
	default:
		opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	}
	return filter, opts
}

func (s *mongoAssets) Create(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	if asset.ID.IsZero() {
		asset.ID = primitive.NewObjectID()
	}
	if asset.Status == "" {
		asset.Status = models.AssetNotRequested
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, asset)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return asset.ID, nil
}

func (s *mongoAssets) Get(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var asset models.Asset
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &asset, nil
}

func (s *mongoAssets) List(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	filter, opts := assetQuery(f)
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (s *mongoAssets) Update(ctx context.Context, id primitive.ObjectID, productName, productType string, productQuantity int) error {
	// Upsert on purpose: an id miss creates the document instead of
	// reporting not-found.
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"productName":     productName,
		"productType":     productType,
		"productQuantity": productQuantity,
	}}, opts)
	return err
}

func (s *mongoAssets) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoAssets) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoAssets) DecrementOnApproval(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"productQuantity": -1},
		"$set": bson.M{"status": models.AssetApproved},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoAssets) IncrementOnReturn(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"productQuantity": 1},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoAssets) CountByOwner(ctx context.Context, postedBy string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"assetPostedBy": postedBy})
}

func (s *mongoAssets) LowStock(ctx context.Context, postedBy string, threshold int) ([]models.Asset, error) {
	filter := bson.M{
		"assetPostedBy":   postedBy,
		"productQuantity": bson.M{"$lt": threshold},
	}
	opts := options.Find().SetSort(bson.D{{Key: "productQuantity", Value: 1}})
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}
