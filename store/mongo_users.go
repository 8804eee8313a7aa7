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

type mongoUsers struct {
	c *mongo.Collection
}

func (s *mongoUsers) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CompanyName == "" {
		user.CompanyName = models.Unaffiliated
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}

func (s *mongoUsers) CreateUnique(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	count, err := s.c.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return primitive.NilObjectID, err
	}
	if count > 0 {
		return primitive.NilObjectID, ErrDuplicateEmail
	}
	return s.Create(ctx, user)
}

func (s *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) UpdateProfile(ctx context.Context, email, fullName, dateOfBirth string) error {
	update := bson.M{}
	if fullName != "" {
		update["fullName"] = fullName
	}
	if dateOfBirth != "" {
		update["dateOfBirth"] = dateOfBirth
	}
	if len(update) == 0 {
		return nil
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": update})
	return err
}

func (s *mongoUsers) SetPayment(ctx context.Context, email, role string, payableAmount float64, paymentStatus string) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": bson.M{
		"role":          role,
		"payableAmount": payableAmount,
		"paymentStatus": paymentStatus,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) UpgradePackage(ctx context.Context, email string, extraSeats int, payableAmount float64) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"email": email}, bson.M{
		"$inc": bson.M{"availableEmployees": extraSeats},
		"$set": bson.M{"payableAmount": payableAmount},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) ListUnaffiliated(ctx context.Context) ([]models.User, error) {
	return s.find(ctx, bson.M{"companyName": models.Unaffiliated, "role": bson.M{"$ne": models.RoleAdmin}})
}

func (s *mongoUsers) ListByCompany(ctx context.Context, companyName string) ([]models.User, error) {
	return s.find(ctx, bson.M{"companyName": companyName})
}

func (s *mongoUsers) ListEmployeesByCompany(ctx context.Context, companyName string) ([]models.User, error) {
	return s.find(ctx, bson.M{"companyName": companyName, "role": models.RoleEmployee})
}

func (s *mongoUsers) AssignTeam(ctx context.Context, employeeID primitive.ObjectID, companyName, companyLogo string) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": employeeID}, bson.M{"$set": bson.M{
		"companyName": companyName,
		"companyLogo": companyLogo,
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) ClearTeam(ctx context.Context, employeeID primitive.ObjectID) error {
	result, err := s.c.UpdateOne(ctx, bson.M{"_id": employeeID}, bson.M{"$set": bson.M{
		"companyName": models.Unaffiliated,
		"companyLogo": "",
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoUsers) ClaimSeat(ctx context.Context, adminEmail string) error {
	// The availability check rides in the filter, so the check and the
	// decrement are one atomic document update.
	result, err := s.c.UpdateOne(ctx,
		bson.M{"email": adminEmail, "availableEmployees": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"availableEmployees": -1}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNoSeats
	}
	return nil
}

func (s *mongoUsers) find(ctx context.Context, filter bson.M) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}
