package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
	"github.com/SajeedAninda/Sovereign-Assets-Server/payments"
	"github.com/SajeedAninda/Sovereign-Assets-Server/store"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserStore) CreateUnique(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, email, fullName, dateOfBirth string) error {
	return m.Called(ctx, email, fullName, dateOfBirth).Error(0)
}

func (m *mockUserStore) SetPayment(ctx context.Context, email, role string, payableAmount float64, paymentStatus string) error {
	return m.Called(ctx, email, role, payableAmount, paymentStatus).Error(0)
}

func (m *mockUserStore) UpgradePackage(ctx context.Context, email string, extraSeats int, payableAmount float64) error {
	return m.Called(ctx, email, extraSeats, payableAmount).Error(0)
}

func (m *mockUserStore) ListUnaffiliated(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) ListByCompany(ctx context.Context, companyName string) ([]models.User, error) {
	args := m.Called(ctx, companyName)
	if u, ok := args.Get(0).([]models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) ListEmployeesByCompany(ctx context.Context, companyName string) ([]models.User, error) {
	args := m.Called(ctx, companyName)
	if u, ok := args.Get(0).([]models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserStore) AssignTeam(ctx context.Context, employeeID primitive.ObjectID, companyName, companyLogo string) error {
	return m.Called(ctx, employeeID, companyName, companyLogo).Error(0)
}

func (m *mockUserStore) ClearTeam(ctx context.Context, employeeID primitive.ObjectID) error {
	return m.Called(ctx, employeeID).Error(0)
}

func (m *mockUserStore) ClaimSeat(ctx context.Context, adminEmail string) error {
	return m.Called(ctx, adminEmail).Error(0)
}

type mockAssetStore struct {
	mock.Mock
}

func (m *mockAssetStore) Create(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error) {
	args := m.Called(ctx, asset)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockAssetStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*models.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssetStore) List(ctx context.Context, filter store.AssetFilter) ([]models.Asset, error) {
	args := m.Called(ctx, filter)
	if a, ok := args.Get(0).([]models.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssetStore) Update(ctx context.Context, id primitive.ObjectID, productName, productType string, productQuantity int) error {
	return m.Called(ctx, id, productName, productType, productQuantity).Error(0)
}

func (m *mockAssetStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAssetStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAssetStore) DecrementOnApproval(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAssetStore) IncrementOnReturn(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAssetStore) CountByOwner(ctx context.Context, postedBy string) (int64, error) {
	args := m.Called(ctx, postedBy)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAssetStore) LowStock(ctx context.Context, postedBy string, threshold int) ([]models.Asset, error) {
	args := m.Called(ctx, postedBy, threshold)
	if a, ok := args.Get(0).([]models.Asset); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRequestStore struct {
	mock.Mock
}

func (m *mockRequestStore) Create(ctx context.Context, request *models.Request) (primitive.ObjectID, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockRequestStore) Get(ctx context.Context, id primitive.ObjectID) (*models.Request, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*models.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequestStore) ListByRequestor(ctx context.Context, filter store.RequestFilter) ([]models.Request, error) {
	args := m.Called(ctx, filter)
	if r, ok := args.Get(0).([]models.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestStore) ListByCompany(ctx context.Context, companyName, requestorNameSearch string) ([]models.Request, error) {
	args := m.Called(ctx, companyName, requestorNameSearch)
	if r, ok := args.Get(0).([]models.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestStore) ListAllocated(ctx context.Context, companyName string) ([]models.Request, error) {
	args := m.Called(ctx, companyName)
	if r, ok := args.Get(0).([]models.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestStore) ListPendingForAdmin(ctx context.Context, adminEmail string) ([]models.Request, error) {
	args := m.Called(ctx, adminEmail)
	if r, ok := args.Get(0).([]models.Request); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestStore) Approve(ctx context.Context, id primitive.ObjectID, approvedAt time.Time) error {
	return m.Called(ctx, id, approvedAt).Error(0)
}

func (m *mockRequestStore) Reject(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequestStore) Return(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRequestStore) MostRequested(ctx context.Context, companyName string, limit int) ([]store.RequestCount, error) {
	args := m.Called(ctx, companyName, limit)
	if r, ok := args.Get(0).([]store.RequestCount); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRequestStore) CountByType(ctx context.Context, postedBy string) (int64, int64, error) {
	args := m.Called(ctx, postedBy)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

type mockCustomRequestStore struct {
	mock.Mock
}

func (m *mockCustomRequestStore) Create(ctx context.Context, request *models.CustomRequest) (primitive.ObjectID, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockCustomRequestStore) Get(ctx context.Context, id primitive.ObjectID) (*models.CustomRequest, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*models.CustomRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomRequestStore) ListByRequestor(ctx context.Context, email string) ([]models.CustomRequest, error) {
	args := m.Called(ctx, email)
	if r, ok := args.Get(0).([]models.CustomRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomRequestStore) ListByTeam(ctx context.Context, companyName string) ([]models.CustomRequest, error) {
	args := m.Called(ctx, companyName)
	if r, ok := args.Get(0).([]models.CustomRequest); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCustomRequestStore) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockCustomRequestStore) Patch(ctx context.Context, id primitive.ObjectID, fields map[string]any) error {
	return m.Called(ctx, id, fields).Error(0)
}

type mockActivityStore struct {
	mock.Mock
}

func (m *mockActivityStore) Insert(ctx context.Context, entry *models.Activity) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockActivityStore) ListByCompany(ctx context.Context, companyName string, limit int64) ([]models.Activity, error) {
	args := m.Called(ctx, companyName, limit)
	if a, ok := args.Get(0).([]models.Activity); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateIntent(ctx context.Context, amountCents int64, currency string) (*payments.Intent, error) {
	args := m.Called(ctx, amountCents, currency)
	if i, ok := args.Get(0).(*payments.Intent); ok {
		return i, args.Error(1)
	}
	return nil, args.Error(1)
}
