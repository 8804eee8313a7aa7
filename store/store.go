// Package store owns all document-store access. Handlers depend on these
// interfaces and receive Mongo-backed implementations at construction, so
// nothing reaches for an ambient client.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SajeedAninda/Sovereign-Assets-Server/models"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateEmail is returned when a registration would reuse an email.
	ErrDuplicateEmail = errors.New("store: email already exists")
	// ErrNoSeats is returned when a team add finds no remaining member slot.
	ErrNoSeats = errors.New("store: not enough member limit")
)

// Availability filter values accepted by asset listing. These are query
// parameters, not stored statuses: they translate into a predicate on
// productQuantity.
const (
	AvailabilityAvailable = "available"
	AvailabilityStockOut  = "stockOut"
)

// AssetFilter is the conjunctive filter for asset listing.
type AssetFilter struct {
	PostedBy     string // owning admin email, tenancy scope
	CompanyName  string // owning company, tenancy scope
	ProductType  string
	Availability string // "available" | "stockOut" | ""
	NameSearch   string // case-insensitive substring on productName
	SortQuantity string // "asc" | "desc" | ""
}

// RequestFilter narrows an employee's own request listing.
type RequestFilter struct {
	RequestorEmail  string
	AssetType       string
	RequestStatus   string
	AssetNameSearch string // case-insensitive substring on assetName
}

// RequestCount is one row of the most-requested ranking: an asset id, how
// often it was requested, and one representative request document.
type RequestCount struct {
	AssetID primitive.ObjectID `bson:"_id" json:"assetId"`
	Count   int64              `bson:"count" json:"count"`
	Request models.Request     `bson:"request" json:"request"`
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	// CreateUnique rejects a second document with the same email.
	CreateUnique(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, email, fullName, dateOfBirth string) error
	SetPayment(ctx context.Context, email, role string, payableAmount float64, paymentStatus string) error
	UpgradePackage(ctx context.Context, email string, extraSeats int, payableAmount float64) error
	ListUnaffiliated(ctx context.Context) ([]models.User, error)
	ListByCompany(ctx context.Context, companyName string) ([]models.User, error)
	ListEmployeesByCompany(ctx context.Context, companyName string) ([]models.User, error)
	AssignTeam(ctx context.Context, employeeID primitive.ObjectID, companyName, companyLogo string) error
	ClearTeam(ctx context.Context, employeeID primitive.ObjectID) error
	// ClaimSeat decrements the admin's availableEmployees counter only if
	// one is left; ErrNoSeats otherwise. Single conditional update so two
	// concurrent adds cannot both take the last slot.
	ClaimSeat(ctx context.Context, adminEmail string) error
}

type AssetStore interface {
	Create(ctx context.Context, asset *models.Asset) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	List(ctx context.Context, filter AssetFilter) ([]models.Asset, error)
	// Update upserts: a miss on id creates the document instead of erroring.
	Update(ctx context.Context, id primitive.ObjectID, productName, productType string, productQuantity int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	// DecrementOnApproval applies productQuantity -= 1 and status=Approved
	// in one update. No floor guard: the deciding admin is trusted.
	DecrementOnApproval(ctx context.Context, id primitive.ObjectID) error
	IncrementOnReturn(ctx context.Context, id primitive.ObjectID) error
	CountByOwner(ctx context.Context, postedBy string) (int64, error)
	LowStock(ctx context.Context, postedBy string, threshold int) ([]models.Asset, error)
}

type RequestStore interface {
	Create(ctx context.Context, request *models.Request) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Request, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByRequestor(ctx context.Context, filter RequestFilter) ([]models.Request, error)
	ListByCompany(ctx context.Context, companyName, requestorNameSearch string) ([]models.Request, error)
	ListAllocated(ctx context.Context, companyName string) ([]models.Request, error)
	ListPendingForAdmin(ctx context.Context, adminEmail string) ([]models.Request, error)
	Approve(ctx context.Context, id primitive.ObjectID, approvedAt time.Time) error
	Reject(ctx context.Context, id primitive.ObjectID) error
	Return(ctx context.Context, id primitive.ObjectID) error
	MostRequested(ctx context.Context, companyName string, limit int) ([]RequestCount, error)
	// CountByType returns (returnable, total) request counts for assets
	// posted by the given admin.
	CountByType(ctx context.Context, postedBy string) (returnable int64, total int64, err error)
}

type CustomRequestStore interface {
	Create(ctx context.Context, request *models.CustomRequest) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.CustomRequest, error)
	ListByRequestor(ctx context.Context, email string) ([]models.CustomRequest, error)
	ListByTeam(ctx context.Context, companyName string) ([]models.CustomRequest, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	// Patch applies an arbitrary field update from the requestor. Allowed
	// while any status, decided or not.
	Patch(ctx context.Context, id primitive.ObjectID, fields map[string]any) error
}

type ActivityStore interface {
	Insert(ctx context.Context, entry *models.Activity) error
	ListByCompany(ctx context.Context, companyName string, limit int64) ([]models.Activity, error)
}
