package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset workflow statuses. Availability is NOT a status: an asset is
// available iff ProductQuantity > 0, regardless of the workflow state.
const (
	AssetNotRequested = "Not-Requested"
	AssetPending      = "Pending"
	AssetApproved     = "Approved"
)

// Product types used by the request analytics.
const (
	TypeReturnable    = "Returnable"
	TypeNonReturnable = "Non-returnable"
)

type Asset struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName     string             `bson:"productName" json:"productName"`
	ProductType     string             `bson:"productType" json:"productType"`
	ProductQuantity int                `bson:"productQuantity" json:"productQuantity"`
	Status          string             `bson:"status" json:"status"`
	PostedBy        string             `bson:"assetPostedBy" json:"assetPostedBy"`
	CompanyName     string             `bson:"assetCompany" json:"assetCompany"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// Available reports the quantity-derived availability predicate.
func (a *Asset) Available() bool {
	return a.ProductQuantity > 0
}
