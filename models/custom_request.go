package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CustomRequest is an employee's ask for an asset the company does not
// stock yet. Two-state decision: Pending -> Approved|Rejected.
type CustomRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestorEmail string             `bson:"requestorEmail" json:"requestorEmail"`
	RequestorName  string             `bson:"requestorName" json:"requestorName"`
	RequestorTeam  string             `bson:"requestorTeam" json:"requestorTeam"`
	AssetName      string             `bson:"assetName" json:"assetName"`
	AssetType      string             `bson:"assetType" json:"assetType"`
	Price          float64            `bson:"price" json:"price"`
	AssetImage     string             `bson:"assetImage,omitempty" json:"assetImage,omitempty"`
	WhyNeeded      string             `bson:"whyNeeded,omitempty" json:"whyNeeded,omitempty"`
	AdditionalInfo string             `bson:"additionalInfo,omitempty" json:"additionalInfo,omitempty"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
