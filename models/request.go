package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request lifecycle states: Pending -> Approved|Rejected, and an Approved
// request for a returnable asset may move on to Returned.
const (
	RequestPending  = "Pending"
	RequestApproved = "Approved"
	RequestRejected = "Rejected"
	RequestReturned = "Returned"
)

// NoApproval is the literal approval-date marker existing clients expect
// on requests that were never approved.
const NoApproval = "null"

// Request is a borrow request for an inventory asset. Asset fields are
// denormalized onto the request at creation time, so listings never join
// back to the assets collection.
type Request struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequestorEmail string             `bson:"requestorEmail" json:"requestorEmail"`
	RequestorName  string             `bson:"requestorName" json:"requestorName"`
	AssetID        primitive.ObjectID `bson:"assetId" json:"assetId"`
	AssetName      string             `bson:"assetName" json:"assetName"`
	AssetType      string             `bson:"assetType" json:"assetType"`
	PostedBy       string             `bson:"assetPostedBy" json:"assetPostedBy"`
	CompanyName    string             `bson:"assetCompany" json:"assetCompany"`
	RequestStatus  string             `bson:"requestStatus" json:"requestStatus"`
	RequestDate    time.Time          `bson:"requestDate" json:"requestDate"`
	AdditionalNote string             `bson:"additionalNote,omitempty" json:"additionalNote,omitempty"`
	ApprovalDate   string             `bson:"approvalDate" json:"approvalDate"`
}
