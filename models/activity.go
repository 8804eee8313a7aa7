package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Activity is one entry in a company's activity trail. Entries are written
// alongside asset mutations and request decisions and mirrored onto the
// websocket feed.
type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	ActorEmail  string             `bson:"actorEmail" json:"actorEmail"`
	Action      string             `bson:"action" json:"action"`
	EntityType  string             `bson:"entityType" json:"entityType"`
	EntityID    primitive.ObjectID `bson:"entityId,omitempty" json:"entityId,omitempty"`
	Details     map[string]any     `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
