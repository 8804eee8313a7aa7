package store

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection names in the SovereignAssets database.
const (
	usersCollection          = "users"
	assetsCollection         = "assets"
	requestsCollection       = "requests"
	customRequestsCollection = "customRequests"
	activityCollection       = "activity"
)

// Mongo bundles the store implementations for one database handle.
type Mongo struct {
	Users          UserStore
	Assets         AssetStore
	Requests       RequestStore
	CustomRequests CustomRequestStore
	Activity       ActivityStore
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	db := client.Database(dbName)
	return &Mongo{
		Users:          &mongoUsers{c: db.Collection(usersCollection)},
		Assets:         &mongoAssets{c: db.Collection(assetsCollection)},
		Requests:       &mongoRequests{c: db.Collection(requestsCollection)},
		CustomRequests: &mongoCustomRequests{c: db.Collection(customRequestsCollection)},
		Activity:       &mongoActivity{c: db.Collection(activityCollection)},
	}
}
