package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored on a user document. Role stays empty until the
// payment step assigns one.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Unaffiliated is the literal company-name sentinel the existing clients
// expect for a user who is not on any team.
const Unaffiliated = "null"

type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName           string             `bson:"fullName" json:"fullName"`
	Email              string             `bson:"email" json:"email"`
	PasswordHash       string             `bson:"passwordHash,omitempty" json:"-"`
	Role               string             `bson:"role" json:"role"`
	CompanyName        string             `bson:"companyName" json:"companyName"`
	CompanyLogo        string             `bson:"companyLogo" json:"companyLogo"`
	AvailableEmployees int                `bson:"availableEmployees" json:"availableEmployees"`
	PayableAmount      float64            `bson:"payableAmount" json:"payableAmount"`
	PaymentStatus      string             `bson:"paymentStatus" json:"paymentStatus"`
	DateOfBirth        string             `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}

// OnTeam reports whether the user is affiliated with a company.
func (u *User) OnTeam() bool {
	return u.CompanyName != "" && u.CompanyName != Unaffiliated
}
