package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PathologyCenter struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CenterName       string             `bson:"centerName" json:"centerName"`
	OwnerName        string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Email            string             `bson:"email" json:"email"`
	PhoneNumber      string             `bson:"phoneNumber" json:"phoneNumber"`
	Address          string             `bson:"address" json:"address"`
	Labs             []string           `bson:"labs" json:"labs"`
	Bookings         []Booking          `bson:"bookings" json:"bookings"`
	SampleCollection []SampleSlot       `bson:"sampleCollection" json:"sampleCollection"`
	Status           string             `bson:"status,omitempty" json:"status,omitempty"`
	AdminID          primitive.ObjectID `bson:"adminId" json:"adminId"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Booking is a test booking held against a pathology center.
type Booking struct {
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	TestName   string             `bson:"testName" json:"testName"`
	Date       time.Time          `bson:"date" json:"date"`
	Status     string             `bson:"status" json:"status"`
}

// SampleSlot is a home sample-collection window offered by a center.
type SampleSlot struct {
	Day       string `bson:"day" json:"day"`
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}
