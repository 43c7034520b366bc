package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Pharmacy struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PharmacyName  string             `bson:"pharmacyName" json:"pharmacyName"`
	OwnerName     string             `bson:"ownerName,omitempty" json:"ownerName,omitempty"`
	Email         string             `bson:"email" json:"email"`
	PhoneNumber   string             `bson:"phoneNumber" json:"phoneNumber"`
	Address       string             `bson:"address" json:"address"`
	LicenceNumber string             `bson:"licenceNumber,omitempty" json:"licenceNumber,omitempty"`
	LicenceImage  string             `bson:"licenceImage,omitempty" json:"licenceImage,omitempty"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	AdminID       primitive.ObjectID `bson:"adminId" json:"adminId"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
