package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Delivery partner approval states.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type DeliveryPartner struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	VehicleNumber  string             `bson:"vehicleNumber,omitempty" json:"vehicleNumber,omitempty"`
	ApprovalStatus string             `bson:"approvalStatus" json:"approvalStatus"`
	IsAvailable    bool               `bson:"isAvailable" json:"isAvailable"`
	IsBlocked      bool               `bson:"isBlocked" json:"isBlocked"`
	Status         string             `bson:"status,omitempty" json:"status,omitempty"`
	Password       string             `bson:"password,omitempty" json:"-"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
