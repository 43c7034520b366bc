package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Customer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone" json:"phone"`
	Password  string             `bson:"password,omitempty" json:"-"`
	OTP       string             `bson:"otp,omitempty" json:"-"`
	IsBlocked bool               `bson:"isBlocked" json:"isBlocked"`
	Addresses []Address          `bson:"addresses,omitempty" json:"addresses,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Address struct {
	Street      string      `bson:"street" json:"street"`
	City        string      `bson:"city" json:"city"`
	State       string      `bson:"state" json:"state"`
	Pincode     string      `bson:"pincode" json:"pincode"`
	Coordinates Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type Coordinates struct {
	Lat  float64 `bson:"lat" json:"lat"`
	Long float64 `bson:"long" json:"long"`
}
