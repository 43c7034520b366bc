package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles. Non-superadmin admins are scoped to the entity they manage.
const (
	RoleSuperAdmin = "superadmin"
	RolePathology  = "pathology"
	RolePharmacy   = "pharmacy"
)

type Admin struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name              string              `bson:"name" json:"name"`
	Email             string              `bson:"email" json:"email"`
	Password          string              `bson:"password,omitempty" json:"-"` // Hide from JSON responses
	Role              string              `bson:"role" json:"role"`
	Avatar            string              `bson:"avatar,omitempty" json:"avatar,omitempty"`
	IsActive          bool                `bson:"isActive" json:"isActive"`
	PathologyCenterID *primitive.ObjectID `bson:"pathologyCenterId,omitempty" json:"pathologyCenterId,omitempty"`
	PharmacyID        *primitive.ObjectID `bson:"pharmacyId,omitempty" json:"pharmacyId,omitempty"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}
