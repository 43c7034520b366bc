package handlers

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/curelink/admin-api/internal/apperror"
	"github.com/curelink/admin-api/internal/services"
)

// Handler carries the shared dependencies of every controller: the database
// handle for direct reads/writes and the onboarding service for the
// transactional flows.
type Handler struct {
	DB         *mongo.Database
	Onboarding *services.OnboardingService
}

func NewHandler(db *mongo.Database, onboarding *services.OnboardingService) *Handler {
	return &Handler{
		DB:         db,
		Onboarding: onboarding,
	}
}

// sensitiveFields is excluded from every list/read projection.
var sensitiveFields = bson.M{"password": 0, "otp": 0}

func parseObjectID(id, message string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.Validation(message)
	}
	return oid, nil
}
