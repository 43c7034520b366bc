// Package services holds the transactional unit of work behind partner
// onboarding: a pathology center or pharmacy is only ever created together
// with its linked admin account, and the pair is deleted together too.
package services

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/curelink/admin-api/internal/apperror"
	"github.com/curelink/admin-api/internal/models"
	"github.com/curelink/admin-api/internal/utils"
)

type OnboardingService struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewOnboardingService(db *mongo.Database) *OnboardingService {
	return &OnboardingService{client: db.Client(), db: db}
}

// infraError converts driver and session failures into the generic 500.
// Taxonomy errors such as conflicts pass through unchanged; the underlying
// detail goes to the log, never to the client.
func infraError(err error) error {
	if err == nil || apperror.From(err) != nil {
		return err
	}
	log.Printf("onboarding: %v", err)
	return apperror.Infrastructure()
}

type CreatePathologyCenterInput struct {
	CenterName       string
	Email            string
	PhoneNumber      string
	Address          string
	Password         string
	Labs             []string
	Bookings         []models.Booking
	SampleCollection []models.SampleSlot
}

type CreatePharmacyInput struct {
	PharmacyName  string
	OwnerName     string
	Email         string
	PhoneNumber   string
	Address       string
	LicenceNumber string
	Password      string
}

// CreatePathologyCenter creates the center and its admin account inside one
// transaction: either both documents exist afterwards, cross-linked, or
// neither does. The returned admin has the password field stripped.
func (s *OnboardingService) CreatePathologyCenter(ctx context.Context, in CreatePathologyCenterInput) (*models.Admin, *models.PathologyCenter, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, nil, infraError(err)
	}
	defer session.EndSession(ctx)

	var (
		admin  models.Admin
		center models.PathologyCenter
	)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		centers := s.db.Collection("pathology_centers")

		admin, err = s.createLinkedAdmin(sc, centers, in.CenterName, in.Email, in.PhoneNumber, in.Password, models.RolePathology)
		if err != nil {
			return nil, err
		}

		now := admin.CreatedAt
		center = models.PathologyCenter{
			ID:               primitive.NewObjectID(),
			CenterName:       in.CenterName,
			Email:            in.Email,
			PhoneNumber:      in.PhoneNumber,
			Address:          in.Address,
			Labs:             orEmpty(in.Labs),
			Bookings:         orEmptyBookings(in.Bookings),
			SampleCollection: orEmptySlots(in.SampleCollection),
			AdminID:          admin.ID,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if _, err := centers.InsertOne(sc, center); err != nil {
			return nil, err
		}

		update := bson.M{"$set": bson.M{"pathologyCenterId": center.ID, "updatedAt": now}}
		if _, err := s.db.Collection("admins").UpdateOne(sc, bson.M{"_id": admin.ID}, update); err != nil {
			return nil, err
		}
		admin.PathologyCenterID = &center.ID
		return nil, nil
	})
	if err != nil {
		return nil, nil, infraError(err)
	}

	admin.Password = ""
	return &admin, &center, nil
}

// CreatePharmacy runs the same unit of work for a pharmacy and its admin.
func (s *OnboardingService) CreatePharmacy(ctx context.Context, in CreatePharmacyInput) (*models.Admin, *models.Pharmacy, error) {
	session, err := s.client.StartSession()
	if err != nil {
		return nil, nil, infraError(err)
	}
	defer session.EndSession(ctx)

	var (
		admin    models.Admin
		pharmacy models.Pharmacy
	)
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		pharmacies := s.db.Collection("pharmacies")

		admin, err = s.createLinkedAdmin(sc, pharmacies, in.PharmacyName, in.Email, in.PhoneNumber, in.Password, models.RolePharmacy)
		if err != nil {
			return nil, err
		}

		now := admin.CreatedAt
		pharmacy = models.Pharmacy{
			ID:            primitive.NewObjectID(),
			PharmacyName:  in.PharmacyName,
			OwnerName:     in.OwnerName,
			Email:         in.Email,
			PhoneNumber:   in.PhoneNumber,
			Address:       in.Address,
			LicenceNumber: in.LicenceNumber,
			AdminID:       admin.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if _, err := pharmacies.InsertOne(sc, pharmacy); err != nil {
			return nil, err
		}

		update := bson.M{"$set": bson.M{"pharmacyId": pharmacy.ID, "updatedAt": now}}
		if _, err := s.db.Collection("admins").UpdateOne(sc, bson.M{"_id": admin.ID}, update); err != nil {
			return nil, err
		}
		admin.PharmacyID = &pharmacy.ID
		return nil, nil
	})
	if err != nil {
		return nil, nil, infraError(err)
	}

	admin.Password = ""
	return &admin, &pharmacy, nil
}

// createLinkedAdmin performs the uniqueness checks and the first write of
// the workflow. Driver sessions are not safe for concurrent use, so the two
// existence checks run back to back on the session context. Later writes
// depend on the admin id generated here, which fixes the write order.
func (s *OnboardingService) createLinkedAdmin(sc mongo.SessionContext, entityColl *mongo.Collection, name, email, phone, password, role string) (models.Admin, error) {
	entityFilter := bson.M{"$or": []bson.M{{"email": email}, {"phoneNumber": phone}}}
	err := entityColl.FindOne(sc, entityFilter).Err()
	if err == nil {
		return models.Admin{}, apperror.Conflict("Email or phone already exists")
	}
	if err != mongo.ErrNoDocuments {
		return models.Admin{}, err
	}

	admins := s.db.Collection("admins")
	err = admins.FindOne(sc, bson.M{"email": email}).Err()
	if err == nil {
		return models.Admin{}, apperror.Conflict("Email or phone already exists")
	}
	if err != mongo.ErrNoDocuments {
		return models.Admin{}, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return models.Admin{}, err
	}

	now := time.Now()
	admin := models.Admin{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  hashed,
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := admins.InsertOne(sc, admin); err != nil {
		return models.Admin{}, err
	}
	return admin, nil
}

// DeletePathologyCenter removes the center and cascades to its linked admin
// account inside one transaction.
func (s *OnboardingService) DeletePathologyCenter(ctx context.Context, id primitive.ObjectID) error {
	centers := s.db.Collection("pathology_centers")

	var center models.PathologyCenter
	if err := centers.FindOne(ctx, bson.M{"_id": id}).Decode(&center); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperror.NotFound("Pathology Center not found")
		}
		return infraError(err)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return infraError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.db.Collection("admins").DeleteOne(sc, bson.M{"_id": center.AdminID}); err != nil {
			return nil, err
		}
		if _, err := centers.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return infraError(err)
}

// DeletePharmacy removes the pharmacy and cascades to its linked admin.
func (s *OnboardingService) DeletePharmacy(ctx context.Context, id primitive.ObjectID) error {
	pharmacies := s.db.Collection("pharmacies")

	var pharmacy models.Pharmacy
	if err := pharmacies.FindOne(ctx, bson.M{"_id": id}).Decode(&pharmacy); err != nil {
		if err == mongo.ErrNoDocuments {
			return apperror.NotFound("Pharmacy not found")
		}
		return infraError(err)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return infraError(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.db.Collection("admins").DeleteOne(sc, bson.M{"_id": pharmacy.AdminID}); err != nil {
			return nil, err
		}
		if _, err := pharmacies.DeleteOne(sc, bson.M{"_id": id}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return infraError(err)
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyBookings(b []models.Booking) []models.Booking {
	if b == nil {
		return []models.Booking{}
	}
	return b
}

func orEmptySlots(s []models.SampleSlot) []models.SampleSlot {
	if s == nil {
		return []models.SampleSlot{}
	}
	return s
}
