package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/curelink/admin-api/internal/apperror"
)

const testDB = "admin_api_test"

func centerInput() CreatePathologyCenterInput {
	return CreatePathologyCenterInput{
		CenterName:  "Acme Labs",
		Email:       "a@x.com",
		PhoneNumber: "111",
		Address:     "12 Lab Street",
		Password:    "secret123",
		Labs:        []string{"haematology", "biochemistry"},
	}
}

func TestCreatePathologyCenter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates admin and center cross-linked", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(
			// uniqueness checks: no existing center, no existing admin
			mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch),
			// insert admin, insert center, back-reference update, commit
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		admin, center, err := svc.CreatePathologyCenter(context.Background(), centerInput())
		require.NoError(mt, err)
		require.NotNil(mt, admin)
		require.NotNil(mt, center)

		assert.Equal(mt, "pathology", admin.Role)
		assert.Equal(mt, "Acme Labs", admin.Name)
		assert.True(mt, admin.IsActive)
		assert.Empty(mt, admin.Password)
		require.NotNil(mt, admin.PathologyCenterID)
		assert.Equal(mt, center.ID, *admin.PathologyCenterID)
		assert.Equal(mt, admin.ID, center.AdminID)
		assert.Equal(mt, []string{"haematology", "biochemistry"}, center.Labs)
		assert.False(mt, center.CreatedAt.IsZero())
	})

	mt.Run("defaults optional lists to empty", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		in := centerInput()
		in.Labs = nil
		_, center, err := svc.CreatePathologyCenter(context.Background(), in)
		require.NoError(mt, err)
		assert.NotNil(mt, center.Labs)
		assert.NotNil(mt, center.Bookings)
		assert.NotNil(mt, center.SampleCollection)
		assert.Empty(mt, center.Labs)
	})

	mt.Run("conflict when center email or phone exists", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "a@x.com"},
			}),
			// abortTransaction
			mtest.CreateSuccessResponse(),
		)

		admin, center, err := svc.CreatePathologyCenter(context.Background(), centerInput())
		require.Error(mt, err)
		assert.Nil(mt, admin)
		assert.Nil(mt, center)

		appErr := apperror.From(err)
		require.NotNil(mt, appErr)
		assert.Equal(mt, http.StatusBadRequest, appErr.Status)
		assert.Equal(mt, "Email or phone already exists", appErr.Message)
	})

	mt.Run("conflict when admin email exists", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: "a@x.com"},
			}),
			// abortTransaction
			mtest.CreateSuccessResponse(),
		)

		admin, center, err := svc.CreatePathologyCenter(context.Background(), centerInput())
		require.Error(mt, err)
		assert.Nil(mt, admin)
		assert.Nil(mt, center)
		require.NotNil(mt, apperror.From(err))
	})

	mt.Run("store failure surfaces as infrastructure error", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch),
			// insert admin fails, then abortTransaction
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 8, Name: "UnknownError", Message: "insert failed"}),
			mtest.CreateSuccessResponse(),
		)

		admin, center, err := svc.CreatePathologyCenter(context.Background(), centerInput())
		require.Error(mt, err)
		assert.Nil(mt, admin)
		assert.Nil(mt, center)

		appErr := apperror.From(err)
		require.NotNil(mt, appErr)
		assert.Equal(mt, http.StatusInternalServerError, appErr.Status)
		assert.Equal(mt, "Internal server error", appErr.Message)
	})
}

func TestCreatePharmacy(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates admin with pharmacy role", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".pharmacies", mtest.FirstBatch),
			mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		admin, pharmacy, err := svc.CreatePharmacy(context.Background(), CreatePharmacyInput{
			PharmacyName: "City Pharmacy",
			OwnerName:    "R. Mehta",
			Email:        "p@x.com",
			PhoneNumber:  "222",
			Address:      "4 Market Road",
			Password:     "secret123",
		})
		require.NoError(mt, err)

		assert.Equal(mt, "pharmacy", admin.Role)
		assert.Empty(mt, admin.Password)
		require.NotNil(mt, admin.PharmacyID)
		assert.Equal(mt, pharmacy.ID, *admin.PharmacyID)
		assert.Equal(mt, admin.ID, pharmacy.AdminID)
	})
}

func TestDeletePathologyCenter(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("not found", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch))

		err := svc.DeletePathologyCenter(context.Background(), primitive.NewObjectID())
		require.Error(mt, err)

		appErr := apperror.From(err)
		require.NotNil(mt, appErr)
		assert.Equal(mt, http.StatusNotFound, appErr.Status)
	})

	mt.Run("cascades to the linked admin", func(mt *mtest.T) {
		svc := NewOnboardingService(mt.Client.Database(testDB))

		centerID := primitive.NewObjectID()
		adminID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".pathology_centers", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: centerID},
				{Key: "centerName", Value: "Acme Labs"},
				{Key: "adminId", Value: adminID},
			}),
			// delete admin, delete center, commit
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		err := svc.DeletePathologyCenter(context.Background(), centerID)
		assert.NoError(mt, err)
	})
}
