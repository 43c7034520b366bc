package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curelink/admin-api/internal/apperror"
	"github.com/curelink/admin-api/internal/models"
	"github.com/curelink/admin-api/internal/query"
	"github.com/curelink/admin-api/internal/response"
	"github.com/curelink/admin-api/internal/services"
)

type createPharmacyRequest struct {
	PharmacyName  string `json:"pharmacyName" binding:"required"`
	OwnerName     string `json:"ownerName"`
	Email         string `json:"email" binding:"required,email"`
	PhoneNumber   string `json:"phoneNumber" binding:"required"`
	Address       string `json:"address" binding:"required"`
	LicenceNumber string `json:"licenceNumber"`
	Password      string `json:"password" binding:"required"`
}

// CreatePharmacy onboards a pharmacy together with its admin account
// through the same transactional workflow as pathology centers.
func (h *Handler) CreatePharmacy(c *gin.Context) {
	var req createPharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("All required fields must be provided"))
		return
	}

	admin, pharmacy, err := h.Onboarding.CreatePharmacy(c.Request.Context(), services.CreatePharmacyInput{
		PharmacyName:  req.PharmacyName,
		OwnerName:     req.OwnerName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Address:       req.Address,
		LicenceNumber: req.LicenceNumber,
		Password:      req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusCreated, true, "Pharmacy and Admin created successfully", gin.H{
		"admin":    admin,
		"pharmacy": pharmacy,
	})
}

// GetPharmacyByID returns one pharmacy.
func (h *Handler) GetPharmacyByID(c *gin.Context) {
	id := c.Query("pharmacyId")
	if id == "" {
		c.Error(apperror.Validation("Pharmacy ID is required"))
		return
	}
	oid, err := parseObjectID(id, "Invalid pharmacyId")
	if err != nil {
		c.Error(err)
		return
	}

	var pharmacy models.Pharmacy
	pharmacies := h.DB.Collection("pharmacies")
	err = pharmacies.FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&pharmacy)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Pharmacy not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Pharmacy fetched successfully", pharmacy)
}

// GetAllPharmacy lists pharmacies page by page.
func (h *Handler) GetAllPharmacy(c *gin.Context) {
	params := query.ParseParams(c)
	pharmacies := h.DB.Collection("pharmacies")

	page, err := query.Find[models.Pharmacy](c.Request.Context(), pharmacies, nil, params, nil)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Pharmacies Found", []models.Pharmacy{})
		return
	}

	response.Send(c, http.StatusOK, true, "Pharmacies fetched successfully", gin.H{
		"pharmacies":  page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}

type updatePharmacyRequest struct {
	PharmacyID    string `json:"pharmacyId" binding:"required"`
	PharmacyName  string `json:"pharmacyName"`
	OwnerName     string `json:"ownerName"`
	PhoneNumber   string `json:"phoneNumber"`
	Address       string `json:"address"`
	LicenceNumber string `json:"licenceNumber"`
	Status        string `json:"status"`
}

// UpdatePharmacy applies the provided fields and returns the updated
// document.
func (h *Handler) UpdatePharmacy(c *gin.Context) {
	var req updatePharmacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Pharmacy Id is required"))
		return
	}
	oid, err := parseObjectID(req.PharmacyID, "Invalid pharmacyId")
	if err != nil {
		c.Error(err)
		return
	}

	fields := bson.M{}
	if req.PharmacyName != "" {
		fields["pharmacyName"] = req.PharmacyName
	}
	if req.OwnerName != "" {
		fields["ownerName"] = req.OwnerName
	}
	if req.PhoneNumber != "" {
		fields["phoneNumber"] = req.PhoneNumber
	}
	if req.Address != "" {
		fields["address"] = req.Address
	}
	if req.LicenceNumber != "" {
		fields["licenceNumber"] = req.LicenceNumber
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if len(fields) == 0 {
		c.Error(apperror.Validation("No fields provided for update"))
		return
	}
	fields["updatedAt"] = time.Now()

	var updated models.Pharmacy
	pharmacies := h.DB.Collection("pharmacies")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = pharmacies.FindOneAndUpdate(c.Request.Context(), bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Pharmacy not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Pharmacy updated successfully", updated)
}

// DeletePharmacy removes a pharmacy and its linked admin account.
func (h *Handler) DeletePharmacy(c *gin.Context) {
	oid, err := parseObjectID(c.Query("pharmacyId"), "Invalid pharmacyId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.Onboarding.DeletePharmacy(c.Request.Context(), oid); err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Pharmacy and associated admin deleted successfully.", nil)
}

// SearchPharmacy matches the term against pharmacy names and emails,
// case-insensitively.
func (h *Handler) SearchPharmacy(c *gin.Context) {
	value := c.Query("value")
	if value == "" {
		c.Error(apperror.Validation("Search value is required"))
		return
	}

	params := query.ParseParams(c)
	filter := query.SearchFilter(value, "pharmacyName", "email")
	pharmacies := h.DB.Collection("pharmacies")

	page, err := query.Find[models.Pharmacy](c.Request.Context(), pharmacies, filter, params, nil)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Pharmacies Found", []models.Pharmacy{})
		return
	}

	response.Send(c, http.StatusOK, true, "Pharmacies fetched successfully", gin.H{
		"pharmacies":  page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}
