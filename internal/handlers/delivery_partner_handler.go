package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curelink/admin-api/internal/apperror"
	"github.com/curelink/admin-api/internal/models"
	"github.com/curelink/admin-api/internal/query"
	"github.com/curelink/admin-api/internal/response"
)

type approveDeliveryPartnerRequest struct {
	DeliveryPartnerID string `json:"deliveryPartnerId" binding:"required"`
	Status            string `json:"status" binding:"required,oneof=approved rejected"`
}

// ApproveDeliveryPartner sets the partner's approval state to approved or
// rejected.
func (h *Handler) ApproveDeliveryPartner(c *gin.Context) {
	var req approveDeliveryPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("deliveryPartnerId and a status of approved or rejected are required"))
		return
	}
	oid, err := parseObjectID(req.DeliveryPartnerID, "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	updated, err := h.setDeliveryPartnerFields(c, oid, bson.M{"approvalStatus": req.Status})
	if err != nil {
		c.Error(err)
		return
	}

	message := "Delivery partner approved successfully"
	if req.Status == models.ApprovalRejected {
		message = "Delivery partner rejected successfully"
	}
	response.Send(c, http.StatusOK, true, message, updated)
}

// GetAllDeliveryPartners lists partners page by page, secrets stripped.
func (h *Handler) GetAllDeliveryPartners(c *gin.Context) {
	params := query.ParseParams(c)
	partners := h.DB.Collection("delivery_partners")

	page, err := query.Find[models.DeliveryPartner](c.Request.Context(), partners, nil, params, sensitiveFields)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Delivery Partners Found", []models.DeliveryPartner{})
		return
	}

	response.Send(c, http.StatusOK, true, "Delivery partners fetched successfully", gin.H{
		"deliveryPartners": page.Items,
		"currentPage":      page.CurrentPage,
		"totalPages":       page.TotalPages,
		"total":            page.Total,
	})
}

// GetDeliveryPartnerByID returns one partner, secret fields excluded.
func (h *Handler) GetDeliveryPartnerByID(c *gin.Context) {
	id := c.Query("deliveryPartnerId")
	if id == "" {
		c.Error(apperror.Validation("Delivery partner ID is required"))
		return
	}
	oid, err := parseObjectID(id, "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	var partner models.DeliveryPartner
	partners := h.DB.Collection("delivery_partners")
	opts := options.FindOne().SetProjection(sensitiveFields)
	err = partners.FindOne(c.Request.Context(), bson.M{"_id": oid}, opts).Decode(&partner)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Delivery partner not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Delivery partner fetched successfully", partner)
}

type updateDeliveryPartnerRequest struct {
	DeliveryPartnerID string `json:"deliveryPartnerId" binding:"required"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	VehicleNumber     string `json:"vehicleNumber"`
}

// UpdateDeliveryPartner applies the provided profile fields.
func (h *Handler) UpdateDeliveryPartner(c *gin.Context) {
	var req updateDeliveryPartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Delivery partner ID is required"))
		return
	}
	oid, err := parseObjectID(req.DeliveryPartnerID, "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if req.VehicleNumber != "" {
		fields["vehicleNumber"] = req.VehicleNumber
	}
	if len(fields) == 0 {
		c.Error(apperror.Validation("No fields provided for update"))
		return
	}

	updated, err := h.setDeliveryPartnerFields(c, oid, fields)
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Delivery partner updated successfully", updated)
}

type updateAvailabilityRequest struct {
	DeliveryPartnerID string `json:"deliveryPartnerId" binding:"required"`
	IsAvailable       *bool  `json:"isAvailable" binding:"required"`
}

// UpdateAvailabilityStatus sets the partner's availability to the requested
// target state.
func (h *Handler) UpdateAvailabilityStatus(c *gin.Context) {
	var req updateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("deliveryPartnerId and isAvailable are required"))
		return
	}
	oid, err := parseObjectID(req.DeliveryPartnerID, "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	updated, err := h.setDeliveryPartnerFields(c, oid, bson.M{"isAvailable": *req.IsAvailable})
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Availability status updated successfully", updated)
}

// DeleteDeliveryPartner removes a partner.
func (h *Handler) DeleteDeliveryPartner(c *gin.Context) {
	oid, err := parseObjectID(c.Query("deliveryPartnerId"), "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	partners := h.DB.Collection("delivery_partners")
	result, err := partners.DeleteOne(c.Request.Context(), bson.M{"_id": oid})
	if err != nil {
		c.Error(err)
		return
	}
	if result.DeletedCount == 0 {
		c.Error(apperror.NotFound("Delivery partner not found"))
		return
	}

	response.Send(c, http.StatusOK, true, "Delivery partner deleted successfully", nil)
}

type deliveryPartnerIDRequest struct {
	DeliveryPartnerID string `json:"deliveryPartnerId" binding:"required"`
}

// BlockDeliveryPartner sets the blocked flag. Unlike the customer toggle,
// block and unblock are explicit target states, so retries are harmless.
func (h *Handler) BlockDeliveryPartner(c *gin.Context) {
	h.setBlocked(c, true, "Delivery partner blocked successfully")
}

// UnblockDeliveryPartner clears the blocked flag.
func (h *Handler) UnblockDeliveryPartner(c *gin.Context) {
	h.setBlocked(c, false, "Delivery partner unblocked successfully")
}

func (h *Handler) setBlocked(c *gin.Context, blocked bool, message string) {
	var req deliveryPartnerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Delivery partner ID is required"))
		return
	}
	oid, err := parseObjectID(req.DeliveryPartnerID, "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	updated, err := h.setDeliveryPartnerFields(c, oid, bson.M{"isBlocked": blocked})
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, message, updated)
}

type changeStatusRequest struct {
	DeliveryPartnerID string `json:"deliveryPartnerId" binding:"required"`
	Status            string `json:"status" binding:"required"`
}

// ChangeStatusOfDeliveryPartner sets the partner's operational status.
func (h *Handler) ChangeStatusOfDeliveryPartner(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("deliveryPartnerId and status are required"))
		return
	}
	oid, err := parseObjectID(req.DeliveryPartnerID, "Invalid deliveryPartnerId")
	if err != nil {
		c.Error(err)
		return
	}

	updated, err := h.setDeliveryPartnerFields(c, oid, bson.M{"status": req.Status})
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Delivery partner status updated successfully", updated)
}

// setDeliveryPartnerFields applies a $set and returns the updated partner,
// or a not-found error when the id matches nothing.
func (h *Handler) setDeliveryPartnerFields(c *gin.Context, oid primitive.ObjectID, fields bson.M) (*models.DeliveryPartner, error) {
	fields["updatedAt"] = time.Now()

	var updated models.DeliveryPartner
	partners := h.DB.Collection("delivery_partners")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(sensitiveFields)
	err := partners.FindOneAndUpdate(c.Request.Context(), bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperror.NotFound("Delivery partner not found")
		}
		return nil, err
	}
	return &updated, nil
}
