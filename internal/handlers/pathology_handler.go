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

type createPathologyCenterRequest struct {
	CenterName       string              `json:"centerName" binding:"required"`
	Email            string              `json:"email" binding:"required,email"`
	PhoneNumber      string              `json:"phoneNumber" binding:"required"`
	Address          string              `json:"address" binding:"required"`
	Password         string              `json:"password" binding:"required"`
	Labs             []string            `json:"labs"`
	Bookings         []models.Booking    `json:"bookings"`
	SampleCollection []models.SampleSlot `json:"sampleCollection"`
}

// CreatePathologyCenter onboards a center together with its admin account.
// The role guard has already verified the caller is a superadmin; the
// transactional work happens in the onboarding service.
func (h *Handler) CreatePathologyCenter(c *gin.Context) {
	var req createPathologyCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("All required fields must be provided"))
		return
	}

	admin, center, err := h.Onboarding.CreatePathologyCenter(c.Request.Context(), services.CreatePathologyCenterInput{
		CenterName:       req.CenterName,
		Email:            req.Email,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		Password:         req.Password,
		Labs:             req.Labs,
		Bookings:         req.Bookings,
		SampleCollection: req.SampleCollection,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusCreated, true, "Pathology Center and Admin created successfully", gin.H{
		"admin":           admin,
		"pathologyCenter": center,
	})
}

// GetPathologyCenterByID returns one center with its linked admin account,
// the admin's secret fields excluded.
func (h *Handler) GetPathologyCenterByID(c *gin.Context) {
	id := c.Query("pathologyCenterId")
	if id == "" {
		c.Error(apperror.NotFound("Please provide pathologyCenterId"))
		return
	}
	oid, err := parseObjectID(id, "Invalid pathologyCenterId")
	if err != nil {
		c.Error(err)
		return
	}

	var center models.PathologyCenter
	centers := h.DB.Collection("pathology_centers")
	err = centers.FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&center)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Pathology Center not found"))
			return
		}
		c.Error(err)
		return
	}

	var admin models.Admin
	opts := options.FindOne().SetProjection(sensitiveFields)
	err = h.DB.Collection("admins").FindOne(c.Request.Context(), bson.M{"_id": center.AdminID}, opts).Decode(&admin)
	if err != nil && err != mongo.ErrNoDocuments {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Pathology Center fetched successfully.", gin.H{
		"pathologyCenter": center,
		"admin":           admin,
	})
}

// pathologyCenterListItem is one listed center together with its linked
// admin account, secret fields excluded.
type pathologyCenterListItem struct {
	models.PathologyCenter `bson:",inline"`
	Admin                  *models.Admin `bson:"admin" json:"admin,omitempty"`
}

// GetAllPathologyCenters lists centers page by page, newest first by
// default. Each center carries its admin account, joined with $lookup; an
// empty page is a success=false result, not an error.
func (h *Handler) GetAllPathologyCenters(c *gin.Context) {
	params := query.ParseParams(c)
	centers := h.DB.Collection("pathology_centers")
	ctx := c.Request.Context()

	total, err := centers.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.Error(err)
		return
	}

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: params.SortDirection()}}}},
		{{Key: "$skip", Value: params.Skip()}},
		{{Key: "$limit", Value: int64(params.Limit)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "admins"},
			{Key: "localField", Value: "adminId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "admin"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$admin"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "admin.password", Value: 0},
			{Key: "admin.otp", Value: 0},
		}}},
	}
	cursor, err := centers.Aggregate(ctx, pipeline)
	if err != nil {
		c.Error(err)
		return
	}
	defer cursor.Close(ctx)

	var items []pathologyCenterListItem
	if err := cursor.All(ctx, &items); err != nil {
		c.Error(err)
		return
	}

	if len(items) == 0 {
		response.Send(c, http.StatusOK, false, "No Pathology Centers Found", []pathologyCenterListItem{})
		return
	}

	response.Send(c, http.StatusOK, true, "Pathology Centers fetched successfully", gin.H{
		"pathologyCenters": items,
		"currentPage":      params.Page,
		"totalPages":       query.TotalPages(total, params.Limit),
		"total":            total,
	})
}

type updatePathologyCenterRequest struct {
	PathologyCenterID string   `json:"pathologyCenterId" binding:"required"`
	CenterName        string   `json:"centerName"`
	OwnerName         string   `json:"ownerName"`
	PhoneNumber       string   `json:"phoneNumber"`
	Address           string   `json:"address"`
	Labs              []string `json:"labs"`
	Status            string   `json:"status"`
}

// UpdatePathologyCenter applies the provided fields and returns the updated
// document.
func (h *Handler) UpdatePathologyCenter(c *gin.Context) {
	var req updatePathologyCenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Pathology Center Id is required"))
		return
	}
	oid, err := parseObjectID(req.PathologyCenterID, "Invalid pathologyCenterId")
	if err != nil {
		c.Error(err)
		return
	}

	fields := bson.M{}
	if req.CenterName != "" {
		fields["centerName"] = req.CenterName
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
	if req.Labs != nil {
		fields["labs"] = req.Labs
	}
	if req.Status != "" {
		fields["status"] = req.Status
	}
	if len(fields) == 0 {
		c.Error(apperror.Validation("No fields provided for update"))
		return
	}
	fields["updatedAt"] = time.Now()

	var updated models.PathologyCenter
	centers := h.DB.Collection("pathology_centers")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = centers.FindOneAndUpdate(c.Request.Context(), bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Pathology Center not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Pathology Center updated successfully", updated)
}

// DeletePathologyCenter removes a center and its linked admin account.
func (h *Handler) DeletePathologyCenter(c *gin.Context) {
	oid, err := parseObjectID(c.Query("pathologyCenterId"), "Invalid pathologyCenterId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.Onboarding.DeletePathologyCenter(c.Request.Context(), oid); err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Pathology Center and associated admin deleted successfully.", nil)
}

// SearchPathology matches the term against center names and emails,
// case-insensitively.
func (h *Handler) SearchPathology(c *gin.Context) {
	value := c.Query("value")
	if value == "" {
		c.Error(apperror.Validation("Search value is required"))
		return
	}

	params := query.ParseParams(c)
	filter := query.SearchFilter(value, "centerName", "email")
	centers := h.DB.Collection("pathology_centers")

	page, err := query.Find[models.PathologyCenter](c.Request.Context(), centers, filter, params, nil)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Pathology Found", []models.PathologyCenter{})
		return
	}

	response.Send(c, http.StatusOK, true, "Pathology fetched successfully", gin.H{
		"pathologies": page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}
