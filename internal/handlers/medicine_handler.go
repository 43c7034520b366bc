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

type createMedicineRequest struct {
	Name                 string  `json:"name" binding:"required"`
	Description          string  `json:"description"`
	Manufacturer         string  `json:"manufacturer"`
	Price                float64 `json:"price" binding:"required,gt=0"`
	Stock                int     `json:"stock"`
	PrescriptionRequired bool    `json:"prescriptionRequired"`
}

// CreateMedicine adds a medicine to the catalogue.
func (h *Handler) CreateMedicine(c *gin.Context) {
	var req createMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Name and a positive price are required"))
		return
	}

	now := time.Now()
	medicine := models.Medicine{
		ID:                   primitive.NewObjectID(),
		Name:                 req.Name,
		Description:          req.Description,
		Manufacturer:         req.Manufacturer,
		Price:                req.Price,
		Stock:                req.Stock,
		PrescriptionRequired: req.PrescriptionRequired,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	medicines := h.DB.Collection("medicines")
	if _, err := medicines.InsertOne(c.Request.Context(), medicine); err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusCreated, true, "Medicine created successfully", medicine)
}

type updateMedicineRequest struct {
	MedicineID           string   `json:"medicineId" binding:"required"`
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Manufacturer         string   `json:"manufacturer"`
	Price                *float64 `json:"price"`
	Stock                *int     `json:"stock"`
	PrescriptionRequired *bool    `json:"prescriptionRequired"`
}

// UpdateMedicine applies the provided fields and returns the updated
// document.
func (h *Handler) UpdateMedicine(c *gin.Context) {
	var req updateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Medicine ID is required"))
		return
	}
	oid, err := parseObjectID(req.MedicineID, "Invalid medicineId")
	if err != nil {
		c.Error(err)
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Manufacturer != "" {
		fields["manufacturer"] = req.Manufacturer
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			c.Error(apperror.Validation("Price must be positive"))
			return
		}
		fields["price"] = *req.Price
	}
	if req.Stock != nil {
		fields["stock"] = *req.Stock
	}
	if req.PrescriptionRequired != nil {
		fields["prescriptionRequired"] = *req.PrescriptionRequired
	}
	if len(fields) == 0 {
		c.Error(apperror.Validation("No fields provided for update"))
		return
	}
	fields["updatedAt"] = time.Now()

	var updated models.Medicine
	medicines := h.DB.Collection("medicines")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = medicines.FindOneAndUpdate(c.Request.Context(), bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Medicine not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Medicine updated successfully", updated)
}

// GetAllMedicines lists medicines page by page.
func (h *Handler) GetAllMedicines(c *gin.Context) {
	params := query.ParseParams(c)
	medicines := h.DB.Collection("medicines")

	page, err := query.Find[models.Medicine](c.Request.Context(), medicines, nil, params, nil)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Medicines Found", []models.Medicine{})
		return
	}

	response.Send(c, http.StatusOK, true, "Medicines fetched successfully", gin.H{
		"medicines":   page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}

// GetMedicineByID returns one medicine.
func (h *Handler) GetMedicineByID(c *gin.Context) {
	id := c.Query("medicineId")
	if id == "" {
		c.Error(apperror.Validation("Medicine ID is required"))
		return
	}
	oid, err := parseObjectID(id, "Invalid medicineId")
	if err != nil {
		c.Error(err)
		return
	}

	var medicine models.Medicine
	medicines := h.DB.Collection("medicines")
	err = medicines.FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&medicine)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Medicine not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Medicine fetched successfully", medicine)
}

// SearchMedicine matches the term against medicine names and
// manufacturers, case-insensitively.
func (h *Handler) SearchMedicine(c *gin.Context) {
	value := c.Query("value")
	if value == "" {
		c.Error(apperror.Validation("Search value is required"))
		return
	}

	params := query.ParseParams(c)
	filter := query.SearchFilter(value, "name", "manufacturer")
	medicines := h.DB.Collection("medicines")

	page, err := query.Find[models.Medicine](c.Request.Context(), medicines, filter, params, nil)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Medicines Found", []models.Medicine{})
		return
	}

	response.Send(c, http.StatusOK, true, "Medicines fetched successfully", gin.H{
		"medicines":   page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}
