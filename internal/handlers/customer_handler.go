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
)

// GetAllCustomers lists customers page by page with secrets stripped from
// the projection.
func (h *Handler) GetAllCustomers(c *gin.Context) {
	params := query.ParseParams(c)
	customers := h.DB.Collection("customers")

	page, err := query.Find[models.Customer](c.Request.Context(), customers, nil, params, sensitiveFields)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Customers Found", []models.Customer{})
		return
	}

	response.Send(c, http.StatusOK, true, "Customers fetched successfully", gin.H{
		"customers":   page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}

// GetCustomerByID returns one customer, secret fields excluded.
func (h *Handler) GetCustomerByID(c *gin.Context) {
	id := c.Query("customerId")
	if id == "" {
		c.Error(apperror.Validation("Customer ID is required"))
		return
	}
	oid, err := parseObjectID(id, "Invalid customer id")
	if err != nil {
		c.Error(err)
		return
	}

	var customer models.Customer
	customers := h.DB.Collection("customers")
	opts := options.FindOne().SetProjection(sensitiveFields)
	err = customers.FindOne(c.Request.Context(), bson.M{"_id": oid}, opts).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Customer not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Customer fetched successfully", customer)
}

type blockUnblockCustomerRequest struct {
	CustomerID string `json:"customerId" binding:"required"`
}

// BlockUnblockCustomer flips the customer's blocked flag. The new state is
// the negation of the current one, so applying the operation twice restores
// the original state.
func (h *Handler) BlockUnblockCustomer(c *gin.Context) {
	var req blockUnblockCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Customer ID is required"))
		return
	}
	oid, err := parseObjectID(req.CustomerID, "Invalid customer id")
	if err != nil {
		c.Error(err)
		return
	}

	var customer models.Customer
	customers := h.DB.Collection("customers")
	err = customers.FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&customer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Customer not found"))
			return
		}
		c.Error(err)
		return
	}

	blocked := !customer.IsBlocked
	update := bson.M{"$set": bson.M{"isBlocked": blocked, "updatedAt": time.Now()}}
	if _, err := customers.UpdateOne(c.Request.Context(), bson.M{"_id": oid}, update); err != nil {
		c.Error(err)
		return
	}

	customer.IsBlocked = blocked
	customer.Password = ""
	customer.OTP = ""

	message := "Customer unblocked successfully"
	if blocked {
		message = "Customer blocked successfully"
	}
	response.Send(c, http.StatusOK, true, message, customer)
}
