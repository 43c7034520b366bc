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

// GetAllOrders lists orders page by page, optionally narrowed by
// orderStatus and orderType query parameters.
func (h *Handler) GetAllOrders(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("orderStatus"); status != "" {
		if !models.IsValidOrderStatus(status) {
			c.Error(apperror.Validation("Invalid orderStatus"))
			return
		}
		filter["orderStatus"] = status
	}
	if orderType := c.Query("orderType"); orderType != "" {
		if orderType != models.OrderTypePharmacy && orderType != models.OrderTypePathology {
			c.Error(apperror.Validation("Invalid orderType"))
			return
		}
		filter["orderType"] = orderType
	}

	params := query.ParseParams(c)
	orders := h.DB.Collection("orders")

	page, err := query.Find[models.Order](c.Request.Context(), orders, filter, params, nil)
	if err != nil {
		c.Error(err)
		return
	}

	if len(page.Items) == 0 {
		response.Send(c, http.StatusOK, false, "No Orders Found", []models.Order{})
		return
	}

	response.Send(c, http.StatusOK, true, "Orders fetched successfully", gin.H{
		"orders":      page.Items,
		"currentPage": page.CurrentPage,
		"totalPages":  page.TotalPages,
		"total":       page.Total,
	})
}

// GetOrderByID returns one order.
func (h *Handler) GetOrderByID(c *gin.Context) {
	id := c.Query("orderId")
	if id == "" {
		c.Error(apperror.Validation("Order ID is required"))
		return
	}
	oid, err := parseObjectID(id, "Invalid orderId")
	if err != nil {
		c.Error(err)
		return
	}

	var order models.Order
	orders := h.DB.Collection("orders")
	err = orders.FindOne(c.Request.Context(), bson.M{"_id": oid}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Order not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Order fetched successfully", order)
}

type updateOrderStatusRequest struct {
	OrderID     string `json:"orderId" binding:"required"`
	OrderStatus string `json:"orderStatus" binding:"required"`
}

// UpdateOrderStatus sets the order's progress state to the requested value.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("orderId and orderStatus are required"))
		return
	}
	if !models.IsValidOrderStatus(req.OrderStatus) {
		c.Error(apperror.Validation("Invalid orderStatus"))
		return
	}
	oid, err := parseObjectID(req.OrderID, "Invalid orderId")
	if err != nil {
		c.Error(err)
		return
	}

	var updated models.Order
	orders := h.DB.Collection("orders")
	update := bson.M{"$set": bson.M{"orderStatus": req.OrderStatus, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = orders.FindOneAndUpdate(c.Request.Context(), bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Order not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Order status updated successfully", updated)
}
