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
	"github.com/curelink/admin-api/internal/response"
	"github.com/curelink/admin-api/internal/utils"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin's credentials and issues a bearer token carrying
// the admin id and role.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Email and password are required"))
		return
	}

	var admin models.Admin
	admins := h.DB.Collection("admins")
	err := admins.FindOne(c.Request.Context(), bson.M{"email": req.Email}).Decode(&admin)
	if err != nil {
		c.Error(&apperror.Error{Status: http.StatusUnauthorized, Message: "Invalid email or password"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, admin.Password) {
		c.Error(&apperror.Error{Status: http.StatusUnauthorized, Message: "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWT(admin.ID.Hex(), admin.Role)
	if err != nil {
		c.Error(err)
		return
	}

	admin.Password = ""
	response.Send(c, http.StatusOK, true, "Login successful", gin.H{"token": token, "admin": admin})
}

// GetAdminDetails returns the profile of the authenticated admin, secret
// fields excluded.
func (h *Handler) GetAdminDetails(c *gin.Context) {
	adminID, err := parseObjectID(c.GetString("adminID"), "Invalid admin id in token")
	if err != nil {
		c.Error(err)
		return
	}

	var admin models.Admin
	admins := h.DB.Collection("admins")
	opts := options.FindOne().SetProjection(sensitiveFields)
	err = admins.FindOne(c.Request.Context(), bson.M{"_id": adminID}, opts).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Admin not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Admin details fetched successfully", admin)
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangedPassword replaces the authenticated admin's password after
// verifying the current one. The new password is hashed before persistence.
func (h *Handler) ChangedPassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Old password and a new password of at least 8 characters are required"))
		return
	}

	adminID, err := parseObjectID(c.GetString("adminID"), "Invalid admin id in token")
	if err != nil {
		c.Error(err)
		return
	}

	var admin models.Admin
	admins := h.DB.Collection("admins")
	err = admins.FindOne(c.Request.Context(), bson.M{"_id": adminID}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Admin not found"))
			return
		}
		c.Error(err)
		return
	}

	if !utils.CheckPasswordHash(req.OldPassword, admin.Password) {
		c.Error(&apperror.Error{Status: http.StatusUnauthorized, Message: "Old password is incorrect"})
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.Error(err)
		return
	}

	update := bson.M{"$set": bson.M{"password": hashed, "updatedAt": time.Now()}}
	if _, err := admins.UpdateOne(c.Request.Context(), bson.M{"_id": adminID}, update); err != nil {
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Password changed successfully", nil)
}

type updateAdminProfileRequest struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// UpdateAdminProfile updates the mutable profile fields of the
// authenticated admin.
func (h *Handler) UpdateAdminProfile(c *gin.Context) {
	var req updateAdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("Invalid request body"))
		return
	}

	fields := bson.M{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Avatar != "" {
		fields["avatar"] = req.Avatar
	}
	if len(fields) == 0 {
		c.Error(apperror.Validation("No fields provided for update"))
		return
	}
	fields["updatedAt"] = time.Now()

	adminID, err := parseObjectID(c.GetString("adminID"), "Invalid admin id in token")
	if err != nil {
		c.Error(err)
		return
	}

	var updated models.Admin
	admins := h.DB.Collection("admins")
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetProjection(sensitiveFields)
	err = admins.FindOneAndUpdate(c.Request.Context(), bson.M{"_id": adminID}, bson.M{"$set": fields}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.Error(apperror.NotFound("Admin not found"))
			return
		}
		c.Error(err)
		return
	}

	response.Send(c, http.StatusOK, true, "Profile updated successfully", updated)
}
