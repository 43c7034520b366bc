package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/curelink/admin-api/internal/utils"
)

func TestLogin(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	adminID := primitive.NewObjectID()
	adminDoc := bson.D{
		{Key: "_id", Value: adminID},
		{Key: "name", Value: "Root"},
		{Key: "email", Value: "root@x.com"},
		{Key: "password", Value: hash},
		{Key: "role", Value: "superadmin"},
	}

	mt.Run("issues a token on valid credentials", func(mt *mtest.T) {
		mt.Setenv("JWT_SECRET", "test-secret")
		h, r := newTestRouter(mt)
		r.POST("/admin-login", h.Login)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch, adminDoc))

		w := postJSON(r, "/admin-login", gin.H{"email": "root@x.com", "password": "secret123"})

		require.Equal(mt, http.StatusOK, w.Code)
		env := decodeEnvelope(mt.T, w)
		require.True(mt, env.Success)

		data := env.Data.(map[string]interface{})
		token, ok := data["token"].(string)
		require.True(mt, ok)
		claims, err := utils.ValidateJWT(token)
		require.NoError(mt, err)
		assert.Equal(mt, adminID.Hex(), claims.AdminID)
		assert.Equal(mt, "superadmin", claims.Role)

		admin := data["admin"].(map[string]interface{})
		assert.Equal(mt, "root@x.com", admin["email"])
		assert.NotContains(mt, admin, "password")
	})

	mt.Run("rejects a wrong password", func(mt *mtest.T) {
		h, r := newTestRouter(mt)
		r.POST("/admin-login", h.Login)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch, adminDoc))

		w := postJSON(r, "/admin-login", gin.H{"email": "root@x.com", "password": "wrong"})

		assert.Equal(mt, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(mt.T, w)
		assert.False(mt, env.Success)
		assert.Equal(mt, "Invalid email or password", env.Message)
	})

	mt.Run("rejects an unknown email", func(mt *mtest.T) {
		h, r := newTestRouter(mt)
		r.POST("/admin-login", h.Login)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch))

		w := postJSON(r, "/admin-login", gin.H{"email": "nobody@x.com", "password": "secret123"})

		assert.Equal(mt, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(mt.T, w)
		assert.Equal(mt, "Invalid email or password", env.Message)
	})

	mt.Run("validates the request body", func(mt *mtest.T) {
		h, r := newTestRouter(mt)
		r.POST("/admin-login", h.Login)

		w := postJSON(r, "/admin-login", gin.H{"email": "not-an-email", "password": "secret123"})

		assert.Equal(mt, http.StatusBadRequest, w.Code)
	})
}

func TestChangedPassword(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	hash, err := utils.HashPassword("oldsecret1")
	require.NoError(t, err)

	adminID := primitive.NewObjectID()
	adminDoc := bson.D{
		{Key: "_id", Value: adminID},
		{Key: "email", Value: "root@x.com"},
		{Key: "password", Value: hash},
		{Key: "role", Value: "superadmin"},
	}

	authedRouter := func(mt *mtest.T) *gin.Engine {
		h, r := newTestRouter(mt)
		r.Use(func(c *gin.Context) { c.Set("adminID", adminID.Hex()) })
		r.POST("/changed-password", h.ChangedPassword)
		return r
	}

	mt.Run("changes the password", func(mt *mtest.T) {
		r := authedRouter(mt)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch, adminDoc),
			mtest.CreateSuccessResponse(),
		)

		w := postJSON(r, "/changed-password", gin.H{"oldPassword": "oldsecret1", "newPassword": "newsecret1"})

		require.Equal(mt, http.StatusOK, w.Code)
		env := decodeEnvelope(mt.T, w)
		assert.True(mt, env.Success)
		assert.Equal(mt, "Password changed successfully", env.Message)
	})

	mt.Run("rejects a wrong old password", func(mt *mtest.T) {
		r := authedRouter(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".admins", mtest.FirstBatch, adminDoc))

		w := postJSON(r, "/changed-password", gin.H{"oldPassword": "wrong", "newPassword": "newsecret1"})

		assert.Equal(mt, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(mt.T, w)
		assert.Equal(mt, "Old password is incorrect", env.Message)
	})

	mt.Run("rejects a short new password", func(mt *mtest.T) {
		r := authedRouter(mt)

		w := postJSON(r, "/changed-password", gin.H{"oldPassword": "oldsecret1", "newPassword": "short"})

		assert.Equal(mt, http.StatusBadRequest, w.Code)
	})
}
