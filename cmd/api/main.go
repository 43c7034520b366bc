package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/curelink/admin-api/internal/handlers"
	"github.com/curelink/admin-api/internal/middleware"
	"github.com/curelink/admin-api/internal/models"
	"github.com/curelink/admin-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(os.Getenv("MONGO_DATABASE"))
	log.Println("Successfully connected to MongoDB!")

	// --- Services and Handlers ---
	onboarding := services.NewOnboardingService(db)
	h := handlers.NewHandler(db, onboarding)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	r.Use(middleware.ErrorHandler())

	admin := r.Group("/admin")

	// Super Admin Auth Routes
	admin.POST("/admin-login", h.Login)

	authed := admin.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.GET("/get-admin-details", h.GetAdminDetails)
	authed.POST("/changed-password", h.ChangedPassword)
	authed.PATCH("/update-admin-profile", h.UpdateAdminProfile)

	// The pharmacy admin updates its own pharmacy; everything else below is
	// superadmin-only.
	authed.PUT("/update-pharmacy", middleware.RequireRole(models.RolePharmacy), h.UpdatePharmacy)

	super := authed.Group("")
	super.Use(middleware.RequireRole(models.RoleSuperAdmin))
	{
		// Super Admin Pathology Routes
		super.POST("/create-pathology", h.CreatePathologyCenter)
		super.GET("/get-pathology-by-id", h.GetPathologyCenterByID)
		super.GET("/get-all-pathology", h.GetAllPathologyCenters)
		super.PUT("/update-pathology", h.UpdatePathologyCenter)
		super.DELETE("/delete-pathology", h.DeletePathologyCenter)
		super.GET("/search-pathology", h.SearchPathology)

		// Super Admin Pharmacy Routes
		super.POST("/create-pharmacy", h.CreatePharmacy)
		super.GET("/get-pharmacy-by-id", h.GetPharmacyByID)
		super.GET("/get-all-pharmacy", h.GetAllPharmacy)
		super.DELETE("/delete-pharmacy", h.DeletePharmacy)
		super.GET("/search-pharmacy", h.SearchPharmacy)

		// Super Admin Delivery Partner Routes
		super.PUT("/approve-delivery-partner", h.ApproveDeliveryPartner)
		super.GET("/get-all-delivery-partner", h.GetAllDeliveryPartners)
		super.GET("/get-delivery-partner-by-id", h.GetDeliveryPartnerByID)
		super.PUT("/update-delivery-partner", h.UpdateDeliveryPartner)
		super.PUT("/update-availability-status", h.UpdateAvailabilityStatus)
		super.DELETE("/delete-delivery-partner", h.DeleteDeliveryPartner)
		super.PUT("/block-delivery-partner", h.BlockDeliveryPartner)
		super.PUT("/unblock-delivery-partner", h.UnblockDeliveryPartner)
		super.PUT("/change-delivery-partner-status", h.ChangeStatusOfDeliveryPartner)

		// Medicines Routes
		super.POST("/create-medicine", h.CreateMedicine)
		super.PUT("/update-medicine", h.UpdateMedicine)
		super.GET("/get-all-medicines", h.GetAllMedicines)
		super.GET("/get-medicine-by-id", h.GetMedicineByID)
		super.GET("/search-medicine", h.SearchMedicine)

		// Customer Routes
		super.GET("/get-all-customer", h.GetAllCustomers)
		super.GET("/get-customer-by-id", h.GetCustomerByID)
		super.PUT("/block-unblock-customer", h.BlockUnblockCustomer)

		// Order Routes
		super.GET("/get-all-order", h.GetAllOrders)
		super.GET("/get-order-by-id", h.GetOrderByID)
		super.PUT("/update-order-status", h.UpdateOrderStatus)
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
