package main

import (
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/routes"
	"github.com/Rian448/SMAve-System/utils"
)

func main() {
	_ = godotenv.Load()

	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Branch{},
		&models.User{},
		&models.Session{},
		&models.RawMaterial{},
		&models.FinishedGood{},
		&models.JobOrder{},
		&models.JobOrderItem{},
		&models.LineupSlip{},
		&models.LineupSlipItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Delivery{},
		&models.DeliveryItem{},
		&models.VoidRecord{},
		&models.AuditLog{},
		&models.Sequence{},
	)

	config.Seed()

	if s := os.Getenv("SESSION_JWT_SECRET"); s != "" {
		utils.SessionSecret = []byte(s)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
