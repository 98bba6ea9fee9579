package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rian448/SMAve-System/controllers"
	"github.com/Rian448/SMAve-System/middlewares"
	"github.com/Rian448/SMAve-System/models"
)

func SetupRoutes(r *gin.Engine) {

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"message":   "Seatmakers Avenue API is running!",
			"version":   "1.0.0",
			"timestamp": time.Now().UTC(),
		})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/recover", controllers.Recover)

			authed := auth.Group("/", middlewares.RequireAuth())
			authed.POST("/logout", controllers.Logout)
			authed.GET("/me", controllers.Me)
		}

		// Everything below requires a live session.
		app := api.Group("/", middlewares.RequireAuth())

		manage := middlewares.RequireRoles(models.RoleAdministrator, models.RoleSupervisor)
		sales := middlewares.RequireRoles(models.RoleAdministrator, models.RoleSupervisor, models.RoleSalesManager)
		adminOnly := middlewares.RequireRoles(models.RoleAdministrator)

		dashboard := app.Group("/dashboard")
		{
			dashboard.GET("/stats", controllers.DashboardStats)
			dashboard.GET("/recent-activity", controllers.RecentActivity)
			dashboard.GET("/alerts", controllers.DashboardAlerts)
		}

		inventory := app.Group("/inventory")
		{
			rawMaterials := inventory.Group("/raw-materials")
			{
				rawMaterials.GET("/", controllers.ListRawMaterials)
				rawMaterials.GET("/low-stock", controllers.ListLowStock)
				rawMaterials.GET("/:id", controllers.GetRawMaterial)
				rawMaterials.POST("/", manage, controllers.CreateRawMaterial)
				rawMaterials.PUT("/:id", manage, controllers.UpdateRawMaterial)
				rawMaterials.POST("/:id/archive", manage, controllers.ArchiveRawMaterial)
				rawMaterials.POST("/:id/restore", manage, controllers.RestoreRawMaterial)
			}

			finishedGoods := inventory.Group("/finished-goods")
			{
				finishedGoods.GET("/", controllers.ListFinishedGoods)
				finishedGoods.GET("/:id", controllers.GetFinishedGood)
				finishedGoods.POST("/", manage, controllers.CreateFinishedGood)
				finishedGoods.PUT("/:id", manage, controllers.UpdateFinishedGood)
				finishedGoods.POST("/:id/archive", manage, controllers.ArchiveFinishedGood)
				finishedGoods.POST("/:id/restore", manage, controllers.RestoreFinishedGood)
			}

			inventory.GET("/categories", controllers.ListCategories)
			inventory.GET("/low-stock", controllers.ListLowStock)
		}

		jobOrders := app.Group("/sales/job-orders")
		{
			jobOrders.GET("/", controllers.ListJobOrders)
			jobOrders.GET("/:id", controllers.GetJobOrder)
			jobOrders.POST("/", sales, controllers.CreateJobOrder)
			jobOrders.PUT("/:id", sales, controllers.UpdateJobOrder)
			jobOrders.POST("/:id/void", manage, controllers.VoidJobOrder)
			jobOrders.GET("/:id/receipt", controllers.GetJobOrderReceipt)
			jobOrders.GET("/:id/costing", controllers.GetJobOrderCosting)
			jobOrders.PUT("/:id/costing", manage, controllers.UpdateActualCost)
		}

		lineupSlips := app.Group("/sales/lineup-slips")
		{
			lineupSlips.GET("/", controllers.ListLineupSlips)
			lineupSlips.POST("/", sales, controllers.CreateLineupSlip)
			lineupSlips.PUT("/:id", sales, controllers.UpdateLineupSlip)
		}

		costing := app.Group("/costing")
		{
			costing.GET("/job-order/:id", controllers.GetJobOrderCosting)
			costing.PUT("/job-order/:id/actual", manage, controllers.UpdateActualCost)
			costing.GET("/receipt/:id", controllers.GetJobOrderReceipt)
			costing.GET("/variance-report", manage, controllers.VarianceReport)
		}

		purchaseOrders := app.Group("/purchase-orders", manage)
		{
			purchaseOrders.GET("/", controllers.ListPurchaseOrders)
			purchaseOrders.GET("/:id", controllers.GetPurchaseOrder)
			purchaseOrders.POST("/", controllers.CreatePurchaseOrder)
			purchaseOrders.POST("/:id/approve", adminOnly, controllers.ApprovePurchaseOrder)
			purchaseOrders.POST("/:id/reject", adminOnly, controllers.RejectPurchaseOrder)
			purchaseOrders.POST("/:id/receive", controllers.ReceivePurchaseOrder)
		}

		deliveries := app.Group("/deliveries")
		{
			deliveries.GET("/", controllers.ListDeliveries)
			deliveries.GET("/:id", controllers.GetDelivery)
			deliveries.POST("/", manage, controllers.CreateDelivery)
			deliveries.PUT("/:id/status", manage, controllers.UpdateDeliveryStatus)
			deliveries.GET("/:id/receipt", controllers.GetDeliveryReceipt)
		}

		forecasting := app.Group("/forecasting", manage)
		{
			forecasting.GET("/demand", controllers.DemandForecast)
			forecasting.GET("/materials", controllers.MaterialForecast)
		}

		reports := app.Group("/reports")
		{
			reports.GET("/sales", sales, controllers.SalesReport)
			reports.GET("/inventory", manage, controllers.InventoryReport)
			reports.GET("/audit-trail", adminOnly, controllers.AuditTrail)
		}

		settings := app.Group("/settings", adminOnly)
		{
			settings.GET("/users", controllers.ListUsers)
			settings.POST("/users", controllers.CreateUser)
			settings.PUT("/users/:id", controllers.UpdateUser)
			settings.POST("/users/:id/archive", controllers.ArchiveUser)
			settings.POST("/users/:id/restore", controllers.RestoreUser)
			settings.GET("/roles", controllers.ListRoles)
			settings.GET("/branches", controllers.ListBranches)
			settings.POST("/branches", controllers.CreateBranch)
		}

		// Branch lookup for pickers, readable by any signed-in user.
		app.GET("/branches", controllers.ListBranches)
	}
}
