package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

type deliveryItemInput struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Unit     string `json:"unit"`
}

type deliveryCreateInput struct {
	Type             string              `json:"type" binding:"required"`
	FromBranchID     uint                `json:"from_branch_id" binding:"required"`
	ToBranchID       *uint               `json:"to_branch_id"`
	CustomerName     string              `json:"customer_name"`
	CustomerAddress  string              `json:"customer_address"`
	CustomerPhone    string              `json:"customer_phone"`
	JobOrderID       *uint               `json:"job_order_id"`
	Items            []deliveryItemInput `json:"items" binding:"required,min=1,dive"`
	ScheduledDate    time.Time           `json:"scheduled_date" binding:"required"`
	EstimatedArrival string              `json:"estimated_arrival"`
	DriverName       string              `json:"driver_name"`
	DriverContact    string              `json:"driver_contact"`
	VehiclePlate     string              `json:"vehicle_plate"`
	Notes            string              `json:"notes"`
}

func ListDeliveries(c *gin.Context) {
	q := config.DB.Preload("Items").Preload("FromBranch").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if dtype := c.Query("type"); dtype != "" {
		q = q.Where("type = ?", dtype)
	}

	var deliveries []models.Delivery
	if err := q.Find(&deliveries).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list deliveries")
		return
	}
	utils.Success(c, http.StatusOK, deliveries)
}

func GetDelivery(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var delivery models.Delivery
	if err := config.DB.Preload("Items").Preload("FromBranch").
		First(&delivery, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Delivery not found")
		return
	}
	utils.Success(c, http.StatusOK, delivery)
}

// CreateDelivery schedules a shipment. branch_restock must target a branch,
// customer_delivery must carry customer details.
func CreateDelivery(c *gin.Context) {
	var in deliveryCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	switch in.Type {
	case models.DeliveryBranchRestock:
		if in.ToBranchID == nil {
			utils.Error(c, http.StatusBadRequest, "A branch restock requires a destination branch")
			return
		}
	case models.DeliveryCustomerDelivery:
		if in.CustomerName == "" || in.CustomerAddress == "" {
			utils.Error(c, http.StatusBadRequest, "A customer delivery requires customer name and address")
			return
		}
	default:
		utils.Error(c, http.StatusBadRequest, "Invalid delivery type")
		return
	}

	var fromBranch models.Branch
	if err := config.DB.First(&fromBranch, in.FromBranchID).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid origin branch")
		return
	}
	if in.ToBranchID != nil {
		var cnt int64
		config.DB.Model(&models.Branch{}).Where("id = ?", *in.ToBranchID).Count(&cnt)
		if cnt == 0 {
			utils.Error(c, http.StatusBadRequest, "Invalid destination branch")
			return
		}
	}

	var jobOrderNo string
	if in.JobOrderID != nil {
		var order models.JobOrder
		if err := config.DB.First(&order, *in.JobOrderID).Error; err != nil {
			utils.Error(c, http.StatusBadRequest, "Job order not found")
			return
		}
		jobOrderNo = order.OrderNo
	}

	items := make([]models.DeliveryItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.DeliveryItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Unit:     it.Unit,
		})
	}

	user := currentUser(c)
	delivery := models.Delivery{
		Type:             in.Type,
		FromBranchID:     in.FromBranchID,
		ToBranchID:       in.ToBranchID,
		CustomerName:     in.CustomerName,
		CustomerAddress:  in.CustomerAddress,
		CustomerPhone:    in.CustomerPhone,
		JobOrderID:       in.JobOrderID,
		JobOrderNo:       jobOrderNo,
		Items:            items,
		Status:           models.DeliveryScheduled,
		ScheduledDate:    in.ScheduledDate,
		EstimatedArrival: in.EstimatedArrival,
		DriverName:       in.DriverName,
		DriverContact:    in.DriverContact,
		VehiclePlate:     in.VehiclePlate,
		Notes:            in.Notes,
		CreatedByID:      user.ID,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		year := time.Now().UTC().Year()
		seq, err := utils.NextSequence(tx, utils.DeliveryScope(year))
		if err != nil {
			return err
		}
		delivery.DeliveryNo = utils.DeliveryNo(year, seq)

		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "CREATE", "Delivery",
			fmt.Sprintf("Created delivery: %s", delivery.DeliveryNo), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create delivery")
		return
	}

	config.DB.Preload("Items").Preload("FromBranch").First(&delivery, delivery.ID)
	utils.Success(c, http.StatusCreated, delivery)
}

type deliveryStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateDeliveryStatus accepts any of the four status literals. Forward-only
// ordering is deliberately not enforced.
func UpdateDeliveryStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var delivery models.Delivery
	if err := config.DB.First(&delivery, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Delivery not found")
		return
	}

	var in deliveryStatusInput
	if err := c.ShouldBindJSON(&in); err != nil || !models.ValidDeliveryStatus(in.Status) {
		utils.Error(c, http.StatusBadRequest, "Invalid status")
		return
	}

	delivery.Status = in.Status
	if in.Status == models.DeliveryDelivered {
		now := time.Now().UTC()
		delivery.DeliveredAt = &now
	}

	user := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&delivery).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "UPDATE", "Delivery",
			fmt.Sprintf("Updated delivery status: %s to %s", delivery.DeliveryNo, in.Status), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update delivery")
		return
	}

	config.DB.Preload("Items").Preload("FromBranch").First(&delivery, delivery.ID)
	utils.Success(c, http.StatusOK, delivery)
}

func GetDeliveryReceipt(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var delivery models.Delivery
	if err := config.DB.Preload("Items").Preload("FromBranch").
		First(&delivery, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Delivery not found")
		return
	}

	to := delivery.CustomerName
	address := delivery.CustomerAddress
	if delivery.ToBranchID != nil {
		var toBranch models.Branch
		if err := config.DB.First(&toBranch, *delivery.ToBranchID).Error; err == nil {
			to = toBranch.Name
			address = toBranch.Address
		}
	}

	utils.Success(c, http.StatusOK, gin.H{
		"receipt_no":   fmt.Sprintf("DR-%s", delivery.DeliveryNo),
		"date":         time.Now().UTC(),
		"delivery_no":  delivery.DeliveryNo,
		"type":         delivery.Type,
		"from":         delivery.FromBranch.Name,
		"to":           to,
		"address":      address,
		"items":        delivery.Items,
		"driver":       delivery.DriverName,
		"vehicle":      delivery.VehiclePlate,
		"status":       delivery.Status,
		"delivered_at": delivery.DeliveredAt,
	})
}
