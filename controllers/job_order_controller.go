package controllers

import (
	"errors"
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

var (
	errOrderNotFound    = errors.New("ORDER_NOT_FOUND")
	errAlreadyVoided    = errors.New("ALREADY_VOIDED")
	errVoidTooEarly     = errors.New("VOID_TOO_EARLY")
	errAlreadyProcessed = errors.New("ALREADY_PROCESSED")
)

type jobOrderItemInput struct {
	Name         string  `json:"name" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	MaterialCost float64 `json:"material_cost" binding:"gte=0"`
	LaborCost    float64 `json:"labor_cost" binding:"gte=0"`
}

type jobOrderCreateInput struct {
	CustomerID          *uint               `json:"customer_id"`
	CustomerName        string              `json:"customer_name" binding:"required"`
	CustomerPhone       string              `json:"customer_phone" binding:"required"`
	CustomerEmail       string              `json:"customer_email"`
	BranchID            uint                `json:"branch_id" binding:"required"`
	Description         string              `json:"description" binding:"required"`
	VehicleMake         string              `json:"vehicle_make"`
	VehicleModel        string              `json:"vehicle_model"`
	VehicleYear         int                 `json:"vehicle_year"`
	VehiclePlate        string              `json:"vehicle_plate"`
	Items               []jobOrderItemInput `json:"items" binding:"required,min=1,dive"`
	DownPayment         float64             `json:"down_payment" binding:"gte=0"`
	EstimatedCompletion time.Time           `json:"estimated_completion" binding:"required"`
}

func ListJobOrders(c *gin.Context) {
	q := config.DB.Preload("Items").Preload("Branch").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if branchID := c.Query("branchId"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var orders []models.JobOrder
	if err := q.Find(&orders).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list job orders")
		return
	}
	utils.Success(c, http.StatusOK, orders)
}

func GetJobOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var order models.JobOrder
	if err := config.DB.Preload("Items").Preload("Branch").First(&order, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Job order not found")
		return
	}
	utils.Success(c, http.StatusOK, order)
}

func CreateJobOrder(c *gin.Context) {
	var in jobOrderCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var branch models.Branch
	if err := config.DB.Where("id = ? AND is_active = true", in.BranchID).First(&branch).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid branch")
		return
	}

	items := make([]models.JobOrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, models.JobOrderItem{
			Name:         it.Name,
			Quantity:     it.Quantity,
			UnitPrice:    it.UnitPrice,
			MaterialCost: it.MaterialCost,
			LaborCost:    it.LaborCost,
		})
	}
	totalPrice, estimatedCost := models.OrderTotals(items)

	if in.DownPayment > totalPrice {
		utils.Error(c, http.StatusBadRequest, "Down payment cannot exceed the order total")
		return
	}

	user := currentUser(c)
	order := models.JobOrder{
		CustomerID:          in.CustomerID,
		CustomerName:        in.CustomerName,
		CustomerPhone:       in.CustomerPhone,
		CustomerEmail:       in.CustomerEmail,
		BranchID:            branch.ID,
		Description:         in.Description,
		VehicleMake:         in.VehicleMake,
		VehicleModel:        in.VehicleModel,
		VehicleYear:         in.VehicleYear,
		VehiclePlate:        in.VehiclePlate,
		Items:               items,
		TotalPrice:          totalPrice,
		EstimatedCost:       estimatedCost,
		ActualCost:          0,
		Status:              models.OrderPending,
		EstimatedCompletion: in.EstimatedCompletion,
		CreatedByID:         user.ID,
	}
	order.ApplyPayment(in.DownPayment)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		year := time.Now().UTC().Year()
		seq, err := utils.NextSequence(tx, utils.JobOrderScope(branch.Code, year))
		if err != nil {
			return err
		}
		order.OrderNo = utils.JobOrderNo(branch.Code, year, seq)

		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "CREATE", "Sales",
			fmt.Sprintf("Created job order: %s", order.OrderNo), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create job order")
		return
	}

	config.DB.Preload("Items").Preload("Branch").First(&order, order.ID)
	utils.Success(c, http.StatusCreated, order)
}

type jobOrderPatchInput struct {
	Status        *string  `json:"status"`
	PaymentStatus *string  `json:"payment_status"`
	DownPayment   *float64 `json:"down_payment"`
	ActualCost    *float64 `json:"actual_cost"`
	Notes         *string  `json:"notes"`
}

// UpdateJobOrder patches the mutable fields. Transitions out of terminal
// states are not blocked here; that matches the reference workflow where a
// supervisor can reopen a completed order.
func UpdateJobOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var order models.JobOrder
	if err := config.DB.Preload("Items").First(&order, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Job order not found")
		return
	}

	var in jobOrderPatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if in.Status != nil {
		if !models.ValidOrderStatus(*in.Status) {
			utils.Error(c, http.StatusBadRequest, "Invalid status")
			return
		}
		order.Status = *in.Status
		if *in.Status == models.OrderCompleted {
			now := time.Now().UTC()
			order.CompletedAt = &now
		}
	}
	if in.PaymentStatus != nil {
		order.PaymentStatus = *in.PaymentStatus
	}
	if in.ActualCost != nil {
		if *in.ActualCost < 0 {
			utils.Error(c, http.StatusBadRequest, "Actual cost cannot be negative")
			return
		}
		order.ActualCost = *in.ActualCost
	}
	if in.Notes != nil {
		order.Notes = *in.Notes
	}
	// A down payment change always recomputes balance and payment status,
	// overriding any caller-supplied payment status.
	if in.DownPayment != nil {
		if *in.DownPayment < 0 {
			utils.Error(c, http.StatusBadRequest, "Down payment cannot be negative")
			return
		}
		if *in.DownPayment > order.TotalPrice {
			utils.Error(c, http.StatusBadRequest, "Down payment cannot exceed the order total")
			return
		}
		order.ApplyPayment(*in.DownPayment)
	}

	user := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "UPDATE", "Sales",
			fmt.Sprintf("Updated job order: %s", order.OrderNo), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update job order")
		return
	}

	utils.Success(c, http.StatusOK, order)
}

// VoidJobOrder terminally voids an order unclaimed for the 60-day grace
// period. The transition is guarded so re-voiding fails and exactly one
// VoidRecord is ever written per order.
func VoidJobOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	user := currentUser(c)
	now := time.Now().UTC()

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var order models.JobOrder
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errOrderNotFound
			}
			return err
		}

		if order.Status == models.OrderVoided {
			return errAlreadyVoided
		}
		if now.Sub(order.CreatedAt) < models.VoidGraceDays*24*time.Hour {
			return errVoidTooEarly
		}

		res := tx.Model(&models.JobOrder{}).
			Where("id = ? AND status <> ?", order.ID, models.OrderVoided).
			Updates(map[string]any{
				"status":     models.OrderVoided,
				"voided_at":  now,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAlreadyProcessed
		}

		record := models.VoidRecord{
			Type:         "job_order",
			OriginalID:   order.ID,
			JobOrderNo:   order.OrderNo,
			CustomerName: order.CustomerName,
			VoidedAt:     now,
			Reason:       "Unclaimed after 60 days",
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		return utils.LogAction(tx, user, "VOID", "Sales",
			fmt.Sprintf("Voided job order: %s", order.OrderNo), c.ClientIP())
	})

	switch {
	case txErr == nil:
		utils.SuccessMessage(c, "Job order voided")
	case errors.Is(txErr, errOrderNotFound):
		utils.Error(c, http.StatusNotFound, "Job order not found")
	case errors.Is(txErr, errAlreadyVoided), errors.Is(txErr, errAlreadyProcessed):
		utils.Error(c, http.StatusBadRequest, "Job order is already voided")
	case errors.Is(txErr, errVoidTooEarly):
		utils.Error(c, http.StatusBadRequest, "Job order can only be voided after 60 days")
	default:
		utils.Error(c, http.StatusInternalServerError, "Failed to void job order")
	}
}
