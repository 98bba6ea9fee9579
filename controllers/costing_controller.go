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

func GetJobOrderCosting(c *gin.Context) {
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

	utils.Success(c, http.StatusOK, order.CostingReport())
}

type actualCostInput struct {
	ActualCost *float64            `json:"actual_cost"`
	Items      []jobOrderItemInput `json:"items" binding:"omitempty,min=1,dive"`
}

// UpdateActualCost records the post-completion cost. Replacing the item list
// re-derives totalPrice and estimatedCost; balance and payment status follow
// the new total.
func UpdateActualCost(c *gin.Context) {
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

	var in actualCostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if in.ActualCost != nil {
		if *in.ActualCost < 0 {
			utils.Error(c, http.StatusBadRequest, "Actual cost cannot be negative")
			return
		}
		order.ActualCost = *in.ActualCost
	}

	user := currentUser(c)
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if len(in.Items) > 0 {
			if err := tx.Where("job_order_id = ?", order.ID).
				Delete(&models.JobOrderItem{}).Error; err != nil {
				return err
			}
			items := make([]models.JobOrderItem, 0, len(in.Items))
			for _, it := range in.Items {
				items = append(items, models.JobOrderItem{
					JobOrderID:   order.ID,
					Name:         it.Name,
					Quantity:     it.Quantity,
					UnitPrice:    it.UnitPrice,
					MaterialCost: it.MaterialCost,
					LaborCost:    it.LaborCost,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			order.Items = items
			order.TotalPrice, order.EstimatedCost = models.OrderTotals(items)
			order.ApplyPayment(order.DownPayment)
		}

		res := tx.Model(&models.JobOrder{}).Where("id = ?", order.ID).
			Updates(map[string]any{
				"actual_cost":    order.ActualCost,
				"total_price":    order.TotalPrice,
				"estimated_cost": order.EstimatedCost,
				"balance":        order.Balance,
				"payment_status": order.PaymentStatus,
				"updated_at":     time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}

		return utils.LogAction(tx, user, "UPDATE", "Costing",
			fmt.Sprintf("Updated actual cost for: %s", order.OrderNo), c.ClientIP())
	})
	if txErr != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update actual cost")
		return
	}

	config.DB.Preload("Items").First(&order, order.ID)
	utils.Success(c, http.StatusOK, order)
}

type varianceRow struct {
	JobOrderNo      string  `json:"job_order_no"`
	CustomerName    string  `json:"customer_name"`
	EstimatedCost   float64 `json:"estimated_cost"`
	ActualCost      float64 `json:"actual_cost"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variance_percent"`
	Status          string  `json:"status"`
}

// VarianceReport covers completed orders with a recorded actual cost.
func VarianceReport(c *gin.Context) {
	var orders []models.JobOrder
	if err := config.DB.
		Where("status = ? AND actual_cost > 0", models.OrderCompleted).
		Order("id").Find(&orders).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to build variance report")
		return
	}

	report := make([]varianceRow, 0, len(orders))
	for _, o := range orders {
		variance := o.ActualCost - o.EstimatedCost
		pct := 0.0
		if o.EstimatedCost > 0 {
			pct = variance / o.EstimatedCost * 100
		}
		report = append(report, varianceRow{
			JobOrderNo:      o.OrderNo,
			CustomerName:    o.CustomerName,
			EstimatedCost:   o.EstimatedCost,
			ActualCost:      o.ActualCost,
			Variance:        variance,
			VariancePercent: pct,
			Status:          models.VarianceStatus(variance),
		})
	}

	utils.Success(c, http.StatusOK, report)
}

func GetJobOrderReceipt(c *gin.Context) {
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

	type receiptLine struct {
		Description string  `json:"description"`
		Quantity    int     `json:"quantity"`
		UnitPrice   float64 `json:"unit_price"`
		Total       float64 `json:"total"`
	}
	lines := make([]receiptLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, receiptLine{
			Description: it.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       float64(it.Quantity) * it.UnitPrice,
		})
	}

	utils.Success(c, http.StatusOK, gin.H{
		"receipt_no": fmt.Sprintf("RCP-%s", order.OrderNo),
		"date":       time.Now().UTC(),
		"customer": gin.H{
			"name":  order.CustomerName,
			"phone": order.CustomerPhone,
			"email": order.CustomerEmail,
		},
		"job_order_no":   order.OrderNo,
		"branch":         order.Branch.Name,
		"items":          lines,
		"subtotal":       order.TotalPrice,
		"down_payment":   order.DownPayment,
		"balance":        order.Balance,
		"payment_status": order.PaymentStatus,
	})
}
