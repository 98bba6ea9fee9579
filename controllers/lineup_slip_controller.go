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

type lineupSlipItemInput struct {
	Description string `json:"description" binding:"required"`
	Status      string `json:"status"`
}

type lineupSlipCreateInput struct {
	JobOrderID uint                  `json:"job_order_id" binding:"required"`
	Items      []lineupSlipItemInput `json:"items" binding:"omitempty,dive"`
	Priority   string                `json:"priority"`
	AssignedTo string                `json:"assigned_to"`
	Notes      string                `json:"notes"`
}

func ListLineupSlips(c *gin.Context) {
	var slips []models.LineupSlip
	if err := config.DB.Preload("Items").Order("id DESC").Find(&slips).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list lineup slips")
		return
	}
	utils.Success(c, http.StatusOK, slips)
}

// CreateLineupSlip derives a work-breakdown ticket from a job order. When no
// work items are supplied, one is created per order line item.
func CreateLineupSlip(c *gin.Context) {
	var in lineupSlipCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var order models.JobOrder
	if err := config.DB.Preload("Items").Preload("Branch").
		First(&order, in.JobOrderID).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Job order not found")
		return
	}

	items := make([]models.LineupSlipItem, 0)
	if len(in.Items) > 0 {
		for _, it := range in.Items {
			status := it.Status
			if status == "" {
				status = "pending"
			}
			items = append(items, models.LineupSlipItem{Description: it.Description, Status: status})
		}
	} else {
		for _, it := range order.Items {
			items = append(items, models.LineupSlipItem{Description: it.Name, Status: "pending"})
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}

	slip := models.LineupSlip{
		JobOrderID:   order.ID,
		JobOrderNo:   order.OrderNo,
		CustomerName: order.CustomerName,
		BranchID:     order.BranchID,
		Items:        items,
		Priority:     priority,
		AssignedTo:   in.AssignedTo,
		Notes:        in.Notes,
	}

	user := currentUser(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		year := time.Now().UTC().Year()
		seq, err := utils.NextSequence(tx, utils.LineupSlipScope(order.Branch.Code, year))
		if err != nil {
			return err
		}
		slip.SlipNo = utils.LineupSlipNo(order.Branch.Code, year, seq)

		if err := tx.Create(&slip).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "CREATE", "Sales",
			fmt.Sprintf("Created lineup slip: %s", slip.SlipNo), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create lineup slip")
		return
	}

	config.DB.Preload("Items").First(&slip, slip.ID)
	utils.Success(c, http.StatusCreated, slip)
}

type lineupSlipPatchInput struct {
	Items      []lineupSlipItemInput `json:"items" binding:"omitempty,min=1,dive"`
	Priority   *string               `json:"priority"`
	AssignedTo *string               `json:"assigned_to"`
	Notes      *string               `json:"notes"`
}

func UpdateLineupSlip(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var slip models.LineupSlip
	if err := config.DB.Preload("Items").First(&slip, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Lineup slip not found")
		return
	}

	var in lineupSlipPatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if in.Priority != nil {
		slip.Priority = *in.Priority
	}
	if in.AssignedTo != nil {
		slip.AssignedTo = *in.AssignedTo
	}
	if in.Notes != nil {
		slip.Notes = *in.Notes
	}

	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		if len(in.Items) > 0 {
			if err := tx.Where("lineup_slip_id = ?", slip.ID).
				Delete(&models.LineupSlipItem{}).Error; err != nil {
				return err
			}
			items := make([]models.LineupSlipItem, 0, len(in.Items))
			for _, it := range in.Items {
				status := it.Status
				if status == "" {
					status = "pending"
				}
				items = append(items, models.LineupSlipItem{
					LineupSlipID: slip.ID,
					Description:  it.Description,
					Status:       status,
				})
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
			slip.Items = items
		}

		return tx.Model(&models.LineupSlip{}).Where("id = ?", slip.ID).
			Updates(map[string]any{
				"priority":    slip.Priority,
				"assigned_to": slip.AssignedTo,
				"notes":       slip.Notes,
				"updated_at":  time.Now().UTC(),
			}).Error
	})
	if txErr != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update lineup slip")
		return
	}

	config.DB.Preload("Items").First(&slip, slip.ID)
	utils.Success(c, http.StatusOK, slip)
}
