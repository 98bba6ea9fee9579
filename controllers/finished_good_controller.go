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

type finishedGoodCreateInput struct {
	Name     string  `json:"name" binding:"required"`
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity" binding:"gte=0"`
	Unit     string  `json:"unit" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Price    float64 `json:"price" binding:"gte=0"`
	Cost     float64 `json:"cost" binding:"gte=0"`
	BranchID uint    `json:"branch_id" binding:"required"`
}

func ListFinishedGoods(c *gin.Context) {
	q := config.DB.Preload("Branch").Order("id")
	if c.Query("includeArchived") != "true" {
		q = q.Where("is_archived = false")
	}
	if branchID := c.Query("branchId"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}

	var goods []models.FinishedGood
	if err := q.Find(&goods).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list finished goods")
		return
	}
	utils.Success(c, http.StatusOK, goods)
}

func GetFinishedGood(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var good models.FinishedGood
	if err := config.DB.Preload("Branch").First(&good, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Item not found")
		return
	}
	utils.Success(c, http.StatusOK, good)
}

func CreateFinishedGood(c *gin.Context) {
	var in finishedGoodCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, in.BranchID).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid branch")
		return
	}

	good := models.FinishedGood{
		Name:        in.Name,
		SKU:         in.SKU,
		Quantity:    in.Quantity,
		Unit:        in.Unit,
		Category:    in.Category,
		Price:       in.Price,
		Cost:        in.Cost,
		BranchID:    in.BranchID,
		LastUpdated: time.Now().UTC(),
	}

	user := currentUser(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&good).Error; err != nil {
			return err
		}
		if good.SKU == "" {
			good.SKU = fmt.Sprintf("FG-%03d", good.ID)
			if err := tx.Model(&good).UpdateColumn("sku", good.SKU).Error; err != nil {
				return err
			}
		}
		return utils.LogAction(tx, user, "CREATE", "Inventory",
			fmt.Sprintf("Created finished good: %s", good.Name), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create finished good")
		return
	}

	config.DB.Preload("Branch").First(&good, good.ID)
	utils.Success(c, http.StatusCreated, good)
}

type finishedGoodPatchInput struct {
	Name     *string  `json:"name"`
	SKU      *string  `json:"sku"`
	Quantity *int     `json:"quantity"`
	Unit     *string  `json:"unit"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Cost     *float64 `json:"cost"`
	BranchID *uint    `json:"branch_id"`
}

func UpdateFinishedGood(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var good models.FinishedGood
	if err := config.DB.First(&good, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Item not found")
		return
	}

	var in finishedGoodPatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if in.Quantity != nil && *in.Quantity < 0 {
		utils.Error(c, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	if in.Name != nil {
		good.Name = *in.Name
	}
	if in.SKU != nil {
		good.SKU = *in.SKU
	}
	if in.Quantity != nil {
		good.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		good.Unit = *in.Unit
	}
	if in.Category != nil {
		good.Category = *in.Category
	}
	if in.Price != nil {
		good.Price = *in.Price
	}
	if in.Cost != nil {
		good.Cost = *in.Cost
	}
	if in.BranchID != nil {
		good.BranchID = *in.BranchID
	}
	good.LastUpdated = time.Now().UTC()

	user := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&good).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "UPDATE", "Inventory",
			fmt.Sprintf("Updated finished good: %s", good.Name), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update finished good")
		return
	}

	config.DB.Preload("Branch").First(&good, good.ID)
	utils.Success(c, http.StatusOK, good)
}

func ArchiveFinishedGood(c *gin.Context) {
	setFinishedGoodArchived(c, true, "ARCHIVE", "Archived finished good", "Item archived")
}

func RestoreFinishedGood(c *gin.Context) {
	setFinishedGoodArchived(c, false, "RESTORE", "Restored finished good", "Item restored")
}

func setFinishedGoodArchived(c *gin.Context, archived bool, action, detail, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var good models.FinishedGood
	if err := config.DB.First(&good, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Item not found")
		return
	}

	good.IsArchived = archived
	good.LastUpdated = time.Now().UTC()
	user := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&good).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, action, "Inventory",
			fmt.Sprintf("%s: %s", detail, good.Name), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update finished good")
		return
	}
	utils.SuccessMessage(c, message)
}
