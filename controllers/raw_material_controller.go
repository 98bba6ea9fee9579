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

type rawMaterialCreateInput struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	Unit         string  `json:"unit" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	Price        float64 `json:"price" binding:"gte=0"`
	ReorderPoint int     `json:"reorder_point" binding:"gte=0"`
	Supplier     string  `json:"supplier" binding:"required"`
	BranchID     uint    `json:"branch_id" binding:"required"`
}

func ListRawMaterials(c *gin.Context) {
	q := config.DB.Preload("Branch").Order("id")
	if c.Query("includeArchived") != "true" {
		q = q.Where("is_archived = false")
	}
	if branchID := c.Query("branchId"); branchID != "" {
		q = q.Where("branch_id = ?", branchID)
	}
	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}

	var materials []models.RawMaterial
	if err := q.Find(&materials).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list raw materials")
		return
	}
	utils.Success(c, http.StatusOK, materials)
}

func GetRawMaterial(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var material models.RawMaterial
	if err := config.DB.Preload("Branch").First(&material, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Material not found")
		return
	}
	utils.Success(c, http.StatusOK, material)
}

func CreateRawMaterial(c *gin.Context) {
	var in rawMaterialCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, in.BranchID).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid branch")
		return
	}

	material := models.RawMaterial{
		Name:         in.Name,
		SKU:          in.SKU,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
		Category:     in.Category,
		Price:        in.Price,
		ReorderPoint: in.ReorderPoint,
		Supplier:     in.Supplier,
		BranchID:     in.BranchID,
		LastUpdated:  time.Now().UTC(),
	}

	user := currentUser(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&material).Error; err != nil {
			return err
		}
		if material.SKU == "" {
			material.SKU = fmt.Sprintf("RM-%03d", material.ID)
			if err := tx.Model(&material).UpdateColumn("sku", material.SKU).Error; err != nil {
				return err
			}
		}
		return utils.LogAction(tx, user, "CREATE", "Inventory",
			fmt.Sprintf("Created raw material: %s", material.Name), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create raw material")
		return
	}

	config.DB.Preload("Branch").First(&material, material.ID)
	utils.Success(c, http.StatusCreated, material)
}

type rawMaterialPatchInput struct {
	Name         *string  `json:"name"`
	SKU          *string  `json:"sku"`
	Quantity     *int     `json:"quantity"`
	Unit         *string  `json:"unit"`
	Category     *string  `json:"category"`
	Price        *float64 `json:"price"`
	ReorderPoint *int     `json:"reorder_point"`
	Supplier     *string  `json:"supplier"`
	BranchID     *uint    `json:"branch_id"`
}

func UpdateRawMaterial(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var material models.RawMaterial
	if err := config.DB.First(&material, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Material not found")
		return
	}

	var in rawMaterialPatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if in.Quantity != nil && *in.Quantity < 0 {
		utils.Error(c, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	if in.Name != nil {
		material.Name = *in.Name
	}
	if in.SKU != nil {
		material.SKU = *in.SKU
	}
	if in.Quantity != nil {
		material.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		material.Unit = *in.Unit
	}
	if in.Category != nil {
		material.Category = *in.Category
	}
	if in.Price != nil {
		material.Price = *in.Price
	}
	if in.ReorderPoint != nil {
		material.ReorderPoint = *in.ReorderPoint
	}
	if in.Supplier != nil {
		material.Supplier = *in.Supplier
	}
	if in.BranchID != nil {
		material.BranchID = *in.BranchID
	}
	material.LastUpdated = time.Now().UTC()

	user := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&material).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "UPDATE", "Inventory",
			fmt.Sprintf("Updated raw material: %s", material.Name), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update raw material")
		return
	}

	config.DB.Preload("Branch").First(&material, material.ID)
	utils.Success(c, http.StatusOK, material)
}

func ArchiveRawMaterial(c *gin.Context) {
	setRawMaterialArchived(c, true, "ARCHIVE", "Archived raw material", "Material archived")
}

func RestoreRawMaterial(c *gin.Context) {
	setRawMaterialArchived(c, false, "RESTORE", "Restored raw material", "Material restored")
}

func setRawMaterialArchived(c *gin.Context, archived bool, action, detail, message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var material models.RawMaterial
	if err := config.DB.First(&material, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Material not found")
		return
	}

	material.IsArchived = archived
	material.LastUpdated = time.Now().UTC()
	user := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&material).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, action, "Inventory",
			fmt.Sprintf("%s: %s", detail, material.Name), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update raw material")
		return
	}
	utils.SuccessMessage(c, message)
}

// ListLowStock returns active materials at or below their reorder point. The
// predicate is evaluated on read, never stored.
func ListLowStock(c *gin.Context) {
	var materials []models.RawMaterial
	if err := config.DB.Preload("Branch").
		Where("quantity <= reorder_point AND is_archived = false").
		Order("id").Find(&materials).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list low stock items")
		return
	}
	utils.Success(c, http.StatusOK, materials)
}

func ListCategories(c *gin.Context) {
	var rmCategories, fgCategories []string
	if err := config.DB.Model(&models.RawMaterial{}).
		Where("is_archived = false").Distinct("category").
		Pluck("category", &rmCategories).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}
	if err := config.DB.Model(&models.FinishedGood{}).
		Where("is_archived = false").Distinct("category").
		Pluck("category", &fgCategories).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	utils.Success(c, http.StatusOK, gin.H{
		"raw_materials":  rmCategories,
		"finished_goods": fgCategories,
	})
}
