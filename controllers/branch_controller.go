package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

func ListBranches(c *gin.Context) {
	q := config.DB.Order("id")
	if c.Query("includeInactive") != "true" {
		q = q.Where("is_active = true")
	}

	var branches []models.Branch
	if err := q.Find(&branches).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list branches")
		return
	}
	utils.Success(c, http.StatusOK, branches)
}

func CreateBranch(c *gin.Context) {
	var in struct {
		Name        string `json:"name" binding:"required"`
		Code        string `json:"code" binding:"required"`
		Address     string `json:"address" binding:"required"`
		IsWarehouse bool   `json:"is_warehouse"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var cnt int64
	config.DB.Model(&models.Branch{}).Where("code = ?", in.Code).Count(&cnt)
	if cnt > 0 {
		utils.Error(c, http.StatusBadRequest, "Branch code already exists")
		return
	}

	branch := models.Branch{
		Name:        in.Name,
		Code:        in.Code,
		Address:     in.Address,
		IsWarehouse: in.IsWarehouse,
		IsActive:    true,
	}
	user := currentUser(c)
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&branch).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, user, "CREATE", "Settings",
			fmt.Sprintf("Created branch: %s (%s)", branch.Name, branch.Code), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create branch")
		return
	}
	utils.Success(c, http.StatusCreated, branch)
}
