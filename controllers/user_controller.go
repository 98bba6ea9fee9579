package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

type userCreateInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	BranchID uint   `json:"branch_id" binding:"required"`
}

func ListUsers(c *gin.Context) {
	q := config.DB.Preload("Branch").Order("id")
	if c.Query("includeInactive") != "true" {
		q = q.Where("is_active = true")
	}

	var users []models.User
	if err := q.Find(&users).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to list users")
		return
	}
	utils.Success(c, http.StatusOK, users)
}

func CreateUser(c *gin.Context) {
	var in userCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	if !models.ValidRole(in.Role) {
		utils.Error(c, http.StatusBadRequest, "Invalid role")
		return
	}

	var cnt int64
	config.DB.Model(&models.User{}).Where("username = ?", in.Username).Count(&cnt)
	if cnt > 0 {
		utils.Error(c, http.StatusBadRequest, "Username already exists")
		return
	}

	var branch models.Branch
	if err := config.DB.First(&branch, in.BranchID).Error; err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid branch")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := models.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		BranchID:     in.BranchID,
		IsActive:     true,
	}
	actor := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, actor, "CREATE", "Settings",
			fmt.Sprintf("Created user: %s", user.Username), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	config.DB.Preload("Branch").First(&user, user.ID)
	utils.Success(c, http.StatusCreated, user)
}

type userPatchInput struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	BranchID *uint   `json:"branch_id"`
	Password *string `json:"password"`
}

func UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	var in userPatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	if in.Role != nil {
		if !models.ValidRole(*in.Role) {
			utils.Error(c, http.StatusBadRequest, "Invalid role")
			return
		}
		user.Role = *in.Role
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FullName != nil {
		user.FullName = *in.FullName
	}
	if in.BranchID != nil {
		user.BranchID = *in.BranchID
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update user")
			return
		}
		user.PasswordHash = string(hash)
	}

	actor := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, actor, "UPDATE", "Settings",
			fmt.Sprintf("Updated user: %s", user.Username), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	config.DB.Preload("Branch").First(&user, user.ID)
	utils.Success(c, http.StatusOK, user)
}

// ArchiveUser soft-deletes an account. Users are never hard-deleted, and an
// administrator cannot archive themselves.
func ArchiveUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	actor := currentUser(c)
	if actor != nil && actor.ID == user.ID {
		utils.Error(c, http.StatusBadRequest, "Cannot archive yourself")
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("is_active", false).Error; err != nil {
			return err
		}
		// Archiving ends any open sessions immediately.
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Session{}).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, actor, "ARCHIVE", "Settings",
			fmt.Sprintf("Archived user: %s", user.Username), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to archive user")
		return
	}
	utils.SuccessMessage(c, "User archived")
}

func RestoreUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid id")
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "User not found")
		return
	}

	actor := currentUser(c)
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Update("is_active", true).Error; err != nil {
			return err
		}
		return utils.LogAction(tx, actor, "RESTORE", "Settings",
			fmt.Sprintf("Restored user: %s", user.Username), c.ClientIP())
	})
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to restore user")
		return
	}
	utils.SuccessMessage(c, "User restored")
}

func ListRoles(c *gin.Context) {
	utils.Success(c, http.StatusOK, []gin.H{
		{"id": models.RoleAdministrator, "name": "Administrator", "description": "Full system access"},
		{"id": models.RoleSupervisor, "name": "Supervisor", "description": "Access to inventory, costing, reports, delivery, settings"},
		{"id": models.RoleSalesManager, "name": "Sales Manager", "description": "Access to dashboard and sales module"},
		{"id": models.RoleStaff, "name": "Staff", "description": "Limited access based on assignment"},
	})
}
