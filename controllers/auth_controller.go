package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	var user models.User
	if err := config.DB.Preload("Branch").
		Where("username = ? AND is_active = true", in.Username).
		First(&user).Error; err != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		utils.Error(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create session")
		return
	}
	if err := config.DB.Create(&models.Session{Token: token, UserID: user.ID}).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	_ = utils.LogAction(config.DB, &user, "LOGIN", "Auth", "User logged in", c.ClientIP())

	utils.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

func Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	user := currentUser(c)

	config.DB.Where("token = ?", token).Delete(&models.Session{})
	_ = utils.LogAction(config.DB, user, "LOGOUT", "Auth", "User logged out", c.ClientIP())

	utils.SuccessMessage(c, "Logged out successfully")
}

func Me(c *gin.Context) {
	utils.Success(c, http.StatusOK, currentUser(c))
}

type recoverInput struct {
	Email string `json:"email" binding:"required"`
}

// Recover answers identically whether or not the email exists, so the endpoint
// cannot be used to probe for accounts.
func Recover(c *gin.Context) {
	var in recoverInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	utils.SuccessMessage(c, "If the email exists, a recovery link has been sent")
}
