package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rian448/SMAve-System/config"
	"github.com/Rian448/SMAve-System/models"
	"github.com/Rian448/SMAve-System/utils"
)

// RequireAuth validates the bearer token and loads the caller into the
// context. The JWT signature alone is not enough: a live session row must
// exist, which is what makes logout effective.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, err := utils.ParseToken(tokenString)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		var session models.Session
		if err := config.DB.Where("token = ?", tokenString).First(&session).Error; err != nil {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.Preload("Branch").
			Where("id = ? AND is_active = true", userID).
			First(&user).Error; err != nil {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}

		c.Set("current_user", &user)
		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireRoles gates a route to the given roles. Runs after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		utils.Error(c, http.StatusForbidden, "Forbidden - insufficient permissions")
		c.Abort()
	}
}
