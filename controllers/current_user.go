package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/Rian448/SMAve-System/models"
)

// currentUser returns the authenticated caller set by RequireAuth.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get("current_user")
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}
