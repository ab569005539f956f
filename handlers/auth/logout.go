package auth

import (
	"net/http"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/utils"

	"github.com/gin-gonic/gin"
)

func Logout(c *gin.Context) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}
	user := userInterface.(models.User)

	now := time.Now()
	user.LastLogoutAt = &now
	if err := utils.PortalDB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful.",
	})
}
