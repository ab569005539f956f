package auth

import (
	"net/http"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

// RefreshToken exchanges a valid refresh token for a new token pair, so a
// long data-entry session survives access-token expiry without re-login.
func RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a refresh token."})
		return
	}

	token, err := jwt.Parse(input.RefreshToken, func(token *jwt.Token) (interface{}, error) {
		return utils.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID in token"})
		return
	}

	var user models.User
	if err := utils.PortalDB.First(&user, uint(userIDFloat)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	// A refresh token issued before the user's last logout is revoked;
	// otherwise logout would be a no-op for up to seven days.
	if user.LastLogoutAt != nil {
		iat, ok := claims["iat"].(float64)
		if !ok || user.TokenRevoked(int64(iat)) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token has been revoked. Please log in again."})
			return
		}
	}

	newAccessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate access token"})
		return
	}

	newRefreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  newAccessToken,
		"refresh_token": newRefreshToken,
	})
}
