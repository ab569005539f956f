package auth

import (
	"log"
	"net/http"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// CreateOperator adds a new operator account. There is no self-service
// signup; only admins reach this route.
func CreateOperator(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide name, email and password."})
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email and password are required."})
		return
	}

	role := input.Role
	if role == "" {
		role = "operator"
	}
	if role != "operator" && role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Role must be operator or admin."})
		return
	}

	var existing models.User
	if err := utils.PortalDB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the password."})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
	}

	if err := utils.PortalDB.Create(&user).Error; err != nil {
		log.Printf("Failed to create operator %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create the operator account."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Operator account created.",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
