package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// RequestOTP handles password reset requests by generating and sending a new OTP via email
func RequestOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please provide a valid email address."})
		return
	}

	if input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email address is required."})
		return
	}

	var user models.User
	if err := utils.PortalDB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found. Please check your email address."})
		return
	}

	// Generate a new OTP
	otp := generateOTP()
	user.OTP = otp
	now := time.Now()
	user.OTPGeneratedAt = &now

	// Save the user with the new OTP data
	if err := utils.PortalDB.Save(&user).Error; err != nil {
		log.Printf("Failed to update user with new OTP: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue saving the OTP. Please try again later."})
		return
	}

	// Send the OTP via email
	sendOTP(user.Email, otp)

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your registered email address."})
}

// VerifyOTPReset validates the OTP during password reset
func VerifyOTPReset(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	if input.Email == "" || input.OTP == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and OTP are required."})
		return
	}

	user, errMsg := userWithValidOTP(input.Email, input.OTP)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
		return
	}

	// OTP is valid, proceed
	c.JSON(http.StatusOK, gin.H{"message": "OTP verified successfully."})
}

// ResetPassword handles the password reset after verifying the OTP
func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email"`
		OTP         string `json:"otp"`
		NewPassword string `json:"new_password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data. Please ensure all required fields are filled correctly."})
		return
	}

	if input.Email == "" || input.OTP == "" || input.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email, OTP, and new password are required."})
		return
	}

	user, errMsg := userWithValidOTP(input.Email, input.OTP)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsg})
		return
	}

	// Hash the new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your password. Please try again."})
		return
	}

	// Update the user's password and clear the OTP
	user.Password = string(hashedPassword)
	user.OTP = ""
	user.OTPGeneratedAt = nil

	if err := utils.PortalDB.Save(user).Error; err != nil {
		log.Printf("Failed to update user password in the database: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "We encountered an issue updating your password. Please try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Your password has been reset successfully. You can now log in with your new password."})
}

// userWithValidOTP loads the user and checks the supplied OTP; returns the
// user on success or a user-facing message on failure.
func userWithValidOTP(email, otp string) (*models.User, string) {
	var user models.User
	if err := utils.PortalDB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, "User not found. Please check your email address."
	}

	if user.OTP == "" || user.OTPGeneratedAt == nil || user.OTPGeneratedAt.IsZero() {
		return nil, "The OTP is missing or not properly set. Please request a new OTP."
	}

	if otp != user.OTP {
		log.Printf("OTP mismatch for %s", email)
		return nil, "The OTP is incorrect. Please try again or request a new one."
	}

	if time.Since(*user.OTPGeneratedAt) > otpValidityDuration {
		return nil, "The OTP has expired. Please request a new OTP."
	}

	return &user, ""
}
