package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/config"
	"github.com/lokesh-sivakumar/hope-trust/handlers/auth"
	"github.com/lokesh-sivakumar/hope-trust/handlers/donations"
	"github.com/lokesh-sivakumar/hope-trust/handlers/receipts"
	"github.com/lokesh-sivakumar/hope-trust/handlers/recovery"
	"github.com/lokesh-sivakumar/hope-trust/handlers/sessions"
	"github.com/lokesh-sivakumar/hope-trust/migrations"
	"github.com/lokesh-sivakumar/hope-trust/receipt"
	"github.com/lokesh-sivakumar/hope-trust/rpc"
	"github.com/lokesh-sivakumar/hope-trust/seed"
	"github.com/lokesh-sivakumar/hope-trust/session"
	"github.com/lokesh-sivakumar/hope-trust/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {
	r := gin.Default()

	allowedOrigins := []string{"https://receipts.hopetrust.org.in"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		allowedOrigins = strings.Split(extra, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	utils.ConnectDatabase()

	migrations.MigrateOperators()

	// Seed Initial Data
	if err := seed.SeedAdmin(); err != nil {
		log.Fatalf("Failed to seed admin operator: %v", err)
	}

	// Shared collaborators for the entry surfaces
	client := rpc.NewDBClient(utils.DonationDB)
	renderer := receipt.NewRenderer()
	sessionManager := session.NewManager(config.BasePDFOutputDir())

	donations.Setup(client, renderer, sessionManager)
	recovery.Setup(client, renderer, sessionManager)
	receipts.Setup(client)
	sessions.Setup(sessionManager)

	// Routes setup
	r.POST("/login", auth.Login)
	r.POST("/logout", auth.AuthMiddleware(), auth.Logout)
	r.POST("/refresh-token", auth.RefreshToken)
	r.POST("/request-otp", auth.RequestOTP)
	r.POST("/verify-otp-reset", auth.VerifyOTPReset)
	r.POST("/reset-password", auth.ResetPassword)

	protected := r.Group("/")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("/sessions", sessions.Create)
		protected.GET("/sessions/:session_id/archive", sessions.DownloadArchive)

		protected.POST("/donations", donations.SubmitDonation)
		protected.POST("/donations/upload", donations.UploadDonations)

		protected.GET("/recovery/:session_id/pending", recovery.FindPending)
		protected.POST("/recovery/:session_id/regenerate", recovery.Regenerate)
		protected.POST("/recovery/:session_id/restart", recovery.Restart)

		protected.GET("/receipts/:receipt_no", receipts.GetReceipt)
		protected.PUT("/receipts/:receipt_no", receipts.UpdateReceipt)

		protected.POST("/operators", auth.AdminOnly(), auth.CreateOperator)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
