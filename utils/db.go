package utils

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DonationDB is the hosted donation database. It owns the Hope_Trust table
// and the stored routines that deduplicate donors and allocate receipt
// numbers; the application never writes to it outside those routines.
var DonationDB *gorm.DB

// PortalDB holds operator accounts and OTP state for this front-end.
var PortalDB *gorm.DB

func ConnectDatabase() {
	donationDSN := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DONATION_DB"),
	)

	portalDSN := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("PORTAL_DB"),
	)

	var err error

	DonationDB, err = gorm.Open(mysql.Open(donationDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to donation database: %v", err)
	}

	PortalDB, err = gorm.Open(mysql.Open(portalDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to portal database: %v", err)
	}
}
