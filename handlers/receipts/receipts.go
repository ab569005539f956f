package receipts

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/rpc"
	"github.com/lokesh-sivakumar/hope-trust/validators"

	"github.com/gin-gonic/gin"
)

var client rpc.Client

// Setup wires the handler package; called once from main.
func Setup(c rpc.Client) {
	client = c
}

// GetReceipt looks a donation up by its receipt number so the operator can
// edit it. display_date carries the stored ISO date in form format.
func GetReceipt(c *gin.Context) {
	receiptNo := c.Param("receipt_no")

	donation, err := client.GetReceipt(c.Request.Context(), receiptNo)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to look up the receipt."})
		return
	}
	if donation == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt number not found."})
		return
	}

	// Stored dates are yyyy-mm-dd; the edit form works in dd.mm.yy. An
	// unparseable stored date is shown as stored.
	displayDate := donation.Date
	if parsed, err := time.Parse("2006-01-02", donation.Date); err == nil {
		displayDate = parsed.Format("02.01.06")
	}

	c.JSON(http.StatusOK, gin.H{
		"receipt":      donation,
		"display_date": displayDate,
	})
}

// UpdateReceipt edits a stored donation record after running the same
// validators as the entry surfaces.
func UpdateReceipt(c *gin.Context) {
	receiptNo := c.Param("receipt_no")

	var input struct {
		Date    string      `json:"date"` // dd.mm.yy
		Name    string      `json:"name"`
		Amount  json.Number `json:"amount"`
		Pan     string      `json:"pan"`
		Address string      `json:"address"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	existing, err := client.GetReceipt(c.Request.Context(), receiptNo)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to look up the receipt."})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt number not found."})
		return
	}

	var warnings []string
	if strings.EqualFold(strings.TrimSpace(input.Name), strings.TrimSpace(existing.Name)) {
		warnings = append(warnings, "Name is the same as the existing record.")
	}

	var errs []string

	date, err := validators.ValidateDate(input.Date)
	if err != nil {
		errs = append(errs, err.Error())
	}
	if err := validators.ValidateName(input.Name); err != nil {
		errs = append(errs, err.Error())
	}
	amount, err := validators.ValidateAmount(input.Amount.String())
	if err != nil {
		errs = append(errs, err.Error())
	}
	if err := validators.ValidatePan(input.Pan); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs, "warnings": warnings})
		return
	}

	fields := rpc.UpdateFields{
		Date:    date.Format("2006-01-02"),
		Name:    strings.TrimSpace(input.Name),
		Amount:  amount,
		Pan:     strings.TrimSpace(input.Pan),
		Address: strings.TrimSpace(input.Address),
	}

	if err := client.UpdateReceipt(c.Request.Context(), receiptNo, fields); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Update failed: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Record updated successfully.",
		"warnings": warnings,
	})
}
