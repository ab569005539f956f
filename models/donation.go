package models

// Donation mirrors a row of the hosted Hope_Trust table. The donation
// database owns these records; receipt numbers are allocated by its stored
// routines and never locally.
type Donation struct {
	ID        int     `gorm:"column:id;primaryKey" json:"id"`
	ReceiptNo string  `gorm:"column:receipt_no" json:"receipt_no"`
	Date      string  `gorm:"column:date" json:"date"` // yyyy-mm-dd as stored
	Name      string  `gorm:"column:name" json:"name"`
	Amount    float64 `gorm:"column:amount" json:"amount"`
	Address   string  `gorm:"column:address" json:"address"`
	Pan       string  `gorm:"column:pan" json:"pan"`
	SerialNo  *int    `gorm:"column:serial_no" json:"serial_no"`
	EntryMode string  `gorm:"column:entry_mode" json:"entry_mode"`
	CreatedBy string  `gorm:"column:created_by" json:"created_by"`
	Report    bool    `gorm:"column:report" json:"report"` // true once a PDF receipt exists
}

// TableName to override the default table name
func (Donation) TableName() string {
	return "Hope_Trust"
}

// DonationInput is one submission attempt before validation, either a form
// post or a spreadsheet row. Row is the originating spreadsheet row number
// (header row = 1) and is only set in bulk mode.
type DonationInput struct {
	Date        string `json:"date"` // dd.mm.yy
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	Pan         string `json:"pan"`
	Address     string `json:"address"`
	SerialNo    *int   `json:"serial_no,omitempty"`
	ReceiptHint string `json:"receipt_hint,omitempty"`
	Row         int    `json:"-"`
}
