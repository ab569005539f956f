package rpc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/models"

	"gorm.io/gorm"
)

// DBClient talks to the donation database through one gorm handle. Every
// call, reads included, goes through the same connection.
type DBClient struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewDBClient wraps db with the default per-call timeout.
func NewDBClient(db *gorm.DB) *DBClient {
	return &DBClient{db: db, timeout: DefaultTimeout}
}

func (c *DBClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeout)
}

func (c *DBClient) ProcessDonor(ctx context.Context, args ProcessArgs) (AllocationResult, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var reply string
	err := c.db.WithContext(ctx).
		Raw("SELECT process_and_generate_receipt(?, ?, ?, ?, ?, ?, ?, ?)",
			strings.ToUpper(args.Name),
			strings.ToUpper(args.Address),
			strings.ToUpper(args.Pan),
			args.Amount,
			args.Date,
			args.SerialNo,
			args.UserEmail,
			args.EntryMode,
		).Scan(&reply).Error
	if err != nil {
		return AllocationResult{}, fmt.Errorf("process_and_generate_receipt: %w", err)
	}

	return ParseAllocation(reply)
}

func (c *DBClient) MarkReportGenerated(ctx context.Context, receiptNo string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var reply string
	err := c.db.WithContext(ctx).
		Raw("SELECT mark_report_true(?)", strings.TrimSpace(receiptNo)).
		Scan(&reply).Error
	if err != nil {
		return fmt.Errorf("mark_report_true: %w", err)
	}

	if strings.TrimSpace(reply) != "success" {
		return fmt.Errorf("mark_report_true for %s: unexpected reply %q", receiptNo, reply)
	}

	return nil
}

func (c *DBClient) FetchPendingReceipts(ctx context.Context) ([]models.Donation, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var pending []models.Donation
	if err := c.db.WithContext(ctx).Where("report = ?", false).Find(&pending).Error; err != nil {
		return nil, fmt.Errorf("fetch pending receipts: %w", err)
	}

	return pending, nil
}

func (c *DBClient) GetReceipt(ctx context.Context, receiptNo string) (*models.Donation, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var donation models.Donation
	err := c.db.WithContext(ctx).Where("receipt_no = ?", receiptNo).First(&donation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get receipt %s: %w", receiptNo, err)
	}

	return &donation, nil
}

func (c *DBClient) UpdateReceipt(ctx context.Context, receiptNo string, fields UpdateFields) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	err := c.db.WithContext(ctx).
		Exec("CALL update_donation_record(?, ?, ?, ?, ?, ?)",
			receiptNo,
			fields.Date,
			strings.ToUpper(fields.Name),
			fields.Amount,
			strings.ToUpper(fields.Address),
			strings.ToUpper(fields.Pan),
		).Error
	if err != nil {
		return fmt.Errorf("update_donation_record for %s: %w", receiptNo, err)
	}

	return nil
}
