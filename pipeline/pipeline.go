// Package pipeline runs one donor record through validation, remote
// allocation, PDF rendering and flag confirmation. The single form, the
// spreadsheet upload and the recovery flow all submit through it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/lokesh-sivakumar/hope-trust/config"
	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/receipt"
	"github.com/lokesh-sivakumar/hope-trust/rpc"
	"github.com/lokesh-sivakumar/hope-trust/validators"
)

// Status classifies the outcome of one record.
type Status string

const (
	StatusSuccess               Status = "success"
	StatusSkippedPreassigned    Status = "skipped_preassigned"
	StatusSkippedValidation     Status = "skipped_validation"
	StatusSkippedDuplicate      Status = "skipped_duplicate"
	StatusErrorRemote           Status = "error_remote"
	StatusErrorRenderFailed     Status = "error_render_failed"
	StatusErrorFlagUpdateFailed Status = "error_flag_update_failed"
	StatusErrorUnrecognized     Status = "error_unrecognized_response"
)

// IsError reports whether the status counts against the batch error total.
// Skips (preassigned, validation, duplicate) are normal outcomes, not
// errors.
func (s Status) IsError() bool {
	switch s {
	case StatusErrorRemote, StatusErrorRenderFailed, StatusErrorFlagUpdateFailed, StatusErrorUnrecognized:
		return true
	}
	return false
}

// Result is the outcome of one record.
type Result struct {
	Status    Status `json:"status"`
	ReceiptNo string `json:"receipt_no,omitempty"`
	PDFPath   string `json:"pdf_path,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Summary aggregates a batch. Log holds one human-readable line per record,
// keyed by the originating row or record identifier.
type Summary struct {
	Success int      `json:"success"`
	Skipped int      `json:"skipped"`
	Errors  int      `json:"errors"`
	Log     []string `json:"log"`
}

func (s *Summary) count(r Result) {
	switch {
	case r.Status == StatusSuccess:
		s.Success++
	case r.Status.IsError():
		s.Errors++
	default:
		s.Skipped++
	}
}

// Processor drives the per-record pipeline. UserEmail and EntryMode are
// passed to the allocation routine for bookkeeping.
type Processor struct {
	Client    rpc.Client
	Renderer  *receipt.Renderer
	OutputDir string
	UserEmail string
	EntryMode string // "single" or "excel"
}

// Process runs one record end to end. Remote failures come back as error
// statuses in the Result, never as panics or aborts, so a batch always
// moves on to the next record.
func (p *Processor) Process(ctx context.Context, input models.DonationInput) Result {
	// Rows that already carry a physical receipt number or a duplicate
	// marker never reach the database.
	hint := strings.ToUpper(strings.TrimSpace(input.ReceiptHint))
	if hint != "" && (strings.HasPrefix(hint, config.PhysicalReceiptPrefix) || hint == config.DuplicateMarker) {
		return Result{
			Status:  StatusSkippedPreassigned,
			Message: fmt.Sprintf("receipt number present or marked as %s (%s)", config.DuplicateMarker, hint),
		}
	}

	var errs []string

	date, err := validators.ValidateDate(input.Date)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Date ('%s'): %v", input.Date, err))
	}
	if err := validators.ValidateName(input.Name); err != nil {
		errs = append(errs, err.Error())
	}
	amount, err := validators.ValidateAmount(input.Amount)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Amount ('%s'): %v", input.Amount, err))
	}
	if err := validators.ValidatePan(input.Pan); err != nil {
		errs = append(errs, fmt.Sprintf("PAN ('%s'): %v", input.Pan, err))
	}

	if len(errs) > 0 {
		return Result{Status: StatusSkippedValidation, Message: strings.Join(errs, ", ")}
	}

	alloc, err := p.Client.ProcessDonor(ctx, rpc.ProcessArgs{
		Date:      date.Format("2006-01-02"),
		Name:      strings.TrimSpace(input.Name),
		Amount:    amount,
		Pan:       strings.TrimSpace(input.Pan),
		Address:   strings.TrimSpace(input.Address),
		SerialNo:  input.SerialNo,
		UserEmail: p.UserEmail,
		EntryMode: p.EntryMode,
	})
	if err != nil {
		var unrec *rpc.UnrecognizedResponseError
		if errors.As(err, &unrec) {
			return Result{Status: StatusErrorUnrecognized, Message: err.Error()}
		}
		return Result{Status: StatusErrorRemote, Message: err.Error()}
	}

	if alloc.Kind == rpc.Duplicate {
		msg := "record already exists"
		if alloc.ReceiptNo != "" {
			msg = fmt.Sprintf("record already exists with receipt number %s", alloc.ReceiptNo)
		}
		return Result{Status: StatusSkippedDuplicate, ReceiptNo: alloc.ReceiptNo, Message: msg}
	}

	data := receipt.NewData(
		alloc.ReceiptNo,
		date.Format("02-01-2006"),
		strings.TrimSpace(input.Name),
		amount,
		strings.TrimSpace(input.Address),
		strings.TrimSpace(input.Pan),
	)

	pdfPath, err := p.Renderer.Render(data, p.OutputDir)
	if err != nil {
		// The flag was never set, so the recovery flow will pick this
		// record up again.
		return Result{
			Status:    StatusErrorRenderFailed,
			ReceiptNo: alloc.ReceiptNo,
			Message:   fmt.Sprintf("failed to generate PDF for %s: %v", alloc.ReceiptNo, err),
		}
	}

	if err := p.Client.MarkReportGenerated(ctx, alloc.ReceiptNo); err != nil {
		// The PDF exists locally but the database still thinks it doesn't.
		// Reported distinctly so operators know to rerun recovery, where
		// the renderer's idempotence prevents a duplicate PDF.
		return Result{
			Status:    StatusErrorFlagUpdateFailed,
			ReceiptNo: alloc.ReceiptNo,
			PDFPath:   pdfPath,
			Message:   fmt.Sprintf("generated PDF for %s but FAILED to update DB flag: %v", alloc.ReceiptNo, err),
		}
	}

	return Result{
		Status:    StatusSuccess,
		ReceiptNo: alloc.ReceiptNo,
		PDFPath:   pdfPath,
		Message:   fmt.Sprintf("generated %s.pdf", alloc.ReceiptNo),
	}
}

// ProcessBatch runs the records strictly sequentially and aggregates
// counters and log lines. One record's failure never short-circuits the
// rest.
func (p *Processor) ProcessBatch(ctx context.Context, inputs []models.DonationInput) Summary {
	var summary Summary

	for _, input := range inputs {
		result := p.Process(ctx, input)
		summary.count(result)

		line := fmt.Sprintf("%s %s: %s", lineTag(result.Status), rowLabel(input), result.Message)
		summary.Log = append(summary.Log, line)
		log.Println(line)
	}

	return summary
}

func rowLabel(input models.DonationInput) string {
	if input.Row > 0 {
		return fmt.Sprintf("Row %d", input.Row)
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		return name
	}
	return "record"
}

func lineTag(s Status) string {
	switch {
	case s == StatusSuccess:
		return "Success"
	case s.IsError():
		return "Error"
	default:
		return "Skipped"
	}
}
