// Package rpc is the boundary to the hosted donation database. All
// uniqueness, numbering and persistence decisions live in its stored
// routines; this package only invokes them and parses their replies into
// typed results.
package rpc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/config"
	"github.com/lokesh-sivakumar/hope-trust/models"
)

// DefaultTimeout bounds every remote call. The hosted database applies no
// server-side statement timeout we can rely on.
const DefaultTimeout = 15 * time.Second

// ProcessArgs carries one normalized donor record into
// process_and_generate_receipt.
type ProcessArgs struct {
	Date      string // yyyy-mm-dd
	Name      string
	Amount    float64
	Pan       string
	Address   string
	SerialNo  *int
	UserEmail string
	EntryMode string // "single" or "excel"
}

// AllocationKind tags the two shapes a successful allocation reply can take.
type AllocationKind int

const (
	// Created means the routine inserted a new donation and allocated a
	// fresh receipt number.
	Created AllocationKind = iota
	// Duplicate means a matching donation already existed; ReceiptNo is the
	// existing number when the routine reported one.
	Duplicate
)

// AllocationResult is the parsed reply of process_and_generate_receipt.
type AllocationResult struct {
	Kind      AllocationKind
	ReceiptNo string
}

// UnrecognizedResponseError wraps a reply matching none of the expected
// shapes. The raw payload is preserved verbatim for operator diagnosis.
type UnrecognizedResponseError struct {
	Raw string
}

func (e *UnrecognizedResponseError) Error() string {
	return fmt.Sprintf("unrecognized response from server: %q", e.Raw)
}

// ParseAllocation turns the routine's raw string reply into a tagged
// result. The routine answers "exists" (single mode), "exists:<receipt_no>"
// (bulk mode), or a freshly allocated number carrying the ONL marker.
// This is the only place the reply shapes are inspected.
func ParseAllocation(raw string) (AllocationResult, error) {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "exists" {
		return AllocationResult{Kind: Duplicate}, nil
	}
	if rest, ok := strings.CutPrefix(trimmed, "exists:"); ok {
		return AllocationResult{Kind: Duplicate, ReceiptNo: rest}, nil
	}
	if strings.Contains(trimmed, config.OnlineMarker) {
		return AllocationResult{Kind: Created, ReceiptNo: trimmed}, nil
	}

	return AllocationResult{}, &UnrecognizedResponseError{Raw: raw}
}

// UpdateFields are the editable columns of a donation record.
type UpdateFields struct {
	Date    string // yyyy-mm-dd
	Name    string
	Amount  float64
	Pan     string
	Address string
}

// Client is everything the entry surfaces need from the donation database.
type Client interface {
	// ProcessDonor atomically looks up a matching donation or inserts a new
	// one with a fresh receipt number, and reports which happened.
	ProcessDonor(ctx context.Context, args ProcessArgs) (AllocationResult, error)
	// MarkReportGenerated flips the generated flag after a PDF exists on
	// disk. Idempotent; safe to call again for the same receipt number.
	MarkReportGenerated(ctx context.Context, receiptNo string) error
	// FetchPendingReceipts returns every donation whose generated flag is
	// still unset.
	FetchPendingReceipts(ctx context.Context) ([]models.Donation, error)
	// GetReceipt fetches a single donation by receipt number; nil when the
	// number is unknown.
	GetReceipt(ctx context.Context, receiptNo string) (*models.Donation, error)
	// UpdateReceipt rewrites the editable fields of an existing donation.
	UpdateReceipt(ctx context.Context, receiptNo string, fields UpdateFields) error
}
