package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/receipt"
	"github.com/lokesh-sivakumar/hope-trust/rpc"
)

// fakeClient fakes the donation database. Allocation replies are keyed by
// donor name.
type fakeClient struct {
	replies map[string]string // raw routine replies, parsed like the real client
	procErr error
	flagErr error

	processCalls []string
	flagCalls    []string
}

func (f *fakeClient) ProcessDonor(_ context.Context, args rpc.ProcessArgs) (rpc.AllocationResult, error) {
	name := strings.ToUpper(args.Name)
	f.processCalls = append(f.processCalls, name)
	if f.procErr != nil {
		return rpc.AllocationResult{}, f.procErr
	}
	raw, ok := f.replies[name]
	if !ok {
		return rpc.AllocationResult{}, fmt.Errorf("no reply configured for %s", name)
	}
	return rpc.ParseAllocation(raw)
}

func (f *fakeClient) MarkReportGenerated(_ context.Context, receiptNo string) error {
	f.flagCalls = append(f.flagCalls, receiptNo)
	return f.flagErr
}

func (f *fakeClient) FetchPendingReceipts(context.Context) ([]models.Donation, error) {
	return nil, nil
}

func (f *fakeClient) GetReceipt(context.Context, string) (*models.Donation, error) {
	return nil, nil
}

func (f *fakeClient) UpdateReceipt(context.Context, string, rpc.UpdateFields) error {
	return nil
}

func newProcessor(t *testing.T, client rpc.Client) *Processor {
	t.Helper()
	return &Processor{
		Client:    client,
		Renderer:  &receipt.Renderer{},
		OutputDir: t.TempDir(),
		UserEmail: "operator@hopetrust.org",
		EntryMode: "excel",
	}
}

func validInput(name string) models.DonationInput {
	return models.DonationInput{
		Date:    "15.03.24",
		Name:    name,
		Amount:  "2500",
		Pan:     "ABCDE1234F",
		Address: "Chennai",
	}
}

func TestProcessSuccess(t *testing.T) {
	client := &fakeClient{replies: map[string]string{"RAMESH B": "HT-ONL-1001"}}
	p := newProcessor(t, client)

	res := p.Process(context.Background(), validInput("Ramesh B"))
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, "HT-ONL-1001", res.ReceiptNo)
	assert.FileExists(t, res.PDFPath)
	// Flag is confirmed only after the PDF exists.
	assert.Equal(t, []string{"HT-ONL-1001"}, client.flagCalls)
}

func TestProcessSkipsPreassignedWithoutRemoteCall(t *testing.T) {
	client := &fakeClient{}
	p := newProcessor(t, client)

	for _, hint := range []string{"R7-0042", "DUM", " dum "} {
		in := validInput("Ramesh B")
		in.ReceiptHint = hint
		res := p.Process(context.Background(), in)
		assert.Equal(t, StatusSkippedPreassigned, res.Status, "hint %q", hint)
	}
	assert.Empty(t, client.processCalls, "preassigned rows must never reach the database")
}

func TestProcessSkipsValidationWithoutRemoteCall(t *testing.T) {
	client := &fakeClient{}
	p := newProcessor(t, client)

	in := models.DonationInput{Date: "31.04.25", Name: "", Amount: "-5", Pan: "NOPE"}
	res := p.Process(context.Background(), in)

	assert.Equal(t, StatusSkippedValidation, res.Status)
	// All four failures are reported together.
	assert.Contains(t, res.Message, "Date")
	assert.Contains(t, res.Message, "name")
	assert.Contains(t, res.Message, "Amount")
	assert.Contains(t, res.Message, "PAN")
	assert.Empty(t, client.processCalls)
}

func TestProcessDuplicate(t *testing.T) {
	client := &fakeClient{replies: map[string]string{"RAMESH B": "exists:HT-ONL-0881"}}
	p := newProcessor(t, client)

	res := p.Process(context.Background(), validInput("Ramesh B"))
	assert.Equal(t, StatusSkippedDuplicate, res.Status)
	assert.Equal(t, "HT-ONL-0881", res.ReceiptNo)
	// Duplicates get no PDF and no flag call.
	assert.Empty(t, res.PDFPath)
	assert.Empty(t, client.flagCalls)
}

func TestProcessRemoteFailure(t *testing.T) {
	client := &fakeClient{procErr: errors.New("dial tcp: connection refused")}
	p := newProcessor(t, client)

	res := p.Process(context.Background(), validInput("Ramesh B"))
	assert.Equal(t, StatusErrorRemote, res.Status)
	assert.Contains(t, res.Message, "connection refused")
}

func TestProcessUnrecognizedResponse(t *testing.T) {
	client := &fakeClient{replies: map[string]string{"RAMESH B": "splat"}}
	p := newProcessor(t, client)

	res := p.Process(context.Background(), validInput("Ramesh B"))
	assert.Equal(t, StatusErrorUnrecognized, res.Status)
	// The verbatim payload is preserved for diagnosis.
	assert.Contains(t, res.Message, `"splat"`)
}

func TestProcessFlagUpdateFailureIsDistinctAndRetriable(t *testing.T) {
	client := &fakeClient{
		replies: map[string]string{"RAMESH B": "HT-ONL-1002"},
		flagErr: errors.New("mark_report_true: timeout"),
	}
	p := newProcessor(t, client)

	res := p.Process(context.Background(), validInput("Ramesh B"))
	require.Equal(t, StatusErrorFlagUpdateFailed, res.Status)
	assert.NotEqual(t, StatusErrorRenderFailed, res.Status)
	require.FileExists(t, res.PDFPath)

	first, err := os.Stat(res.PDFPath)
	require.NoError(t, err)

	// A retry through the recovery flow must not produce a second PDF.
	client.flagErr = nil
	retry := p.Process(context.Background(), validInput("Ramesh B"))
	assert.Equal(t, StatusSuccess, retry.Status)
	assert.Equal(t, res.PDFPath, retry.PDFPath)

	second, err := os.Stat(retry.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, first.ModTime(), second.ModTime())
}

func TestProcessBatchNeverShortCircuits(t *testing.T) {
	client := &fakeClient{replies: map[string]string{
		"RAMESH B": "HT-ONL-2001",
		"PRIYA R":  "HT-ONL-2002",
	}}
	p := newProcessor(t, client)

	inputs := []models.DonationInput{
		validInput("Ramesh B"),
		{Date: "15.03.24", Name: "", Amount: "100", Row: 3}, // fails validation
		validInput("Priya R"),
	}
	inputs[0].Row = 2
	inputs[2].Row = 4

	summary := p.ProcessBatch(context.Background(), inputs)

	assert.Equal(t, 2, summary.Success)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)
	// Record 3 was still processed despite record 2's failure.
	assert.Equal(t, []string{"RAMESH B", "PRIYA R"}, client.processCalls)

	require.Len(t, summary.Log, 3)
	assert.Contains(t, summary.Log[0], "Row 2")
	assert.Contains(t, summary.Log[1], "Skipped Row 3")
	assert.Contains(t, summary.Log[2], "Row 4")
}
