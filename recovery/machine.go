// Package recovery finds donation records whose receipt PDF was never
// produced and drives their regeneration. It exists to repair the one
// dangerous partial-failure state: a PDF that was written while the remote
// generated flag stayed unset.
package recovery

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/receipt"
	"github.com/lokesh-sivakumar/hope-trust/rpc"
)

// State of the recovery workflow. Transitions are operator-driven except
// Fetching -> ListSelection, which happens as soon as the remote fetch
// completes.
type State string

const (
	StateInitial       State = "initial"
	StateFetching      State = "fetching"
	StateListSelection State = "list_selection"
	StateProcessing    State = "processing"
	StateFinished      State = "finished"
)

// Item is one pending record offered for selection. Label is display-only;
// selection always goes back to the machine by ReceiptNo.
type Item struct {
	ReceiptNo string  `json:"receipt_no"`
	Label     string  `json:"label"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
}

// Outcome reports a finished processing pass.
type Outcome struct {
	Selected    int      `json:"selected"`
	Generated   int      `json:"generated"`
	Regenerated []string `json:"regenerated"`
	Log         []string `json:"log"`
}

// Machine is one operator's recovery workflow for one session directory.
type Machine struct {
	client    rpc.Client
	renderer  *receipt.Renderer
	outputDir string

	mu      sync.Mutex
	state   State
	pending map[string]models.Donation
	outcome Outcome
}

func NewMachine(client rpc.Client, renderer *receipt.Renderer, outputDir string) *Machine {
	return &Machine{
		client:    client,
		renderer:  renderer,
		outputDir: outputDir,
		state:     StateInitial,
		pending:   make(map[string]models.Donation),
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fetch pulls every record with the generated flag unset and moves to
// ListSelection. A failed or empty fetch still lands in ListSelection with
// an empty list; the operator sees "none found" rather than a broken page.
func (m *Machine) Fetch(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	if m.state != StateInitial {
		state := m.state
		m.mu.Unlock()
		return nil, fmt.Errorf("cannot fetch in state %s", state)
	}
	m.state = StateFetching
	m.mu.Unlock()

	records, err := m.client.FetchPendingReceipts(ctx)
	if err != nil {
		log.Printf("Failed to fetch missing receipts: %v", err)
		records = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = make(map[string]models.Donation, len(records))
	items := make([]Item, 0, len(records))
	for _, rec := range records {
		m.pending[rec.ReceiptNo] = rec
		items = append(items, Item{
			ReceiptNo: rec.ReceiptNo,
			Label:     fmt.Sprintf("%s - %s - Rs.%.2f - %s", rec.ReceiptNo, rec.Name, rec.Amount, rec.Date),
			Name:      rec.Name,
			Amount:    rec.Amount,
			Date:      rec.Date,
		})
	}
	m.state = StateListSelection

	return items, err
}

// Process regenerates the selected receipt numbers and reconciles the
// remote flag per record. One record's failure never blocks the others.
func (m *Machine) Process(ctx context.Context, receiptNos []string) (Outcome, error) {
	m.mu.Lock()
	if m.state != StateListSelection {
		state := m.state
		m.mu.Unlock()
		return Outcome{}, fmt.Errorf("cannot process in state %s", state)
	}
	m.state = StateProcessing
	pending := m.pending
	m.mu.Unlock()

	outcome := Outcome{Selected: len(receiptNos)}
	addLine := func(format string, args ...interface{}) {
		line := fmt.Sprintf(format, args...)
		outcome.Log = append(outcome.Log, line)
		log.Println(line)
	}

	for _, receiptNo := range receiptNos {
		rec, ok := pending[receiptNo]
		if !ok {
			addLine("Could not find pending record for: %s", receiptNo)
			continue
		}

		// Every field must be present; a partial record would print a
		// partial receipt.
		if rec.ReceiptNo == "" || rec.Name == "" || rec.Address == "" || rec.Pan == "" || rec.Amount == 0 || rec.Date == "" {
			addLine("Skipped incomplete record: %s", receiptNo)
			continue
		}

		// Stored dates are yyyy-mm-dd; receipts print dd-mm-yyyy. A record
		// whose stored date no longer parses is printed as stored.
		displayDate := rec.Date
		if parsed, err := time.Parse("2006-01-02", rec.Date); err == nil {
			displayDate = parsed.Format("02-01-2006")
		}

		data := receipt.NewData(rec.ReceiptNo, displayDate, rec.Name, rec.Amount, rec.Address, rec.Pan)

		pdfPath, err := m.renderer.Render(data, m.outputDir)
		if err != nil {
			addLine("Failed to generate PDF for %s: %v", rec.ReceiptNo, err)
			continue
		}

		if err := m.client.MarkReportGenerated(ctx, rec.ReceiptNo); err != nil {
			addLine("Generated PDF for %s, but FAILED to update DB flag: %v", rec.ReceiptNo, err)
			continue
		}

		outcome.Generated++
		outcome.Regenerated = append(outcome.Regenerated, rec.ReceiptNo)
		addLine("Regenerated %s (%s)", rec.ReceiptNo, pdfPath)
	}

	m.mu.Lock()
	m.outcome = outcome
	m.state = StateFinished
	m.mu.Unlock()

	return outcome, nil
}

// Outcome returns the last finished pass, for the Finished view.
func (m *Machine) Outcome() Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outcome
}

// Restart returns the machine to Initial for a repeat cycle. Already
// generated PDFs stay in the session directory and remain part of the
// archive download.
func (m *Machine) Restart() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateInitial
	m.pending = make(map[string]models.Donation)
	m.outcome = Outcome{}
}
