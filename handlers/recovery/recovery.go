package recovery

import (
	"net/http"
	"sync"

	"github.com/lokesh-sivakumar/hope-trust/receipt"
	machine "github.com/lokesh-sivakumar/hope-trust/recovery"
	"github.com/lokesh-sivakumar/hope-trust/rpc"
	"github.com/lokesh-sivakumar/hope-trust/session"

	"github.com/gin-gonic/gin"
)

var (
	client   rpc.Client
	renderer *receipt.Renderer
	sessions *session.Manager

	mu       sync.Mutex
	machines = make(map[string]*machine.Machine)
)

// Setup wires the handler package; called once from main.
func Setup(c rpc.Client, r *receipt.Renderer, s *session.Manager) {
	client = c
	renderer = r
	sessions = s
}

// machineFor returns the session's recovery machine, creating it on first
// use. Regenerated PDFs land in the session's output directory so the
// archive download picks them up.
func machineFor(c *gin.Context) *machine.Machine {
	s := sessions.Get(c.Param("session_id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found."})
		return nil
	}

	mu.Lock()
	defer mu.Unlock()
	m, ok := machines[s.ID]
	if !ok {
		m = machine.NewMachine(client, renderer, s.Dir)
		machines[s.ID] = m
	}
	return m
}

// FindPending fetches all records whose receipt was never generated and
// offers them for selection.
func FindPending(c *gin.Context) {
	m := machineFor(c)
	if m == nil {
		return
	}

	items, err := m.Fetch(c.Request.Context())
	if err != nil && m.State() != machine.StateListSelection {
		// Wrong-state call, not a fetch failure.
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": m.State()})
		return
	}

	resp := gin.H{
		"state": m.State(),
		"items": items,
		"found": len(items),
	}
	if len(items) == 0 {
		resp["message"] = "Failed to fetch missing receipts or none found."
	}

	c.JSON(http.StatusOK, resp)
}

// Regenerate renders the selected receipts and reconciles the generated
// flag per record.
func Regenerate(c *gin.Context) {
	var input struct {
		ReceiptNos []string `json:"receipt_nos"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || len(input.ReceiptNos) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one receipt to regenerate."})
		return
	}

	m := machineFor(c)
	if m == nil {
		return
	}

	outcome, err := m.Process(c.Request.Context(), input.ReceiptNos)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "state": m.State()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   m.State(),
		"outcome": outcome,
	})
}

// Restart returns the workflow to its initial state for a repeat cycle.
func Restart(c *gin.Context) {
	m := machineFor(c)
	if m == nil {
		return
	}

	m.Restart()
	c.JSON(http.StatusOK, gin.H{"state": m.State()})
}
