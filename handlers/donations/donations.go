package donations

import (
	"encoding/json"
	"net/http"

	"github.com/lokesh-sivakumar/hope-trust/ingest"
	"github.com/lokesh-sivakumar/hope-trust/models"
	"github.com/lokesh-sivakumar/hope-trust/pipeline"
	"github.com/lokesh-sivakumar/hope-trust/receipt"
	"github.com/lokesh-sivakumar/hope-trust/rpc"
	"github.com/lokesh-sivakumar/hope-trust/session"

	"github.com/gin-gonic/gin"
)

var (
	client   rpc.Client
	renderer *receipt.Renderer
	sessions *session.Manager
)

// Setup wires the handler package; called once from main.
func Setup(c rpc.Client, r *receipt.Renderer, s *session.Manager) {
	client = c
	renderer = r
	sessions = s
}

// resolveSession rejoins the caller's session or opens a fresh one when no
// usable session ID was supplied.
func resolveSession(id string) (*session.Session, error) {
	if id != "" {
		if s := sessions.Get(id); s != nil {
			return s, nil
		}
	}
	return sessions.Open()
}

func operatorEmail(c *gin.Context) (string, bool) {
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return "", false
	}
	return userInterface.(models.User).Email, true
}

// SubmitDonation handles the single-entry form: validate, allocate a
// receipt number remotely, render the PDF, confirm the flag.
func SubmitDonation(c *gin.Context) {
	var input struct {
		SessionID string      `json:"session_id"`
		Date      string      `json:"date"` // dd.mm.yy
		Name      string      `json:"name"`
		Amount    json.Number `json:"amount"`
		Pan       string      `json:"pan"`
		Address   string      `json:"address"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input data."})
		return
	}

	email, ok := operatorEmail(c)
	if !ok {
		return
	}

	sess, err := resolveSession(input.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare the session output directory."})
		return
	}

	p := &pipeline.Processor{
		Client:    client,
		Renderer:  renderer,
		OutputDir: sess.Dir,
		UserEmail: email,
		EntryMode: "single",
	}

	result := p.Process(c.Request.Context(), models.DonationInput{
		Date:    input.Date,
		Name:    input.Name,
		Amount:  input.Amount.String(),
		Pan:     input.Pan,
		Address: input.Address,
	})

	status := http.StatusOK
	switch result.Status {
	case pipeline.StatusSkippedValidation:
		status = http.StatusBadRequest
	case pipeline.StatusErrorRemote, pipeline.StatusErrorRenderFailed,
		pipeline.StatusErrorFlagUpdateFailed, pipeline.StatusErrorUnrecognized:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"session_id": sess.ID,
		"result":     result,
	})
}

// UploadDonations processes a donor spreadsheet row by row. The response
// carries the batch counters and the per-row log.
func UploadDonations(c *gin.Context) {
	email, ok := operatorEmail(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please choose a file before processing."})
		return
	}
	defer file.Close()

	inputs, err := ingest.ParseWorkbook(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := resolveSession(c.PostForm("session_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare the session output directory."})
		return
	}

	p := &pipeline.Processor{
		Client:    client,
		Renderer:  renderer,
		OutputDir: sess.Dir,
		UserEmail: email,
		EntryMode: "excel",
	}

	summary := p.ProcessBatch(c.Request.Context(), inputs)

	c.JSON(http.StatusOK, gin.H{
		"session_id": sess.ID,
		"summary":    summary,
	})
}
