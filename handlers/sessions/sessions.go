package sessions

import (
	"fmt"
	"net/http"

	"github.com/lokesh-sivakumar/hope-trust/session"

	"github.com/gin-gonic/gin"
)

var manager *session.Manager

// Setup wires the handler package; called once from main.
func Setup(m *session.Manager) {
	manager = m
}

// Create opens a fresh timestamped output directory for the operator's
// working session.
func Create(c *gin.Context) {
	s, err := manager.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create a session output directory."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": s})
}

// DownloadArchive streams every PDF generated in the session so far as one
// ZIP named after the session directory.
func DownloadArchive(c *gin.Context) {
	s := manager.Get(c.Param("session_id"))
	if s == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found."})
		return
	}

	data, err := session.Archive(s.Dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build the archive."})
		return
	}
	if data == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No PDFs have been generated in this session yet."})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.zip", s.BaseName()))
	c.Data(http.StatusOK, "application/zip", data)
}
