// Package session manages the per-session output directories that collect
// generated receipt PDFs, and packages them for download.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one operator working session. Every PDF generated while it is
// open lands in Dir; the archive download bundles Dir's contents.
type Session struct {
	ID        string    `json:"id"`
	Dir       string    `json:"dir"`
	CreatedAt time.Time `json:"created_at"`
}

// BaseName is the directory's final path element, also used as the archive
// download name.
func (s *Session) BaseName() string {
	return filepath.Base(s.Dir)
}

// Manager creates and tracks sessions under a base directory. HTTP requests
// are stateless, so sessions are rejoined by ID.
type Manager struct {
	baseDir string

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(baseDir string) *Manager {
	return &Manager{
		baseDir:  baseDir,
		sessions: make(map[string]*Session),
	}
}

// Open creates a fresh timestamped output directory and registers it.
func (m *Manager) Open() (*Session, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	dir := filepath.Join(m.baseDir, fmt.Sprintf("ht_donation_receipt_%s", timestamp))

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	s := &Session{
		ID:        uuid.NewString(),
		Dir:       dir,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

// Get rejoins a session by ID; nil when unknown.
func (m *Manager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[id]
}

// Close forgets a session. The directory and its PDFs stay on disk.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}
