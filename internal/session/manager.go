package session

import (
	"sync"

	"go.uber.org/zap"
)

// Manager hands out one controller per user, created on demand. The HTTP
// layer resolves the authenticated user and asks the manager for their
// controller; the controller lives for the life of the process, like the
// browser tab state it replaces.
type Manager struct {
	store     *HistoryStore
	completer Completer
	extractor Extractor
	log       *zap.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewManager creates a controller manager
func NewManager(store *HistoryStore, completer Completer, extractor Extractor, log *zap.Logger) *Manager {
	return &Manager{
		store:       store,
		completer:   completer,
		extractor:   extractor,
		log:         log,
		controllers: make(map[string]*Controller),
	}
}

// Controller returns the controller for a user, creating it if needed.
func (m *Manager) Controller(user string) *Controller {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.controllers[user]; ok {
		return c
	}
	c := NewController(user, m.store, m.completer, m.extractor, m.log)
	m.controllers[user] = c
	return c
}

// Store exposes the underlying history store for read-side queries.
func (m *Manager) Store() *HistoryStore {
	return m.store
}
