package session

import (
	"strings"
	"sync"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// Backend loads and saves a user's whole session array as one snapshot.
// Partial updates are not part of the contract: every mutation rewrites
// the snapshot, so the last writer for a user key wins.
type Backend interface {
	Load(user string) ([]domain.ChatSession, error)
	Save(user string, sessions []domain.ChatSession) error
}

// HistoryStore is durable keyed storage of chat sessions, partitioned by
// user display name. Mutations are read-modify-write cycles over the
// backend snapshot, serialized per process so pin/archive toggles cannot
// lose updates against a send in flight.
type HistoryStore struct {
	backend Backend
	mu      sync.Mutex
}

// NewHistoryStore creates a history store over the given backend
func NewHistoryStore(backend Backend) *HistoryStore {
	return &HistoryStore{backend: backend}
}

// Upsert inserts or replaces the session record keyed by its ID. New
// sessions are prepended so the natural order is most-recent-first.
func (s *HistoryStore) Upsert(user string, sess domain.ChatSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.backend.Load(user)
	if err != nil {
		return err
	}

	for i := range sessions {
		if sessions[i].ID == sess.ID {
			sessions[i] = sess
			return s.backend.Save(user, sessions)
		}
	}

	sessions = append([]domain.ChatSession{sess}, sessions...)
	return s.backend.Save(user, sessions)
}

// Get retrieves a session by ID
func (s *HistoryStore) Get(user, id string) (*domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.backend.Load(user)
	if err != nil {
		return nil, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			found := sessions[i].Clone()
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// List returns all sessions for a user in store order
func (s *HistoryStore) List(user string) ([]domain.ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Load(user)
}

// Delete removes a session by ID
func (s *HistoryStore) Delete(user, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.backend.Load(user)
	if err != nil {
		return err
	}

	kept := sessions[:0]
	removed := false
	for _, sess := range sessions {
		if sess.ID == id {
			removed = true
			continue
		}
		kept = append(kept, sess)
	}
	if !removed {
		return domain.ErrNotFound
	}
	return s.backend.Save(user, kept)
}

// TogglePin flips the pin flag on a stored session and returns the new
// value. The flag is derived from the freshest snapshot, not a caller
// capture.
func (s *HistoryStore) TogglePin(user, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.backend.Load(user)
	if err != nil {
		return false, err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			sessions[i].IsPinned = !sessions[i].IsPinned
			return sessions[i].IsPinned, s.backend.Save(user, sessions)
		}
	}
	return false, domain.ErrNotFound
}

// SetArchived sets the archive flag on a stored session
func (s *HistoryStore) SetArchived(user, id string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.backend.Load(user)
	if err != nil {
		return err
	}
	for i := range sessions {
		if sessions[i].ID == id {
			sessions[i].IsArchived = archived
			return s.backend.Save(user, sessions)
		}
	}
	return domain.ErrNotFound
}

// HistoryGroups are the three disjoint sidebar groups
type HistoryGroups struct {
	Pinned   []domain.ChatSession `json:"pinned"`
	Recent   []domain.ChatSession `json:"recent"`
	Archived []domain.ChatSession `json:"archived"`
}

// Query returns the user's sessions split into pinned / recent / archived,
// filtered by mode and a case-insensitive title substring. Sessions with
// no recorded mode are treated as chat mode for backward compatibility.
func (s *HistoryStore) Query(user, mode, search string) (*HistoryGroups, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.backend.Load(user)
	if err != nil {
		return nil, err
	}

	groups := &HistoryGroups{
		Pinned:   []domain.ChatSession{},
		Recent:   []domain.ChatSession{},
		Archived: []domain.ChatSession{},
	}
	needle := strings.ToLower(search)

	for _, sess := range sessions {
		sessMode := sess.Mode
		if sessMode == "" {
			sessMode = domain.ModeChat
		}
		if mode != "" && sessMode != mode {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(sess.Title), needle) {
			continue
		}

		switch {
		case sess.IsArchived:
			groups.Archived = append(groups.Archived, sess)
		case sess.IsPinned:
			groups.Pinned = append(groups.Pinned, sess)
		default:
			groups.Recent = append(groups.Recent, sess)
		}
	}

	return groups, nil
}

// MemoryBackend is an in-memory snapshot backend for tests. It stores the
// serialized form so loads never alias saved slices.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]domain.ChatSession
}

// NewMemoryBackend creates an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]domain.ChatSession)}
}

// Load returns a copy of the stored snapshot
func (b *MemoryBackend) Load(user string) ([]domain.ChatSession, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stored := b.data[user]
	if stored == nil {
		return nil, nil
	}
	out := make([]domain.ChatSession, len(stored))
	for i := range stored {
		out[i] = stored[i].Clone()
	}
	return out, nil
}

// Save replaces the stored snapshot
func (b *MemoryBackend) Save(user string, sessions []domain.ChatSession) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]domain.ChatSession, len(sessions))
	for i := range sessions {
		stored[i] = sessions[i].Clone()
	}
	b.data[user] = stored
	return nil
}
