package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
	"github.com/KushalZanzari/Echo-AI/internal/repository"
)

func sampleSession(id, title, mode string) domain.ChatSession {
	return domain.ChatSession{
		ID:        id,
		Title:     title,
		Mode:      mode,
		Timestamp: time.Now(),
		Messages:  []domain.Message{{Role: domain.RoleUser, Content: title}},
	}
}

func TestUpsertReplacesByID(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())

	require.NoError(t, store.Upsert("alice", sampleSession("s1", "first", domain.ModeChat)))
	require.NoError(t, store.Upsert("alice", sampleSession("s1", "updated", domain.ModeChat)))

	sessions, err := store.List("alice")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "updated", sessions[0].Title)
}

func TestUpsertPrependsNewSessions(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())

	require.NoError(t, store.Upsert("alice", sampleSession("s1", "older", domain.ModeChat)))
	require.NoError(t, store.Upsert("alice", sampleSession("s2", "newer", domain.ModeChat)))

	sessions, err := store.List("alice")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "s2", sessions[0].ID)
	assert.Equal(t, "s1", sessions[1].ID)
}

func TestStoreIsPartitionedByUser(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())

	require.NoError(t, store.Upsert("alice", sampleSession("s1", "alice's chat", domain.ModeChat)))

	_, err := store.Get("bob", "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQueryGroupsAndFilters(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())

	pinned := sampleSession("p1", "Pinned chat", domain.ModeChat)
	pinned.IsPinned = true
	archived := sampleSession("a1", "Archived chat", domain.ModeChat)
	archived.IsArchived = true
	pinnedAndArchived := sampleSession("pa1", "Pinned and archived", domain.ModeChat)
	pinnedAndArchived.IsPinned = true
	pinnedAndArchived.IsArchived = true
	coding := sampleSession("c1", "Coding chat", domain.ModeCoding)
	recent := sampleSession("r1", "Recent chat", domain.ModeChat)

	for _, s := range []domain.ChatSession{pinned, archived, pinnedAndArchived, coding, recent} {
		require.NoError(t, store.Upsert("alice", s))
	}

	groups, err := store.Query("alice", domain.ModeChat, "")
	require.NoError(t, err)

	require.Len(t, groups.Pinned, 1)
	assert.Equal(t, "p1", groups.Pinned[0].ID)
	require.Len(t, groups.Recent, 1)
	assert.Equal(t, "r1", groups.Recent[0].ID)
	// Archived wins over pinned so the groups stay disjoint
	require.Len(t, groups.Archived, 2)

	groups, err = store.Query("alice", domain.ModeCoding, "")
	require.NoError(t, err)
	assert.Empty(t, groups.Pinned)
	require.Len(t, groups.Recent, 1)
	assert.Equal(t, "c1", groups.Recent[0].ID)
}

func TestQueryLegacySessionsCountAsChat(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())

	legacy := sampleSession("l1", "Legacy chat", "")
	require.NoError(t, store.Upsert("alice", legacy))

	groups, err := store.Query("alice", domain.ModeChat, "")
	require.NoError(t, err)
	require.Len(t, groups.Recent, 1)
	assert.Equal(t, "l1", groups.Recent[0].ID)

	groups, err = store.Query("alice", domain.ModeCoding, "")
	require.NoError(t, err)
	assert.Empty(t, groups.Recent)
}

func TestQuerySearchIsCaseInsensitive(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())

	require.NoError(t, store.Upsert("alice", sampleSession("s1", "Quicksort explained", domain.ModeChat)))
	require.NoError(t, store.Upsert("alice", sampleSession("s2", "Dinner ideas", domain.ModeChat)))

	groups, err := store.Query("alice", domain.ModeChat, "QUICK")
	require.NoError(t, err)
	require.Len(t, groups.Recent, 1)
	assert.Equal(t, "s1", groups.Recent[0].ID)
}

func TestTogglePinNotFound(t *testing.T) {
	store := NewHistoryStore(NewMemoryBackend())
	_, err := store.TogglePin("alice", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "echo.db"))
	require.NoError(t, err)
	defer db.Close()

	backend := repository.NewHistoryBackend(repository.NewKVRepository(db))
	store := NewHistoryStore(backend)

	sess := domain.ChatSession{
		ID:        "s1",
		Title:     "notes.pdf",
		Timestamp: time.Now(),
		Mode:      domain.ModeFiles,
		Messages: []domain.Message{
			{Role: domain.RoleUser, Content: "what is in the file"},
			{Role: domain.RoleAI, Content: "a summary"},
		},
		Files: []domain.UploadedFile{
			{ID: "f1", Name: "notes.pdf", Content: "extracted text"},
		},
		IsPinned: true,
	}
	require.NoError(t, store.Upsert("alice", sess))

	// A second store over the same backend sees the persisted snapshot
	reloaded := NewHistoryStore(repository.NewHistoryBackend(repository.NewKVRepository(db)))
	got, err := reloaded.Get("alice", "s1")
	require.NoError(t, err)

	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Title, got.Title)
	assert.Equal(t, sess.Mode, got.Mode)
	assert.Equal(t, sess.Messages, got.Messages)
	assert.Equal(t, sess.Files, got.Files)
	assert.Equal(t, sess.IsPinned, got.IsPinned)
	assert.Equal(t, sess.IsArchived, got.IsArchived)
}
