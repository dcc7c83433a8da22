package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// Completer is the chat completion collaborator. Failures should be
// reported as domain.CallError so the controller can distinguish a
// connection failure from an application error.
type Completer interface {
	Complete(ctx context.Context, req *domain.CompletionRequest) (string, error)
}

// Extractor is the file text extraction collaborator.
type Extractor interface {
	Extract(ctx context.Context, filename, mediaType string, data []byte) (string, error)
}

// FileUpload is a raw file handed to the controller for ingestion.
type FileUpload struct {
	Name      string
	MediaType string
	Data      []byte
}

// IngestResult is the per-file outcome of a batch upload.
type IngestResult struct {
	Name string              `json:"name"`
	File *domain.UploadedFile `json:"file,omitempty"`
	Err  error               `json:"-"`
}

// TurnResult is the outcome of one conversational turn.
type TurnResult struct {
	Session domain.ChatSession `json:"session"`
	Mode    string             `json:"mode"`
}

const defaultTitle = "New Chat"
const titleLimit = 30

// Controller owns the active session snapshot and the active mode for one
// user, and is the only thing that mutates them. It orchestrates a turn:
// classify the mode, persist the user message, call the completion
// collaborator, persist the reply.
type Controller struct {
	user      string
	store     *HistoryStore
	completer Completer
	extractor Extractor
	log       *zap.Logger

	mu      sync.Mutex
	current domain.ChatSession
	mode    string
	loading bool
}

// NewController creates a controller for a user with a fresh empty session
// in chat mode.
func NewController(user string, store *HistoryStore, completer Completer, extractor Extractor, log *zap.Logger) *Controller {
	return &Controller{
		user:      user,
		store:     store,
		completer: completer,
		extractor: extractor,
		log:       log,
		current:   freshSession(),
		mode:      domain.ModeChat,
	}
}

func freshSession() domain.ChatSession {
	return domain.ChatSession{
		ID:        uuid.New().String(),
		Title:     defaultTitle,
		Timestamp: time.Now(),
	}
}

// deriveTitle recomputes the display title from the first user message,
// falling back to the first uploaded file's name.
func deriveTitle(s *domain.ChatSession) string {
	for _, m := range s.Messages {
		if m.Role == domain.RoleUser {
			return truncateTitle(m.Content)
		}
	}
	if len(s.Files) > 0 {
		return truncateTitle(s.Files[0].Name)
	}
	return defaultTitle
}

func truncateTitle(text string) string {
	runes := []rune(text)
	if len(runes) > titleLimit {
		return string(runes[:titleLimit]) + "..."
	}
	return text
}

// persistLocked upserts the current session with the given mode recorded
// on it. Title and timestamp are recomputed on every persist. Callers must
// hold c.mu.
func (c *Controller) persistLocked(mode string) error {
	c.current.Mode = mode
	c.current.Timestamp = time.Now()
	c.current.Title = deriveTitle(&c.current)
	return c.store.Upsert(c.user, c.current)
}

// SendTurn runs one conversational turn: the user message is persisted with
// the effective mode before the completion request is issued, and the
// assistant reply (or a formatted error message) is persisted after it
// settles. Empty or whitespace-only text is rejected before any mutation.
func (c *Controller) SendTurn(ctx context.Context, text string) (*TurnResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil, domain.ErrBusy
	}
	c.loading = true

	mode := Classify(text, c.mode)
	c.mode = mode
	c.current.Messages = append(c.current.Messages, domain.Message{Role: domain.RoleUser, Content: text})
	if err := c.persistLocked(mode); err != nil {
		c.loading = false
		c.mu.Unlock()
		return nil, err
	}
	req := c.buildRequestLocked(mode)
	c.mu.Unlock()

	reply, err := c.completer.Complete(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	msg := domain.Message{Role: domain.RoleAI, Content: reply}
	if err != nil {
		c.log.Warn("completion failed",
			zap.String("user", c.user),
			zap.String("mode", mode),
			zap.Error(err),
		)
		msg.Content = failureMessage(err)
	}
	c.current.Messages = append(c.current.Messages, msg)
	if perr := c.persistLocked(mode); perr != nil {
		return nil, perr
	}

	return &TurnResult{Session: c.current.Clone(), Mode: mode}, nil
}

// buildRequestLocked assembles the outgoing completion request: full
// message list with the internal "ai" role translated to "assistant", the
// effective mode, and the ordered file context when in files mode.
func (c *Controller) buildRequestLocked(mode string) *domain.CompletionRequest {
	req := &domain.CompletionRequest{Mode: mode}
	for _, m := range c.current.Messages {
		role := m.Role
		if role == domain.RoleAI {
			role = domain.RoleAssistant
		}
		req.Messages = append(req.Messages, domain.Message{Role: role, Content: m.Content})
	}
	if mode == domain.ModeFiles {
		for _, f := range c.current.Files {
			req.Files = append(req.Files, domain.FilePayload{Name: f.Name, Content: f.Content})
		}
	}
	return req
}

// failureMessage converts a completion failure into the user-visible
// assistant message. Application errors keep both the error and its
// details; connection failures get the fixed unreachable-server notice.
func failureMessage(err error) string {
	var call *domain.CallError
	if errors.As(err, &call) && call.Kind == domain.KindApplication {
		if call.Details != "" && call.Message != "" {
			return fmt.Sprintf("**Error:** %s: %s", call.Message, call.Details)
		}
		if call.Details != "" {
			return "**Error:** " + call.Details
		}
		return "**Error:** " + call.Message
	}
	return "**Connection Error:** Could not reach the server."
}

// IngestFile extracts one uploaded file and attaches it to the session.
// The session is persisted with mode forced to files and the active mode
// switches to files. On extraction failure nothing is mutated.
func (c *Controller) IngestFile(ctx context.Context, up FileUpload) (*domain.UploadedFile, error) {
	text, err := c.extractor.Extract(ctx, up.Name, up.MediaType, up.Data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	file := domain.UploadedFile{
		ID:      uuid.New().String(),
		Name:    up.Name,
		Content: text,
	}
	c.current.Files = append(c.current.Files, file)
	c.mode = domain.ModeFiles
	if err := c.persistLocked(domain.ModeFiles); err != nil {
		return nil, err
	}
	return &file, nil
}

// IngestBatch processes uploads strictly one at a time so each completed
// file is attached and persisted before the next extraction begins.
// A failure partway through does not discard earlier files.
func (c *Controller) IngestBatch(ctx context.Context, uploads []FileUpload) []IngestResult {
	results := make([]IngestResult, 0, len(uploads))
	for _, up := range uploads {
		file, err := c.IngestFile(ctx, up)
		if err != nil {
			c.log.Warn("file ingestion failed",
				zap.String("user", c.user),
				zap.String("filename", up.Name),
				zap.Error(err),
			)
		}
		results = append(results, IngestResult{Name: up.Name, File: file, Err: err})
	}
	return results
}

// SwitchMode changes the active mode. Switching to files preserves the
// current session so uploaded context persists; any other mode starts a
// brand-new empty session. The prior session stays in the store.
func (c *Controller) SwitchMode(mode string) (domain.ChatSession, error) {
	if !domain.ValidMode(mode) {
		return domain.ChatSession{}, domain.ErrInvalidMode
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.mode = mode
	if mode != domain.ModeFiles {
		c.current = freshSession()
	}
	return c.current.Clone(), nil
}

// NewChat starts a fresh empty session, keeping the active mode.
func (c *Controller) NewChat() domain.ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = freshSession()
	return c.current.Clone()
}

// Select makes a stored session the active one. Sessions recorded without
// a mode activate as chat mode.
func (c *Controller) Select(id string) (domain.ChatSession, error) {
	sess, err := c.store.Get(c.user, id)
	if err != nil {
		return domain.ChatSession{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = *sess
	if sess.Mode != "" {
		c.mode = sess.Mode
	} else {
		c.mode = domain.ModeChat
	}
	return c.current.Clone(), nil
}

// Delete removes a session from the store. Deleting the active session
// starts a fresh one.
func (c *Controller) Delete(id string) error {
	if err := c.store.Delete(c.user, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.ID == id {
		c.current = freshSession()
	}
	return nil
}

// TogglePin flips the pin flag on a stored session.
func (c *Controller) TogglePin(id string) (bool, error) {
	pinned, err := c.store.TogglePin(c.user, id)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.ID == id {
		c.current.IsPinned = pinned
	}
	return pinned, nil
}

// Archive marks a stored session archived. Archiving the active session
// starts a fresh one, matching the UI flow.
func (c *Controller) Archive(id string) error {
	if err := c.store.SetArchived(c.user, id, true); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current.ID == id {
		c.current = freshSession()
	}
	return nil
}

// Current returns a snapshot of the active session.
func (c *Controller) Current() domain.ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current.Clone()
}

// Mode returns the active mode.
func (c *Controller) Mode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Loading reports whether a turn is in flight. Callers are expected to
// disable sending while it is set; SendTurn also rejects a second
// concurrent turn outright.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}
