package workspace

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KushalZanzari/Echo-AI/internal/api/middleware"
	"github.com/KushalZanzari/Echo-AI/internal/domain"
	"github.com/KushalZanzari/Echo-AI/internal/repository"
	"github.com/KushalZanzari/Echo-AI/internal/session"
)

// Handler exposes the per-user session controller and preferences over
// HTTP. All routes require a verified token; the history partition is the
// user's display name.
type Handler struct {
	sessions *session.Manager
	prefs    *repository.KVRepository
}

// NewHandler creates a new workspace handler
func NewHandler(sessions *session.Manager, prefs *repository.KVRepository) *Handler {
	return &Handler{sessions: sessions, prefs: prefs}
}

// RegisterRoutes registers session and preference routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.GET("", h.QueryHistory)
		sessions.POST("", h.NewChat)
		sessions.POST("/turn", h.SendTurn)
		sessions.POST("/files", h.UploadFiles)
		sessions.POST("/mode", h.SwitchMode)
		sessions.POST("/:id/select", h.Select)
		sessions.POST("/:id/pin", h.TogglePin)
		sessions.POST("/:id/archive", h.Archive)
		sessions.DELETE("/:id", h.Delete)
	}

	r.GET("/prefs", h.GetPrefs)
	r.PUT("/prefs", h.PutPrefs)
}

func (h *Handler) controller(c *gin.Context) *session.Controller {
	claims := middleware.Claims(c)
	return h.sessions.Controller(claims.Name)
}

func (h *Handler) user(c *gin.Context) string {
	return middleware.Claims(c).Name
}

// QueryHistory returns the pinned / recent / archived groups for the
// active mode, filtered by a title search string.
func (h *Handler) QueryHistory(c *gin.Context) {
	mode := c.DefaultQuery("mode", domain.ModeChat)
	search := c.Query("search")

	groups, err := h.sessions.Store().Query(h.user(c), mode, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, groups)
}

// NewChat starts a fresh session, keeping the active mode.
func (h *Handler) NewChat(c *gin.Context) {
	sess := h.controller(c).NewChat()
	c.JSON(http.StatusOK, gin.H{"session": sess})
}

type turnRequest struct {
	Text string `json:"text"`
}

// SendTurn runs one conversational turn.
func (h *Handler) SendTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.controller(c).SendTurn(c.Request.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrBusy):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

type fileError struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadFiles ingests a batch of files into the session, one at a time.
// Files that fail extraction are reported per file; earlier files in the
// batch stay attached.
func (h *Handler) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	uploads := make([]session.FileUpload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "details": err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "details": err.Error()})
			return
		}
		uploads = append(uploads, session.FileUpload{
			Name:      fh.Filename,
			MediaType: fh.Header.Get("Content-Type"),
			Data:      data,
		})
	}

	ctrl := h.controller(c)
	results := ctrl.IngestBatch(c.Request.Context(), uploads)

	files := []domain.UploadedFile{}
	failures := []fileError{}
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, fileError{Name: res.Name, Error: res.Err.Error()})
			continue
		}
		files = append(files, *res.File)
	}

	c.JSON(http.StatusOK, gin.H{
		"files":   files,
		"errors":  failures,
		"session": ctrl.Current(),
		"mode":    ctrl.Mode(),
	})
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// SwitchMode changes the active mode. Switching to files keeps the
// current session; anything else starts a fresh one.
func (h *Handler) SwitchMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sess, err := h.controller(c).SwitchMode(req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess, "mode": req.Mode})
}

// Select makes a stored session the active one.
func (h *Handler) Select(c *gin.Context) {
	sess, err := h.controller(c).Select(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": sess})
}

// TogglePin flips the pin flag on a stored session.
func (h *Handler) TogglePin(c *gin.Context) {
	pinned, err := h.controller(c).TogglePin(c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isPinned": pinned})
}

// Archive marks a stored session archived.
func (h *Handler) Archive(c *gin.Context) {
	if err := h.controller(c).Archive(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session archived"})
}

// Delete removes a stored session.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.controller(c).Delete(c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}

const (
	prefTheme       = "theme"
	prefDisplayName = "displayName"
)

// GetPrefs returns the user's stored preferences.
func (h *Handler) GetPrefs(c *gin.Context) {
	user := h.user(c)

	theme, ok, err := h.prefs.Get(user, prefTheme)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		theme = "dark"
	}

	displayName, ok, err := h.prefs.Get(user, prefDisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		displayName = user
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme, "displayName": displayName})
}

type prefsRequest struct {
	Theme       string `json:"theme"`
	DisplayName string `json:"displayName"`
}

// PutPrefs updates the user's stored preferences. Only supplied fields
// change.
func (h *Handler) PutPrefs(c *gin.Context) {
	var req prefsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user := h.user(c)

	if req.Theme != "" {
		if req.Theme != "dark" && req.Theme != "light" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be dark or light"})
			return
		}
		if err := h.prefs.Set(user, prefTheme, req.Theme); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if req.DisplayName != "" {
		if err := h.prefs.Set(user, prefDisplayName, req.DisplayName); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "preferences updated"})
}
