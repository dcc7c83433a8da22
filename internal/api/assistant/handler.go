package assistant

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
	"github.com/KushalZanzari/Echo-AI/internal/extract"
	"github.com/KushalZanzari/Echo-AI/internal/session"
)

// Handler implements the public collaborator endpoints: the chat
// completion proxy and the file extraction upload.
type Handler struct {
	completer session.Completer
	extractor *extract.Service
	maxUpload int64
}

// NewHandler creates a new assistant handler
func NewHandler(completer session.Completer, extractor *extract.Service, maxUpload int64) *Handler {
	return &Handler{
		completer: completer,
		extractor: extractor,
		maxUpload: maxUpload,
	}
}

// RegisterRoutes registers the proxy routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/chat", h.Chat)
	r.POST("/upload", h.Upload)
}

// Chat proxies a completion request to the LLM. The request carries the
// full message list, the mode and, in files mode, the file context; the
// mode picks the system prompt. Role "ai" is accepted as "assistant".
func (h *Handler) Chat(c *gin.Context) {
	var req domain.CompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Messages == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array is required"})
		return
	}

	reply, err := h.completer.Complete(c.Request.Context(), &req)
	if err != nil {
		var call *domain.CallError
		if errors.As(err, &call) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to fetch response from AI",
				"details": call.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch response from AI",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, domain.CompletionResponse{Response: reply})
}

// Upload extracts text from a single uploaded file. Unsupported media
// types get a 400, extraction failures a 500, both with an error body.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if h.maxUpload > 0 && fileHeader.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "details": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "details": err.Error()})
		return
	}

	mediaType := fileHeader.Header.Get("Content-Type")
	text, err := h.extractor.Extract(c.Request.Context(), fileHeader.Filename, mediaType, data)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported file type: " + mediaType})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process file", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.ExtractionResponse{Text: text, Filename: fileHeader.Filename})
}
