package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
	"github.com/KushalZanzari/Echo-AI/internal/service"
)

// Handler handles account API requests
type Handler struct {
	auth *service.AuthService
}

// NewHandler creates a new account handler
func NewHandler(auth *service.AuthService) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes registers auth routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/signup", h.SignUp)
	r.POST("/signin", h.SignIn)
}

// SignUp creates a new account
func (h *Handler) SignUp(c *gin.Context) {
	var req domain.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password are required"})
		return
	}

	user, err := h.auth.SignUp(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password are required"})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during signup"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": user})
}

// SignIn authenticates a user and returns a token
func (h *Handler) SignIn(c *gin.Context) {
	var req domain.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	token, user, err := h.auth.SignIn(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during signin"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Signed in successfully",
		"token":   token,
		"user":    user,
	})
}
