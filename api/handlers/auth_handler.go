// api/handlers/auth_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/docvault-backend/api/models"
	"github.com/Annany2002/docvault-backend/config"
	"github.com/Annany2002/docvault-backend/internal/logger"
	"github.com/Annany2002/docvault-backend/internal/service"
)

var (
	customLog = logger.NewLogger()
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	Accounts *service.AccountService
	Cfg      *config.Config // Application configuration
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(accounts *service.AccountService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Accounts: accounts,
		Cfg:      cfg,
	}
}

// Signup handles user registration requests.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest // Use DTO from api/models

	if err := c.ShouldBind(&req); err != nil {
		customLog.Warnf("Signup binding error: %v", err)
		_ = c.Error(bindingError(err)) // Attach the binding error
		return
	}

	account, err := h.Accounts.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		customLog.Warnf("Failed to create user %s: %v", req.Email, err) // Log context
		_ = c.Error(err)                                                // Attach storage error (e.g., ErrEmailExists)
		return                                                          // Let middleware handle response
	}

	customLog.Printf("Successfully registered user with email %s", req.Email)
	c.JSON(http.StatusCreated, models.SignupResponse{
		Success: true,
		Message: "User created",
		UserID:  account.ID,
	})
}

// Login handles user login requests. There is no session: the client keeps the email and
// sends it with every document request.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBind(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(bindingError(err)) // Attach binding error
		return                         // Let middleware handle
	}

	account, err := h.Accounts.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err) // ErrInvalidCredentials for unknown email and wrong password alike
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Success: true,
		Message: "Login successful",
		UserID:  account.ID,
		Name:    account.Name,
		Email:   account.Email,
	})
}
