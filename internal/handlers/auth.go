package handlers

import (
	"net/http"

	"github.com/wayra-app/backend/internal/models"
	"github.com/wayra-app/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup, login and session lifecycle HTTP requests
type AuthHandler struct {
	userRepository    repositories.UserRepository
	sessionRepository repositories.SessionRepository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessionRepo repositories.SessionRepository) *AuthHandler {
	return &AuthHandler{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.POST("/check-session", h.CheckSession)
}

// Signup handles account registration with username and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Check if user with this username already exists
	_, err := h.userRepository.GetUserByUsername(req.Username)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, "User with this username already registered")
	}

	// Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username: req.Username,
		Password: string(hashedPassword),
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User created successfully",
		"sub":     user.Sub,
	})
}

// Login verifies credentials and opens a session
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	sessionID, err := h.sessionRepository.CreateSession(c.Request().Context(), user.Sub)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Login successful",
		"session_id": sessionID,
	})
}

// Logout destroys the session named by the Session-ID header
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID := c.Request().Header.Get("Session-ID")
	if err := h.sessionRepository.DestroySession(c.Request().Context(), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to destroy session")
	}

	return message(c, http.StatusOK, "Logout successful")
}

// CheckSession verifies the session is still live and resets its TTL
func (h *AuthHandler) CheckSession(c echo.Context) error {
	sessionID := c.Request().Header.Get("Session-ID")

	if _, err := h.sessionRepository.ValidateSession(c.Request().Context(), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session is invalid")
	}

	if err := h.sessionRepository.TouchSession(c.Request().Context(), sessionID); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Session is invalid")
	}

	return message(c, http.StatusOK, "Session is valid")
}
