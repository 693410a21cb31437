package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/auth"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	authService service.AuthService
	sessions    *auth.SessionCodec
	jwtSecret   string
	tokenTTL    time.Duration
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, sessions *auth.SessionCodec, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates a member account. The email must not be in use.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration request"
// @Success      201 {object} response.SuccessResponse{data=dto.UserResponse} "Account created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      409 {object} response.ErrorResponse "Email already in use"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, user)
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and sets the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login request"
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "Logged in"
// @Failure      401 {object} response.ErrorResponse "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	user, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	if err := h.sessions.Issue(c.Writer, user); err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to create session")
		return
	}

	resp := dto.NewUserResponse(user)
	response.SendSuccess(c, http.StatusOK, resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Deletes the session cookie
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=map[string]string} "Logged out"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c.Writer)
	response.SendSuccess(c, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Token godoc
// @Summary      Issue an API token
// @Description  Returns a bearer token for programmatic clients. Requires an
// @Description  authenticated session or token.
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.TokenResponse} "Token issued"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	token, err := auth.IssueToken(h.jwtSecret, userID, h.tokenTTL)
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to issue token")
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.TokenResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokenTTL),
	})
}

// CheckAdmin godoc
// @Summary      Check administrator role
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.CheckAdminResponse} "Role flag"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /auth/check-admin [get]
func (h *AuthHandler) CheckAdmin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	isAdmin, err := h.authService.IsAdmin(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.CheckAdminResponse{IsAdmin: isAdmin})
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.UserResponse} "Current user"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}

// ListUsers godoc
// @Summary      List users
// @Description  Returns the id, name and email of every registered user
// @Tags         users
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.UserResponse} "Users"
// @Failure      401 {object} response.ErrorResponse "Not authenticated"
// @Router       /users [get]
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, users)
}
