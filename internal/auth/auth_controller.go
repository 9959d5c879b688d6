package auth

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/DhavalSuthar-24/transferhub/config"
	"github.com/DhavalSuthar-24/transferhub/internal/club"
	"github.com/DhavalSuthar-24/transferhub/internal/middleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/rmiddleware"
	"github.com/DhavalSuthar-24/transferhub/pkg/token"
	jwtutils "github.com/DhavalSuthar-24/transferhub/pkg/utils"
	"github.com/DhavalSuthar-24/transferhub/utils"
	"github.com/gin-gonic/gin"
)

// ClubLookup reports which club a user manages.
type ClubLookup interface {
	ClubOf(userID uint) (uint, error)
}

type AuthController struct {
	repo   AuthRepository
	clubs  ClubLookup
	config *config.Config
}

func NewAuthController(repo AuthRepository, clubs ClubLookup, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		clubs:  clubs,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(u *User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := jwtutils.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}
	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

func (ac *AuthController) managedClub(userID uint) *uint {
	if ac.clubs == nil {
		return nil
	}
	clubID, err := ac.clubs.ClubOf(userID)
	if err != nil {
		if !errors.Is(err, club.ErrNoClub) {
			log.Printf("Looking up club of user %d: %v", userID, err)
		}
		return nil
	}
	return &clubID
}

// @Summary      Register a manager
// @Description  Creates an account. The configured commissioner email is given the commissioner role.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "Registration details"
// @Success      201   {object} AuthResponse "Registered, returns tokens and user info"
// @Failure      400   {object} map[string]string "Validation error"
// @Failure      409   {object} map[string]string "Email or username already taken"
// @Failure      500   {object} map[string]string "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := ac.repo.GetUserByEmail(email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}
	if existing, err := ac.repo.GetUserByUsername(req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	} else if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this username already exists"})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	role := rmiddleware.RoleManager
	if ac.config.App.CommissionerEmail != "" && strings.EqualFold(email, ac.config.App.CommissionerEmail) {
		role = rmiddleware.RoleCommissioner
	}
	newUser := &User{
		Username: req.Username,
		Email:    email,
		Password: hashedPassword,
		Role:     role,
	}
	if err := ac.repo.CreateUser(newUser); err != nil {
		log.Printf("CreateUser failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User creation failed"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser, nil),
	})
}

// @Summary      Login
// @Description  Authenticate with email or username and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse "Login successful"
// @Failure      400   {object} map[string]string "Invalid input"
// @Failure      401   {object} map[string]string "Invalid credentials"
// @Failure      404   {object} map[string]string "User not found"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(req.LoginIdentifier))
	if err == nil && foundUser == nil {
		foundUser, err = ac.repo.GetUserByUsername(req.LoginIdentifier)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error: " + err.Error()})
		return
	}
	if foundUser == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if !utils.CheckPassword(foundUser.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser, ac.managedClub(foundUser.ID)),
	})
}

// @Summary      Refresh access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh token"
// @Success      200 {object} map[string]string "Returns a new access token"
// @Failure      400 {object} map[string]string "Invalid input"
// @Failure      401 {object} map[string]string "Invalid or expired refresh token"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	userID, err := jwtutils.VerifyRefreshToken(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}
	rt, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil || rt == nil || rt.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}
	u, err := ac.repo.GetUserByID(userID)
	if err != nil || u == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
		return
	}

	newAccessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "New access token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken})
}

// @Summary      Current user
// @Description  Profile of the authenticated user, with the club they manage.
// @Tags         Profile
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200 {object} UserResponse "User profile"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      404 {object} map[string]string "User not found"
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}
	currentUser, err := ac.repo.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile: " + err.Error()})
		return
	}
	if currentUser == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(currentUser, ac.managedClub(userID)))
}

// @Summary      Logout
// @Description  Revokes the given refresh token, or every session of the user.
// @Tags         Auth
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Logout options"
// @Success      200 {object} map[string]string "Logged out successfully"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	refreshToken := req.RefreshToken
	if refreshToken == "" {
		refreshToken, _ = c.Cookie("refresh_token")
	}
	if refreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(refreshToken); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate refresh token: " + err.Error()})
			return
		}
	}
	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to invalidate all sessions: " + err.Error()})
			return
		}
	}

	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message":                  "Logged out successfully",
		"all_sessions_invalidated": req.InvalidateAllSessions,
	})
}
