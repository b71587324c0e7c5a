package handler

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"campuslink/backend/internal/apperr"
	"campuslink/backend/internal/config"
	"campuslink/backend/internal/models"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

// generateJWT mints the bearer token carried by both the REST endpoints and
// the websocket handshake.
func (h *Handler) generateJWT(email, role string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
		"iss":   "campuslink-api",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}

// parseJWT validates signature and expiry and returns the identity claims.
func (h *Handler) parseJWT(tokenString string) (email, role string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("%w: %v", apperr.ErrInvalidCredential, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", apperr.ErrInvalidCredential
	}
	email, _ = claims["email"].(string)
	role, _ = claims["role"].(string)
	if email == "" {
		return "", "", apperr.ErrInvalidCredential
	}
	return email, role, nil
}

// bearerToken extracts the credential from the Authorization header, with a
// query-parameter fallback for websocket handshakes (браузер не може
// додати заголовок до WS-з'єднання).
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}

// AuthRequired is the gin middleware guarding every protected route.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}
		email, role, err := h.parseJWT(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}
		c.Set("email", email)
		c.Set("role", role)
		c.Next()
	}
}

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// Register creates a role-typed campus account and returns a fresh token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" || req.Role == "" || req.Department == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields (name, email, password, role, department) are required"})
		return
	}
	if !models.IsAllowedRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role selected"})
		return
	}

	existing, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User with this email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	user := &models.User{
		Name:            req.Name,
		Email:           req.Email,
		Password:        string(hash),
		Role:            req.Role,
		Department:      req.Department,
		ReputationScore: config.InitialReputation,
	}
	if err := h.Storage.SaveUser(user); err != nil {
		log.Printf("ERROR: Failed to create user %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	token, err := h.generateJWT(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the credentials and the moderation ban list, then mints a
// token.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	banned, err := h.Storage.IsUserBanned(user.Email)
	if err != nil {
		log.Printf("ERROR: Ban check failed for %s: %v", user.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if banned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
		return
	}

	token, err := h.generateJWT(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Me returns the authenticated account's own record.
func (h *Handler) Me(c *gin.Context) {
	email := c.GetString("email")
	user, err := h.Storage.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type updateProfileRequest struct {
	About       *string  `json:"about"`
	Location    *string  `json:"location"`
	CurrentRole *string  `json:"currentRole"`
	Image       *string  `json:"image"`
	Interests   []string `json:"interests"`
}

// UpdateProfile applies the provided fields and leaves the rest untouched.
func (h *Handler) UpdateProfile(c *gin.Context) {
	email := c.GetString("email")
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.Storage.GetUserByEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.About != nil {
		user.About = *req.About
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.CurrentRole != nil {
		user.CurrentRole = *req.CurrentRole
	}
	if req.Image != nil {
		user.Image = *req.Image
	}
	if req.Interests != nil {
		user.Interests = req.Interests
	}

	if err := h.Storage.SaveUser(user); err != nil {
		log.Printf("ERROR: Failed to update profile for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while updating profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
