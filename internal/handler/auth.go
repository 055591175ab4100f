package handler

import (
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Ankit-repo-24/BahhiKhata/internal/models"
	"github.com/Ankit-repo-24/BahhiKhata/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlHours, bcryptCost int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 7 * 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func publicUser(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}

// Register creates a new account and returns a session token.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.JSONError(c, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if !emailRe.MatchString(req.Email) {
		util.JSONError(c, http.StatusBadRequest, "Invalid email")
		return
	}

	db := h.DB.WithContext(c.Request.Context())

	var count int64
	if err := db.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		log.Printf("register: count email: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}
	if count > 0 {
		util.JSONError(c, http.StatusBadRequest, "Email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		log.Printf("register: hash password: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		// unique index on email still guards the race between check and insert
		if strings.Contains(strings.ToLower(err.Error()), "unique") ||
			strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			util.JSONError(c, http.StatusBadRequest, "Email already exists")
			return
		}
		log.Printf("register: create user: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		log.Printf("register: sign token: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  publicUser(&user),
	})
}

// Login verifies credentials and returns a session token. A missing
// account and a wrong password produce the same response.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.JSONError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).
		Where("email = ?", req.Email).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.JSONError(c, http.StatusBadRequest, "Invalid credentials")
		} else {
			log.Printf("login: query user: %v", err)
			util.JSONError(c, http.StatusInternalServerError, "Server error")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.JSONError(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		log.Printf("login: sign token: %v", err)
		util.JSONError(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  publicUser(&user),
	})
}
