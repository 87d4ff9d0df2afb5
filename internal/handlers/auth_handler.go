package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/igenda-app/igenda-api/internal/middleware"
	"github.com/igenda-app/igenda-api/internal/models"
	"github.com/igenda-app/igenda-api/internal/session"
	"github.com/igenda-app/igenda-api/internal/timezone"
	"github.com/igenda-app/igenda-api/internal/validators"
)

type AuthHandler struct {
	db       *gorm.DB
	sessions *session.Store
}

func NewAuthHandler(db *gorm.DB, sessions *session.Store) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions}
}

// --------- Requests ---------

type RegisterRequest struct {
	EnterpriseName      string `json:"enterprise_name" binding:"required"`
	EnterpriseSlug      string `json:"enterprise_slug" binding:"required"`
	EnterprisePhone     string `json:"enterprise_phone"`
	EnterpriseSpecialty string `json:"enterprise_specialty"`
	EnterpriseTimezone  string `json:"enterprise_timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.EnterpriseSlug))
	if !validators.IsSlugValid(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_slug"})
		return
	}

	var count int64
	h.db.Model(&models.Enterprise{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slug_already_exists"})
		return
	}

	tz := req.EnterpriseTimezone
	if tz == "" || !timezone.IsValid(tz) {
		tz = timezone.DefaultTimezone
	}

	ent := models.Enterprise{
		Name:      req.EnterpriseName,
		Slug:      slug,
		Phone:     req.EnterprisePhone,
		Specialty: req.EnterpriseSpecialty,
		Timezone:  tz,
	}

	if err := h.db.Create(&ent).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_enterprise"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_hash_password"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailDomainValid(email) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_email_domain",
			"message": "O domínio do e-mail informado não parece ser válido.",
		})
		return
	}

	user := models.User{
		EnterpriseID: ent.ID,
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_user"})
		return
	}

	token, err := h.sessions.IssueAdmin(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"enterprise_id": user.EnterpriseID,
		},
		"enterprise": gin.H{
			"id":        ent.ID,
			"name":      ent.Name,
			"slug":      ent.Slug,
			"phone":     ent.Phone,
			"specialty": ent.Specialty,
			"timezone":  ent.Timezone,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Preload("Enterprise").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token, err := h.sessions.IssueAdmin(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_generate_token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":            user.ID,
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"enterprise_id": user.EnterpriseID,
		},
		"enterprise": gin.H{
			"id":        user.Enterprise.ID,
			"name":      user.Enterprise.Name,
			"slug":      user.Enterprise.Slug,
			"phone":     user.Enterprise.Phone,
			"specialty": user.Enterprise.Specialty,
			"timezone":  user.Enterprise.Timezone,
		},
		"token": token,
	})
}

// Logout revoga a sessão corrente (o token entra na deny-list até expirar).
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.MustGet(middleware.ContextToken).(string)

	if err := h.sessions.RevokeAdmin(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_revoke_session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
