package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"psychcare-server/internal/config"
	"psychcare-server/internal/models"
	"psychcare-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Logger zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Logger: logger}
}

// RegisterPatientRequest represents the request body for patient registration.
type RegisterPatientRequest struct {
	Username      string `json:"username" binding:"required,min=3,max=64"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	DateOfBirth   string `json:"dateOfBirth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
}

// RegisterPatient creates a patient account with its profile in one
// transaction.
func (h *AuthHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			utils.BadRequest(c, "Invalid dateOfBirth, expected YYYY-MM-DD")
			return
		}
		dob = &parsed
	}

	if taken, err := h.identityTaken(req.Email, req.Username); err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	} else if taken {
		utils.BadRequest(c, "A user with this email or username already exists")
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Role:      models.RolePatient,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.PatientProfile{
			UserID:        user.ID,
			DateOfBirth:   dob,
			Gender:        req.Gender,
			ContactNumber: req.ContactNumber,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to register patient: "+err.Error())
		return
	}

	utils.Created(c, "Account created. You can now log in.", user.Sanitize())
}

// RegisterDoctorRequest represents the request body for doctor registration.
type RegisterDoctorRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=64"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	Specialization  string `json:"specialization" binding:"required"`
	Qualification   string `json:"qualification"`
	ExperienceYears int    `json:"experienceYears"`
	Bio             string `json:"bio"`
}

// RegisterDoctor creates a doctor account with an unapproved profile in
// one transaction. The doctor cannot log in until an admin approves it.
func (h *AuthHandler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if taken, err := h.identityTaken(req.Email, req.Username); err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	} else if taken {
		utils.BadRequest(c, "A user with this email or username already exists")
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Role:      models.RoleDoctor,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := models.DoctorProfile{
			UserID:          user.ID,
			Specialization:  req.Specialization,
			Qualification:   req.Qualification,
			ExperienceYears: req.ExperienceYears,
			Bio:             req.Bio,
			IsApproved:      false,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to register doctor: "+err.Error())
		return
	}

	utils.Created(c, "Account created. You need admin approval before you can log in.", user.Sanitize())
}

func (h *AuthHandler) identityTaken(email, username string) (bool, error) {
	var count int64
	err := h.DB.Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&count).Error
	return count > 0, err
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login handles user login. Blocked users and unapproved doctors are
// rejected.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	if !user.IsActive {
		utils.Forbidden(c, "This account has been blocked")
		return
	}

	if user.Role == models.RoleDoctor {
		var profile models.DoctorProfile
		if err := h.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		if !profile.IsApproved {
			utils.Forbidden(c, "Your account is pending approval from admin")
			return
		}
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	if err := h.DB.Create(&refreshToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to store refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, refreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	h.Logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the refresh token and issues a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	// Prefer the HTTP-only cookie, fall back to the request body.
	tokenString, err := c.Cookie("refresh_token")
	if err != nil || tokenString == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		tokenString = req.RefreshToken
	}

	claims, err := utils.ValidateToken(tokenString, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND user_id = ?", tokenString, claims.UserID).First(&storedToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Unauthorized(c, "Refresh token not found")
		} else {
			utils.InternalServerError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}
	if !storedToken.Valid(time.Now()) {
		utils.Unauthorized(c, "Refresh token expired or revoked")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", claims.UserID).Error; err != nil {
		utils.InternalServerError(c, "Failed to find user associated with token: "+err.Error())
		return
	}

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens: "+err.Error())
		return
	}

	// Rotate: revoke the old token and persist the replacement together.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		storedToken.IsRevoked = true
		if err := tx.Save(&storedToken).Error; err != nil {
			return err
		}
		return tx.Create(&models.RefreshToken{
			UserID:    user.ID,
			Token:     newRefreshTokenString,
			ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
			IsRevoked: false,
		}).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to rotate refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, newRefreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, "Access token refreshed successfully", RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Logout revokes the refresh token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		utils.BadRequest(c, "Refresh token is required")
		return
	}

	var storedToken models.RefreshToken
	if err := h.DB.Where("token = ? AND is_revoked = ?", req.RefreshToken, false).First(&storedToken).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// Already invalid; logout still succeeds.
			utils.Success(c, "Logout successful", nil)
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	storedToken.IsRevoked = true
	storedToken.ExpiresAt = time.Now()
	if err := h.DB.Save(&storedToken).Error; err != nil {
		utils.InternalServerError(c, "Failed to revoke refresh token: "+err.Error())
		return
	}

	h.setRefreshCookie(c, "", -1)

	utils.Success(c, "Logout successful. Refresh token has been invalidated.", nil)
}

// GetProfile handles fetching the currently authenticated user's profile,
// including the role-specific profile record.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var user models.User
	query := h.DB.Preload("DoctorProfile").Preload("PatientProfile")
	if err := query.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "User profile not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Profile fetched successfully", gin.H{
		"user":           user.Sanitize(),
		"doctorProfile":  user.DoctorProfile,
		"patientProfile": user.PatientProfile,
	})
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(
		"refresh_token",
		value,
		maxAge,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
}
