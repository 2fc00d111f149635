package service

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"skillshots_backend/internals/configs"
	"skillshots_backend/internals/constants"
	authHelper "skillshots_backend/internals/features/users/auth/helper"
	userModel "skillshots_backend/internals/features/users/user/model"
	helpers "skillshots_backend/internals/helpers"
)

const accessTTL = 30 * 24 * time.Hour // tokens live 30 days, as in the web client

/* ==========================
   Requests
========================== */

type registerRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

/* ==========================
   Token issue
========================== */

func issueAccessToken(user *userModel.UserModel) (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET is not set")
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"id":   user.ID.String(),
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func authPayload(user *userModel.UserModel, token string) fiber.Map {
	return fiber.Map{
		"id":        user.ID,
		"full_name": user.FullName,
		"email":     user.Email,
		"role":      user.Role,
		"token":     token,
	}
}

/* ==========================
   Register / Login
========================== */

func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing userModel.UserModel
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return helpers.ErrorWithKind(c, fiber.StatusConflict, helpers.KindConflict, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[ERROR] register lookup failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		log.Println("[ERROR] hash failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	user := userModel.UserModel{
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		PasswordHash: hash,
		Role:         constants.RoleLearner,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Println("[ERROR] register insert failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to create account")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		return err
	}
	return helpers.SuccessWithCode(c, fiber.StatusCreated, "Account created", authPayload(&user, token))
}

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user userModel.UserModel
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		// same message as a wrong password; do not leak which part failed
		return helpers.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !authHelper.CheckPassword(user.PasswordHash, req.Password) {
		return helpers.Error(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		return err
	}
	return helpers.Success(c, "Logged in", authPayload(&user, token))
}

// LoginGoogle verifies a Google ID token and signs the matching user
// in. Accounts are matched by email; unknown emails get a Learner
// account on the fly.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	clientID := strings.TrimSpace(configs.GoogleClientID)
	if clientID == "" {
		return helpers.ErrorWithKind(c, fiber.StatusServiceUnavailable, helpers.KindExternalService, "Google login is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{clientID}); err != nil {
		return helpers.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claims, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || claims.Email == "" {
		return helpers.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	email := strings.ToLower(claims.Email)

	var user userModel.UserModel
	err = db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		name := strings.TrimSpace(claims.Name)
		if name == "" {
			name = email
		}
		// random local password; Google users sign in via Google
		hash, hashErr := authHelper.HashPassword(claims.Sub + claims.Email)
		if hashErr != nil {
			return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
		}
		user = userModel.UserModel{
			FullName:     name,
			Email:        email,
			PasswordHash: hash,
			Role:         constants.RoleLearner,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Println("[ERROR] google register failed:", err)
			return helpers.Error(c, fiber.StatusInternalServerError, "Failed to create account")
		}
	} else if err != nil {
		log.Println("[ERROR] google login lookup failed:", err)
		return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}

	token, err := issueAccessToken(&user)
	if err != nil {
		return err
	}
	return helpers.Success(c, "Logged in with Google", authPayload(&user, token))
}

func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helpers.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return helpers.Error(c, fiber.StatusNotFound, "User not found")
	}
	if !authHelper.CheckPassword(user.PasswordHash, req.OldPassword) {
		return helpers.Error(c, fiber.StatusUnauthorized, "Old password is incorrect")
	}

	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if err := db.Model(&user).Update("password_hash", hash).Error; err != nil {
		return helpers.Error(c, fiber.StatusInternalServerError, "Failed to update password")
	}
	return helpers.Success(c, "Password updated", nil)
}
