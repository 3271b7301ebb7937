package handlers

import (
	"time"
	"usedcom_backend/models"
	"usedcom_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB            *gorm.DB
	TokenLifetime time.Duration
}

func NewAuthHandler(db *gorm.DB, tokenLifetime time.Duration) *AuthHandler {
	if tokenLifetime <= 0 {
		tokenLifetime = 72 * time.Hour
	}
	return &AuthHandler{DB: db, TokenLifetime: tokenLifetime}
}

// RegisterRequest defines the payload for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
}

// LoginRequest defines the payload for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	if details := utils.ValidateStruct(req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Validation errors", details))
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not hash password", nil))
	}

	user := models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashedPassword,
		FullName: req.FullName,
		Role:     models.RoleUser,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse("User already exists", nil))
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("User registered successfully", nil))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid credentials", nil))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid credentials", nil))
	}

	token, err := utils.GenerateToken(&user, h.TokenLifetime)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not login", nil))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"role":      user.Role,
			"image_url": user.ImageURL,
		},
	})
}
