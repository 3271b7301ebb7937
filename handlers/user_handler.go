package handlers

import (
	"usedcom_backend/models"
	"usedcom_backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewUserHandler(db *gorm.DB, catalog *services.CatalogService) *UserHandler {
	return &UserHandler{DB: db, Catalog: catalog}
}

// Me - GET /api/users/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid user session", nil))
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("User not found", nil))
	}

	return c.JSON(models.SuccessResponse("", user))
}

// GetMyFavorites - GET /api/users/me/favorites
func (h *UserHandler) GetMyFavorites(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid user session", nil))
	}

	products, err := h.Catalog.ListFavorites(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not fetch favorites", nil))
	}

	return c.JSON(models.SuccessResponse("", products))
}
