package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"usedcom_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadHandler handles product image uploads to local disk.
type UploadHandler struct {
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{Dir: dir}
}

// UploadImage - POST /api/upload
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Image file is required", nil))
	}

	// Validate file type (simple extension check)
	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Only .jpg, .jpeg, and .png files are allowed", nil))
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save file", nil))
	}

	filename := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	destination := filepath.Join(h.Dir, filename)

	if err := c.SaveFile(file, destination); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not save file", nil))
	}

	// Static files are served from /uploads
	imageURL := fmt.Sprintf("/uploads/products/%s", filename)

	return c.JSON(models.SuccessResponse("Image uploaded successfully", fiber.Map{"url": imageURL}))
}
