package handlers

import (
	"errors"
	"usedcom_backend/models"
	"usedcom_backend/services"
	"usedcom_backend/utils"

	"github.com/gofiber/fiber/v2"
)

type BrokerHandler struct {
	Broker *services.BrokerService
}

func NewBrokerHandler(broker *services.BrokerService) *BrokerHandler {
	return &BrokerHandler{Broker: broker}
}

// ContactRequest is the buyer's broker contact form.
type ContactRequest struct {
	ProductID        string `json:"productId" validate:"required"`
	Name             string `json:"name" validate:"required,max=100"`
	Email            string `json:"email" validate:"required,email"`
	Phone            string `json:"phone" validate:"omitempty,max=20"`
	Message          string `json:"message" validate:"omitempty,max=1000"`
	PreferredContact string `json:"preferredContact" validate:"omitempty,oneof=email phone whatsapp"`
}

// SubmitContact - POST /api/broker/contact
func (h *BrokerHandler) SubmitContact(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	if details := utils.ValidateStruct(req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Missing required fields: productId, name, email", details))
	}

	inquiry, err := h.Broker.SubmitInquiry(services.InquirySubmission{
		ProductID:        req.ProductID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Message:          req.Message,
		PreferredContact: req.PreferredContact,
	})
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(validationErr.Error(), validationErr.Fields))
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found", nil))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to submit inquiry. Please try again.", nil))
		}
	}

	return c.JSON(models.SuccessResponse(
		"Your inquiry has been submitted successfully. Our broker team will contact you within 24 hours.",
		fiber.Map{"inquiryId": inquiry.ID},
	))
}

// GetStats - GET /api/broker/stats
func (h *BrokerHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.Broker.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch broker statistics.", nil))
	}
	return c.JSON(models.SuccessResponse("", stats))
}

// GetInquiries - GET /api/broker/inquiries
func (h *BrokerHandler) GetInquiries(c *fiber.Ctx) error {
	inquiries, pagination, err := h.Broker.ListInquiries(
		c.Query("status"),
		c.QueryInt("page", 1),
		c.QueryInt("limit", services.DefaultInquiryPageSize),
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch inquiries.", nil))
	}
	return c.JSON(models.PagedResponse(inquiries, pagination))
}

// GetInquiry - GET /api/broker/inquiries/:id
func (h *BrokerHandler) GetInquiry(c *fiber.Ctx) error {
	inquiry, err := h.Broker.GetInquiry(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrInquiryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Inquiry not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to fetch inquiry details.", nil))
	}
	return c.JSON(models.SuccessResponse("", inquiry))
}

// UpdateStatusRequest sets a new inquiry status with optional notes.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected completed"`
	Notes  string `json:"notes" validate:"omitempty,max=1000"`
}

// UpdateInquiryStatus - PUT /api/broker/inquiries/:id/status
func (h *BrokerHandler) UpdateInquiryStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	if details := utils.ValidateStruct(req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Validation errors", details))
	}

	adminUser, _ := c.Locals("email").(string)
	inquiry, err := h.Broker.UpdateStatus(c.Params("id"), req.Status, req.Notes, adminUser)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(validationErr.Error(), validationErr.Fields))
		case errors.Is(err, services.ErrInquiryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Inquiry not found", nil))
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to update inquiry status.", nil))
		}
	}

	return c.JSON(models.SuccessResponse("Inquiry "+req.Status+" successfully", inquiry))
}

// AddNotesRequest attaches admin notes to an inquiry.
type AddNotesRequest struct {
	Notes string `json:"notes" validate:"required,max=1000"`
}

// AddInquiryNotes - POST /api/broker/inquiries/:id/notes
func (h *BrokerHandler) AddInquiryNotes(c *fiber.Ctx) error {
	var req AddNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	if details := utils.ValidateStruct(req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Validation errors", details))
	}

	adminUser, _ := c.Locals("email").(string)
	inquiry, err := h.Broker.AddNotes(c.Params("id"), req.Notes, adminUser)
	if err != nil {
		if errors.Is(err, services.ErrInquiryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Inquiry not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Failed to add notes.", nil))
	}

	return c.JSON(models.SuccessResponse("Notes added successfully", inquiry))
}
