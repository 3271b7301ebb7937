package handlers

import (
	"errors"
	"strconv"
	"usedcom_backend/models"
	"usedcom_backend/services"
	"usedcom_backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{Catalog: catalog}
}

type SellerRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"omitempty,max=20"`
}

type LocationRequest struct {
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=20"`
}

// CreateProductRequest mirrors the public listing form.
type CreateProductRequest struct {
	Title       string                `json:"title" validate:"required,max=100"`
	Description string                `json:"description" validate:"required,max=1000"`
	Price       *float64              `json:"price" validate:"required,gte=0"`
	Condition   string                `json:"condition" validate:"required,oneof=Excellent Good Fair Poor"`
	Category    string                `json:"category" validate:"required,oneof=Electronics Fashion Home Sports Books Automotive Other"`
	ImageURL    string                `json:"imageUrl"` // legacy single-image field
	Images      []models.ProductImage `json:"images"`
	Tags        []string              `json:"tags"`
	Featured    bool                  `json:"featured"`
	Seller      SellerRequest         `json:"seller"`
	Location    LocationRequest       `json:"location"`
}

// GetProducts - GET /api/products
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		Category:  c.Query("category"),
		Condition: c.Query("condition"),
		Location:  c.Query("location"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", services.DefaultProductPageSize),
	}
	if raw := c.Query("minPrice"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinPrice = &value
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if value, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxPrice = &value
		}
	}

	products, pagination, err := h.Catalog.ListProducts(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error fetching products", nil))
	}

	return c.JSON(models.PagedResponse(products, pagination))
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.Catalog.GetProduct(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error fetching product", nil))
	}

	return c.JSON(models.SuccessResponse("", product))
}

// CreateProduct - POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	if details := utils.ValidateStruct(req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Validation errors", details))
	}

	images := req.Images
	if len(images) == 0 && req.ImageURL != "" {
		images = []models.ProductImage{{URL: req.ImageURL, Alt: req.Title}}
	}

	product := models.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Condition:   req.Condition,
		Category:    req.Category,
		Status:      models.ProductStatusAvailable,
		Featured:    req.Featured,
		Images:      images,
		Tags:        req.Tags,
		Seller: models.SellerInfo{
			Name:  req.Seller.Name,
			Email: req.Seller.Email,
			Phone: req.Seller.Phone,
		},
		Location: models.Location{
			City:    req.Location.City,
			State:   req.Location.State,
			ZipCode: req.Location.ZipCode,
		},
	}

	// Attach the owning user when the request is authenticated.
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		product.Seller.UserID = &userID
	}

	if err := h.Catalog.CreateProduct(&product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error creating product", nil))
	}
	if len(product.Images) > 0 {
		product.ImageURL = product.Images[0].URL
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse("Product created successfully", product))
}

// UpdateProductRequest carries partial updates; absent fields stay unchanged.
type UpdateProductRequest struct {
	Title       *string                `json:"title" validate:"omitempty,min=1,max=100"`
	Description *string                `json:"description" validate:"omitempty,min=1,max=1000"`
	Price       *float64               `json:"price" validate:"omitempty,gte=0"`
	Condition   *string                `json:"condition" validate:"omitempty,oneof=Excellent Good Fair Poor"`
	Category    *string                `json:"category" validate:"omitempty,oneof=Electronics Fashion Home Sports Books Automotive Other"`
	Status      *string                `json:"status" validate:"omitempty,oneof=available sold pending inactive"`
	Featured    *bool                  `json:"featured"`
	Images      *[]models.ProductImage `json:"images"`
	Tags        *[]string              `json:"tags"`
	Location    *LocationRequest       `json:"location"`
}

// UpdateProduct - PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid input", nil))
	}

	if details := utils.ValidateStruct(req); details != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Validation errors", details))
	}

	update := services.ProductUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Condition:   req.Condition,
		Category:    req.Category,
		Status:      req.Status,
		Featured:    req.Featured,
		Images:      req.Images,
		Tags:        req.Tags,
	}
	if req.Location != nil {
		update.Location = &models.Location{
			City:    req.Location.City,
			State:   req.Location.State,
			ZipCode: req.Location.ZipCode,
		}
	}

	product, err := h.Catalog.UpdateProduct(c.Params("id"), update)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error updating product", nil))
	}

	return c.JSON(models.SuccessResponse("Product updated successfully", product))
}

// DeleteProduct - DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.Catalog.DeleteProduct(c.Params("id")); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error deleting product", nil))
	}

	return c.JSON(models.SuccessResponse("Product deleted successfully", nil))
}

// ToggleFavorite - POST /api/products/:id/favorite
func (h *ProductHandler) ToggleFavorite(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid user session", nil))
	}

	favorited, err := h.Catalog.ToggleFavorite(c.Params("id"), userID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Product not found", nil))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Error toggling favorite", nil))
	}

	message := "Removed from favorites"
	if favorited {
		message = "Added to favorites"
	}
	return c.JSON(models.SuccessResponse(message, fiber.Map{"isFavorited": favorited}))
}

// GetMyProducts - GET /api/users/me/products
func (h *ProductHandler) GetMyProducts(c *fiber.Ctx) error {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid user session", nil))
	}

	products, err := h.Catalog.ListSellerProducts(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not fetch products", nil))
	}

	return c.JSON(models.SuccessResponse("", products))
}
