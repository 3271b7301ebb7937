package services

import (
	"errors"
	"strings"
	"usedcom_backend/models"

	"gorm.io/gorm"
)

const DefaultProductPageSize = 12

// CatalogService handles product browsing and CRUD.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ProductFilter holds the optional listing parameters. Zero values mean
// "not supplied".
type ProductFilter struct {
	Category  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	Location  string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Listing sort fields are whitelisted; anything else falls back to newest-first.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"price":      "price",
	"views":      "views",
	"title":      "title",
}

// ListProducts returns one page of available products. Only status=available
// products are eligible regardless of the other filters supplied.
func (s *CatalogService) ListProducts(filter ProductFilter) ([]models.Product, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultProductPageSize
	}

	query := s.DB.Model(&models.Product{}).Where("status = ?", models.ProductStatusAvailable)

	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Condition != "" && filter.Condition != "all" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Location != "" {
		like := "%" + strings.ToLower(filter.Location) + "%"
		query = query.Where("LOWER(location_city) LIKE ? OR LOWER(location_state) LIKE ?", like, like)
	}
	if filter.Search != "" {
		// Tags are stored as a JSON array column, so a LIKE over the raw
		// column matches individual tag values as well.
		like := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	column := sortColumns[filter.SortBy]
	if column == "" {
		column = "created_at"
	}
	direction := "desc"
	if filter.SortOrder == "asc" {
		direction = "asc"
	}

	var products []models.Product
	err := query.
		Order(column + " " + direction).
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return products, models.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetProduct fetches a single product and increments its view counter by
// exactly one per fetch. The increment is a single atomic column update,
// never a read-modify-write.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if err := s.DB.Model(&models.Product{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error; err != nil {
		return nil, err
	}
	product.Views++

	return &product, nil
}

// CreateProduct persists a new product. Tags are normalized to lowercase.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	if product.Status == "" {
		product.Status = models.ProductStatusAvailable
	}
	for i, tag := range product.Tags {
		product.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	return s.DB.Create(product).Error
}

// ProductUpdate carries the partial fields of an update; nil means unchanged.
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Condition   *string
	Category    *string
	Status      *string
	Featured    *bool
	Images      *[]models.ProductImage
	Tags        *[]string
	Location    *models.Location
}

func (s *CatalogService) UpdateProduct(id string, update ProductUpdate) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		product.Title = *update.Title
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.Condition != nil {
		product.Condition = *update.Condition
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Status != nil {
		product.Status = *update.Status
	}
	if update.Featured != nil {
		product.Featured = *update.Featured
	}
	if update.Images != nil {
		product.Images = *update.Images
	}
	if update.Tags != nil {
		tags := make([]string, len(*update.Tags))
		for i, tag := range *update.Tags {
			tags[i] = strings.ToLower(strings.TrimSpace(tag))
		}
		product.Tags = tags
	}
	if update.Location != nil {
		product.Location = *update.Location
	}

	if err := s.DB.Save(&product).Error; err != nil {
		return nil, err
	}
	if len(product.Images) > 0 {
		product.ImageURL = product.Images[0].URL
	}
	return &product, nil
}

// DeleteProduct hard-deletes a product. Inquiries referencing it keep their
// snapshot.
func (s *CatalogService) DeleteProduct(id string) error {
	result := s.DB.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// ToggleFavorite flips a user's favorite for a product and reports the new
// state. Delete-then-insert on the unique (product, user) key keeps the
// toggle atomic under concurrent requests.
func (s *CatalogService) ToggleFavorite(productID, userID string) (bool, error) {
	var product models.Product
	if err := s.DB.Select("id").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, err
	}

	favorited := false
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("product_id = ? AND user_id = ?", productID, userID).Delete(&models.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			favorited = true
			return tx.Create(&models.Favorite{ProductID: productID, UserID: userID}).Error
		}
		return nil
	})
	return favorited, err
}

// ListFavorites returns the products a user has saved, most recently saved
// first.
func (s *CatalogService) ListFavorites(userID string) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at desc").
		Find(&products).Error
	return products, err
}

// ListSellerProducts returns all products owned by a seller, newest first.
func (s *CatalogService) ListSellerProducts(userID string) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.
		Where("seller_user_id = ?", userID).
		Order("created_at desc").
		Find(&products).Error
	return products, err
}
