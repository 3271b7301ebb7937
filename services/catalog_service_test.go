package services

import (
	"testing"
	"time"
	"usedcom_backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CatalogServiceSuite struct {
	suite.Suite
	db      *gorm.DB
	catalog *CatalogService
}

func (s *CatalogServiceSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.catalog = NewCatalogService(s.db)
}

func (s *CatalogServiceSuite) create(mutate func(*models.Product)) *models.Product {
	product := testProduct(100)
	if mutate != nil {
		mutate(product)
	}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *CatalogServiceSuite) TestListOnlyAvailableProducts() {
	s.create(nil)
	for _, status := range []string{models.ProductStatusSold, models.ProductStatusPending, models.ProductStatusInactive} {
		status := status
		s.create(func(p *models.Product) { p.Status = status })
	}

	products, pagination, err := s.catalog.ListProducts(ProductFilter{})
	s.Require().NoError(err)
	s.Len(products, 1)
	s.EqualValues(1, pagination.Total)
}

func (s *CatalogServiceSuite) TestCategoryAndConditionFilters() {
	s.create(func(p *models.Product) { p.Category = "Books"; p.Condition = "Fair" })
	s.create(func(p *models.Product) { p.Category = "Electronics"; p.Condition = "Excellent" })

	products, _, err := s.catalog.ListProducts(ProductFilter{Category: "Books"})
	s.Require().NoError(err)
	s.Len(products, 1)
	s.Equal("Books", products[0].Category)

	products, _, err = s.catalog.ListProducts(ProductFilter{Condition: "Excellent"})
	s.Require().NoError(err)
	s.Len(products, 1)

	// "all" is a sentinel meaning no filter.
	products, _, err = s.catalog.ListProducts(ProductFilter{Category: "all", Condition: "all"})
	s.Require().NoError(err)
	s.Len(products, 2)
}

func (s *CatalogServiceSuite) TestPriceRangeBoundsAreInclusive() {
	s.create(func(p *models.Product) { p.Price = 50 })
	s.create(func(p *models.Product) { p.Price = 100 })
	s.create(func(p *models.Product) { p.Price = 200 })

	min, max := 50.0, 100.0
	products, _, err := s.catalog.ListProducts(ProductFilter{MinPrice: &min, MaxPrice: &max})
	s.Require().NoError(err)
	s.Len(products, 2)

	onlyMin := 100.0
	products, _, err = s.catalog.ListProducts(ProductFilter{MinPrice: &onlyMin})
	s.Require().NoError(err)
	s.Len(products, 2)
}

func (s *CatalogServiceSuite) TestLocationSubstringMatchesCityOrState() {
	s.create(func(p *models.Product) { p.Location = models.Location{City: "Addis Ababa", State: "AA"} })
	s.create(func(p *models.Product) { p.Location = models.Location{City: "Portland", State: "Oregon"} })

	products, _, err := s.catalog.ListProducts(ProductFilter{Location: "addis"})
	s.Require().NoError(err)
	s.Len(products, 1)
	s.Equal("Addis Ababa", products[0].Location.City)

	products, _, err = s.catalog.ListProducts(ProductFilter{Location: "OREG"})
	s.Require().NoError(err)
	s.Len(products, 1)

	products, _, err = s.catalog.ListProducts(ProductFilter{Location: "nowhere"})
	s.Require().NoError(err)
	s.Len(products, 0)
}

func (s *CatalogServiceSuite) TestSearchCoversTitleDescriptionAndTags() {
	s.create(func(p *models.Product) { p.Title = "Vintage Camera" })
	s.create(func(p *models.Product) { p.Description = "comes with a camera bag" })
	s.create(func(p *models.Product) { p.Tags = []string{"camera", "photography"} })
	s.create(func(p *models.Product) { p.Title = "Office Chair" })

	products, _, err := s.catalog.ListProducts(ProductFilter{Search: "Camera"})
	s.Require().NoError(err)
	s.Len(products, 3)
}

func (s *CatalogServiceSuite) TestSortingAndDefaultOrder() {
	old := s.create(func(p *models.Product) { p.Price = 10; p.CreatedAt = time.Now().Add(-time.Hour) })
	recent := s.create(func(p *models.Product) { p.Price = 30 })

	// Default is newest first.
	products, _, err := s.catalog.ListProducts(ProductFilter{})
	s.Require().NoError(err)
	s.Equal(recent.ID, products[0].ID)
	s.Equal(old.ID, products[1].ID)

	products, _, err = s.catalog.ListProducts(ProductFilter{SortBy: "price", SortOrder: "asc"})
	s.Require().NoError(err)
	s.Equal(old.ID, products[0].ID)
}

func (s *CatalogServiceSuite) TestPagination() {
	for i := 0; i < 5; i++ {
		s.create(nil)
	}

	products, pagination, err := s.catalog.ListProducts(ProductFilter{Page: 1, Limit: 2})
	s.Require().NoError(err)
	s.Len(products, 2)
	s.EqualValues(5, pagination.Total)
	s.Equal(3, pagination.Pages)
	s.True(pagination.HasNext)
	s.False(pagination.HasPrev)

	products, pagination, err = s.catalog.ListProducts(ProductFilter{Page: 3, Limit: 2})
	s.Require().NoError(err)
	s.Len(products, 1)
	s.False(pagination.HasNext)
	s.True(pagination.HasPrev)

	// A page past the end returns no items without error.
	products, pagination, err = s.catalog.ListProducts(ProductFilter{Page: 4, Limit: 2})
	s.Require().NoError(err)
	s.Len(products, 0)
	s.Equal(3, pagination.Pages)
	s.False(pagination.HasNext)
}

func (s *CatalogServiceSuite) TestGetProductIncrementsViews() {
	product := s.create(nil)

	first, err := s.catalog.GetProduct(product.ID)
	s.Require().NoError(err)
	s.EqualValues(1, first.Views)

	_, err = s.catalog.GetProduct(product.ID)
	s.Require().NoError(err)

	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", product.ID).Error)
	s.EqualValues(2, stored.Views)
}

func (s *CatalogServiceSuite) TestGetProductNotFound() {
	_, err := s.catalog.GetProduct(uuid.NewString())
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *CatalogServiceSuite) TestImageURLProjection() {
	withImages := s.create(func(p *models.Product) {
		p.Images = []models.ProductImage{
			{URL: "/uploads/products/front.jpg", Alt: "front"},
			{URL: "/uploads/products/back.jpg", Alt: "back"},
		}
	})
	bare := s.create(nil)

	fetched, err := s.catalog.GetProduct(withImages.ID)
	s.Require().NoError(err)
	s.Equal("/uploads/products/front.jpg", fetched.ImageURL)

	fetched, err = s.catalog.GetProduct(bare.ID)
	s.Require().NoError(err)
	s.Equal("", fetched.ImageURL)
}

func (s *CatalogServiceSuite) TestCreateProductNormalizesTags() {
	product := testProduct(25)
	product.Tags = []string{" Laptop ", "APPLE"}
	s.Require().NoError(s.catalog.CreateProduct(product))

	var stored models.Product
	s.Require().NoError(s.db.First(&stored, "id = ?", product.ID).Error)
	s.Equal([]string{"laptop", "apple"}, []string(stored.Tags))
}

func (s *CatalogServiceSuite) TestUpdateProductPartial() {
	product := s.create(nil)

	newPrice := 75.0
	updated, err := s.catalog.UpdateProduct(product.ID, ProductUpdate{Price: &newPrice})
	s.Require().NoError(err)
	s.Equal(75.0, updated.Price)
	s.Equal(product.Title, updated.Title)

	_, err = s.catalog.UpdateProduct(uuid.NewString(), ProductUpdate{Price: &newPrice})
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *CatalogServiceSuite) TestDeleteProduct() {
	product := s.create(nil)

	s.Require().NoError(s.catalog.DeleteProduct(product.ID))
	s.ErrorIs(s.catalog.DeleteProduct(product.ID), ErrProductNotFound)

	_, err := s.catalog.GetProduct(product.ID)
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *CatalogServiceSuite) TestToggleFavoriteRoundTrip() {
	product := s.create(nil)
	userID := uuid.NewString()

	favorited, err := s.catalog.ToggleFavorite(product.ID, userID)
	s.Require().NoError(err)
	s.True(favorited)

	favorites, err := s.catalog.ListFavorites(userID)
	s.Require().NoError(err)
	s.Len(favorites, 1)

	favorited, err = s.catalog.ToggleFavorite(product.ID, userID)
	s.Require().NoError(err)
	s.False(favorited)

	favorites, err = s.catalog.ListFavorites(userID)
	s.Require().NoError(err)
	s.Len(favorites, 0)
}

func (s *CatalogServiceSuite) TestToggleFavoriteUnknownProduct() {
	_, err := s.catalog.ToggleFavorite(uuid.NewString(), uuid.NewString())
	s.ErrorIs(err, ErrProductNotFound)
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceSuite))
}
