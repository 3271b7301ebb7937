package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"usedcom_backend/models"
	"usedcom_backend/services"
	"usedcom_backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Favorite{},
		&models.BrokerInquiry{},
		&models.ContactEntry{},
	))

	catalog := services.NewCatalogService(db)
	broker := services.NewBrokerService(db, nil)

	productHandler := NewProductHandler(catalog)
	brokerHandler := NewBrokerHandler(broker)

	app := fiber.New()
	api := app.Group("/api")

	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", productHandler.CreateProduct)
	products.Post("/:id/favorite", utils.AuthMiddleware, productHandler.ToggleFavorite)

	brokerGroup := api.Group("/broker")
	brokerGroup.Post("/contact", brokerHandler.SubmitContact)

	admin := brokerGroup.Group("", utils.AuthMiddleware, utils.RequireAdmin)
	admin.Get("/stats", brokerHandler.GetStats)
	admin.Get("/inquiries", brokerHandler.GetInquiries)
	admin.Put("/inquiries/:id/status", brokerHandler.UpdateInquiryStatus)

	return app, db
}

func seedProduct(t *testing.T, db *gorm.DB, price float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:       "Handler Test Product",
		Description: "A product for handler tests",
		Price:       price,
		Condition:   "Good",
		Category:    "Electronics",
		Status:      models.ProductStatusAvailable,
		Seller:      models.SellerInfo{Name: "Seller", Email: "seller@example.com"},
		Location:    models.Location{City: "Austin", State: "TX"},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(&models.User{
		ID:    uuid.NewString(),
		Email: "admin@usedcom.local",
		Role:  models.RoleAdmin,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func userToken(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerateToken(&models.User{
		ID:    uuid.NewString(),
		Email: "user@usedcom.local",
		Role:  models.RoleUser,
	}, time.Hour)
	require.NoError(t, err)
	return token
}

func TestSubmitContactValidation(t *testing.T) {
	app, db := setupTestApp(t)
	product := seedProduct(t, db, 100)

	// Missing email
	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/broker/contact", fiber.Map{
		"productId": product.ID,
		"name":      "Jane Buyer",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Malformed product id
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/broker/contact", fiber.Map{
		"productId": "not-a-uuid",
		"name":      "Jane Buyer",
		"email":     "jane@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Unknown product
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/broker/contact", fiber.Map{
		"productId": uuid.NewString(),
		"name":      "Jane Buyer",
		"email":     "jane@example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// No records were created by any of the failed submissions
	var count int64
	require.NoError(t, db.Model(&models.BrokerInquiry{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSubmitContactSuccess(t *testing.T) {
	app, db := setupTestApp(t)
	product := seedProduct(t, db, 99.99)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/broker/contact", fiber.Map{
		"productId": product.ID,
		"name":      "Jane Buyer",
		"email":     "jane@example.com",
		"message":   "Still available?",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	inquiryID := data["inquiryId"].(string)

	var inquiry models.BrokerInquiry
	require.NoError(t, db.First(&inquiry, "id = ?", inquiryID).Error)
	assert.Equal(t, 5.0, inquiry.BrokerFee)
	assert.Equal(t, 104.99, inquiry.TotalPrice)
	assert.Equal(t, models.InquiryStatusPending, inquiry.Status)
}

func TestBrokerEndpointsRequireAdmin(t *testing.T) {
	app, _ := setupTestApp(t)

	// No token
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/broker/stats", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Authenticated but not admin
	req := httptest.NewRequest(http.MethodGet, "/api/broker/stats", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Admin
	req = httptest.NewRequest(http.MethodGet, "/api/broker/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUpdateInquiryStatusEndpoint(t *testing.T) {
	app, db := setupTestApp(t)
	product := seedProduct(t, db, 100)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/broker/contact", fiber.Map{
		"productId": product.ID,
		"name":      "Jane Buyer",
		"email":     "jane@example.com",
	}))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeResponse(t, resp)["data"].(map[string]interface{})
	inquiryID := data["inquiryId"].(string)

	req := jsonRequest(t, http.MethodPut, "/api/broker/inquiries/"+inquiryID+"/status", fiber.Map{
		"status": "approved",
	})
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var entries int64
	require.NoError(t, db.Model(&models.ContactEntry{}).Where("inquiry_id = ?", inquiryID).Count(&entries).Error)
	assert.EqualValues(t, 2, entries)

	// Unknown inquiry
	req = jsonRequest(t, http.MethodPut, "/api/broker/inquiries/"+uuid.NewString()+"/status", fiber.Map{
		"status": "approved",
	})
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProductEndpointIncrementsViews(t *testing.T) {
	app, db := setupTestApp(t)
	product := seedProduct(t, db, 50)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/products/"+product.ID, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.EqualValues(t, 2, stored.Views)
}

func TestToggleFavoriteEndpointRequiresAuth(t *testing.T) {
	app, db := setupTestApp(t)
	product := seedProduct(t, db, 50)

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/products/"+product.ID+"/favorite", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodPost, "/api/products/"+product.ID+"/favorite", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t))
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeResponse(t, resp)["data"].(map[string]interface{})
	assert.Equal(t, true, data["isFavorited"])
}
