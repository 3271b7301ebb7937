package config

import (
	"log"
	"strings"
	"usedcom_backend/models"
	"usedcom_backend/utils"

	"gorm.io/gorm"
)

func SeedCategories(db *gorm.DB) {
	for _, name := range models.ProductCategories {
		category := models.Category{
			Name: name,
			Slug: strings.ToLower(name),
		}
		var existing models.Category
		if err := db.Where("slug = ?", category.Slug).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", name, err)
			}
		}
	}
}

func SeedUsers(db *gorm.DB) {
	log.Println("🌱 Seeding users...")

	password, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "broker_admin",
			Email:    "admin@usedcom.local",
			Password: password,
			FullName: "Broker Admin",
			Role:     models.RoleAdmin,
		},
		{
			Username: "demo_seller",
			Email:    "seller@usedcom.local",
			Password: password,
			FullName: "Demo Seller",
			Role:     models.RoleUser,
		},
	}

	for _, user := range users {
		var existing models.User
		if err := db.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&user).Error; err != nil {
					log.Printf("Failed to seed user %s: %v", user.Username, err)
				} else {
					log.Printf("User seeded: %s (%s)", user.Username, user.Role)
				}
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("✅ Seeding complete.")
}

func SeedProducts(db *gorm.DB) {
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count > 0 {
		return
	}

	log.Println("🌱 Seeding demo products...")

	var seller models.User
	if err := db.Where("role = ?", models.RoleUser).First(&seller).Error; err != nil {
		log.Printf("No seller user available, skipping product seed: %v", err)
		return
	}

	products := []models.Product{
		{
			Title:       "MacBook Pro 13\" 2020",
			Description: "Lightly used, battery cycle count under 200. Comes with original charger.",
			Price:       849.99,
			Condition:   "Excellent",
			Category:    "Electronics",
			Images: []models.ProductImage{
				{URL: "/uploads/products/demo-macbook.jpg", Alt: "MacBook Pro 13\" 2020"},
			},
			Tags:     []string{"laptop", "apple", "macbook"},
			Seller:   models.SellerInfo{Name: seller.FullName, Email: seller.Email, UserID: &seller.ID},
			Location: models.Location{City: "Austin", State: "TX", ZipCode: "78701"},
		},
		{
			Title:       "Trek Mountain Bike",
			Description: "Great trail bike, recently serviced. Some cosmetic scratches on the frame.",
			Price:       320,
			Condition:   "Good",
			Category:    "Sports",
			Tags:        []string{"bike", "trek", "outdoors"},
			Seller:      models.SellerInfo{Name: seller.FullName, Email: seller.Email, UserID: &seller.ID},
			Location:    models.Location{City: "Denver", State: "CO"},
		},
	}

	for _, product := range products {
		if err := db.Create(&product).Error; err != nil {
			log.Printf("Failed to seed product %s: %v", product.Title, err)
		}
	}
}
