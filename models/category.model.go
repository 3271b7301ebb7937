package models

// Category is the seeded lookup table backing the catalog filter dropdown.
// The rows mirror ProductCategories; products store the category name, not a
// foreign key, so the snapshot on an inquiry stays self-contained.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;unique" json:"name"`
	Slug string `gorm:"size:100;not null;unique" json:"slug"`
}
