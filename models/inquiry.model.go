package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Broker inquiry statuses. pending is the only automatically-computed state;
// the admin may set any of the four from any other.
const (
	InquiryStatusPending   = "pending"
	InquiryStatusApproved  = "approved"
	InquiryStatusRejected  = "rejected"
	InquiryStatusCompleted = "completed"
)

var InquiryStatuses = []string{InquiryStatusPending, InquiryStatusApproved, InquiryStatusRejected, InquiryStatusCompleted}

// Contact history actions.
const (
	ActionSubmitted       = "submitted"
	ActionContactedBuyer  = "contacted_buyer"
	ActionContactedSeller = "contacted_seller"
	ActionAddedNotes      = "added_notes"
)

const (
	ContactByEmail    = "email"
	ContactByPhone    = "phone"
	ContactByWhatsapp = "whatsapp"
)

type BuyerInfo struct {
	Name             string `gorm:"size:100;not null" json:"name"`
	Email            string `gorm:"size:100;not null;index" json:"email"`
	Phone            string `gorm:"size:20" json:"phone,omitempty"`
	PreferredContact string `gorm:"size:20;default:'email'" json:"preferred_contact"`
}

// ContactEntry is one row of an inquiry's audit trail. Rows are only ever
// inserted, never updated or deleted.
type ContactEntry struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	InquiryID string    `gorm:"size:36;not null;index" json:"-"`
	Date      time.Time `gorm:"autoCreateTime" json:"date"`
	Action    string    `gorm:"size:30;not null" json:"action"`
	Notes     string    `gorm:"size:1000" json:"notes,omitempty"`
	AdminUser string    `gorm:"size:100" json:"admin_user,omitempty"`
}

// BrokerInquiry records a buyer's request to be connected with a seller via
// the broker. Product title and price are snapshotted at submission time and
// never recomputed, so the record reflects the price the fee was quoted on
// even if the product is later repriced or deleted.
type BrokerInquiry struct {
	ID           string  `gorm:"primaryKey;size:36" json:"id"`
	ProductID    string  `gorm:"size:36;not null;index" json:"product_id"`
	ProductTitle string  `gorm:"size:100;not null" json:"product_title"`
	ProductPrice float64 `gorm:"not null" json:"product_price"`

	Buyer   BuyerInfo `gorm:"embedded;embeddedPrefix:buyer_" json:"buyer"`
	Message string    `gorm:"size:1000" json:"message"`

	Status     string  `gorm:"size:20;default:'pending';index:idx_inquiries_status_created" json:"status"`
	BrokerFee  float64 `gorm:"not null" json:"broker_fee"`
	TotalPrice float64 `gorm:"not null" json:"total_price"`
	AdminNotes string  `gorm:"size:1000" json:"admin_notes,omitempty"`

	ContactHistory []ContactEntry `gorm:"foreignKey:InquiryID" json:"contact_history,omitempty"`

	// Weak reference for display: nil when the product has been deleted.
	Product *Product `gorm:"foreignKey:ProductID;references:ID" json:"product,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_inquiries_status_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *BrokerInquiry) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func ValidInquiryStatus(status string) bool {
	for _, s := range InquiryStatuses {
		if s == status {
			return true
		}
	}
	return false
}
