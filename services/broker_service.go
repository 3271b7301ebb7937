package services

import (
	"errors"
	"fmt"
	"time"
	"usedcom_backend/internal/ws"
	"usedcom_backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BrokerFeeRate is the broker's commission on the product price at inquiry
// time. The fee is fixed at creation and never recomputed.
const BrokerFeeRate = "0.05"

const DefaultInquiryPageSize = 20

// BrokerService manages the inquiry lifecycle and the dashboard statistics.
type BrokerService struct {
	DB  *gorm.DB
	Hub *ws.Hub // optional; nil disables the admin event feed
}

func NewBrokerService(db *gorm.DB, hub *ws.Hub) *BrokerService {
	return &BrokerService{DB: db, Hub: hub}
}

// CalculateBrokerFee computes fee = round2(price * 5%) and
// total = round2(price + fee), rounding half away from zero.
func CalculateBrokerFee(price float64) (fee float64, total float64) {
	p := decimal.NewFromFloat(price)
	f := p.Mul(decimal.RequireFromString(BrokerFeeRate)).Round(2)
	t := p.Add(f).Round(2)
	fee, _ = f.Float64()
	total, _ = t.Float64()
	return fee, total
}

// InquirySubmission is the buyer's contact request.
type InquirySubmission struct {
	ProductID        string
	Name             string
	Email            string
	Phone            string
	Message          string
	PreferredContact string
}

// SubmitInquiry creates a new inquiry snapshotting the product's title and
// price. Any product status is acceptable; only a missing product fails.
// Duplicate submissions for the same buyer/product pair create duplicate
// records on purpose.
func (s *BrokerService) SubmitInquiry(submission InquirySubmission) (*models.BrokerInquiry, error) {
	if _, err := uuid.Parse(submission.ProductID); err != nil {
		return nil, NewValidationError("productId", "Invalid product ID format")
	}

	var product models.Product
	if err := s.DB.First(&product, "id = ?", submission.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	fee, total := CalculateBrokerFee(product.Price)

	preferred := submission.PreferredContact
	if preferred == "" {
		preferred = models.ContactByEmail
	}

	inquiry := &models.BrokerInquiry{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		ProductPrice: product.Price,
		Buyer: models.BuyerInfo{
			Name:             submission.Name,
			Email:            submission.Email,
			Phone:            submission.Phone,
			PreferredContact: preferred,
		},
		Message:    submission.Message,
		Status:     models.InquiryStatusPending,
		BrokerFee:  fee,
		TotalPrice: total,
		ContactHistory: []models.ContactEntry{
			{Action: models.ActionSubmitted, Notes: "Inquiry submitted"},
		},
	}

	if err := s.DB.Create(inquiry).Error; err != nil {
		return nil, err
	}

	s.publish("inquiry_submitted", inquiry)
	return inquiry, nil
}

// UpdateStatus sets an inquiry's status and appends exactly one contact
// history entry. No transition is rejected; all four states are reachable
// from any other.
func (s *BrokerService) UpdateStatus(id, status, notes, adminUser string) (*models.BrokerInquiry, error) {
	if !models.ValidInquiryStatus(status) {
		return nil, NewValidationError("status", "Invalid inquiry status")
	}
	if notes == "" {
		notes = fmt.Sprintf("Status changed to %s", status)
	}
	if adminUser == "" {
		adminUser = "admin"
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var inquiry models.BrokerInquiry
		if err := tx.First(&inquiry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInquiryNotFound
			}
			return err
		}

		if err := tx.Model(&inquiry).Update("status", status).Error; err != nil {
			return err
		}

		entry := models.ContactEntry{
			InquiryID: inquiry.ID,
			Action:    status,
			Notes:     notes,
			AdminUser: adminUser,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	inquiry, err := s.GetInquiry(id)
	if err != nil {
		return nil, err
	}
	s.publish("inquiry_status_changed", inquiry)
	return inquiry, nil
}

// AddNotes overwrites the inquiry's admin notes (the audit trail keeps the
// full note history via the appended contact entry).
func (s *BrokerService) AddNotes(id, notes, adminUser string) (*models.BrokerInquiry, error) {
	if adminUser == "" {
		adminUser = "admin"
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var inquiry models.BrokerInquiry
		if err := tx.First(&inquiry, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInquiryNotFound
			}
			return err
		}

		if err := tx.Model(&inquiry).Update("admin_notes", notes).Error; err != nil {
			return err
		}

		entry := models.ContactEntry{
			InquiryID: inquiry.ID,
			Action:    models.ActionAddedNotes,
			Notes:     notes,
			AdminUser: adminUser,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return s.GetInquiry(id)
}

// GetInquiry fetches one inquiry with its audit trail and, when the product
// still exists, the referenced product for display.
func (s *BrokerService) GetInquiry(id string) (*models.BrokerInquiry, error) {
	var inquiry models.BrokerInquiry
	err := s.DB.
		Preload("ContactHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("contact_entries.id ASC")
		}).
		Preload("Product").
		First(&inquiry, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, err
	}
	return &inquiry, nil
}

// ListInquiries returns one page of inquiries, newest first, optionally
// filtered by exact status ("" and "all" mean no filter).
func (s *BrokerService) ListInquiries(status string, page, limit int) ([]models.BrokerInquiry, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultInquiryPageSize
	}

	query := s.DB.Model(&models.BrokerInquiry{})
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, models.Pagination{}, err
	}

	var inquiries []models.BrokerInquiry
	err := query.
		Preload("Product").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&inquiries).Error
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return inquiries, models.NewPagination(page, limit, total), nil
}

// MonthlyStats is the current-month slice of the dashboard counters.
type MonthlyStats struct {
	Inquiries int64   `json:"inquiries"`
	Revenue   float64 `json:"revenue"`
}

// BrokerStats is the admin dashboard summary, recomputed on every call.
type BrokerStats struct {
	TotalInquiries        int64        `json:"totalInquiries"`
	PendingInquiries      int64        `json:"pendingInquiries"`
	CompletedTransactions int64        `json:"completedTransactions"`
	TotalRevenue          float64      `json:"totalRevenue"`
	ThisMonth             MonthlyStats `json:"thisMonth"`
}

// Stats derives the dashboard counters from the inquiry table. The "this
// month" boundary is midnight UTC on the first of the current month; UTC is
// used deliberately so the boundary does not drift with server timezone.
func (s *BrokerService) Stats() (*BrokerStats, error) {
	stats := &BrokerStats{}

	if err := s.DB.Model(&models.BrokerInquiry{}).Count(&stats.TotalInquiries).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.BrokerInquiry{}).
		Where("status = ?", models.InquiryStatusPending).
		Count(&stats.PendingInquiries).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.BrokerInquiry{}).
		Where("status = ?", models.InquiryStatusCompleted).
		Count(&stats.CompletedTransactions).Error; err != nil {
		return nil, err
	}

	var totalRevenue float64
	if err := s.DB.Model(&models.BrokerInquiry{}).
		Where("status = ?", models.InquiryStatusCompleted).
		Select("COALESCE(SUM(broker_fee), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return nil, err
	}
	stats.TotalRevenue = round2(totalRevenue)

	now := time.Now().UTC()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	if err := s.DB.Model(&models.BrokerInquiry{}).
		Where("created_at >= ?", startOfMonth).
		Count(&stats.ThisMonth.Inquiries).Error; err != nil {
		return nil, err
	}

	var monthRevenue float64
	if err := s.DB.Model(&models.BrokerInquiry{}).
		Where("status = ? AND created_at >= ?", models.InquiryStatusCompleted, startOfMonth).
		Select("COALESCE(SUM(broker_fee), 0)").
		Scan(&monthRevenue).Error; err != nil {
		return nil, err
	}
	stats.ThisMonth.Revenue = round2(monthRevenue)

	return stats, nil
}

func round2(value float64) float64 {
	rounded, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return rounded
}

// inquiryEvent is the admin feed payload.
type inquiryEvent struct {
	Type         string  `json:"type"`
	InquiryID    string  `json:"inquiry_id"`
	ProductTitle string  `json:"product_title"`
	Status       string  `json:"status"`
	BrokerFee    float64 `json:"broker_fee"`
	BuyerName    string  `json:"buyer_name"`
}

func (s *BrokerService) publish(eventType string, inquiry *models.BrokerInquiry) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(inquiryEvent{
		Type:         eventType,
		InquiryID:    inquiry.ID,
		ProductTitle: inquiry.ProductTitle,
		Status:       inquiry.Status,
		BrokerFee:    inquiry.BrokerFee,
		BuyerName:    inquiry.Buyer.Name,
	})
}
