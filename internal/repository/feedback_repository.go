package repository

import (
	"fmt"
	"time"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/domain"
	"gorm.io/gorm"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(feedback *domain.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *FeedbackRepository) FindByID(id uint64) (*domain.Feedback, error) {
	var feedback domain.Feedback
	err := r.db.Where("id = ?", id).First(&feedback).Error
	if err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *FeedbackRepository) Update(feedback *domain.Feedback) error {
	return r.db.Save(feedback).Error
}

// Delete removes the row if present. Deleting an id that no longer exists
// is not an error.
func (r *FeedbackRepository) Delete(id uint64) error {
	return r.db.Where("id = ?", id).Delete(&domain.Feedback{}).Error
}

// ListAll returns every feedback row, newest first. Rows sharing a
// timestamp fall back to id order so the listing stays stable.
func (r *FeedbackRepository) ListAll() ([]domain.Feedback, error) {
	feedbacks := make([]domain.Feedback, 0)
	err := r.db.Order("created_at DESC, id DESC").Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

// Now reads the store's clock, proving a live round trip for db-check.
// Postgres hands the value over as time.Time; sqlite as TEXT, so the scan
// goes through an untyped value and parses when needed.
func (r *FeedbackRepository) Now() (time.Time, error) {
	var value any
	if err := r.db.Raw("SELECT CURRENT_TIMESTAMP").Row().Scan(&value); err != nil {
		return time.Time{}, err
	}

	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseStoreTime(v)
	case []byte:
		return parseStoreTime(string(v))
	}
	return time.Time{}, fmt.Errorf("unexpected timestamp type %T", value)
}

// parseStoreTime accepts both RFC 3339 and sqlite's CURRENT_TIMESTAMP
// format (UTC, second precision).
func parseStoreTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse store timestamp %q", s)
}
