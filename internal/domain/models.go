package domain

import "time"

// Feedback is one student submission: a 1-5 rating plus a comment. The
// store assigns id and created_at on insert; neither changes afterwards.
type Feedback struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }
