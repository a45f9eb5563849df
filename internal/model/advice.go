package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultAdviceType is assigned when a request omits the category.
const DefaultAdviceType = "Other"

// Advice is a user-submitted post. AuthorID is fixed at creation and
// Verified only ever transitions false -> true (admin verification).
type Advice struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Type      string    `json:"type" gorm:"size:100;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Verified  bool      `json:"verified" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Advice) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
