package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Source is a bid feed (CACI, SAM.gov, ...) that the scrapers pull from.
type Source struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null;uniqueIndex"`
	Active    bool      `gorm:"column:active;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (s *Source) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
