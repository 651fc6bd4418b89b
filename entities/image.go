package entities

import (
	"github.com/google/uuid"
)

const (
	ImageTypeAvatar = "avatar"
	ImageTypePhoto  = "photo"
	ImageTypeIcon   = "icon"
)

type Image struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ImageURL string    `json:"imageUrl"`
	// ImagePath is the object key inside the asset store bucket.
	ImagePath string    `json:"imagePath"`
	Type      string    `gorm:"default:photo" json:"type"`
	UserID    uuid.UUID `gorm:"type:uuid" json:"user"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
