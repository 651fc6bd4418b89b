package entities

import (
	"github.com/google/uuid"
)

type Category struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title          string    `json:"title"`
	CategoryImgURL string    `json:"categoryImgUrl"`

	Timestamp
}
