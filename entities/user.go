package entities

import (
	"github.com/google/uuid"
)

const (
	GenderSecret = "secret"
	GenderMale   = "male"
	GenderFemale = "female"

	RoleMember = "member"
	RoleAdmin  = "admin"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	NickName     string    `json:"nickName"`
	Gender       string    `gorm:"default:secret" json:"gender"`
	AvatarImgURL string    `json:"avatarImgUrl"`
	Description  string    `json:"description"`
	Email        string    `gorm:"uniqueIndex" json:"email,omitempty"`
	Password     string    `json:"-"`
	Role         string    `gorm:"default:member" json:"role,omitempty"`

	Timestamp
}
