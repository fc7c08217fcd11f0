package models

import "evp/src/types"

type User struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `gorm:"default:'client'" json:"role,omitempty"`
	UID   string `json:"uid,omitempty"`

	Providers []Provider `gorm:"foreignKey:user_id" json:"providers,omitempty"`

	types.Timestamps
}
