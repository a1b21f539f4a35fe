package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User 以 email 作为主键（注册后不可变）
type User struct {
	Email        string    `gorm:"primaryKey;size:255" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Nickname     string    `gorm:"size:64;not null" json:"nickname"`
	Role         string    `gorm:"size:16;not null;default:USER" json:"role"` // "USER"/"ADMIN"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }
