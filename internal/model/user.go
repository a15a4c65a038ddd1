package model

// User — учётная запись для входа в API.
type User struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	Login    string `gorm:"uniqueIndex;not null" json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash
	Disabled bool   `gorm:"not null;default:false" json:"disabled"`
}
