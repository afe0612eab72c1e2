package model

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is a system account. IsLoggedIn + LastActive implement the admin
// session lock: a second admin login is refused while another admin session
// has been active within the last 30 minutes.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"password_hash"`
	Role         string     `gorm:"not null" json:"role"`
	Name         string     `json:"name"`
	IsLoggedIn   bool       `gorm:"not null;default:false" json:"is_logged_in"`
	LastActive   *time.Time `json:"last_active"`
}
