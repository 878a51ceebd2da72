package models

// User roles accepted by the API.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User is an account that can own projects and appear as an audit actor.
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Password string  `gorm:"size:255;not null" json:"-"`
	Name     string  `gorm:"size:255;not null" json:"name"`
	Email    string  `gorm:"size:255;not null" json:"email"`
	Role     string  `gorm:"size:32;not null;default:user" json:"role"`
	Avatar   *string `gorm:"size:512" json:"avatar"`
}
