package models

import "gorm.io/gorm"

// Role is the closed set of actor kinds. It is resolved once from the JWT
// at the authorization boundary; handlers never compare raw strings.
type Role string

const (
	RolePassenger Role = "passenger"
	RoleDriver    Role = "driver"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a role string coming from a token or signup payload.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RolePassenger, RoleDriver, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role" gorm:"type:varchar(16);not null;default:'passenger'"`
	IsActive bool   `json:"is_active" gorm:"not null;default:true"`
}
