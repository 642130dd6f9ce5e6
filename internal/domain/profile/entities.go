package profile

import (
	"fmt"
	"strings"
	"time"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
)

var (
	ErrNotFound = fmt.Errorf("profile %w", apperr.ErrNotFound)
)

// Table: user_profiles
type Profile struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	UserID    string    `gorm:"column:user_id;size:64;not null;uniqueIndex:ux_user_profiles_user_id" json:"user_id"`
	Email     string    `gorm:"column:email;size:255" json:"email"`
	FirstName string    `gorm:"column:first_name;size:100" json:"first_name"`
	LastName  string    `gorm:"column:last_name;size:100" json:"last_name"`
	Phone     string    `gorm:"column:phone;size:32" json:"phone"`
	Company   string    `gorm:"column:company;size:255" json:"company"`
	Role      auth.Role `gorm:"column:role;size:16;not null;index:idx_user_profiles_role" json:"role"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string { return "user_profiles" }

// DisplayName is "First Last", falling back to the email when both are blank.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}
