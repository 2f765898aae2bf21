package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

// ValidRole reports whether s is one of the closed set of roles.
func ValidRole(s string) bool {
	switch UserRole(s) {
	case RoleUser, RoleMember, RoleAdmin:
		return true
	}
	return false
}

// CanBeAssigned reports whether a user with this role may receive task assignments.
func (r UserRole) CanBeAssigned() bool {
	return r == RoleMember
}

// CanManage reports whether a user with this role may create and manage club resources.
func (r UserRole) CanManage() bool {
	return r == RoleAdmin
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"username"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	RealName     string         `gorm:"type:varchar(50);not null" json:"real_name"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Avatar       string         `gorm:"type:varchar(255)" json:"avatar"`
	Bio          string         `gorm:"type:varchar(500)" json:"bio"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	LastLogin    *time.Time     `json:"last_login"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	CreatedTasks []Task           `gorm:"foreignKey:CreatorID" json:"-"`
	Assignments  []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
	Works        []Work           `gorm:"foreignKey:AuthorID" json:"-"`
}
