// Package models holds the server-side domain records shared by services and
// repositories.
package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleManager, RoleEmployee:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	ManagerID    *string
	CreatedAt    time.Time
}

// HasManager reports whether the user carries a manager reference.
func (u *User) HasManager() bool {
	return u.ManagerID != nil && *u.ManagerID != ""
}

// ManagerRef and EmployeeRef let a user act as an authorization resource:
// an employee record is "employed by" itself and "managed by" its manager ref.
func (u *User) ManagerRef() string {
	if u.ManagerID == nil {
		return ""
	}
	return *u.ManagerID
}

func (u *User) EmployeeRef() string {
	return u.ID
}
