// Package models holds the client-side shapes of the feedback API payloads.
package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	ManagerID   *string   `json:"managerId,omitempty"`
	ManagerName *string   `json:"managerName,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Feedback struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	ManagerID    string    `json:"manager_id"`
	Strengths    string    `json:"strengths"`
	Improvements string    `json:"improvements"`
	Sentiment    string    `json:"sentiment"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	Password  string  `json:"password"`
	Role      string  `json:"role"`
	ManagerID *string `json:"managerId,omitempty"`
}

type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type NewFeedback struct {
	EmployeeID   string `json:"employee_id"`
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
	Sentiment    string `json:"sentiment"`
}

// FeedbackPatch sends only the fields that are set.
type FeedbackPatch struct {
	Strengths    *string `json:"strengths,omitempty"`
	Improvements *string `json:"improvements,omitempty"`
	Sentiment    *string `json:"sentiment,omitempty"`
}

// Dashboard is either the manager view (Employees, Feedbacks) or the
// employee timeline, depending on the caller's role.
type Dashboard struct {
	Employees []User     `json:"employees"`
	Feedbacks []Feedback `json:"feedbacks"`
	Timeline  []Feedback `json:"timeline,omitempty"`
}

// UnmarshalJSON accepts both dashboard shapes the server produces: an
// object for managers and a bare array for employees.
func (d *Dashboard) UnmarshalJSON(b []byte) error {
	var timeline []Feedback
	if err := json.Unmarshal(b, &timeline); err == nil {
		*d = Dashboard{Timeline: timeline}
		return nil
	}

	var mgr struct {
		Employees []User     `json:"employees"`
		Feedbacks []Feedback `json:"feedbacks"`
	}
	if err := json.Unmarshal(b, &mgr); err != nil {
		return err
	}
	*d = Dashboard{Employees: mgr.Employees, Feedbacks: mgr.Feedbacks}
	return nil
}
