package httpapi

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/dmitrijs2005/feedbackhub/internal/server/services"
)

type registerRequest struct {
	Email     string  `json:"email" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Password  string  `json:"password" binding:"required"`
	Role      string  `json:"role" binding:"required,oneof=manager employee"`
	ManagerID *string `json:"managerId"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Text fields are pointers so an empty string passes "required".
type createFeedbackRequest struct {
	EmployeeID   string  `json:"employee_id" binding:"required"`
	Strengths    *string `json:"strengths" binding:"required"`
	Improvements *string `json:"improvements" binding:"required"`
	Sentiment    string  `json:"sentiment" binding:"required,oneof=positive neutral negative"`
}

type updateFeedbackRequest struct {
	Strengths    *string `json:"strengths"`
	Improvements *string `json:"improvements"`
	Sentiment    *string `json:"sentiment" binding:"omitempty,oneof=positive neutral negative"`
}

func (r updateFeedbackRequest) patch() models.FeedbackPatch {
	p := models.FeedbackPatch{Strengths: r.Strengths, Improvements: r.Improvements}
	if r.Sentiment != nil {
		s := models.Sentiment(*r.Sentiment)
		p.Sentiment = &s
	}
	return p
}

type ackRequest struct {
	FeedbackID string `json:"feedback_id" binding:"required"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type idResponse struct {
	ID string `json:"id"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ManagerID *string   `json:"managerId,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(u *models.User) userResponse {
	r := userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.HasManager() {
		r.ManagerID = u.ManagerID
	}
	return r
}

func toUserResponses(users []*models.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// loginUserResponse adds managerName, which is either absent or present and
// possibly null. RawMessage with omitempty expresses both.
type loginUserResponse struct {
	userResponse
	ManagerName json.RawMessage `json:"managerName,omitempty"`
}

type loginResponse struct {
	User  loginUserResponse `json:"user"`
	Token string            `json:"token"`
}

func toLoginResponse(res *services.LoginResult) (loginResponse, error) {
	u := loginUserResponse{userResponse: toUserResponse(res.User)}
	if res.HasManagerName {
		b, err := json.Marshal(res.ManagerName)
		if err != nil {
			return loginResponse{}, err
		}
		u.ManagerName = b
	}
	return loginResponse{User: u, Token: res.Token}, nil
}

type feedbackResponse struct {
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

func toFeedbackResponse(f *models.Feedback) feedbackResponse {
	return feedbackResponse{
		ID:           f.ID,
		EmployeeID:   f.EmployeeID,
		ManagerID:    f.ManagerID,
		Strengths:    f.Strengths,
		Improvements: f.Improvements,
		Sentiment:    string(f.Sentiment),
		Acknowledged: f.Acknowledged,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

func toFeedbackResponses(list []*models.Feedback) []feedbackResponse {
	out := make([]feedbackResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFeedbackResponse(f))
	}
	return out
}

type managerDashboardResponse struct {
	Employees []userResponse     `json:"employees"`
	Feedbacks []feedbackResponse `json:"feedbacks"`
}
