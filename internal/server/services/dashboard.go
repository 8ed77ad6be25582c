package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/feedbackhub/internal/server/authz"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/users"
)

// Dashboard is the role-dependent aggregate. Managers get Employees and
// Feedback; employees get Timeline only.
type Dashboard struct {
	Role      models.Role
	Employees []*models.User
	Feedback  []*models.Feedback
	Timeline  []*models.Feedback
}

type DashboardService struct {
	users    users.Repository
	feedback *FeedbackService
}

func NewDashboardService(m repomanager.RepositoryManager, fs *FeedbackService) *DashboardService {
	return &DashboardService{users: m.Users(), feedback: fs}
}

// Get builds the caller's dashboard. The manager view lists every user
// pointing at the caller, whatever their role, and all authored feedback.
// The employee view is the newest EmployeeTimelineLimit records.
func (s *DashboardService) Get(ctx context.Context, caller authz.Caller) (*Dashboard, error) {
	rel, err := authz.RelationFor(caller.Role)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Role: caller.Role}

	switch rel {
	case authz.ManagerOf:
		d.Employees, err = s.users.ListByManager(ctx, caller.ID, "")
		if err != nil {
			return nil, fmt.Errorf("error listing employees: %w", err)
		}
		d.Feedback, err = s.feedback.listForCaller(ctx, caller, managerDashboardLimit)
		if err != nil {
			return nil, err
		}
	case authz.EmployeeOf:
		d.Timeline, err = s.feedback.listForCaller(ctx, caller, EmployeeTimelineLimit)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}
