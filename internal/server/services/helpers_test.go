package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/server/authz"
	"github.com/dmitrijs2005/feedbackhub/internal/server/config"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type fixture struct {
	users     *UserService
	feedback  *FeedbackService
	dashboard *DashboardService
	repos     *repomanager.MemoryRepositoryManager
}

// tickingClock advances a minute per call so records get distinct,
// ordered timestamps.
func tickingClock() func() time.Time {
	t := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret

	m := repomanager.NewMemoryRepositoryManager()
	us := NewUserService(m, cfg)
	fs := NewFeedbackService(m)
	clk := tickingClock()
	us.now = clk
	fs.now = clk

	return &fixture{
		users:     us,
		feedback:  fs,
		dashboard: NewDashboardService(m, fs),
		repos:     m,
	}
}

func (f *fixture) register(t *testing.T, email string, role models.Role, managerID *string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), email, email+" name", "pw", role, managerID)
	require.NoError(t, err)
	return u
}

// team registers a manager with two employees.
func (f *fixture) team(t *testing.T, prefix string) (m, e1, e2 *models.User) {
	t.Helper()
	m = f.register(t, prefix+"m@x.com", models.RoleManager, nil)
	e1 = f.register(t, prefix+"e1@x.com", models.RoleEmployee, &m.ID)
	e2 = f.register(t, prefix+"e2@x.com", models.RoleEmployee, &m.ID)
	return m, e1, e2
}

func callerOf(u *models.User) authz.Caller {
	return authz.CallerFromUser(u)
}

func strPtr(s string) *string { return &s }
