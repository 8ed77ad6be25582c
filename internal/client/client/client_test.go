package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/feedbackhub/internal/client/models"
	"github.com/dmitrijs2005/feedbackhub/internal/logging"
	"github.com/dmitrijs2005/feedbackhub/internal/server/config"
	"github.com/dmitrijs2005/feedbackhub/internal/server/httpapi"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/feedbackhub/internal/server/services"
)

// newBackend starts the real API over in-memory storage.
func newBackend(t *testing.T) *Client {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()

	m := repomanager.NewMemoryRepositoryManager()
	us := services.NewUserService(m, cfg)
	fs := services.NewFeedbackService(m)
	ds := services.NewDashboardService(m, fs)

	srv := httptest.NewServer(httpapi.NewHTTPServer(":0", logging.Nop(), us, fs, ds, cfg.CORSAllowOrigins).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 5*time.Second)
}

func login(t *testing.T, c *Client, email, role string, managerID *string) (*Client, *models.LoginResponse) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.Register(ctx, models.RegisterRequest{
		Email: email, Name: email, Password: "pw", Role: role, ManagerID: managerID,
	}))
	res, err := c.Login(ctx, email, "pw")
	require.NoError(t, err)
	return c.WithToken(res.Token), res
}

func TestClient_FeedbackLifecycle(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)
	require.NoError(t, c.Ping(ctx))

	mgr, mres := login(t, c, "boss@example.com", "manager", nil)
	emp, eres := login(t, c, "dev@example.com", "employee", &mres.User.ID)

	require.NotNil(t, eres.User.ManagerName)
	assert.Equal(t, "boss@example.com", *eres.User.ManagerName)

	team, err := mgr.Team(ctx)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, eres.User.ID, team[0].ID)

	id, err := mgr.CreateFeedback(ctx, models.NewFeedback{
		EmployeeID: eres.User.ID, Strengths: "ships", Improvements: "docs", Sentiment: "positive",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	improved := "tests"
	require.NoError(t, mgr.UpdateFeedback(ctx, id, models.FeedbackPatch{Improvements: &improved}))

	fb, err := emp.GetFeedback(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "tests", fb.Improvements)
	assert.Equal(t, "ships", fb.Strengths)
	assert.False(t, fb.Acknowledged)

	require.NoError(t, emp.Acknowledge(ctx, id))

	list, err := emp.ListFeedback(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Acknowledged)

	dash, err := mgr.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, dash.Employees, 1)
	assert.Len(t, dash.Feedbacks, 1)

	dash, err = emp.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, dash.Timeline, 1)

	me, err := emp.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", me.Email)

	u, err := c.GetUser(ctx, mres.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "manager", u.Role)
}

func TestClient_ErrorMapping(t *testing.T) {
	ctx := context.Background()
	c := newBackend(t)

	mgr, _ := login(t, c, "m@example.com", "manager", nil)
	emp, _ := login(t, c, "e@example.com", "employee", nil)

	_, err := c.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = emp.Team(ctx)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = c.GetUser(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = mgr.CreateFeedback(ctx, models.NewFeedback{
		EmployeeID: "00000000-0000-0000-0000-000000000000", Sentiment: "neutral",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	err = c.Register(ctx, models.RegisterRequest{Email: "m@example.com", Name: "x", Password: "pw", Role: "manager"})
	assert.ErrorIs(t, err, ErrConflict)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.NotEmpty(t, apiErr.Detail)
}

func TestClient_ValidationDetailKeptRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"field":"email"}]}`))
	}))
	defer srv.Close()

	err := New(srv.URL, time.Second).Register(context.Background(), models.RegisterRequest{})
	require.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), `"field":"email"`)
}

func TestClient_SendsBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	base := New(srv.URL, time.Second)
	_, err := base.WithToken("abc").ListFeedback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", got)

	_, err = base.ListFeedback(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, time.Second).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestAPIError_UnwrapUnknownStatus(t *testing.T) {
	err := &APIError{Status: http.StatusInternalServerError}
	assert.Nil(t, errors.Unwrap(err))
	assert.Equal(t, "server returned 500", err.Error())
}
