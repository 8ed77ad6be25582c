package feedback

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var (
	lockEmployeeQuery = `(?s)^SELECT\s+manager_id\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s+FOR\s+SHARE$`
	insertQuery       = `(?s)^INSERT\s+INTO\s+feedback\s*\(id,\s*employee_id,\s*manager_id,.*RETURNING\s+id$`
	selectByIDQuery   = `(?s)^SELECT\s+id,\s*employee_id,.*FROM\s+feedback\s+WHERE\s+id\s*=\s*\$1$`
	byEmployeeQuery   = `(?s)^SELECT\s+.*FROM\s+feedback\s+WHERE\s+employee_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC\s+LIMIT\s+\$2$`
	byManagerQuery    = `(?s)^SELECT\s+.*FROM\s+feedback\s+WHERE\s+manager_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC,\s*id\s+DESC$`
	updateQuery       = `(?s)^UPDATE\s+feedback\s+SET\s+strengths\s*=\s*COALESCE\(\$2,\s*strengths\).*updated_at\s*=\s*\$5\s+WHERE\s+id\s*=\s*\$1$`
	ackQuery          = `(?s)^UPDATE\s+feedback\s+SET\s+acknowledged\s*=\s*TRUE\s+WHERE\s+id\s*=\s*\$1$`
	feedbackColumns   = []string{"id", "employee_id", "manager_id", "strengths", "improvements", "sentiment", "acknowledged", "created_at", "updated_at"}
)

func sampleFeedback() *models.Feedback {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	return &models.Feedback{
		ID: "f-1", EmployeeID: "e-1", ManagerID: "m-1",
		Strengths: "good", Improvements: "none", Sentiment: models.SentimentPositive,
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestCreateForTeam_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	fb := sampleFeedback()

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeQuery).WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{"manager_id"}).AddRow("m-1"))
	mock.ExpectQuery(insertQuery).
		WithArgs("f-1", "e-1", "m-1", "good", "none", "positive", false, fb.CreatedAt, fb.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("f-1"))
	mock.ExpectCommit()

	got, err := repo.CreateForTeam(context.Background(), fb)
	require.NoError(t, err)
	assert.Equal(t, "f-1", got.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForTeam_OtherTeam(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeQuery).WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{"manager_id"}).AddRow("m-2"))
	mock.ExpectRollback()

	_, err := repo.CreateForTeam(context.Background(), sampleFeedback())
	assert.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateForTeam_NoManager(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeQuery).WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{"manager_id"}).AddRow(nil))
	mock.ExpectRollback()

	_, err := repo.CreateForTeam(context.Background(), sampleFeedback())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreateForTeam_UnknownEmployee(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeQuery).WithArgs("e-1").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.CreateForTeam(context.Background(), sampleFeedback())
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreateForTeam_InsertError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(lockEmployeeQuery).WithArgs("e-1").
		WillReturnRows(sqlmock.NewRows([]string{"manager_id"}).AddRow("m-1"))
	mock.ExpectQuery(insertQuery).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.CreateForTeam(context.Background(), sampleFeedback())
	assert.ErrorContains(t, err, "db error: disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	fb := sampleFeedback()

	mock.ExpectQuery(selectByIDQuery).WithArgs("f-1").
		WillReturnRows(sqlmock.NewRows(feedbackColumns).
			AddRow("f-1", "e-1", "m-1", "good", "none", "positive", true, fb.CreatedAt, fb.UpdatedAt))

	got, err := repo.GetByID(context.Background(), "f-1")
	require.NoError(t, err)
	assert.Equal(t, models.SentimentPositive, got.Sentiment)
	assert.True(t, got.Acknowledged)

	mock.ExpectQuery(selectByIDQuery).WithArgs("f-2").WillReturnError(sql.ErrNoRows)
	_, err = repo.GetByID(context.Background(), "f-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByEmployee_WithLimit(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(byEmployeeQuery).WithArgs("e-1", 50).
		WillReturnRows(sqlmock.NewRows(feedbackColumns).
			AddRow("f-2", "e-1", "m-1", "s", "i", "neutral", false, now, now).
			AddRow("f-1", "e-1", "m-1", "s", "i", "negative", false, now.Add(-time.Hour), now))

	got, err := repo.ListByEmployee(context.Background(), "e-1", 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "f-2", got[0].ID)
}

func TestListByManager_NoLimit(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(byManagerQuery).WithArgs("m-1").
		WillReturnRows(sqlmock.NewRows(feedbackColumns))

	got, err := repo.ListByManager(context.Background(), "m-1", 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Now()
	s := "sharper"
	neg := models.SentimentNegative

	mock.ExpectExec(updateQuery).
		WithArgs("f-1", "sharper", nil, "negative", at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "f-1", models.FeedbackPatch{Strengths: &s, Sentiment: &neg}, at)
	require.NoError(t, err)

	mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 0))
	err = repo.Update(context.Background(), "f-9", models.FeedbackPatch{Strengths: &s}, at)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAcknowledge(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(ackQuery).WithArgs("f-1").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Acknowledge(context.Background(), "f-1"))

	mock.ExpectExec(ackQuery).WithArgs("f-9").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Acknowledge(context.Background(), "f-9"), common.ErrorNotFound)

	mock.ExpectExec(ackQuery).WithArgs("f-1").WillReturnError(errors.New("conn reset"))
	assert.ErrorContains(t, repo.Acknowledge(context.Background(), "f-1"), "db error: conn reset")
}
