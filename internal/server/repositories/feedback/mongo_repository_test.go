package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func feedbackDoc(id string, created time.Time, acknowledged bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "employee_id", Value: "e-1"},
		{Key: "manager_id", Value: "m-1"},
		{Key: "strengths", Value: "good"},
		{Key: "improvements", Value: "none"},
		{Key: "sentiment", Value: "positive"},
		{Key: "acknowledged", Value: acknowledged},
		{Key: "created_at", Value: created},
		{Key: "updated_at", Value: created},
	}
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "feedback_db." + CollectionName
	usersNS := "feedback_db.users"
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)

	mt.Run("create for team", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: "e-1"}, {Key: "manager_id", Value: "m-1"}}),
			mtest.CreateSuccessResponse(),
		)

		fb, err := repo.CreateForTeam(context.Background(), sampleFeedback())
		require.NoError(mt, err)
		assert.Equal(mt, "f-1", fb.ID)
	})

	mt.Run("create for another team", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch, bson.D{{Key: "_id", Value: "e-1"}, {Key: "manager_id", Value: "m-9"}}),
		)

		_, err := repo.CreateForTeam(context.Background(), sampleFeedback())
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("create for unknown employee", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, usersNS, mtest.FirstBatch))

		_, err := repo.CreateForTeam(context.Background(), sampleFeedback())
		assert.ErrorIs(mt, err, common.ErrorNotFound)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, feedbackDoc("f-1", now, true)))

		fb, err := repo.GetByID(context.Background(), "f-1")
		require.NoError(mt, err)
		assert.True(mt, fb.Acknowledged)
		assert.Equal(mt, models.SentimentPositive, fb.Sentiment)
	})

	mt.Run("list by employee", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			feedbackDoc("f-2", now, false),
			feedbackDoc("f-1", now.Add(-time.Hour), false),
		))

		got, err := repo.ListByEmployee(context.Background(), "e-1", 50)
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "f-2", got[0].ID)
	})

	mt.Run("update matched", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		s := "new"
		require.NoError(mt, repo.Update(context.Background(), "f-1", models.FeedbackPatch{Strengths: &s}, now))
	})

	mt.Run("acknowledge missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.DB, "users")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		assert.ErrorIs(mt, repo.Acknowledge(context.Background(), "f-9"), common.ErrorNotFound)
	})
}

func TestFeedbackDocumentMapping(t *testing.T) {
	fb := sampleFeedback()
	assert.Equal(t, fb, toDocument(fb).toModel())
}
