package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "feedback"

type feedbackDocument struct {
	ID           string    `bson:"_id"`
	EmployeeID   string    `bson:"employee_id"`
	ManagerID    string    `bson:"manager_id"`
	Strengths    string    `bson:"strengths"`
	Improvements string    `bson:"improvements"`
	Sentiment    string    `bson:"sentiment"`
	Acknowledged bool      `bson:"acknowledged"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toDocument(f *models.Feedback) feedbackDocument {
	return feedbackDocument{
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

func (d feedbackDocument) toModel() *models.Feedback {
	return &models.Feedback{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		ManagerID:    d.ManagerID,
		Strengths:    d.Strengths,
		Improvements: d.Improvements,
		Sentiment:    models.Sentiment(d.Sentiment),
		Acknowledged: d.Acknowledged,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// MongoRepository stores feedback documents. Mongo gives single-document
// atomicity only, so CreateForTeam checks the team and then inserts; a
// concurrent reassignment of the employee can slip in between.
type MongoRepository struct {
	coll  *mongo.Collection
	users *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, usersCollection string) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName), users: db.Collection(usersCollection)}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *MongoRepository) CreateForTeam(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	var emp struct {
		ManagerID *string `bson:"manager_id"`
	}
	opts := options.FindOne().SetProjection(bson.D{{Key: "manager_id", Value: 1}})
	err := r.users.FindOne(ctx, bson.D{{Key: "_id", Value: fb.EmployeeID}}, opts).Decode(&emp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if emp.ManagerID == nil || *emp.ManagerID != fb.ManagerID {
		return nil, common.ErrorNotFound
	}

	if _, err := r.coll.InsertOne(ctx, toDocument(fb)); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return fb, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	var d feedbackDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d.toModel(), nil
}

func (r *MongoRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*models.Feedback, error) {
	return r.list(ctx, bson.D{{Key: "employee_id", Value: employeeID}}, limit)
}

func (r *MongoRepository) ListByManager(ctx context.Context, managerID string, limit int) ([]*models.Feedback, error) {
	return r.list(ctx, bson.D{{Key: "manager_id", Value: managerID}}, limit)
}

func (r *MongoRepository) list(ctx context.Context, filter bson.D, limit int) ([]*models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*models.Feedback, 0)
	for cur.Next(ctx) {
		var d feedbackDocument
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, d.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, patch models.FeedbackPatch, updatedAt time.Time) error {
	set := bson.D{{Key: "updated_at", Value: updatedAt}}
	if patch.Strengths != nil {
		set = append(set, bson.E{Key: "strengths", Value: *patch.Strengths})
	}
	if patch.Improvements != nil {
		set = append(set, bson.E{Key: "improvements", Value: *patch.Improvements})
	}
	if patch.Sentiment != nil {
		set = append(set, bson.E{Key: "sentiment", Value: string(*patch.Sentiment)})
	}

	return r.updateOne(ctx, id, set)
}

func (r *MongoRepository) Acknowledge(ctx context.Context, id string) error {
	return r.updateOne(ctx, id, bson.D{{Key: "acknowledged", Value: true}})
}

func (r *MongoRepository) updateOne(ctx context.Context, id string, set bson.D) error {
	res, err := r.coll.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}
