package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultMongoDatabase is used when no database name is configured.
const DefaultMongoDatabase = "feedback_db"

type MongoRepositoryManager struct {
	client   *mongo.Client
	users    *users.MongoRepository
	feedback *feedback.MongoRepository
}

func newMongoRepositoryManager(client *mongo.Client, db *mongo.Database) *MongoRepositoryManager {
	return &MongoRepositoryManager{
		client:   client,
		users:    users.NewMongoRepository(db),
		feedback: feedback.NewMongoRepository(db, users.CollectionName),
	}
}

func NewMongoRepositoryManager(ctx context.Context, uri string, database string) (*MongoRepositoryManager, error) {
	if database == "" {
		database = DefaultMongoDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect error: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping error: %w", err)
	}

	return newMongoRepositoryManager(client, client.Database(database)), nil
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Feedback() feedback.Repository {
	return m.feedback
}

// RunMigrations has no schema to apply; it creates the indexes the
// repositories rely on, including the unique email index.
func (m *MongoRepositoryManager) RunMigrations(ctx context.Context) error {
	if err := m.users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := m.feedback.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("feedback indexes: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
