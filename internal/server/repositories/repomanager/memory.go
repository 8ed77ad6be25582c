package repomanager

import (
	"context"

	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/feedback"
	"github.com/dmitrijs2005/feedbackhub/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Data is lost on
// restart; meant for tests and local runs.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	feedback *feedback.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	u := users.NewMemoryRepository()
	return &MemoryRepositoryManager{
		users:    u,
		feedback: feedback.NewMemoryRepository(u),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) Feedback() feedback.Repository {
	return m.feedback
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Close(ctx context.Context) error {
	return nil
}
