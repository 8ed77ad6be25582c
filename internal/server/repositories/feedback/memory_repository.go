package feedback

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
)

// TeamLookup resolves an employee's manager reference. The in-memory users
// repository satisfies it through GetByID.
type TeamLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// MemoryRepository keeps feedback in process memory. Team checks and inserts
// happen under the same lock.
type MemoryRepository struct {
	mu    sync.RWMutex
	users TeamLookup
	items map[string]*models.Feedback
}

func NewMemoryRepository(users TeamLookup) *MemoryRepository {
	return &MemoryRepository{users: users, items: make(map[string]*models.Feedback)}
}

func (r *MemoryRepository) CreateForTeam(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, err := r.users.GetByID(ctx, fb.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.ManagerRef() != fb.ManagerID {
		return nil, common.ErrorNotFound
	}

	c := *fb
	r.items[fb.ID] = &c
	return fb, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Feedback, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fb, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *fb
	return &c, nil
}

func (r *MemoryRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*models.Feedback, error) {
	return r.list(func(f *models.Feedback) bool { return f.EmployeeID == employeeID }, limit), nil
}

func (r *MemoryRepository) ListByManager(ctx context.Context, managerID string, limit int) ([]*models.Feedback, error) {
	return r.list(func(f *models.Feedback) bool { return f.ManagerID == managerID }, limit), nil
}

func (r *MemoryRepository) list(match func(*models.Feedback) bool, limit int) []*models.Feedback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Feedback, 0)
	for _, f := range r.items {
		if match(f) {
			c := *f
			result = append(result, &c)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch models.FeedbackPatch, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	patch.Apply(fb)
	fb.UpdatedAt = updatedAt
	return nil
}

func (r *MemoryRepository) Acknowledge(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fb, ok := r.items[id]
	if !ok {
		return common.ErrorNotFound
	}
	fb.Acknowledged = true
	return nil
}
