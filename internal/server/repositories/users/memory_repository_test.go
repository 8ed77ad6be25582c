package users

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	_, err := r.Create(ctx, &models.User{ID: "m-1", Email: "m@x.com", Name: "Mia", Role: models.RoleManager})
	require.NoError(t, err)

	_, err = r.Create(ctx, &models.User{ID: "m-2", Email: "m@x.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	byID, err := r.GetByID(ctx, "m-1")
	require.NoError(t, err)
	assert.Equal(t, "Mia", byID.Name)

	byEmail, err := r.GetByEmail(ctx, "m@x.com")
	require.NoError(t, err)
	assert.Equal(t, "m-1", byEmail.ID)

	_, err = r.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = r.GetByEmail(ctx, "nope@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	_, err := r.Create(ctx, &models.User{ID: "e-1", Email: "e@x.com", ManagerID: strPtr("m-1")})
	require.NoError(t, err)

	got, err := r.GetByID(ctx, "e-1")
	require.NoError(t, err)
	*got.ManagerID = "tampered"

	again, err := r.GetByID(ctx, "e-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", *again.ManagerID)
}

func TestMemoryRepository_ListByManager(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	for _, u := range []*models.User{
		{ID: "e-2", Email: "b@x.com", Name: "Bob", Role: models.RoleEmployee, ManagerID: strPtr("m-1")},
		{ID: "e-1", Email: "a@x.com", Name: "Ann", Role: models.RoleEmployee, ManagerID: strPtr("m-1")},
		{ID: "x-1", Email: "c@x.com", Name: "Cat", Role: models.RoleManager, ManagerID: strPtr("m-1")},
		{ID: "e-3", Email: "d@x.com", Name: "Dan", Role: models.RoleEmployee, ManagerID: strPtr("m-2")},
	} {
		_, err := r.Create(ctx, u)
		require.NoError(t, err)
	}

	employees, err := r.ListByManager(ctx, "m-1", models.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ann", employees[0].Name)
	assert.Equal(t, "Bob", employees[1].Name)

	all, err := r.ListByManager(ctx, "m-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := r.ListByManager(ctx, "m-9", "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
