package dietsession

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	s := domain.DietSession{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Title:   "Second Trimester - 65kg",
		Request: domain.DietRequest{Trimester: "Second", Weight: 65},
		Plan:    domain.DefaultDietPlan(),
	}

	mock.ExpectExec(`INSERT INTO diet_sessions \(id,user_id,title,trimester,weight,health_conditions,dietary_preference,diet_plan,created_at,updated_at\)`).
		WithArgs(s.ID, s.UserID, s.Title, "Second", 65.0, "", "", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, New(mock).Create(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Delete_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectExec(`DELETE FROM diet_sessions WHERE`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = New(mock).Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_Integration(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)

	older := domain.DietSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "First Trimester - 58kg",
		Request:   domain.DietRequest{Trimester: "First", Weight: 58, DietaryPreference: "vegetarian"},
		Plan:      domain.DefaultDietPlan(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	newer := older
	newer.ID = uuid.New()
	newer.Title = "Third Trimester - 70kg"
	newer.Request = domain.DietRequest{Trimester: "Third", Weight: 70}
	newer.UpdatedAt = now.Add(time.Minute)

	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.True(t, list[1].Plan.IsComplete())

	got, err := repo.Get(ctx, userID, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "vegetarian", got.Request.DietaryPreference)
	assert.Equal(t, older.Plan, got.Plan)

	_, err = repo.Get(ctx, uuid.New(), older.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, userID, older.ID))
	_, err = repo.Get(ctx, userID, older.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
