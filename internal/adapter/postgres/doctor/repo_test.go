package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

func TestRepo_Upsert_CheckViolation(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	mock.ExpectQuery(`INSERT INTO doctors .* ON CONFLICT \(phone\) DO UPDATE`).
		WithArgs("Dr. Rao", "555-0100", "", "", "").
		WillReturnError(&pgconn.PgError{Code: "23514"})

	_, err = New(mock).Upsert(context.Background(), domain.DoctorProfile{Name: "Dr. Rao", Phone: "555-0100"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Upsert_DBError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	boom := errors.New("connection reset")
	mock.ExpectQuery(`INSERT INTO doctors`).WillReturnError(boom)

	_, err = New(mock).Upsert(context.Background(), domain.DoctorProfile{Name: "a", Phone: "b"})
	assert.ErrorIs(t, err, boom)
}

func TestRepo_Integration_Upsert(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, domain.DoctorProfile{
		Name:      "Dr. Amara Okafor",
		Phone:     "+1-555-0199",
		Specialty: "Obstetrics",
		Location:  "Lagos",
	})
	require.NoError(t, err)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := repo.Upsert(ctx, domain.DoctorProfile{
		Name:      "Dr. Amara Okafor",
		Phone:     "+1-555-0199",
		Specialty: "Maternal-Fetal Medicine",
		Location:  "Abuja",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Maternal-Fetal Medicine", second.Specialty)
	assert.Equal(t, "Abuja", second.Location)

	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM doctors WHERE phone = $1`, "+1-555-0199").Scan(&n))
	assert.Equal(t, 1, n)
}
