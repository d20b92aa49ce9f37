package panel

import (
	"context"
	"testing"

	customErrors "villagepulse-main/internal/types/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupTestRepo(t *testing.T) (*PanelDBRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger := zaptest.NewLogger(t).Sugar()
	repo := NewPanelDBRepository(db, logger)

	return repo, mock, func() { db.Close() }
}

func TestPanelDBRepository_GetByID(t *testing.T) {
	repo, mock, teardown := setupTestRepo(t)
	defer teardown()

	t.Run("success with quotas", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, size_target").
			WithArgs("panel-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size_target"}).
				AddRow("panel-1", "Beta testers", 30))

		mock.ExpectQuery("SELECT id, panel_id, key, expected_value, target_percentage").
			WithArgs("panel-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "panel_id", "key", "expected_value", "target_percentage"}).
				AddRow("q1", "panel-1", QuotaKeyRole, "PM", 40.0).
				AddRow("q2", "panel-1", QuotaKeyDepartment, "design", 25.0))

		p, err := repo.GetByID(context.Background(), "panel-1")

		assert.NoError(t, err)
		assert.Equal(t, "Beta testers", p.Name)
		assert.Len(t, p.Quotas, 2)
		assert.Equal(t, "PM", p.Quotas[0].ExpectedValue)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, size_target").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "size_target"}))

		p, err := repo.GetByID(context.Background(), "missing")
		assert.Nil(t, p)
		assert.ErrorIs(t, err, customErrors.ErrNotFound)
	})
}

func TestPanelDBRepository_ListMembers(t *testing.T) {
	repo, mock, teardown := setupTestRepo(t)
	defer teardown()

	mock.ExpectQuery("SELECT user_id, panel_id, role").
		WithArgs("panel-1").
		WillReturnRows(sqlmock.NewRows([]string{
			"user_id", "panel_id", "role", "village_id", "employee_id", "department", "active",
		}).
			AddRow("u1", "panel-1", "PM", "village-1", "e-1", "design", true).
			AddRow("u2", "panel-1", "USER", "", "e-2", "", true))

	members, err := repo.ListMembers(context.Background(), "panel-1")

	assert.NoError(t, err)
	assert.Len(t, members, 2)
	assert.Equal(t, "design", members[0].Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPanelDBRepository_HasActiveMembership(t *testing.T) {
	repo, mock, teardown := setupTestRepo(t)
	defer teardown()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	got, err := repo.HasActiveMembership(context.Background(), "u1")

	assert.NoError(t, err)
	assert.False(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
