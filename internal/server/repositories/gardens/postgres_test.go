package gardens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/soulbloom/internal/common"
	"github.com/dmitrijs2005/soulbloom/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	columns = []string{"id", "user_id", "last_watered", "created_at"}
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewPostgresRepository(db), mock
}

const insertQ = `(?s)^INSERT\s+INTO\s+gardens\s*\(id,\s*user_id,\s*last_watered,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)$`

func TestCreate_NullLastWatered(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).
		WithArgs("g-1", "u-1", sql.NullTime{}, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), &models.Garden{ID: "g-1", UserID: "u-1", CreatedAt: created})
	require.NoError(t, err)
	assert.Nil(t, got.LastWatered)
}

func TestCreate_Watered(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQ).
		WithArgs("g-1", "u-1", sql.NullTime{Time: created, Valid: true}, created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	at := created
	_, err := repo.Create(context.Background(), &models.Garden{ID: "g-1", UserID: "u-1", LastWatered: &at, CreatedAt: created})
	require.NoError(t, err)
}

func TestGetByID(t *testing.T) {
	const q = `(?s)^SELECT\s+id,\s*user_id,\s*last_watered,\s*created_at\s+FROM\s+gardens\s+WHERE\s+id\s*=\s*\$1$`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		watered := created.Add(time.Hour)
		mock.ExpectQuery(q).WithArgs("g-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("g-1", "u-1", watered, created))

		g, err := repo.GetByID(context.Background(), "g-1")
		require.NoError(t, err)
		require.NotNil(t, g.LastWatered)
		assert.True(t, g.LastWatered.Equal(watered))
		assert.Equal(t, "u-1", g.UserID)
	})

	t.Run("never watered", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("g-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("g-1", "u-1", nil, created))

		g, err := repo.GetByID(context.Background(), "g-1")
		require.NoError(t, err)
		assert.Nil(t, g.LastWatered)
	})

	t.Run("missing", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs("g-9").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "g-9")
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestListByOwner_OrderedByCreation(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)FROM\s+gardens\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at,\s*id$`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("g-1", "u-1", nil, created).
			AddRow("g-2", "u-1", nil, created.Add(time.Minute)))

	got, err := repo.ListByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "g-1", got[0].ID)
	assert.Equal(t, "g-2", got[1].ID)
}

func TestUpdateLastWatered(t *testing.T) {
	const q = `(?s)^UPDATE\s+gardens\s+SET\s+last_watered\s*=\s*\$1\s+WHERE\s+id\s*=\s*\$2\s+AND\s+user_id\s*=\s*\$3\s+RETURNING`
	at := created.Add(2 * time.Hour)

	t.Run("owned", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(at, "g-1", "u-1").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("g-1", "u-1", at, created))

		g, err := repo.UpdateLastWatered(context.Background(), "g-1", "u-1", at)
		require.NoError(t, err)
		require.NotNil(t, g.LastWatered)
		assert.True(t, g.LastWatered.Equal(at))
	})

	t.Run("not owned or missing", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(at, "g-1", "u-2").WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateLastWatered(context.Background(), "g-1", "u-2", at)
		require.ErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+gardens\s+WHERE\s+id\s*=\s*\$1$`).WithArgs("g-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE\s+FROM\s+gardens\s+WHERE\s+id\s*=\s*\$1$`).WithArgs("g-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "g-1"))
	require.ErrorIs(t, repo.Delete(context.Background(), "g-1"), common.ErrorNotFound)
}

func TestDeleteByOwner(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^DELETE\s+FROM\s+gardens\s+WHERE\s+user_id\s*=\s*\$1$`).WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`^DELETE\s+FROM\s+gardens\s+WHERE\s+user_id\s*=\s*\$1$`).WithArgs("u-2").
		WillReturnError(errors.New("conn reset"))

	n, err := repo.DeleteByOwner(context.Background(), "u-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, err = repo.DeleteByOwner(context.Background(), "u-2")
	require.ErrorContains(t, err, "db error")
}
