package content

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	ID   string
	Name string
}

func scanPair(row Scanner) (*pair, error) {
	var p pair
	if err := row.Scan(&p.ID, &p.Name); err != nil {
		return nil, err
	}
	return &p, nil
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestQueryOne(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name FROM things WHERE id = \$1`).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("1", "one"))
	mock.ExpectQuery(`SELECT id, name FROM things WHERE id = \$1`).
		WithArgs("2").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id, name FROM things WHERE id = \$1`).
		WithArgs("3").
		WillReturnError(errors.New("conn reset"))

	got, err := QueryOne(context.Background(), db, scanPair, `SELECT id, name FROM things WHERE id = $1`, "1")
	require.NoError(t, err)
	assert.Equal(t, &pair{ID: "1", Name: "one"}, got)

	_, err = QueryOne(context.Background(), db, scanPair, `SELECT id, name FROM things WHERE id = $1`, "2")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = QueryOne(context.Background(), db, scanPair, `SELECT id, name FROM things WHERE id = $1`, "3")
	assert.ErrorContains(t, err, "db error: conn reset")
}

func TestQueryOne_ForeignKey(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO things`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "things_owner_fkey"})

	_, err := QueryOne(context.Background(), db, scanPair, `INSERT INTO things (owner) VALUES ($1) RETURNING id, name`, "x")
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.ErrorContains(t, err, "things_owner_fkey")
}

func TestQueryAll(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT id, name FROM things`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow("1", "one").AddRow("2", "two"))
	mock.ExpectQuery(`SELECT id, name FROM things`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectQuery(`SELECT id, name FROM things`).
		WillReturnError(errors.New("boom"))

	got, err := QueryAll(context.Background(), db, scanPair, `SELECT id, name FROM things`)
	require.NoError(t, err)
	assert.Equal(t, []pair{{"1", "one"}, {"2", "two"}}, got)

	got, err = QueryAll(context.Background(), db, scanPair, `SELECT id, name FROM things`)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = QueryAll(context.Background(), db, scanPair, `SELECT id, name FROM things`)
	assert.ErrorContains(t, err, "db error: boom")
}

func TestDeleteByID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`^DELETE FROM things WHERE id = \$1$`).WithArgs("1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE FROM things WHERE id = \$1$`).WithArgs("2").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`^DELETE FROM things WHERE id = \$1$`).WithArgs("3").WillReturnError(errors.New("fail"))

	ok, err := DeleteByID(context.Background(), db, "things", "1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = DeleteByID(context.Background(), db, "things", "2")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = DeleteByID(context.Background(), db, "things", "3")
	assert.ErrorContains(t, err, "db error: fail")
	assert.NoError(t, mock.ExpectationsWereMet())
}
