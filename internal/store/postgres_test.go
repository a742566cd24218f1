package store_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jpl-au/sift/internal/relevance"
	"github.com/jpl-au/sift/internal/sqlq"
	"github.com/jpl-au/sift/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*store.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		mock.ExpectClose()
		assert.NoError(t, db.Close())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return store.New(db, sqlq.Postgres), mock
}

func pgQuery(t *testing.T) *sqlq.Select {
	t.Helper()
	cfg := relevance.New("users", "id").Column("name", 10).MustBuild()
	q := sqlq.From("users")
	_, err := relevance.BuildSearchQuery(cfg, q, relevance.Request{Text: "john"})
	require.NoError(t, err)
	return q
}

func values(args []any) []driver.Value {
	out := make([]driver.Value, len(args))
	for i, a := range args {
		out[i] = a
	}
	return out
}

func TestPostgres_Query(t *testing.T) {
	s, mock := setupMock(t)
	q := pgQuery(t)

	query, args := q.Build(sqlq.Postgres)
	require.Contains(t, query, "$7")
	mock.ExpectQuery(query).
		WithArgs(values(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "relevance"}).
			AddRow(int64(1), "John", []byte("150")).
			AddRow(int64(3), "Johnny", "50.0"))

	rows, err := s.Query(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 150.0, rows[0].Relevance)
	assert.Equal(t, 50.0, rows[1].Relevance)
	assert.Equal(t, []string{"id", "name"}, rows[0].Columns)
	assert.Equal(t, "Johnny", rows[1].String("name"))
}

func TestPostgres_Count(t *testing.T) {
	s, mock := setupMock(t)
	q := pgQuery(t)
	q.Limit(5)

	query, args := q.Count(sqlq.Postgres)
	assert.NotContains(t, query, "LIMIT")
	mock.ExpectQuery(query).
		WithArgs(values(args)...).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))

	n, err := s.Count(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestPostgres_QueryError(t *testing.T) {
	s, mock := setupMock(t)
	q := pgQuery(t)

	query, _ := q.Build(sqlq.Postgres)
	mock.ExpectQuery(query).WillReturnError(errors.New("connection reset"))

	_, err := s.Query(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search query")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestPostgres_MissingRelevance(t *testing.T) {
	s, mock := setupMock(t)
	q := pgQuery(t)

	query, _ := q.Build(sqlq.Postgres)
	mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := s.Query(context.Background(), q)
	assert.ErrorIs(t, err, store.ErrNoRelevance)
}

func TestPostgres_BadRelevance(t *testing.T) {
	s, mock := setupMock(t)
	q := pgQuery(t)

	query, _ := q.Build(sqlq.Postgres)
	mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows([]string{"id", "relevance"}).AddRow(int64(1), "lots"))

	_, err := s.Query(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse relevance")
}
