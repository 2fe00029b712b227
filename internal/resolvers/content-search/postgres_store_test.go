package contentsearch

import (
	"context"
	"errors"
	"testing"

	"craft-assistant/internal/common/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedQuery = `SELECT title, url, content FROM "brand_pages" WHERE content ILIKE $1 ESCAPE '\' ORDER BY LENGTH(content) ASC LIMIT 1`

func createTestPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := NewPostgresStore(database.NewPostgresFromDB(db), "brand_pages")
	require.NoError(t, err)
	return store, mock
}

func TestPostgresStore_FindShortestMatch(t *testing.T) {
	store, mock := createTestPostgresStore(t)

	rows := sqlmock.NewRows([]string{"title", "url", "content"}).
		AddRow("Bamboo", "https://dhonkcraft.example/bamboo", "Our bamboo baskets are handmade.")
	mock.ExpectQuery(expectedQuery).WithArgs("%bamboo%").WillReturnRows(rows)

	record, err := store.FindShortestMatch(context.Background(), "bamboo")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Bamboo", record.Title)
	assert.Equal(t, "https://dhonkcraft.example/bamboo", record.URL)
	assert.Equal(t, "Our bamboo baskets are handmade.", record.Content)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_NullURL(t *testing.T) {
	store, mock := createTestPostgresStore(t)

	rows := sqlmock.NewRows([]string{"title", "url", "content"}).AddRow(nil, nil, "Jute bags.")
	mock.ExpectQuery(expectedQuery).WithArgs("%jute%").WillReturnRows(rows)

	record, err := store.FindShortestMatch(context.Background(), "jute")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Empty(t, record.URL)
	assert.Empty(t, record.Title)
}

func TestPostgresStore_EscapesLikeMetacharacters(t *testing.T) {
	store, mock := createTestPostgresStore(t)

	mock.ExpectQuery(expectedQuery).
		WithArgs(`%100\% cotton\_wool\\%`).
		WillReturnRows(sqlmock.NewRows([]string{"title", "url", "content"}))

	record, err := store.FindShortestMatch(context.Background(), `100% cotton_wool\`)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_NoRows(t *testing.T) {
	store, mock := createTestPostgresStore(t)

	mock.ExpectQuery(expectedQuery).WithArgs("%zebra%").
		WillReturnRows(sqlmock.NewRows([]string{"title", "url", "content"}))

	record, err := store.FindShortestMatch(context.Background(), "zebra")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestPostgresStore_QueryError(t *testing.T) {
	store, mock := createTestPostgresStore(t)

	mock.ExpectQuery(expectedQuery).WithArgs("%bamboo%").
		WillReturnError(errors.New(`relation "brand_pages" does not exist`))

	record, err := store.FindShortestMatch(context.Background(), "bamboo")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrQueryFailed)
}

func TestPostgresStore_ConnectionUnavailable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	store, err := NewPostgresStore(database.NewPostgresFromDB(db), "brand_pages")
	require.NoError(t, err)

	mock.ExpectClose()
	require.NoError(t, db.Close())

	record, err := store.FindShortestMatch(context.Background(), "bamboo")
	assert.Nil(t, record)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestNewPostgresStore_RejectsBadTableName(t *testing.T) {
	_, err := NewPostgresStore(nil, "pages; DROP TABLE users")
	assert.Error(t, err)
}

func TestPostgresStore_QueryTimeoutIsStoreUnavailable(t *testing.T) {
	store, mock := createTestPostgresStore(t)

	mock.ExpectQuery(expectedQuery).WithArgs("%silk%").WillReturnError(context.DeadlineExceeded)

	_, err := store.FindShortestMatch(context.Background(), "silk")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "CONTENT_STORE_UNAVAILABLE", string(errorCode(err)))
}
