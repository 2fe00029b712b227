package contentsearch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"craft-assistant/internal/common/database"
	"craft-assistant/internal/models"

	"github.com/lib/pq"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresStore searches brand pages with ILIKE.
type PostgresStore struct {
	client *database.PostgresClient
	query  string
}

func NewPostgresStore(client *database.PostgresClient, table string) (*PostgresStore, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid content table name %q", table)
	}
	return &PostgresStore{
		client: client,
		query: fmt.Sprintf(
			`SELECT title, url, content FROM %s WHERE content ILIKE $1 ESCAPE '\' ORDER BY LENGTH(content) ASC LIMIT 1`,
			pq.QuoteIdentifier(table),
		),
	}, nil
}

// FindShortestMatch checks out one connection for the lookup and returns it
// to the pool on every path.
func (s *PostgresStore) FindShortestMatch(ctx context.Context, keyword string) (*models.ContentRecord, error) {
	conn, err := s.client.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer conn.Close()

	var title, url sql.NullString
	var content string
	err = conn.QueryRowContext(ctx, s.query, "%"+likeEscaper.Replace(keyword)+"%").Scan(&title, &url, &content)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	return &models.ContentRecord{
		Title:   title.String,
		URL:     url.String,
		Content: content,
	}, nil
}
