package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

// PostgresKeywordRepository implements KeywordRepository using PostgreSQL.
type PostgresKeywordRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresKeywordRepository creates a new PostgresKeywordRepository.
func NewPostgresKeywordRepository(pool *pgxpool.Pool) *PostgresKeywordRepository {
	return &PostgresKeywordRepository{pool: pool}
}

const keywordColumns = `id, name, created_at, updated_at`

func scanKeyword(row pgx.Row) (*domain.Keyword, error) {
	var k domain.Keyword
	err := row.Scan(&k.ID, &k.Name, &k.CreatedAt, &k.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &k, nil
}

// GetByID retrieves a keyword by ID.
func (r *PostgresKeywordRepository) GetByID(ctx context.Context, id int64) (*domain.Keyword, error) {
	keyword, err := scanKeyword(r.pool.QueryRow(ctx,
		`SELECT `+keywordColumns+` FROM keywords WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get keyword: %w", err)
	}
	return keyword, nil
}

// GetByName retrieves a keyword by its normalized name.
func (r *PostgresKeywordRepository) GetByName(ctx context.Context, name string) (*domain.Keyword, error) {
	keyword, err := scanKeyword(r.pool.QueryRow(ctx,
		`SELECT `+keywordColumns+` FROM keywords WHERE name = $1`, name))
	if err != nil {
		return nil, fmt.Errorf("get keyword by name: %w", err)
	}
	return keyword, nil
}

// Insert creates the keyword, yielding to a concurrent creator on
// conflict: the (nil, nil) return tells the caller to re-read.
func (r *PostgresKeywordRepository) Insert(ctx context.Context, name string) (*domain.Keyword, error) {
	keyword, err := scanKeyword(r.pool.QueryRow(ctx, `
		INSERT INTO keywords (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING `+keywordColumns, name))
	if err != nil {
		return nil, fmt.Errorf("insert keyword: %w", err)
	}
	return keyword, nil
}

// List returns a page of keywords, optionally filtered by exact name.
func (r *PostgresKeywordRepository) List(ctx context.Context, name string, limit, offset int) ([]domain.Keyword, int64, error) {
	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{limit, offset}
	if name != "" {
		where = ` WHERE name = $1`
		countArgs = append(countArgs, name)
		listArgs = []interface{}{name, limit, offset}
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM keywords`+where, countArgs...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count keywords: %w", err)
	}

	query := `SELECT ` + keywordColumns + ` FROM keywords ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if name != "" {
		query = `SELECT ` + keywordColumns + ` FROM keywords WHERE name = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	}

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list keywords: %w", err)
	}
	defer rows.Close()

	keywords := make([]domain.Keyword, 0, limit)
	for rows.Next() {
		var k domain.Keyword
		if err := rows.Scan(&k.ID, &k.Name, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan keyword: %w", err)
		}
		keywords = append(keywords, k)
	}
	return keywords, count, rows.Err()
}

// Update persists a keyword rename.
func (r *PostgresKeywordRepository) Update(ctx context.Context, keyword *domain.Keyword) (*domain.Keyword, error) {
	updated, err := scanKeyword(r.pool.QueryRow(ctx, `
		UPDATE keywords
		SET name = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+keywordColumns, keyword.Name, keyword.ID))
	if err != nil {
		return nil, fmt.Errorf("update keyword: %w", err)
	}
	return updated, nil
}

// Delete removes a keyword. Article links go through the join table
// cascade; articles themselves are untouched.
func (r *PostgresKeywordRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM keywords WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete keyword: %w", err)
	}
	return nil
}
