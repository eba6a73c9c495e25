package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alucardavid/samplemed-blog/internal/domain"
)

// PostgresCommentRepository implements CommentRepository using PostgreSQL.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository.
func NewPostgresCommentRepository(pool *pgxpool.Pool) *PostgresCommentRepository {
	return &PostgresCommentRepository{pool: pool}
}

const commentSelect = `
	SELECT c.id, c.article_id, c.author_id, c.content, c.created_at, c.updated_at,
		u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		u.created_at, u.updated_at
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func scanCommentWithAuthor(row pgx.Row) (*domain.Comment, error) {
	var c domain.Comment
	var author domain.User
	err := row.Scan(&c.ID, &c.ArticleID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&author.ID, &author.Username, &author.Email, &author.PasswordHash,
		&author.FirstName, &author.LastName, &author.CreatedAt, &author.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Author = &author
	return &c, nil
}

func buildCommentFilter(filter domain.CommentFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if filter.ArticleID != 0 {
		args = append(args, filter.ArticleID)
		conds = append(conds, fmt.Sprintf("c.article_id = $%d", len(args)))
	}
	if filter.AuthorID != 0 {
		args = append(args, filter.AuthorID)
		conds = append(conds, fmt.Sprintf("c.author_id = $%d", len(args)))
	}
	if filter.Content != "" {
		args = append(args, "%"+filter.Content+"%")
		conds = append(conds, fmt.Sprintf("c.content ILIKE $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns a page of comments matching the filter, newest first,
// with authors preloaded, plus the unpaged match count.
func (r *PostgresCommentRepository) List(ctx context.Context, filter domain.CommentFilter, limit, offset int) ([]domain.Comment, int64, error) {
	where, args := buildCommentFilter(filter)

	var count int64
	countQuery := `SELECT COUNT(*) FROM comments c` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d",
		commentSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]domain.Comment, 0, limit)
	for rows.Next() {
		c, err := scanCommentWithAuthor(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	return comments, count, rows.Err()
}

// GetByID retrieves a comment with its author.
func (r *PostgresCommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, err := scanCommentWithAuthor(r.pool.QueryRow(ctx, commentSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// Create inserts the comment and returns it with the author loaded.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (article_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, comment.ArticleID, comment.AuthorID, comment.Content).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update persists the comment content.
func (r *PostgresCommentRepository) Update(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET content = $1, updated_at = NOW()
		WHERE id = $2
	`, comment.Content, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, comment.ID)
}

// Delete removes a comment.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
