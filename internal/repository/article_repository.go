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

// PostgresArticleRepository implements ArticleRepository using PostgreSQL.
type PostgresArticleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository.
func NewPostgresArticleRepository(pool *pgxpool.Pool) *PostgresArticleRepository {
	return &PostgresArticleRepository{pool: pool}
}

const articleSelect = `
	SELECT a.id, a.title, a.subtitle, a.content, a.type, a.status,
		a.author_id, a.created_at, a.updated_at,
		u.id, u.username, u.email, u.password_hash, u.first_name, u.last_name,
		u.created_at, u.updated_at
	FROM articles a
	JOIN users u ON u.id = a.author_id`

func scanArticleWithAuthor(row pgx.Row) (*domain.Article, error) {
	var a domain.Article
	var author domain.User
	err := row.Scan(&a.ID, &a.Title, &a.Subtitle, &a.Content, &a.Type, &a.Status,
		&a.AuthorID, &a.CreatedAt, &a.UpdatedAt,
		&author.ID, &author.Username, &author.Email, &author.PasswordHash,
		&author.FirstName, &author.LastName, &author.CreatedAt, &author.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Author = &author
	a.Keywords = []domain.Keyword{}
	return &a, nil
}

// buildFilter translates an ArticleFilter into a WHERE clause. The
// keyword filter matches articles tagged with the normalized name.
func buildFilter(filter domain.ArticleFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Title != "" {
		add("a.title = $%d", filter.Title)
	}
	if filter.Subtitle != "" {
		add("a.subtitle = $%d", filter.Subtitle)
	}
	if filter.Type != nil {
		add("a.type = $%d", *filter.Type)
	}
	if filter.Status != nil {
		add("a.status = $%d", *filter.Status)
	}
	if filter.AuthorID != 0 {
		add("a.author_id = $%d", filter.AuthorID)
	}
	if filter.Keyword != "" {
		add(`a.id IN (
			SELECT ak.article_id FROM article_keywords ak
			JOIN keywords k ON k.id = ak.keyword_id
			WHERE k.name = $%d)`, domain.NormalizeKeywordName(filter.Keyword))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns a page of articles matching the filter, newest first,
// with authors and keywords preloaded, plus the unpaged match count.
func (r *PostgresArticleRepository) List(ctx context.Context, filter domain.ArticleFilter, limit, offset int) ([]domain.Article, int64, error) {
	where, args := buildFilter(filter)

	var count int64
	countQuery := `SELECT COUNT(*) FROM articles a JOIN users u ON u.id = a.author_id` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d",
		articleSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	articles, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadKeywords(ctx, articles); err != nil {
		return nil, 0, err
	}
	return articles, count, nil
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		a, err := scanArticleWithAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []domain.Article{}
	}
	return articles, nil
}

// loadKeywords batch-loads the keyword sets for the given articles.
func (r *PostgresArticleRepository) loadKeywords(ctx context.Context, articles []domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := make([]int64, len(articles))
	index := make(map[int64]*domain.Article, len(articles))
	for i := range articles {
		ids[i] = articles[i].ID
		index[articles[i].ID] = &articles[i]
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ak.article_id, k.id, k.name, k.created_at, k.updated_at
		FROM article_keywords ak
		JOIN keywords k ON k.id = ak.keyword_id
		WHERE ak.article_id = ANY($1)
		ORDER BY k.name
	`, ids)
	if err != nil {
		return fmt.Errorf("load keywords: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID int64
		var k domain.Keyword
		if err := rows.Scan(&articleID, &k.ID, &k.Name, &k.CreatedAt, &k.UpdatedAt); err != nil {
			return fmt.Errorf("scan article keyword: %w", err)
		}
		if a, ok := index[articleID]; ok {
			a.Keywords = append(a.Keywords, k)
		}
	}
	return rows.Err()
}

// GetByID retrieves an article with its author and keywords.
func (r *PostgresArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	article, err := scanArticleWithAuthor(r.pool.QueryRow(ctx, articleSelect+` WHERE a.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, nil
	}

	single := []domain.Article{*article}
	if err := r.loadKeywords(ctx, single); err != nil {
		return nil, err
	}
	return &single[0], nil
}

// ListByAuthor returns all articles by one author, newest first.
func (r *PostgresArticleRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.Article, error) {
	rows, err := r.pool.Query(ctx, articleSelect+` WHERE a.author_id = $1 ORDER BY a.created_at DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list articles by author: %w", err)
	}
	defer rows.Close()

	articles, err := collectArticles(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadKeywords(ctx, articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Create inserts the article and attaches its keyword set in one
// transaction, then returns the row with relations loaded.
func (r *PostgresArticleRepository) Create(ctx context.Context, article *domain.Article, keywordIDs []int64) (*domain.Article, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO articles (title, subtitle, content, type, status, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, article.Title, article.Subtitle, article.Content, article.Type, article.Status, article.AuthorID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}

	if err := attachKeywords(ctx, tx, id, keywordIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Update persists the article fields and, when keywordIDs is non-nil,
// replaces the keyword set.
func (r *PostgresArticleRepository) Update(ctx context.Context, article *domain.Article, keywordIDs []int64) (*domain.Article, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE articles
		SET title = $1, subtitle = $2, content = $3, type = $4, status = $5, updated_at = $6
		WHERE id = $7
	`, article.Title, article.Subtitle, article.Content, article.Type, article.Status, article.UpdatedAt, article.ID)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	if keywordIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM article_keywords WHERE article_id = $1`, article.ID); err != nil {
			return nil, fmt.Errorf("detach keywords: %w", err)
		}
		if err := attachKeywords(ctx, tx, article.ID, keywordIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return r.GetByID(ctx, article.ID)
}

// Delete removes the article. Comments cascade through the foreign key;
// keywords only lose their link rows.
func (r *PostgresArticleRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

func attachKeywords(ctx context.Context, tx pgx.Tx, articleID int64, keywordIDs []int64) error {
	for _, kid := range keywordIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO article_keywords (article_id, keyword_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, articleID, kid)
		if err != nil {
			return fmt.Errorf("attach keyword: %w", err)
		}
	}
	return nil
}
