package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"content-hub/internal/domain"
)

const pgUniqueViolation = "23505"

const selectContentItems = `
SELECT id, title, description, category, status, slug, author, created_at, updated_at, tags
FROM content_items`

// PostgresContentRepository implements Source using PostgreSQL.
type PostgresContentRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresContentRepository creates a new PostgresContentRepository.
func NewPostgresContentRepository(pool *pgxpool.Pool) *PostgresContentRepository {
	return &PostgresContentRepository{pool: pool, now: time.Now}
}

// Name implements Source.
func (r *PostgresContentRepository) Name() string {
	return "postgres"
}

// FetchAll implements Source.
func (r *PostgresContentRepository) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	rows, err := r.pool.Query(ctx, selectContentItems+` ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query content items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContentItem, 0)
	for rows.Next() {
		item, err := scanPostgresItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read content items: %w", err)
	}
	return items, nil
}

// Create implements Source.
func (r *PostgresContentRepository) Create(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	// Postgres keeps microsecond precision; truncate so the returned item
	// matches what a later FetchAll reads back.
	now := r.now().UTC().Truncate(time.Microsecond)
	item := domain.NewRequestedItem(uuid.New().String(), input, now)
	row := rowFromItem(item)

	_, err := r.pool.Exec(ctx, `
INSERT INTO content_items (id, title, description, category, status, slug, author, created_at, updated_at, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID, row.Title, row.Description, row.Category, row.Status,
		row.Slug, row.Author, row.CreatedAt, row.UpdatedAt, row.Tags)
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("insert content item: %w", err)
	}
	return item, nil
}

// Update implements Updater.
func (r *PostgresContentRepository) Update(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	row := rowFromItem(item)
	now := r.now().UTC().Truncate(time.Microsecond)

	var createdAt, updatedAt time.Time
	err := r.pool.QueryRow(ctx, `
UPDATE content_items
SET title = $2, description = $3, category = $4, status = $5, slug = $6, author = $7,
    tags = $8, updated_at = GREATEST($9, created_at)
WHERE id = $1
RETURNING created_at, updated_at`,
		row.ID, row.Title, row.Description, row.Category, row.Status,
		row.Slug, row.Author, row.Tags, now).Scan(&createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ContentItem{}, fmt.Errorf("item %q: %w", item.ID, domain.ErrItemNotFound)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ContentItem{}, fmt.Errorf("slug %q: %w", item.Slug(), domain.ErrDuplicateSlug)
		}
		return domain.ContentItem{}, fmt.Errorf("update content item: %w", err)
	}

	updated := item.Clone()
	updated.CreatedAt = createdAt
	updated.UpdatedAt = updatedAt
	return updated, nil
}

// Import implements Importer.
func (r *PostgresContentRepository) Import(ctx context.Context, items []domain.ContentItem) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, item := range items {
		row := rowFromItem(item)
		batch.Queue(`
INSERT INTO content_items (id, title, description, category, status, slug, author, created_at, updated_at, tags)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT DO NOTHING`,
			row.ID, row.Title, row.Description, row.Category, row.Status,
			row.Slug, row.Author, row.CreatedAt, row.UpdatedAt, row.Tags)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := 0
	for _, item := range items {
		tag, err := results.Exec()
		if err != nil {
			_ = results.Close()
			return 0, fmt.Errorf("import item %q: %w", item.ID, err)
		}
		inserted += int(tag.RowsAffected())
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

func scanPostgresItem(rows pgx.Rows) (domain.ContentItem, error) {
	var row itemRow
	if err := rows.Scan(&row.ID, &row.Title, &row.Description, &row.Category, &row.Status,
		&row.Slug, &row.Author, &row.CreatedAt, &row.UpdatedAt, &row.Tags); err != nil {
		return domain.ContentItem{}, fmt.Errorf("scan content item: %w", err)
	}
	return row.item()
}
