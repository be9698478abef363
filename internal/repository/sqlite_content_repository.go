package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"content-hub/internal/domain"
)

// SQLiteContentRepository implements Source on an SQLite database opened
// with database.OpenSQLite. Timestamps are stored as Unix nanoseconds and
// tags as a JSON array.
type SQLiteContentRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteContentRepository creates a new SQLiteContentRepository.
func NewSQLiteContentRepository(db *sql.DB) *SQLiteContentRepository {
	return &SQLiteContentRepository{db: db, now: time.Now}
}

// Name implements Source.
func (r *SQLiteContentRepository) Name() string {
	return "sqlite"
}

// FetchAll implements Source.
func (r *SQLiteContentRepository) FetchAll(ctx context.Context) ([]domain.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, category, status, slug, author, created_at, updated_at, tags
FROM content_items
ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query content items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ContentItem, 0)
	for rows.Next() {
		var (
			row                  itemRow
			createdAt, updatedAt int64
			tags                 sql.NullString
		)
		if err := rows.Scan(&row.ID, &row.Title, &row.Description, &row.Category, &row.Status,
			&row.Slug, &row.Author, &createdAt, &updatedAt, &tags); err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		row.CreatedAt = time.Unix(0, createdAt).UTC()
		row.UpdatedAt = time.Unix(0, updatedAt).UTC()
		if tags.Valid && tags.String != "" {
			if err := json.Unmarshal([]byte(tags.String), &row.Tags); err != nil {
				return nil, fmt.Errorf("decode tags of %q: %w", row.ID, err)
			}
		}

		item, err := row.item()
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
func (r *SQLiteContentRepository) Create(ctx context.Context, input domain.CreateInput) (domain.ContentItem, error) {
	item := domain.NewRequestedItem(uuid.New().String(), input, r.now().UTC())
	if err := r.insert(ctx, r.db, item, false); err != nil {
		return domain.ContentItem{}, err
	}
	return item, nil
}

// Update implements Updater.
func (r *SQLiteContentRepository) Update(ctx context.Context, item domain.ContentItem) (domain.ContentItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var createdAt int64
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM content_items WHERE id = ?`, item.ID).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ContentItem{}, fmt.Errorf("item %q: %w", item.ID, domain.ErrItemNotFound)
	}
	if err != nil {
		return domain.ContentItem{}, fmt.Errorf("load content item: %w", err)
	}

	updated := item.Clone()
	updated.CreatedAt = time.Unix(0, createdAt).UTC()
	updated.UpdatedAt = latest(r.now().UTC(), updated.CreatedAt)

	row := rowFromItem(updated)
	tags, err := encodeTags(row.Tags)
	if err != nil {
		return domain.ContentItem{}, err
	}
	_, err = tx.ExecContext(ctx, `
UPDATE content_items
SET title = ?, description = ?, category = ?, status = ?, slug = ?, author = ?, tags = ?, updated_at = ?
WHERE id = ?`,
		row.Title, row.Description, row.Category, row.Status, row.Slug, row.Author,
		tags, row.UpdatedAt.UnixNano(), row.ID)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return domain.ContentItem{}, fmt.Errorf("slug %q: %w", item.Slug(), domain.ErrDuplicateSlug)
		}
		return domain.ContentItem{}, fmt.Errorf("update content item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.ContentItem{}, fmt.Errorf("commit transaction: %w", err)
	}
	return updated, nil
}

// Import implements Importer.
func (r *SQLiteContentRepository) Import(ctx context.Context, items []domain.ContentItem) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, item := range items {
		res, err := r.execInsert(ctx, tx, item, true)
		if err != nil {
			return 0, err
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return inserted, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteContentRepository) insert(ctx context.Context, db execer, item domain.ContentItem, ignoreExisting bool) error {
	_, err := r.execInsert(ctx, db, item, ignoreExisting)
	return err
}

func (r *SQLiteContentRepository) execInsert(ctx context.Context, db execer, item domain.ContentItem, ignoreExisting bool) (sql.Result, error) {
	row := rowFromItem(item)
	tags, err := encodeTags(row.Tags)
	if err != nil {
		return nil, err
	}

	verb := "INSERT"
	if ignoreExisting {
		verb = "INSERT OR IGNORE"
	}
	res, err := db.ExecContext(ctx, verb+` INTO content_items
    (id, title, description, category, status, slug, author, created_at, updated_at, tags)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, row.Title, row.Description, row.Category, row.Status, row.Slug, row.Author,
		row.CreatedAt.UnixNano(), row.UpdatedAt.UnixNano(), tags)
	if err != nil {
		return nil, fmt.Errorf("insert content item %q: %w", item.ID, err)
	}
	return res, nil
}

func encodeTags(tags []string) (sql.NullString, error) {
	if len(tags) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode tags: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func isSQLiteUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
