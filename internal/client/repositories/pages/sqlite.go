package pages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/dbx"
	"github.com/google/uuid"
)

const columns = `book_id, page_number, title, total_pages, local_path, format, size, saved_at`

type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, p *models.SavedPage) error {
	savedAt := p.SavedAt
	if savedAt.IsZero() {
		savedAt = time.Now()
	}

	query := `INSERT INTO saved_pages (` + columns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(book_id, page_number) DO UPDATE SET
				title = excluded.title,
				total_pages = excluded.total_pages,
				local_path = excluded.local_path,
				format = excluded.format,
				size = excluded.size,
				saved_at = excluded.saved_at
	`
	_, err := r.db.ExecContext(ctx, query,
		p.BookID.String(), p.PageNumber, p.Title, p.TotalPages, p.Path, p.Format, p.Size, savedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert saved page: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, bookID uuid.UUID, page int) (*models.SavedPage, error) {
	query := `SELECT ` + columns + ` FROM saved_pages WHERE book_id = ? AND page_number = ?`
	p, err := scan(r.db.QueryRowContext(ctx, query, bookID.String(), page))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved page: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) ListByBook(ctx context.Context, bookID uuid.UUID) ([]models.SavedPage, error) {
	query := `SELECT ` + columns + ` FROM saved_pages WHERE book_id = ? ORDER BY page_number`
	return r.list(ctx, query, bookID.String())
}

func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.SavedPage, error) {
	query := `SELECT ` + columns + ` FROM saved_pages ORDER BY saved_at DESC, book_id, page_number LIMIT ?`
	return r.list(ctx, query, limit)
}

func (r *SQLiteRepository) DeleteByBook(ctx context.Context, bookID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_pages WHERE book_id = ?`, bookID.String())
	if err != nil {
		return 0, fmt.Errorf("failed to delete saved pages: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.SavedPage, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error selecting saved pages: %w", err)
	}
	defer rows.Close()

	var result []models.SavedPage
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*models.SavedPage, error) {
	var (
		p       models.SavedPage
		bookID  string
		savedAt int64
	)
	if err := s.Scan(&bookID, &p.PageNumber, &p.Title, &p.TotalPages, &p.Path, &p.Format, &p.Size, &savedAt); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(bookID)
	if err != nil {
		return nil, fmt.Errorf("saved page book id %q: %w", bookID, err)
	}
	p.BookID = id
	p.SavedAt = time.UnixMilli(savedAt)
	return &p, nil
}
