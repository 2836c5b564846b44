package pages

import (
	"context"

	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/google/uuid"
)

// Repository describes the saved-page index. Implementations are typically
// backed by the local SQLite database.
type Repository interface {
	// Save inserts or replaces the record for (BookID, PageNumber).
	Save(ctx context.Context, p *models.SavedPage) error

	// Get returns the record of one page, or common.ErrNotFound.
	Get(ctx context.Context, bookID uuid.UUID, page int) (*models.SavedPage, error)

	// ListByBook returns a book's saved pages in page order.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]models.SavedPage, error)

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]models.SavedPage, error)

	// DeleteByBook removes a book's records and reports how many were removed.
	DeleteByBook(ctx context.Context, bookID uuid.UUID) (int64, error)
}
