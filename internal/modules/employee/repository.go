package employee

import "context"

// Repository defines employee data storage.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	// GetByID returns sql.ErrNoRows when no employee has id, whatever the status.
	GetByID(ctx context.Context, id int64) (*Employee, error)
	CountActive(ctx context.Context) (int, error)
	// MarkTerminated reports how many rows changed.
	MarkTerminated(ctx context.Context, id int64) (int64, error)
}
